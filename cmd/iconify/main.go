package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iconify-tray/iconify/internal/config"
	"github.com/iconify-tray/iconify/internal/logging"
	"github.com/iconify-tray/iconify/internal/runner"
	"github.com/iconify-tray/iconify/internal/speed"
	"github.com/iconify-tray/iconify/internal/theme"
)

const appName = "Iconify"

var (
	version     = "0.1.0"
	cfgFile     string
	runnerFlag  string
	themeFlag   string
	speedFlag   string
	fpsFlag     string
	foreground  bool
	renderOut   string
	renderThumb bool
)

var log = logging.L("main")

var rootCmd = &cobra.Command{
	Use:   "iconify",
	Short: "Animated tray icon",
	Long:  `Iconify - an animated runner in the system tray, tinted to match your theme`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTray()
	},
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show the animated tray icon",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTray()
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play the animation in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreview()
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the built frame sequence as PNG files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderFrames(cmd.OutOrStdout(), renderOut, renderThumb)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the effective configuration and render settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printStatus(cmd.OutOrStdout())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Iconify v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is "+config.Path()+")")
	rootCmd.PersistentFlags().StringVar(&runnerFlag, "runner", "", "runner to animate, overriding the config")
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "theme, overriding the config")
	rootCmd.PersistentFlags().StringVar(&speedFlag, "speed", "", "speed such as 150%, overriding the config")
	rootCmd.PersistentFlags().StringVar(&fpsFlag, "fps-limit", "", "frame rate cap such as Fps30, overriding the config")

	runCmd.Flags().BoolVar(&foreground, "foreground", false, "also log to stderr")
	renderCmd.Flags().StringVar(&renderOut, "out", ".", "directory to write frames into")
	renderCmd.Flags().BoolVar(&renderThumb, "thumbnail", false, "write only frame 0")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(autostartCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads and validates the config file, then applies command line
// overrides. Unknown override names are rejected rather than defaulted.
func loadConfig() (*config.Config, error) {
	cfg, err := readConfig()
	if err != nil {
		return nil, err
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readConfig reads the config file and applies command line overrides
// without validating, so logging can be set up before any warning is
// reported.
func readConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if runnerFlag != "" {
		if _, ok := runner.Parse(runnerFlag); !ok {
			return nil, fmt.Errorf("unknown runner %q", runnerFlag)
		}
		cfg.Runner = runnerFlag
	}
	if themeFlag != "" {
		if _, ok := theme.Parse(themeFlag); !ok {
			return nil, fmt.Errorf("unknown theme %q", themeFlag)
		}
		cfg.Theme = themeFlag
	}
	if speedFlag != "" {
		if _, ok := speed.Parse(speedFlag); !ok {
			return nil, fmt.Errorf("unknown speed %q", speedFlag)
		}
		cfg.Speed = speedFlag
	}
	if fpsFlag != "" {
		if _, ok := speed.ParseFPSLimit(fpsFlag); !ok {
			return nil, fmt.Errorf("unknown fps limit %q", fpsFlag)
		}
		cfg.FPSLimit = fpsFlag
	}
	return cfg, nil
}

// validateConfig corrects what it can in place and fails on fatals.
func validateConfig(cfg *config.Config) error {
	if res := cfg.ValidateTiered(); res.HasFatals() {
		return fmt.Errorf("invalid config: %w", res.Fatals[0])
	}
	return nil
}

// initLogging sends logs to the rotating file, mirrored to stderr when tee is
// set. The returned closer flushes the file.
func initLogging(cfg *config.Config, tee bool) io.Closer {
	path := cfg.LogFile
	if path == "" {
		path = logging.DefaultLogPath()
	}
	rw, err := logging.NewRotatingWriter(path, 0, 0)
	if err != nil {
		logging.Init(cfg.LogFormat, cfg.LogLevel, os.Stderr)
		log.Warn("log file unavailable, logging to stderr", logging.KeyError, err)
		return nopCloser{}
	}

	var out io.Writer = rw
	if tee {
		out = logging.TeeWriter(rw, os.Stderr)
	}
	logging.Init(cfg.LogFormat, cfg.LogLevel, out)
	return rw
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
