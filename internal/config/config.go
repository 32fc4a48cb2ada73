package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/iconify-tray/iconify/internal/logging"
	"github.com/iconify-tray/iconify/internal/runner"
	"github.com/iconify-tray/iconify/internal/speed"
	"github.com/iconify-tray/iconify/internal/theme"
)

var log = logging.L("config")

const (
	appDirName = "Iconify"
	fileName   = "iconify.yaml"
	envPrefix  = "ICONIFY"
)

type Config struct {
	Runner                string `mapstructure:"runner" yaml:"runner"`
	Theme                 string `mapstructure:"theme" yaml:"theme"`
	Speed                 string `mapstructure:"speed" yaml:"speed"`
	FPSLimit              string `mapstructure:"fps_limit" yaml:"fps_limit"`
	AssetDir              string `mapstructure:"asset_dir" yaml:"asset_dir,omitempty"`
	LogLevel              string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat             string `mapstructure:"log_format" yaml:"log_format"`
	LogFile               string `mapstructure:"log_file" yaml:"log_file,omitempty"`
	ThemePollSeconds      int    `mapstructure:"theme_poll_seconds" yaml:"theme_poll_seconds"`
	TooltipRefreshSeconds int    `mapstructure:"tooltip_refresh_seconds" yaml:"tooltip_refresh_seconds"`
	FirstLaunch           bool   `mapstructure:"first_launch" yaml:"first_launch"`
}

// Selection is the typed form of the user's animation choices.
type Selection struct {
	Runner   runner.Runner
	Theme    theme.Theme
	Speed    speed.Speed
	FPSLimit speed.FPSLimit
}

func Default() *Config {
	return &Config{
		Runner:                runner.Default().String(),
		Theme:                 theme.Default().String(),
		Speed:                 speed.Default().String(),
		FPSLimit:              speed.DefaultFPSLimit().String(),
		LogLevel:              "info",
		LogFormat:             "text",
		ThemePollSeconds:      2,
		TooltipRefreshSeconds: 5,
		FirstLaunch:           true,
	}
}

// Selection parses the stored names. Unknown names resolve to each set's
// default; Validate reports them.
func (c *Config) Selection() Selection {
	r, _ := runner.Parse(c.Runner)
	t, _ := theme.Parse(c.Theme)
	s, _ := speed.Parse(c.Speed)
	f, _ := speed.ParseFPSLimit(c.FPSLimit)
	return Selection{Runner: r, Theme: t, Speed: s, FPSLimit: f}
}

// SetSelection stores the canonical names of sel.
func (c *Config) SetSelection(sel Selection) {
	c.Runner = sel.Runner.String()
	c.Theme = sel.Theme.String()
	c.Speed = sel.Speed.String()
	c.FPSLimit = sel.FPSLimit.String()
}

func newViper(cfgFile string) *viper.Viper {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("iconify")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
	}
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("runner", d.Runner)
	v.SetDefault("theme", d.Theme)
	v.SetDefault("speed", d.Speed)
	v.SetDefault("fps_limit", d.FPSLimit)
	v.SetDefault("asset_dir", d.AssetDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("theme_poll_seconds", d.ThemePollSeconds)
	v.SetDefault("tooltip_refresh_seconds", d.TooltipRefreshSeconds)
	v.SetDefault("first_launch", d.FirstLaunch)
	return v
}

// Load reads cfgFile, or iconify.yaml from the user config directory when
// cfgFile is empty. A missing file yields the defaults.
func Load(cfgFile string) (*Config, error) {
	v := newViper(cfgFile)
	if err := readInto(v); err != nil {
		return nil, err
	}
	return decode(v)
}

func readInto(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func Save(cfg *Config) error {
	return SaveTo(cfg, "")
}

func SaveTo(cfg *Config, cfgFile string) error {
	v := viper.New()
	v.Set("runner", cfg.Runner)
	v.Set("theme", cfg.Theme)
	v.Set("speed", cfg.Speed)
	v.Set("fps_limit", cfg.FPSLimit)
	v.Set("asset_dir", cfg.AssetDir)
	v.Set("log_level", cfg.LogLevel)
	v.Set("log_format", cfg.LogFormat)
	v.Set("log_file", cfg.LogFile)
	v.Set("theme_poll_seconds", cfg.ThemePollSeconds)
	v.Set("tooltip_refresh_seconds", cfg.TooltipRefreshSeconds)
	v.Set("first_launch", cfg.FirstLaunch)

	cfgPath := cfgFile
	if cfgPath == "" {
		cfgPath = Path()
	}
	if dir := filepath.Dir(cfgPath); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	if err := v.WriteConfigAs(cfgPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Watcher delivers the configuration again each time the file changes.
type Watcher struct {
	v  *viper.Viper
	mu sync.Mutex
	// stopped suppresses callbacks; viper offers no way to end WatchConfig.
	stopped bool
}

// Watch starts watching cfgFile (or the default path) and calls onChange with
// the freshly decoded and validated configuration after every write. The file
// must exist.
func Watch(cfgFile string, onChange func(*Config)) (*Watcher, error) {
	v := newViper(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}

	w := &Watcher{v: v}
	v.OnConfigChange(func(e fsnotify.Event) {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.stopped {
			return
		}
		cfg, err := decode(v)
		if err != nil {
			log.Warn("ignoring unreadable config change", "file", e.Name, logging.KeyError, err)
			return
		}
		cfg.Validate()
		log.Info("config changed", "file", e.Name, "op", e.Op.String())
		onChange(cfg)
	})
	v.WatchConfig()
	return w, nil
}

// Stop suppresses further callbacks.
func (w *Watcher) Stop() {
	w.mu.Lock()
	w.stopped = true
	w.mu.Unlock()
}

// Dir is the per-user directory holding the config and log files.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, appDirName)
}

// Path is the default config file location.
func Path() string {
	return filepath.Join(Dir(), fileName)
}
