package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iconify-tray/iconify/internal/autostart"
)

var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Manage launching Iconify at login",
}

var autostartEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Launch Iconify at login",
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := autostart.ForExecutable(appName)
		if err != nil {
			return err
		}
		if err := entry.Enable(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Autostart enabled.")
		return nil
	},
}

var autostartDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Stop launching Iconify at login",
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := autostart.ForExecutable(appName)
		if err != nil {
			return err
		}
		if err := entry.Disable(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Autostart disabled.")
		return nil
	},
}

var autostartStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether Iconify launches at login",
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := autostart.ForExecutable(appName)
		if err != nil {
			return err
		}
		on, err := entry.Enabled()
		if err != nil {
			return err
		}
		state := "disabled"
		if on {
			state = "enabled"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Autostart: %s\n", state)
		return nil
	},
}

func init() {
	autostartCmd.AddCommand(autostartEnableCmd)
	autostartCmd.AddCommand(autostartDisableCmd)
	autostartCmd.AddCommand(autostartStatusCmd)
}
