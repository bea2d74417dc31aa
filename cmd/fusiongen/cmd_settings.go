package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sda-fusion/fusiongen/pkg/cli"
	"github.com/sda-fusion/fusiongen/pkg/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persistent settings",
	Long: `Manage persistent settings stored in ~/.fusiongen/settings.json.

Settings provide defaults for option flags:
  - output_dir: Used when -o is not specified
  - listen:     Used when --listen is not specified
  - fusion_as:  Default AS number for generated fusion routers

Examples:
  fusiongen settings show
  fusiongen settings set output_dir /var/fusiongen
  fusiongen settings set listen :8443
  fusiongen settings clear`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		fmt.Printf("Settings file: %s\n\n", settings.DefaultSettingsPath())

		t := cli.NewTable(os.Stdout, "SETTING", "VALUE")

		printSetting := func(name, value string) {
			if value == "" {
				value = "(not set)"
			}
			t.Row(name, value)
		}

		printSetting("output_dir", s.OutputDir)
		printSetting("listen", s.Listen)
		fusionAS := ""
		if s.FusionAS != 0 {
			fusionAS = strconv.Itoa(s.FusionAS)
		}
		printSetting("fusion_as", fusionAS)

		t.Flush()
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <setting> <value>",
	Short: "Set a setting value",
	Long: `Set a persistent setting value.

Available settings:
  output_dir - Directory for generated configs (-o flag default)
  listen     - HTTP listen address (--listen flag default)
  fusion_as  - Default AS number for generated fusion routers

Examples:
  fusiongen settings set output_dir /var/fusiongen
  fusiongen settings set fusion_as 65000`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setting := args[0]
		value := args[1]

		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		switch setting {
		case "output_dir":
			s.OutputDir = value
		case "listen":
			s.Listen = value
		case "fusion_as":
			as, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("fusion_as must be a number, got %q", value)
			}
			s.FusionAS = as
		default:
			return fmt.Errorf("unknown setting %q (available: output_dir, listen, fusion_as)", setting)
		}

		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}

		fmt.Printf("Set %s = %s\n", setting, value)
		return nil
	},
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset all settings to defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		s.Clear()
		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}

		fmt.Println("Settings cleared")
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsClearCmd)
}
