package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sda-fusion/fusiongen/pkg/cli"
	"github.com/sda-fusion/fusiongen/pkg/confparse"
	"github.com/sda-fusion/fusiongen/pkg/generate"
	"github.com/sda-fusion/fusiongen/pkg/plan"
	"github.com/sda-fusion/fusiongen/pkg/store"
)

var planFile string

var generateCmd = &cobra.Command{
	Use:   "generate -f <plan.yaml>",
	Short: "Generate fusion router configs from a plan file",
	Long: `Generate fusion router configurations from a YAML plan.

The plan names the border node config files, the fusion routers, and the
handoff and VRF definitions. Generated configs are written to the output
directory as timestamped files.

Examples:
  fusiongen generate -f plan.yaml
  fusiongen generate -f plan.yaml -o configs/`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if planFile == "" {
			return fmt.Errorf("a plan file is required: use -f <plan.yaml>")
		}

		p, err := plan.LoadWithDefaults(planFile, plan.Defaults{
			ASNumber: userSettings.FusionAS,
		})
		if err != nil {
			return err
		}

		planDir := filepath.Dir(planFile)
		var records []*confparse.DeviceRecord
		for _, path := range p.BorderConfigs {
			if !filepath.IsAbs(path) {
				path = filepath.Join(planDir, path)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading border config: %w", err)
			}
			record := confparse.Parse(string(data))
			if record.Hostname == "" {
				return fmt.Errorf("%s: no hostname found in configuration", path)
			}
			records = append(records, record)
		}

		st, err := store.New(outputDir)
		if err != nil {
			return err
		}

		for _, params := range p.Routers {
			data, err := generate.Build(params, records, p.Handoffs, p.VRFs)
			if err != nil {
				return fmt.Errorf("building %s: %w", params.Hostname, err)
			}
			for _, w := range data.Warnings {
				fmt.Printf("%s %s\n", cli.Yellow("warning:"), w)
			}

			text, err := generate.Render(data)
			if err != nil {
				return err
			}

			path, err := st.Save(params.Hostname, text)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", cli.Green("wrote"), path)
		}

		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&planFile, "file", "f", "", "Plan YAML file")
}
