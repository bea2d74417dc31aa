// Fusiongen - SD-Access Fusion Router Configuration Generator
//
// A CLI tool for generating Cisco fusion router configurations from
// SD-Access border node configs:
//   - Parses border node running-configs for /30 handoff links and BGP facts
//   - Resolves the fusion-side address of each point-to-point link
//   - Renders routed, SVI, or subinterface handoff configurations
//   - Serves the same pipeline over HTTP for web front ends
//
// Examples:
//
//	fusiongen parse bn-edge-01.cfg                  # Show extracted facts
//	fusiongen parse bn-edge-01.cfg --json           # Raw record as JSON
//	fusiongen peer 192.168.201.153                  # Resolve the far end of a /30
//	fusiongen generate -f plan.yaml -o configs/     # Render + persist configs
//	fusiongen serve --listen :5001                  # Run the HTTP service
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sda-fusion/fusiongen/pkg/settings"
	"github.com/sda-fusion/fusiongen/pkg/util"
	"github.com/sda-fusion/fusiongen/pkg/version"
)

var (
	// Global option flags
	outputDir  string
	verbose    bool
	jsonOutput bool

	// Global state
	userSettings *settings.Settings
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "fusiongen",
	Short:             "SD-Access Fusion Router Configuration Generator",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Fusiongen generates Cisco fusion router configurations from SD-Access
border node configs.

Upload or point it at border node running-configs; it extracts the /30
handoff links and BGP facts, resolves the fusion-side addresses, and
renders ready-to-paste IOS-XE configuration.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		userSettings, err = settings.Load()
		if err != nil {
			util.Warnf("Could not load settings: %v", err)
			userSettings = &settings.Settings{}
		}

		if outputDir == "" {
			outputDir = userSettings.GetOutputDir()
		}

		// Quiet by default, verbose on -v
		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for generated configs")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	for _, cmd := range []*cobra.Command{parseCmd, peerCmd} {
		cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	}

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(peerCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fusiongen %s\n", version.Info())
	},
}
