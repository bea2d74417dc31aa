package main

import (
	"github.com/spf13/cobra"

	"github.com/sda-fusion/fusiongen/pkg/server"
	"github.com/sda-fusion/fusiongen/pkg/store"
	"github.com/sda-fusion/fusiongen/pkg/util"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	Long: `Run the HTTP API: upload border configs, generate fusion router
configurations, and download the results.

Examples:
  fusiongen serve
  fusiongen serve --listen 127.0.0.1:5001 -o configs/`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listenAddr == "" {
			listenAddr = userSettings.GetListen()
		}

		// Server logs requests at info
		util.SetLogLevel("info")
		if verbose {
			util.SetLogLevel("debug")
		}

		st, err := store.New(outputDir)
		if err != nil {
			return err
		}

		srv := server.New(st)
		if userSettings.FusionAS != 0 {
			srv.SetDefaultAS(userSettings.FusionAS)
		}
		return srv.ListenAndServe(listenAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default from settings, else :5001)")
}
