package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sda-fusion/fusiongen/pkg/util"
)

var peerPrefixLen int

var peerCmd = &cobra.Command{
	Use:   "peer <ip-address>[/prefix]",
	Short: "Resolve the far-end address of a point-to-point /30 link",
	Long: `Resolve the other usable host address on a /30 subnet.

Examples:
  fusiongen peer 192.168.201.153
  fusiongen peer 192.168.201.153/30
  fusiongen peer 192.168.201.154 --prefix 30`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := args[0]
		if ip, prefix := util.SplitIPMask(addr); prefix != 0 {
			addr, peerPrefixLen = ip, prefix
		}
		peer, err := util.ResolvePeerAddress(addr, peerPrefixLen)
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(map[string]string{
				"address": args[0],
				"peer":    peer,
			})
		}

		fmt.Println(peer)
		return nil
	},
}

func init() {
	peerCmd.Flags().IntVar(&peerPrefixLen, "prefix", 30, "Prefix length of the point-to-point subnet")
}
