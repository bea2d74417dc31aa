package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sda-fusion/fusiongen/pkg/cli"
	"github.com/sda-fusion/fusiongen/pkg/confparse"
)

var parseCmd = &cobra.Command{
	Use:   "parse <config-file>...",
	Short: "Parse border node configs and show extracted facts",
	Long: `Parse one or more border node running-configs and show the facts the
generator would use: hostname, BGP AS and neighbors, and the /30
candidate handoff interfaces.

Examples:
  fusiongen parse bn-edge-01.cfg
  fusiongen parse bn-edge-01.cfg bn-edge-02.cfg
  fusiongen parse bn-edge-01.cfg --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var records []*confparse.DeviceRecord
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			records = append(records, confparse.Parse(string(data)))
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}

		for i, record := range records {
			if i > 0 {
				fmt.Println()
			}
			printRecord(record)
		}
		return nil
	},
}

func printRecord(record *confparse.DeviceRecord) {
	hostname := record.Hostname
	if hostname == "" {
		hostname = cli.Red("(no hostname)")
	}
	fmt.Printf("%s\n", cli.Bold(hostname))
	if record.Loopback0 != "" {
		fmt.Printf("  Loopback0: %s\n", record.Loopback0)
	}

	if record.BGP != nil {
		fmt.Printf("  BGP AS:    %d\n", record.BGP.ASNumber)
	} else {
		fmt.Printf("  BGP AS:    %s\n", cli.Yellow("(none)"))
	}
	fmt.Println()

	t := cli.NewTable(os.Stdout, "INTERFACE", "IP ADDRESS", "PREFIX", "VRF", "BFD")
	for _, iface := range record.Interfaces {
		bfd := "-"
		if iface.BFD != nil {
			bfd = iface.BFD.String()
		}
		t.Row(iface.Name, iface.IPAddress, "/"+strconv.Itoa(iface.PrefixLen), iface.VRF.String(), bfd)
	}
	t.Flush()

	if record.BGP != nil {
		nt := cli.NewTable(os.Stdout, "NEIGHBOR", "REMOTE-AS", "VRF", "DESCRIPTION")
		for _, n := range record.BGP.DefaultNeighbors {
			nt.Row(n.IP, strconv.Itoa(n.RemoteAS), "-", n.Description)
		}
		for vrf, neighbors := range record.BGP.VRFNeighbors {
			for _, n := range neighbors {
				nt.Row(n.IP, strconv.Itoa(n.RemoteAS), vrf, n.Description)
			}
		}
		fmt.Println()
		nt.Flush()
	}

	for _, w := range record.Warnings {
		fmt.Printf("%s %s\n", cli.Yellow("warning:"), w)
	}
}
