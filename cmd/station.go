// Copyright © 2026 Geoff Holden <geoff@geoffholden.com>

package cmd

import (
	"fmt"

	"github.com/geoffholden/dhtwx/station"
	"github.com/spf13/cobra"
)

// stationCmd represents the station command
var stationCmd = &cobra.Command{
	Use:   "station",
	Short: "Print a station configuration",
	Long: `Prints the configuration the installer adds for a station type. Save it
and pass it to poll with --station-config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if list, _ := cmd.Flags().GetBool("list"); list {
			for _, name := range station.Variants() {
				v, _ := station.Lookup(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", v.Name, v.Description)
			}
			return nil
		}
		name, _ := cmd.Flags().GetString("type")
		v, err := station.Lookup(name)
		if err != nil {
			return err
		}
		return station.Install(cmd.OutOrStdout(), v)
	},
}

func init() {
	RootCmd.AddCommand(stationCmd)

	stationCmd.Flags().String("type", station.DefaultVariant, "Station type")
	stationCmd.Flags().Bool("list", false, "List the station types")
}
