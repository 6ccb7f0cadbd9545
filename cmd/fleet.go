package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/fleetrent/config"
	"github.com/kilianp07/fleetrent/infra/csvdata"
	"github.com/kilianp07/fleetrent/infra/logger"
)

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Fleet related commands",
}

var fleetLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the configured vehicles",
	RunE:  runFleetLs,
}

func init() {
	fleetCmd.AddCommand(fleetLsCmd)
	rootCmd.AddCommand(fleetCmd)
}

func runFleetLs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	vehicles, err := csvdata.LoadVehicles(cfg.Data.VehiclesFile, logger.New("fleet"))
	if err != nil {
		return fmt.Errorf("load vehicles: %w", err)
	}
	for _, v := range vehicles {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s %s\t%.2f\n",
			v.ID, string(v.Type), v.Manufacturer, v.Model, v.Price)
	}
	if len(vehicles) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no vehicles configured")
	}
	return nil
}
