package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/fleetrent/app"
	"github.com/kilianp07/fleetrent/config"
	"github.com/kilianp07/fleetrent/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "fleetrent",
	Short: "Fleet rental simulation",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()

	report, err := svc.Run(ctx)
	if err != nil {
		return err
	}
	logg := logger.New("main")
	logg.Infof("completed %d rentals (%d failed), revenue %.2f, tax %.2f",
		report.Completed, report.Failed, report.Summary.TotalRevenue, report.Summary.TotalTax)
	for typ, top := range report.TopByType {
		logg.Infof("top %s: %s with revenue %.2f", typ, top.VehicleID, top.Revenue)
	}
	for _, v := range svc.FaultyVehicles() {
		reason, at := v.Fault()
		logg.Warnf("vehicle %s broke down at %s: %s", v.ID, at.Format(time.RFC3339), reason)
	}
	return nil
}
