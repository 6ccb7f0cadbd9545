package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/fleetrent/app"
	"github.com/kilianp07/fleetrent/config"
	"github.com/kilianp07/fleetrent/infra/logger"
	"github.com/kilianp07/fleetrent/pkg/export"
)

var (
	reportCSVPath  string
	reportJSONPath string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the simulation and export the financial reports",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportCSVPath, "csv", "", "write the report rows as CSV to this file")
	reportCmd.Flags().StringVar(&reportJSONPath, "json", "", "write the report rows as JSON to this file")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
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
			logger.New("report").Errorf("service close: %v", err)
		}
	}()

	report, err := svc.Run(ctx)
	if err != nil {
		return err
	}
	rows := report.Rows()

	if reportCSVPath != "" {
		if err := writeReportFile(reportCSVPath, func(f *os.File) error {
			return export.WriteCSV(f, rows)
		}); err != nil {
			return fmt.Errorf("write csv report: %w", err)
		}
	}
	if reportJSONPath != "" {
		if err := writeReportFile(reportJSONPath, func(f *os.File) error {
			return export.WriteJSON(f, rows)
		}); err != nil {
			return fmt.Errorf("write json report: %w", err)
		}
	}
	if reportCSVPath == "" && reportJSONPath == "" {
		return export.WriteJSON(cmd.OutOrStdout(), rows)
	}
	return nil
}

func writeReportFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
