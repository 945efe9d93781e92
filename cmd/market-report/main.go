// Command market-report runs the spatial market analysis for one
// commodity and renders the results as CSV files and an Excel workbook
// under a report directory.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ymcli/internal/analytics"
	"ymcli/internal/config"
	"ymcli/internal/exporter"
	"ymcli/internal/infrastructure"
)

func main() {
	if err := run(); err != nil {
		slog.Error("report generation failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	inputPath := flag.String("input", "", "input bundle JSON file (regions, observations, flows)")
	commodity := flag.String("commodity", "", "commodity to analyze")
	from := flag.String("from", "", "start month, YYYY-MM (inclusive, optional)")
	to := flag.String("to", "", "end month, YYYY-MM (inclusive, optional)")
	monteCarlo := flag.Bool("mc", true, "use Monte Carlo permutation significance")
	reportDir := flag.String("dir", "reports", "output directory for CSV files and the workbook")
	flag.Parse()

	if *inputPath == "" {
		return fmt.Errorf("-input is required")
	}
	if *commodity == "" {
		return fmt.Errorf("-commodity is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		return fmt.Errorf("read input bundle: %w", err)
	}
	var bundle analytics.InputBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return fmt.Errorf("parse input bundle: %w", err)
	}

	req := analytics.Request{Commodity: *commodity, UseMonteCarlo: *monteCarlo}
	if req.StartMonth, err = parseMonth(*from); err != nil {
		return fmt.Errorf("parse -from: %w", err)
	}
	if req.EndMonth, err = parseMonth(*to); err != nil {
		return fmt.Errorf("parse -to: %w", err)
	}

	svc, err := analytics.NewService(cfg, bundle.Regions, nil, nil, logger)
	if err != nil {
		return fmt.Errorf("build analytics service: %w", err)
	}

	res, err := svc.Analyze(context.Background(), req, bundle.Observations, bundle.Flows)
	if err != nil {
		return err
	}

	if err := exporter.NewResultExporter(*reportDir, logger).ExportAll(res); err != nil {
		return fmt.Errorf("export CSV: %w", err)
	}

	workbook := filepath.Join(*reportDir, workbookName(res.Commodity))
	if err := exporter.NewWorkbookExporter(logger).Export(res, workbook); err != nil {
		return fmt.Errorf("export workbook: %w", err)
	}

	logger.Info("report written",
		slog.String("commodity", res.Commodity),
		slog.String("dir", *reportDir),
		slog.Int("clusters", len(res.Clusters)),
		slog.Int("shocks", len(res.Shocks)))
	return nil
}

func parseMonth(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01", s)
}

func workbookName(commodity string) string {
	return strings.ToLower(strings.ReplaceAll(commodity, " ", "_")) + "_report.xlsx"
}
