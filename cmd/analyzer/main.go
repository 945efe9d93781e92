// Command analyzer runs the full spatial market analysis for one
// commodity selection and writes the result as JSON.
//
// The input is a bundle file holding the region geometry, the price
// observations, and the trade flow edges:
//
//	analyzer -input bundle.json -commodity wheat -from 2020-01 -to 2020-12
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"ymcli/internal/analytics"
	"ymcli/internal/config"
	"ymcli/internal/exporter"
	"ymcli/internal/infrastructure"
)

func main() {
	if err := run(); err != nil {
		slog.Error("analysis failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	inputPath := flag.String("input", "", "input bundle JSON file (regions, observations, flows)")
	commodity := flag.String("commodity", "", "commodity to analyze")
	from := flag.String("from", "", "start month, YYYY-MM (inclusive, optional)")
	to := flag.String("to", "", "end month, YYYY-MM (inclusive, optional)")
	mode := flag.String("mode", "", "weight mode override: binary or distance-decay")
	bandwidth := flag.Float64("bandwidth", 0, "distance-decay bandwidth override in km")
	monteCarlo := flag.Bool("mc", false, "use Monte Carlo permutation significance")
	outPath := flag.String("out", "", "output JSON file (default stdout)")
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

	bundle, err := loadBundle(*inputPath)
	if err != nil {
		return err
	}

	req := analytics.Request{
		Commodity:     *commodity,
		WeightMode:    *mode,
		BandwidthKm:   *bandwidth,
		UseMonteCarlo: *monteCarlo,
	}
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

	return writeResult(exporter.RoundResult(res), *outPath)
}

func loadBundle(path string) (*analytics.InputBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input bundle: %w", err)
	}
	var bundle analytics.InputBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parse input bundle: %w", err)
	}
	return &bundle, nil
}

func parseMonth(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01", s)
}

func writeResult(res *analytics.Result, path string) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
