package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ymcli/internal/analytics"
	"ymcli/internal/spatial"
)

// CSVWriter provides CSV export functionality.
type CSVWriter struct {
	baseDir string
	logger  *slog.Logger
}

// NewCSVWriter creates a CSV writer rooted at baseDir. Relative paths
// passed to WriteCSV resolve against it.
func NewCSVWriter(baseDir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{
		baseDir: baseDir,
		logger:  logger.With(slog.String("component", "csv_exporter")),
	}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	w.logger.Info("writing CSV file",
		slog.String("path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.baseDir == "" {
		return filePath
	}
	return filepath.Join(w.baseDir, filePath)
}

// ResultExporter flattens analysis results into per-section CSV files.
type ResultExporter struct {
	writer *CSVWriter
}

// NewResultExporter creates an exporter writing under baseDir.
func NewResultExporter(baseDir string, logger *slog.Logger) *ResultExporter {
	return &ResultExporter{writer: NewCSVWriter(baseDir, logger)}
}

// ExportAll writes every section of the result. File names are prefixed
// with the commodity, lowercased.
func (e *ResultExporter) ExportAll(res *analytics.Result) error {
	prefix := strings.ToLower(strings.ReplaceAll(res.Commodity, " ", "_"))

	if err := e.ExportGlobal(res, prefix+"_global.csv"); err != nil {
		return err
	}
	if err := e.ExportLocal(res, prefix+"_local.csv"); err != nil {
		return err
	}
	if err := e.ExportClusters(res, prefix+"_clusters.csv"); err != nil {
		return err
	}
	return e.ExportShocks(res, prefix+"_shocks.csv")
}

// ExportGlobal writes the global autocorrelation statistic as a single
// record.
func (e *ResultExporter) ExportGlobal(res *analytics.Result, filePath string) error {
	g := res.Global
	return e.writer.WriteCSV(filePath, WriteOptions{
		Headers: []string{"Commodity", "MoranI", "Expected", "Variance", "ZScore", "PValue", "Method", "Regions", "WeightSum", "Computable"},
		Records: [][]string{{
			res.Commodity,
			formatFloat(g.I),
			formatFloat(g.Expected),
			formatFloat(g.Variance),
			formatFloat(g.ZScore),
			formatFloat(g.PValue),
			g.Method,
			formatInt(g.N),
			formatFloat(g.WeightSum),
			formatBool(g.Computable),
		}},
		BOMPrefix: true,
	})
}

// ExportLocal writes per-region local indicators ordered by region.
func (e *ResultExporter) ExportLocal(res *analytics.Result, filePath string) error {
	records := make([][]string, 0, len(res.Local.Results))
	for _, lr := range sortedLocal(res.Local) {
		records = append(records, []string{
			lr.Region,
			formatFloat(lr.LocalI),
			formatFloat(lr.SpatialLag),
			formatFloat(lr.ZScore),
			formatFloat(lr.PValue),
			lr.ClusterType,
			lr.Strength,
			formatBool(lr.Significant),
		})
	}
	return e.writer.WriteCSV(filePath, WriteOptions{
		Headers:   []string{"Region", "LocalI", "SpatialLag", "ZScore", "PValue", "ClusterType", "Strength", "Significant"},
		Records:   records,
		BOMPrefix: true,
	})
}

// ExportClusters writes one record per detected flow cluster.
func (e *ResultExporter) ExportClusters(res *analytics.Result, filePath string) error {
	records := make([][]string, 0, len(res.Clusters))
	for _, c := range res.Clusters {
		records = append(records, []string{
			c.MainMarket,
			strings.Join(c.ConnectedMarkets, ";"),
			formatInt(c.MarketCount),
			formatFloat(c.TotalFlow),
			formatFloat(c.AvgFlow),
			formatFloat(c.FlowDensity),
		})
	}
	return e.writer.WriteCSV(filePath, WriteOptions{
		Headers:   []string{"MainMarket", "ConnectedMarkets", "MarketCount", "TotalFlow", "AvgFlow", "FlowDensity"},
		Records:   records,
		BOMPrefix: true,
	})
}

// ExportShocks writes detected shock events ordered as produced, region
// then month.
func (e *ResultExporter) ExportShocks(res *analytics.Result, filePath string) error {
	records := make([][]string, 0, len(res.Shocks))
	for _, ev := range res.Shocks {
		records = append(records, []string{
			ev.Region,
			formatMonth(ev.Month),
			string(ev.Type),
			formatFloat(ev.Magnitude),
			string(ev.Severity),
			formatFloat(ev.Volatility),
		})
	}
	return e.writer.WriteCSV(filePath, WriteOptions{
		Headers:   []string{"Region", "Month", "Type", "Magnitude", "Severity", "Volatility"},
		Records:   records,
		BOMPrefix: true,
	})
}

// sortedLocal returns local results in region order for stable output.
func sortedLocal(summary spatial.LocalSummary) []spatial.LocalResult {
	out := make([]spatial.LocalResult, 0, len(summary.Results))
	for _, lr := range summary.Results {
		out = append(out, lr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Region < out[j].Region })
	return out
}
