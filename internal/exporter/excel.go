package exporter

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"

	"ymcli/internal/analytics"
)

// WorkbookExporter renders one analysis result as an Excel workbook
// with a sheet per section.
type WorkbookExporter struct {
	logger *slog.Logger
}

// NewWorkbookExporter creates a workbook exporter.
func NewWorkbookExporter(logger *slog.Logger) *WorkbookExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookExporter{
		logger: logger.With(slog.String("component", "excel_exporter")),
	}
}

// Export writes the workbook to path.
func (e *WorkbookExporter) Export(res *analytics.Result, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Global")
	if err := e.writeGlobal(f, res); err != nil {
		return err
	}
	if err := e.writeLocal(f, res); err != nil {
		return err
	}
	if err := e.writeClusters(f, res); err != nil {
		return err
	}
	if err := e.writeShocks(f, res); err != nil {
		return err
	}

	e.logger.Info("writing Excel workbook",
		slog.String("path", path),
		slog.String("commodity", res.Commodity))

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (e *WorkbookExporter) writeGlobal(f *excelize.File, res *analytics.Result) error {
	g := res.Global
	rows := [][]interface{}{
		{"Commodity", res.Commodity},
		{"Moran's I", cell(g.I)},
		{"Expected", cell(g.Expected)},
		{"Variance", cell(g.Variance)},
		{"Z-score", cell(g.ZScore)},
		{"P-value", cell(g.PValue)},
		{"Method", g.Method},
		{"Regions", g.N},
		{"Weight sum", cell(g.WeightSum)},
		{"Computable", g.Computable},
	}
	for i, row := range rows {
		if err := f.SetSheetRow("Global", fmt.Sprintf("A%d", i+1), &row); err != nil {
			return fmt.Errorf("write global sheet: %w", err)
		}
	}
	return nil
}

func (e *WorkbookExporter) writeLocal(f *excelize.File, res *analytics.Result) error {
	if _, err := f.NewSheet("Local"); err != nil {
		return fmt.Errorf("create local sheet: %w", err)
	}
	header := []interface{}{"Region", "Local I", "Spatial lag", "Z-score", "P-value", "Cluster type", "Strength", "Significant"}
	if err := f.SetSheetRow("Local", "A1", &header); err != nil {
		return fmt.Errorf("write local sheet: %w", err)
	}
	for i, lr := range sortedLocal(res.Local) {
		row := []interface{}{
			lr.Region, cell(lr.LocalI), cell(lr.SpatialLag), cell(lr.ZScore),
			cell(lr.PValue), lr.ClusterType, lr.Strength, lr.Significant,
		}
		if err := f.SetSheetRow("Local", fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("write local sheet row %d: %w", i+2, err)
		}
	}
	return nil
}

func (e *WorkbookExporter) writeClusters(f *excelize.File, res *analytics.Result) error {
	if _, err := f.NewSheet("Clusters"); err != nil {
		return fmt.Errorf("create clusters sheet: %w", err)
	}
	header := []interface{}{"Main market", "Connected markets", "Market count", "Total flow", "Avg flow", "Flow density"}
	if err := f.SetSheetRow("Clusters", "A1", &header); err != nil {
		return fmt.Errorf("write clusters sheet: %w", err)
	}
	for i, c := range res.Clusters {
		row := []interface{}{
			c.MainMarket, strings.Join(c.ConnectedMarkets, ";"), c.MarketCount,
			cell(c.TotalFlow), cell(c.AvgFlow), cell(c.FlowDensity),
		}
		if err := f.SetSheetRow("Clusters", fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("write clusters sheet row %d: %w", i+2, err)
		}
	}
	return nil
}

func (e *WorkbookExporter) writeShocks(f *excelize.File, res *analytics.Result) error {
	if _, err := f.NewSheet("Shocks"); err != nil {
		return fmt.Errorf("create shocks sheet: %w", err)
	}
	header := []interface{}{"Region", "Month", "Type", "Magnitude", "Severity", "Volatility"}
	if err := f.SetSheetRow("Shocks", "A1", &header); err != nil {
		return fmt.Errorf("write shocks sheet: %w", err)
	}
	for i, ev := range res.Shocks {
		row := []interface{}{
			ev.Region, formatMonth(ev.Month), string(ev.Type),
			cell(ev.Magnitude), string(ev.Severity), cell(ev.Volatility),
		}
		if err := f.SetSheetRow("Shocks", fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("write shocks sheet row %d: %w", i+2, err)
		}
	}
	return nil
}

// cell rounds a float for display; non-finite values become empty cells.
func cell(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return Round4(f)
}
