// Package exporter writes analysis results to CSV files and Excel
// workbooks.
//
// CSVWriter is the core writing primitive: headers, records, optional
// UTF-8 BOM for Excel compatibility. The result-specific writers build
// on it:
//
// ResultExporter: flattens one analysis result into per-section CSV
// files (global statistic, local indicators, flow clusters, shocks).
//
// WorkbookExporter: renders the same sections as sheets of a single
// Excel workbook.
//
// All numeric output uses four decimal places; non-finite values are
// written as empty cells.
package exporter
