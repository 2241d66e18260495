// Package exporter provides CSV and JSON export functionality for the sales
// analysis pipeline.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing functionality with support for headers, streaming,
// and UTF-8 BOM for Excel compatibility.
//
// JSONWriter: JSON writing with a metadata envelope (generation timestamp,
// ingestion run id and payload count) around every exported artifact.
//
// ReportExporter: Writes the artifacts of one pipeline run: canonical
// records, quality report, overview, product ranking, cycle rollup, client
// metrics, basket pairs and demand predictions.
//
// Example usage:
//
//	reports := exporter.NewReportExporter("reports")
//	err := reports.ExportAll(exporter.Report{
//		RunID:   runID,
//		Records: records,
//		Quality: quality,
//	}, exporter.FormatBoth)
package exporter
