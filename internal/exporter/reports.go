package exporter

import (
	"fmt"

	"salespulse/pkg/contracts/domain"
)

// Format selects which encodings ExportAll produces.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatBoth Format = "both"
)

// IsValid reports whether the format is one of the supported encodings.
func (f Format) IsValid() bool {
	return f == FormatCSV || f == FormatJSON || f == FormatBoth
}

// Report bundles every artifact of one pipeline run for export.
type Report struct {
	RunID       string
	Records     []domain.CanonicalRecord
	Quality     domain.QualityReport
	Overview    domain.OverviewMetrics
	Products    []domain.ProductStats
	Cycles      []domain.CycleStats
	Clients     []domain.ClientMetrics
	Baskets     []domain.Basket
	Pairs       []domain.BasketPair
	Predictions []domain.Prediction
}

// ReportExporter writes pipeline artifacts as CSV and JSON files
type ReportExporter struct {
	csvWriter  *CSVWriter
	jsonWriter *JSONWriter
}

// NewReportExporter creates a report exporter rooted at the output directory
func NewReportExporter(outDir string) *ReportExporter {
	return &ReportExporter{
		csvWriter:  NewCSVWriter(outDir),
		jsonWriter: NewJSONWriter(outDir),
	}
}

// ExportAll writes every artifact of the report in the requested format
func (e *ReportExporter) ExportAll(report Report, format Format) error {
	if format == FormatCSV || format == FormatBoth {
		if err := e.exportCSV(report); err != nil {
			return err
		}
	}
	if format == FormatJSON || format == FormatBoth {
		if err := e.exportJSON(report); err != nil {
			return err
		}
	}
	return nil
}

func (e *ReportExporter) exportCSV(report Report) error {
	if err := e.ExportRecordsCSV(report.Records, "records.csv"); err != nil {
		return fmt.Errorf("failed to export records: %w", err)
	}
	if err := e.ExportQualityCSV(report.Quality, "quality_report.csv"); err != nil {
		return fmt.Errorf("failed to export quality report: %w", err)
	}
	if err := e.ExportOverviewCSV(report.Overview, "overview.csv"); err != nil {
		return fmt.Errorf("failed to export overview: %w", err)
	}
	if err := e.ExportProductsCSV(report.Products, "products.csv"); err != nil {
		return fmt.Errorf("failed to export products: %w", err)
	}
	if err := e.ExportCyclesCSV(report.Cycles, "cycles.csv"); err != nil {
		return fmt.Errorf("failed to export cycles: %w", err)
	}
	if err := e.ExportClientsCSV(report.Clients, "clients.csv"); err != nil {
		return fmt.Errorf("failed to export clients: %w", err)
	}
	if err := e.ExportPairsCSV(report.Pairs, "basket_pairs.csv"); err != nil {
		return fmt.Errorf("failed to export basket pairs: %w", err)
	}
	if err := e.ExportPredictionsCSV(report.Predictions, "predictions.csv"); err != nil {
		return fmt.Errorf("failed to export predictions: %w", err)
	}
	return nil
}

func (e *ReportExporter) exportJSON(report Report) error {
	artifacts := []struct {
		name  string
		count int
		data  any
	}{
		{"records.json", len(report.Records), report.Records},
		{"quality_report.json", report.Quality.TotalRows, report.Quality},
		{"overview.json", 1, report.Overview},
		{"products.json", len(report.Products), report.Products},
		{"cycles.json", len(report.Cycles), report.Cycles},
		{"clients.json", len(report.Clients), report.Clients},
		{"baskets.json", len(report.Baskets), report.Baskets},
		{"basket_pairs.json", len(report.Pairs), report.Pairs},
		{"predictions.json", len(report.Predictions), report.Predictions},
	}

	for _, a := range artifacts {
		if err := e.jsonWriter.WriteJSON(a.name, report.RunID, a.count, a.data); err != nil {
			return fmt.Errorf("failed to export %s: %w", a.name, err)
		}
	}
	return nil
}

// ExportRecordsCSV streams the canonical records to a CSV file; record sets
// can run to hundreds of thousands of rows
func (e *ReportExporter) ExportRecordsCSV(records []domain.CanonicalRecord, outputPath string) error {
	headers := []string{
		"ManagementCode", "Sector", "CustomerName", "Points", "CycleLabel",
		"SKU", "ProductName", "TransactionType", "CaptureDate", "ItemQuantity",
		"PracticedValue", "SaleLineValue", "Channel", "DeliveryCategory",
	}

	stream, err := e.csvWriter.CreateStreamWriter(outputPath, headers)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.ManagementCode,
			r.Sector,
			r.CustomerName,
			formatQuantity(r.Points),
			r.CycleLabel,
			r.SKU,
			r.ProductName,
			string(r.TransactionType),
			r.CaptureDate,
			formatQuantity(r.ItemQuantity),
			formatFloat(r.PracticedValue),
			formatFloat(r.SaleLineValue),
			r.Channel,
			string(r.DeliveryCategory),
		}
		if err := stream.WriteRecord(row); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	return stream.Close()
}

// ExportQualityCSV writes the ingestion quality report as a single CSV row
func (e *ReportExporter) ExportQualityCSV(report domain.QualityReport, outputPath string) error {
	headers := []string{
		"RunID", "TotalRows", "ValidRows", "ErrorRows", "PercentValid",
		"ManagementInvalid", "CycleInvalid", "SKUInvalid", "NegativeValue", "MissingFields",
	}
	row := []string{
		report.RunID,
		formatInt(report.TotalRows),
		formatInt(report.ValidRows),
		formatInt(report.ErrorRows),
		formatPercent(report.PercentValid),
		formatInt(report.ErrorCounts.ManagementInvalid),
		formatInt(report.ErrorCounts.CycleInvalid),
		formatInt(report.ErrorCounts.SKUInvalid),
		formatInt(report.ErrorCounts.NegativeValue),
		formatInt(report.ErrorCounts.MissingFields),
	}
	return e.csvWriter.WriteSimpleCSV(outputPath, headers, [][]string{row})
}

// ExportOverviewCSV writes the headline metrics as a single CSV row
func (e *ReportExporter) ExportOverviewCSV(overview domain.OverviewMetrics, outputPath string) error {
	headers := []string{
		"TotalRevenue", "ItemsSold", "AverageTicketPerPurchase", "AverageTicketPerCustomer",
		"DistinctCustomers", "DistinctSKUs", "DistinctTransactions", "TotalPoints",
	}
	row := []string{
		formatFloat(overview.TotalRevenue),
		formatQuantity(overview.ItemsSold),
		formatFloat(overview.AverageTicketPerPurchase),
		formatFloat(overview.AverageTicketPerCustomer),
		formatInt(overview.DistinctCustomers),
		formatInt(overview.DistinctSKUs),
		formatInt(overview.DistinctTransactions),
		formatQuantity(overview.TotalPoints),
	}
	return e.csvWriter.WriteSimpleCSV(outputPath, headers, [][]string{row})
}

// ExportProductsCSV writes the product ranking
func (e *ReportExporter) ExportProductsCSV(products []domain.ProductStats, outputPath string) error {
	headers := []string{"SKU", "ProductName", "Quantity", "Revenue", "Transactions", "DistinctCustomers"}

	var rows [][]string
	for _, p := range products {
		rows = append(rows, []string{
			p.SKU,
			p.ProductName,
			formatQuantity(p.Quantity),
			formatFloat(p.Revenue),
			formatInt(p.Transactions),
			formatInt(p.DistinctCustomers),
		})
	}
	return e.csvWriter.WriteSimpleCSV(outputPath, headers, rows)
}

// ExportCyclesCSV writes the per-cycle rollup
func (e *ReportExporter) ExportCyclesCSV(cycles []domain.CycleStats, outputPath string) error {
	headers := []string{"CycleLabel", "Revenue", "Quantity", "Transactions", "Customers"}

	var rows [][]string
	for _, c := range cycles {
		rows = append(rows, []string{
			c.CycleLabel,
			formatFloat(c.Revenue),
			formatQuantity(c.Quantity),
			formatInt(c.Transactions),
			formatInt(c.Customers),
		})
	}
	return e.csvWriter.WriteSimpleCSV(outputPath, headers, rows)
}

// ExportClientsCSV writes the per-client aggregates with score and segment
func (e *ReportExporter) ExportClientsCSV(clients []domain.ClientMetrics, outputPath string) error {
	headers := []string{
		"CustomerName", "Transactions", "ActiveCycles", "ItemsPurchased", "Revenue",
		"DistinctSKUs", "TicketPerPurchase", "TicketPerCycle", "ShippedPercent",
		"PickupPercent", "DominantChannel", "Points", "Score", "Segment",
	}

	var rows [][]string
	for _, c := range clients {
		rows = append(rows, []string{
			c.CustomerName,
			formatInt(c.Transactions),
			formatInt(c.ActiveCycles),
			formatQuantity(c.ItemsPurchased),
			formatFloat(c.Revenue),
			formatInt(c.DistinctSKUs),
			formatFloat(c.TicketPerPurchase),
			formatFloat(c.TicketPerCycle),
			formatPercent(c.ShippedPercent),
			formatPercent(c.PickupPercent),
			c.DominantChannel,
			formatQuantity(c.Points),
			formatInt(c.Score),
			c.Segment.String(),
		})
	}
	return e.csvWriter.WriteSimpleCSV(outputPath, headers, rows)
}

// ExportPairsCSV writes the mined association pairs
func (e *ReportExporter) ExportPairsCSV(pairs []domain.BasketPair, outputPath string) error {
	headers := []string{"ItemA", "ItemB", "Occurrences", "Support", "Confidence", "Lift"}

	var rows [][]string
	for _, p := range pairs {
		rows = append(rows, []string{
			p.ItemA,
			p.ItemB,
			formatInt(p.Occurrences),
			fmt.Sprintf("%.4f", p.Support),
			fmt.Sprintf("%.4f", p.Confidence),
			fmt.Sprintf("%.4f", p.Lift),
		})
	}
	return e.csvWriter.WriteSimpleCSV(outputPath, headers, rows)
}

// ExportPredictionsCSV writes the per-SKU demand forecasts
func (e *ReportExporter) ExportPredictionsCSV(predictions []domain.Prediction, outputPath string) error {
	headers := []string{
		"SKU", "ProductName", "Cycles", "NextCycleForecast", "Trend",
		"Confidence", "RSquared", "MeanAbsoluteError",
	}

	var rows [][]string
	for _, p := range predictions {
		rows = append(rows, []string{
			p.SKU,
			p.ProductName,
			formatInt(len(p.History)),
			formatInt(p.NextCycleForecast),
			string(p.Trend),
			string(p.Confidence),
			fmt.Sprintf("%.4f", p.RSquared),
			formatPercent(p.MeanAbsoluteError),
		})
	}
	return e.csvWriter.WriteSimpleCSV(outputPath, headers, rows)
}
