package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"salespulse/internal/normalize"
	"salespulse/pkg/contracts/domain"
)

// Ingestor normalizes raw spreadsheet rows into canonical records and
// accumulates a data-quality report. Rows are isolated from each other: a
// malformed row degrades to sentinel values and annotations, it never aborts
// the run.
type Ingestor struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// NewIngestor creates a new ingestor.
func NewIngestor(logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Normalize converts the ordered raw rows into canonical records and a
// quality report for the run.
func (in *Ingestor) Normalize(ctx context.Context, rows []domain.RawRow) ([]domain.CanonicalRecord, *domain.QualityReport) {
	in.logger.InfoContext(ctx, "normalizing raw rows", slog.Int("row_count", len(rows)))

	records := make([]domain.CanonicalRecord, 0, len(rows))
	report := &domain.QualityReport{RunID: uuid.NewString(), TotalRows: len(rows)}

	for _, row := range rows {
		record := in.normalizeRow(row, &report.ErrorCounts)
		if record.HasErrors {
			report.ErrorRows++
		} else {
			report.ValidRows++
		}
		records = append(records, record)
	}

	if report.TotalRows > 0 {
		report.PercentValid = 100 * float64(report.ValidRows) / float64(report.TotalRows)
	}
	report.Warnings = buildWarnings(report.ErrorCounts)

	in.logger.InfoContext(ctx, "normalization complete",
		slog.String("run_id", report.RunID),
		slog.Int("total_rows", report.TotalRows),
		slog.Int("error_rows", report.ErrorRows),
		slog.Float64("percent_valid", report.PercentValid))

	return records, report
}

// normalizeRow converts one raw row, annotating every data problem found.
func (in *Ingestor) normalizeRow(row domain.RawRow, counts *domain.ErrorCounts) domain.CanonicalRecord {
	record := domain.CanonicalRecord{SourceRowIndex: row.SourceRowIndex}
	addError := func(msg string) {
		record.HasErrors = true
		record.Errors = append(record.Errors, msg)
	}

	if err := in.validate.Struct(row); err != nil {
		addError(fmt.Sprintf("row failed schema validation: %v", err))
	}

	record.ManagementCode = normalize.ExtractManagementCode(row.ManagementCode)
	if record.ManagementCode == domain.UnknownValue {
		counts.ManagementInvalid++
		addError("invalid or missing management code")
	}

	record.Sector = normalize.CollapseWhitespace(row.Sector)
	if record.Sector == "" {
		record.Sector = domain.UnknownValue
	}

	record.CustomerName = normalize.CustomerDisplayName(row.CustomerName, row.CustomerCode)
	if record.CustomerName == domain.UnknownValue {
		counts.MissingFields++
		addError("missing customer name and customer code")
	}

	record.Points = in.parseNumericField(row.Points, "points", counts, addError)

	cycle := normalize.ParseCycle(row.CaptureCycle)
	record.CycleLabel = cycle.Label
	record.CycleIndex = cycle.Index
	if cycle.Index < 0 {
		counts.CycleInvalid++
		addError("invalid or missing capture cycle")
	}

	record.SKU = normalize.NormalizeSKU(row.ProductCode)
	if record.SKU == domain.InvalidSKU {
		counts.SKUInvalid++
		addError("invalid or missing product code")
	}

	record.ProductName = normalize.NormalizeProductName(row.ProductName)
	record.TransactionType = normalize.NormalizeTransactionType(row.TransactionType)
	record.CaptureDate = normalize.NormalizeCaptureDate(row.CaptureDate)
	record.ItemQuantity = in.parseNumericField(row.ItemQuantity, "item quantity", counts, addError)
	record.PracticedValue = in.parseNumericField(row.PracticedValue, "practiced value", counts, addError)

	// PracticedValue is already the line total; it is never multiplied by
	// quantity, and only sale rows carry revenue.
	if record.TransactionType == domain.TransactionSale {
		record.SaleLineValue = record.PracticedValue
	}

	record.Channel = normalize.NormalizeChannel(row.CaptureChannel)
	record.DeliveryCategory = normalize.CategorizeDelivery(row.DeliveryType)
	record.BasketKey = normalize.BasketKey(record.CustomerName, record.CycleLabel, record.CaptureDate)

	return record
}

// parseNumericField parses a numeric cell, counting negatives and coercing
// anything unusable to zero.
func (in *Ingestor) parseNumericField(raw, fieldName string, counts *domain.ErrorCounts, addError func(string)) float64 {
	if raw == "" {
		return 0
	}
	v, ok := normalize.ParseNumber(raw)
	if !ok {
		addError(fmt.Sprintf("invalid %s value %q", fieldName, raw))
		return 0
	}
	if v < 0 {
		counts.NegativeValue++
		addError(fmt.Sprintf("negative %s value %q", fieldName, raw))
	}
	return normalize.SanitizeNumber(v, 0)
}

// buildWarnings renders a human-readable warning per non-zero error category.
func buildWarnings(counts domain.ErrorCounts) []string {
	var warnings []string
	if counts.ManagementInvalid > 0 {
		warnings = append(warnings, fmt.Sprintf("%d rows with invalid management code", counts.ManagementInvalid))
	}
	if counts.CycleInvalid > 0 {
		warnings = append(warnings, fmt.Sprintf("%d rows with invalid capture cycle", counts.CycleInvalid))
	}
	if counts.SKUInvalid > 0 {
		warnings = append(warnings, fmt.Sprintf("%d rows with invalid product code", counts.SKUInvalid))
	}
	if counts.NegativeValue > 0 {
		warnings = append(warnings, fmt.Sprintf("%d negative numeric values coerced to zero", counts.NegativeValue))
	}
	if counts.MissingFields > 0 {
		warnings = append(warnings, fmt.Sprintf("%d rows missing customer identity", counts.MissingFields))
	}
	return warnings
}
