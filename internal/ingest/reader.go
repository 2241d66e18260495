package ingest

import (
	"context"
	"path/filepath"
	"strings"

	"salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// Column keys used by the readers when mapping header cells to RawRow fields.
const (
	colManagement  = "management"
	colSector      = "sector"
	colCustomerID  = "customer_code"
	colCustomer    = "customer_name"
	colPoints      = "points"
	colCycle       = "cycle"
	colProductCode = "product_code"
	colProduct     = "product_name"
	colType        = "transaction_type"
	colDate        = "capture_date"
	colQuantity    = "quantity"
	colValue       = "value"
	colChannel     = "channel"
	colDelivery    = "delivery"
)

// ReadFile reads a tabular sales export (.xlsx or .csv) into raw rows. The
// file as a whole either reads completely or fails with a parsing error;
// per-row data problems are left for the Ingestor to annotate.
func ReadFile(ctx context.Context, path string) ([]domain.RawRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(ctx, path)
	case ".csv":
		return ReadCSV(ctx, path)
	default:
		return nil, errors.NewParsingError("unsupported input format", nil).
			WithContext("path", path)
	}
}

// mapColumns maps header cells to RawRow fields by keyword. Header text in
// the source exports is Portuguese and inconsistently accented, so matching
// is lower-cased substring based.
func mapColumns(headers []string) map[string]int {
	columnMap := make(map[string]int)

	for j, header := range headers {
		h := strings.ToLower(strings.TrimSpace(header))
		if h == "" {
			continue
		}

		switch {
		case strings.Contains(h, "gerência") || strings.Contains(h, "gerencia"):
			columnMap[colManagement] = j
		case strings.Contains(h, "setor"):
			columnMap[colSector] = j
		case strings.Contains(h, "cliente") && hasCodeMarker(h):
			columnMap[colCustomerID] = j
		case strings.Contains(h, "cliente"):
			columnMap[colCustomer] = j
		case strings.Contains(h, "ponto"):
			columnMap[colPoints] = j
		case strings.Contains(h, "ciclo"):
			columnMap[colCycle] = j
		case (strings.Contains(h, "produto") || strings.Contains(h, "material")) && hasCodeMarker(h):
			columnMap[colProductCode] = j
		case strings.Contains(h, "produto") || strings.Contains(h, "descrição") || strings.Contains(h, "descricao"):
			columnMap[colProduct] = j
		case strings.Contains(h, "entrega"):
			columnMap[colDelivery] = j
		case strings.Contains(h, "tipo"):
			columnMap[colType] = j
		case strings.Contains(h, "data"):
			columnMap[colDate] = j
		case strings.Contains(h, "quantidade") || strings.Contains(h, "qtd"):
			columnMap[colQuantity] = j
		case strings.Contains(h, "valor"):
			columnMap[colValue] = j
		case strings.Contains(h, "canal"):
			columnMap[colChannel] = j
		}
	}

	return columnMap
}

func hasCodeMarker(h string) bool {
	return strings.Contains(h, "cód") || strings.Contains(h, "cod")
}

// isHeaderRow reports whether the row looks like the column header row of a
// sales export.
func isHeaderRow(row []string) bool {
	text := strings.ToLower(strings.Join(row, " "))
	return strings.Contains(text, "cliente") && strings.Contains(text, "ciclo") &&
		(strings.Contains(text, "produto") || strings.Contains(text, "material"))
}

// rowToRaw converts one data row into a RawRow using the column map. Cells
// keep their textual form; normalization happens in the Ingestor.
func rowToRaw(row []string, columnMap map[string]int, sourceIndex int) domain.RawRow {
	cell := func(key string) string {
		if idx, ok := columnMap[key]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	return domain.RawRow{
		ManagementCode:  cell(colManagement),
		Sector:          cell(colSector),
		CustomerCode:    cell(colCustomerID),
		CustomerName:    cell(colCustomer),
		Points:          cell(colPoints),
		CaptureCycle:    cell(colCycle),
		ProductCode:     cell(colProductCode),
		ProductName:     cell(colProduct),
		TransactionType: cell(colType),
		CaptureDate:     cell(colDate),
		ItemQuantity:    cell(colQuantity),
		PracticedValue:  cell(colValue),
		CaptureChannel:  cell(colChannel),
		DeliveryType:    cell(colDelivery),
		SourceRowIndex:  sourceIndex,
	}
}

// isEmptyRow reports whether every mapped cell of the row is blank.
func isEmptyRow(row []string, columnMap map[string]int) bool {
	for _, idx := range columnMap {
		if idx < len(row) && strings.TrimSpace(row[idx]) != "" {
			return false
		}
	}
	return true
}
