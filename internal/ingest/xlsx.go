package ingest

import (
	"context"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// Sheet names commonly used by the sales exports.
var candidateSheets = []string{"Vendas", "vendas", "Base", "Dados", "Sheet1", "Planilha1"}

// ReadXLSX reads a sales workbook and extracts the raw rows. The sheet is
// located by candidate name first, then by scanning every sheet for a header
// row with the expected columns.
func ReadXLSX(ctx context.Context, path string) ([]domain.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	rows, sheetName, err := findDataSheet(f)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "found sales data sheet",
		slog.String("sheet_name", sheetName),
		slog.Int("total_rows", len(rows)))

	return extractRows(ctx, rows)
}

// findDataSheet locates the sheet holding the sales table.
func findDataSheet(f *excelize.File) ([][]string, string, error) {
	for _, name := range candidateSheets {
		if rows, err := f.GetRows(name); err == nil && len(rows) > 1 {
			for _, row := range rows {
				if isHeaderRow(row) {
					return rows, name, nil
				}
			}
		}
	}

	// Fall back to scanning every sheet for the header row.
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) <= 1 {
			continue
		}
		for _, row := range rows {
			if isHeaderRow(row) {
				return rows, name, nil
			}
		}
	}

	return nil, "", errors.NewParsingError("could not find a sales data sheet in workbook", nil)
}

// extractRows locates the header row, maps its columns and converts every
// following non-empty row to a RawRow.
func extractRows(ctx context.Context, rows [][]string) ([]domain.RawRow, error) {
	headerRow := -1
	var columnMap map[string]int

	for i, row := range rows {
		if isHeaderRow(row) {
			headerRow = i
			columnMap = mapColumns(row)
			break
		}
	}

	if headerRow == -1 {
		return nil, errors.NewParsingError("could not find header row in sales data", nil)
	}

	required := []string{colCustomer, colCycle, colProductCode}
	for _, col := range required {
		if _, exists := columnMap[col]; !exists {
			return nil, errors.NewParsingError("missing required column", nil).
				WithContext("column", col)
		}
	}

	raws := make([]domain.RawRow, 0, len(rows)-headerRow-1)
	for i := headerRow + 1; i < len(rows); i++ {
		if isEmptyRow(rows[i], columnMap) {
			continue
		}
		// Source index is the 1-based spreadsheet row number.
		raws = append(raws, rowToRaw(rows[i], columnMap, i+1))
	}

	slog.DebugContext(ctx, "extracted raw rows",
		slog.Int("header_row", headerRow),
		slog.Int("raw_rows", len(raws)))

	return raws, nil
}
