package ingest

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// ReadCSV reads a sales CSV export into raw rows. The first non-empty row
// must be the header row; both comma and semicolon delimiters are accepted
// (Brazilian Excel exports use semicolons).
func ReadCSV(ctx context.Context, path string) ([]domain.RawRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewParsingError("failed to open CSV file", err).
			WithContext("path", path)
	}
	defer file.Close()

	rows, err := readAllRecords(file)
	if err != nil {
		return nil, errors.NewParsingError("failed to read CSV file", err).
			WithContext("path", path)
	}
	if len(rows) == 0 {
		return nil, errors.NewParsingError("CSV file is empty", nil).WithContext("path", path)
	}

	return extractRows(ctx, rows)
}

// readAllRecords decodes the file with delimiter sniffing and BOM stripping.
func readAllRecords(file *os.File) ([][]string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	text := strings.TrimPrefix(string(data), "\ufeff")

	delimiter := ','
	if firstLine, _, found := strings.Cut(text, "\n"); found || firstLine != "" {
		if strings.Count(firstLine, ";") > strings.Count(firstLine, ",") {
			delimiter = ';'
		}
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}
