package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// JSONWriter provides JSON export functionality
type JSONWriter struct {
	outDir string
}

// NewJSONWriter creates a new JSON writer rooted at the given output directory
func NewJSONWriter(outDir string) *JSONWriter {
	return &JSONWriter{outDir: outDir}
}

// Envelope wraps an exported payload with run metadata so consumers can tie
// a file back to the ingestion run that produced it.
type Envelope struct {
	GeneratedAt time.Time `json:"generated_at"`
	RunID       string    `json:"run_id,omitempty"`
	Count       int       `json:"count"`
	Data        any       `json:"data"`
}

// WriteJSON writes the payload wrapped in a metadata envelope
func (w *JSONWriter) WriteJSON(filePath, runID string, count int, data any) error {
	fullPath := w.resolvePath(filePath)

	slog.Info("Writing JSON file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("count", count))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	envelope := Envelope{
		GeneratedAt: time.Now().UTC(),
		RunID:       runID,
		Count:       count,
		Data:        data,
	}

	encoded, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	if err := os.WriteFile(fullPath, encoded, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (w *JSONWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return filepath.Join(w.outDir, filePath)
}
