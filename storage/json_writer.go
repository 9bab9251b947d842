package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"zone-scraper/models"
)

// RunStampLayout formats the run timestamp embedded in output file names.
const RunStampLayout = "20060102_150405"

// JSONWriter writes a run's raw records and summary as two JSON files sharing
// the same run stamp, e.g. data/torrevieja_20261019_120000.json and
// data/torrevieja_analysis_20261019_120000.json.
type JSONWriter struct {
	dir   string
	city  string
	stamp string
}

// NewJSONWriter creates the output directory if needed.
func NewJSONWriter(dir, city string, runAt time.Time) (*JSONWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create output dir: %w", err)
	}
	return &JSONWriter{dir: dir, city: city, stamp: runAt.Format(RunStampLayout)}, nil
}

// RawPath is where WriteRaw puts the records.
func (w *JSONWriter) RawPath() string {
	return filepath.Join(w.dir, fmt.Sprintf("%s_%s.json", w.city, w.stamp))
}

// SummaryPath is where WriteSummary puts the summary.
func (w *JSONWriter) SummaryPath() string {
	return filepath.Join(w.dir, fmt.Sprintf("%s_analysis_%s.json", w.city, w.stamp))
}

// WriteRaw writes records as a JSON array. An empty run writes [].
func (w *JSONWriter) WriteRaw(records []*models.PropertyRecord) error {
	if records == nil {
		records = []*models.PropertyRecord{}
	}
	return writeJSON(w.RawPath(), records)
}

func (w *JSONWriter) WriteSummary(summary *models.AggregateSummary) error {
	if summary == nil {
		return fmt.Errorf("storage: nil summary")
	}
	return writeJSON(w.SummaryPath(), summary)
}

// ReadRaw loads a file previously produced by WriteRaw.
func ReadRaw(path string) ([]*models.PropertyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %q: %w", path, err)
	}
	defer f.Close()

	var records []*models.PropertyRecord
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("storage: decode %q: %w", path, err)
	}
	return records, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("storage: create file %q: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = f.Close()
		return fmt.Errorf("storage: encode %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("storage: close %q: %w", path, err)
	}
	return nil
}
