package sketch

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
)

// SaveBackup writes the strokes as gzip-compressed JSON to path.
//
// The format is the stroke wire format the drawing surface already speaks, so
// backups stay readable by other tooling after decompression.
func SaveBackup(path string, strokes []Stroke) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}

	zw := gzip.NewWriter(f)
	if err := json.NewEncoder(zw).Encode(strokes); err != nil {
		zw.Close()
		f.Close()
		return fmt.Errorf("failed to encode strokes: %w", err)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finish compression: %w", err)
	}
	// Close errors matter here: a backup that did not reach disk must not
	// report success.
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to flush backup file: %w", err)
	}
	return nil
}

// LoadBackup reads strokes previously written by SaveBackup.
func LoadBackup(path string) ([]Stroke, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup header: %w", err)
	}
	defer zr.Close()

	var strokes []Stroke
	if err := json.NewDecoder(zr).Decode(&strokes); err != nil {
		return nil, fmt.Errorf("failed to decode strokes: %w", err)
	}
	return strokes, nil
}
