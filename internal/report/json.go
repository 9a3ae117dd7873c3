// Package report serializes a finished run for human consumption.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/NordCoder/Coloscope/internal/domain/result"
)

// WriteJSON writes the result rows as indented JSON, creating parent
// directories as needed. Rows keep the order they were handed in.
func WriteJSON(path string, results []result.Result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	return nil
}
