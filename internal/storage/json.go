package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tsel/internal/domain"
)

// JSONStorage stores the selection report in a JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage returns a ReportStorage reading and writing path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Save writes the report, replacing the previous one.
func (s *JSONStorage) Save(report *domain.SelectionReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := writeFile(s.path, data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Load reads the last report.
func (s *JSONStorage) Load() (*domain.SelectionReport, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}
	var report domain.SelectionReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &report, nil
}
