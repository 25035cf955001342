package adapter

import (
	"encoding/json"
	"fmt"
	"os"

	m "github.com/dabecart/VVToolkit/internal/model"
)

// ResultStore persists and retrieves .vvt run reports.
type ResultStore interface {
	SaveReport(path m.Path, report *m.RunReport) error
	LoadReport(path m.Path) (*m.RunReport, error)
}

// FileResultStore stores run reports as JSON documents.
type FileResultStore struct{}

// NewFileResultStore constructs a FileResultStore.
func NewFileResultStore() *FileResultStore {
	return &FileResultStore{}
}

// SaveReport writes the report atomically.
func (s *FileResultStore) SaveReport(path m.Path, report *m.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode report: %w", err)
	}

	return writeFileAtomic(string(path), data)
}

// LoadReport reads a report file.
func (s *FileResultStore) LoadReport(path m.Path) (*m.RunReport, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("could not open result file: %w", err)
	}

	var report m.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("could not parse result file %s: %w", path, err)
	}

	if report.ID == "" {
		return nil, fmt.Errorf("result file %s has no run id", path)
	}

	return &report, nil
}
