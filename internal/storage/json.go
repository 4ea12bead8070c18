package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pmtest/internal/domain"
)

var _ Storage = (*JSONStorage)(nil)

// Save writes a fresh run to the configured JSON file, dropping any previous triage state.
func (s *JSONStorage) Save(results *domain.RunResults) error {
	fresh := *results
	fresh.Resolved = nil
	return s.SaveOutput(&fresh)
}

// Load reads the last run from the configured JSON file.
func (s *JSONStorage) Load() (*domain.RunResults, error) {
	path := s.cfg.GetResultsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var results domain.RunResults
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	if results.Resolved == nil {
		results.Resolved = make(map[string]bool)
	}
	return &results, nil
}

// SaveOutput writes results as is to the configured JSON file.
func (s *JSONStorage) SaveOutput(results *domain.RunResults) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetResultsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
