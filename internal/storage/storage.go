package storage

import (
	"context"

	"pmtest/internal/config"
	"pmtest/internal/domain"
)

// Storage persists and loads the last run (read by the report and failures commands).
type Storage interface {
	Save(results *domain.RunResults) error
	Load() (*domain.RunResults, error)
	// SaveOutput rewrites the stored run, keeping triage state such as resolved failures.
	SaveOutput(results *domain.RunResults) error
}

// History archives runs for later comparison.
type History interface {
	Archive(ctx context.Context, results *domain.RunResults) error
	Recent(ctx context.Context, limit int) ([]domain.RunMeta, error)
}

// JSONStorage stores results in a JSON file under the configured storage path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's results JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
