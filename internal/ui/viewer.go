package ui

import "pmtest/internal/domain"

// Viewer displays run results in an interactive TUI
type Viewer interface {
	View(results *domain.RunResults) error
}
