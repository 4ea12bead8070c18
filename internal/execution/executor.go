package execution

import (
	"context"
	"time"

	"pmtest/internal/scenario"
)

// Executor runs a selection of scenarios and returns their results
type Executor interface {
	Execute(ctx context.Context, scenarios []scenario.Scenario) ([]Result, time.Duration, error)
}

// Progress receives pass/fail counts as scenarios finish
type Progress interface {
	Update(passed, failed int)
	Finish()
}

// Result is the outcome of one scenario run
type Result struct {
	Name     string
	Passed   bool
	Err      error
	Duration time.Duration
}
