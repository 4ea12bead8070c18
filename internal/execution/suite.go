package execution

import (
	"context"
	"time"

	"go.uber.org/zap"

	"pmtest/internal/scenario"
)

// Suite runs scenarios one after another. Scenarios share the recorder and
// never overlap.
type Suite struct {
	runner   *Runner
	failFast bool
	progress Progress
	logger   *zap.Logger
}

// NewSuite creates a new Suite
func NewSuite(runner *Runner, failFast bool) *Suite {
	return &Suite{runner: runner, failFast: failFast, logger: runner.logger}
}

// SetProgress sets the progress reporter for the suite
func (su *Suite) SetProgress(progress Progress) {
	su.progress = progress
}

var _ Executor = (*Suite)(nil)

// Execute runs scenarios in order. With fail-fast it stops after the first
// failure. A cancelled ctx stops the run between scenarios and is returned.
func (su *Suite) Execute(ctx context.Context, scenarios []scenario.Scenario) ([]Result, time.Duration, error) {
	startTime := time.Now()
	if len(scenarios) == 0 {
		return nil, 0, nil
	}

	var results []Result
	var passed, failed int
	for _, s := range scenarios {
		if ctx.Err() != nil {
			break
		}

		result := su.runner.Run(ctx, s)
		results = append(results, result)
		if result.Passed {
			passed++
		} else {
			failed++
		}
		if su.progress != nil {
			su.progress.Update(passed, failed)
		}

		if !result.Passed && su.failFast {
			su.logger.Info("Stopping after first failure", zap.String("scenario", s.Name))
			break
		}
	}

	if su.progress != nil {
		su.progress.Finish()
	}
	return results, time.Since(startTime), ctx.Err()
}
