package execution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pmtest/internal/browser"
	"pmtest/internal/config"
	"pmtest/internal/domain"
	"pmtest/internal/recorder"
	"pmtest/internal/scenario"
	"pmtest/internal/screenshot"
)

// Runner executes a single scenario in its own browser session
type Runner struct {
	config   *config.Config
	launcher browser.Launcher
	recorder *recorder.Recorder
	capturer *screenshot.Capturer
	logger   *zap.Logger
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, launcher browser.Launcher, rec *recorder.Recorder, capturer *screenshot.Capturer, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		config:   cfg,
		launcher: launcher,
		recorder: rec,
		capturer: capturer,
		logger:   logger,
	}
}

// Run launches a fresh session, runs s under the scenario timeout and always
// closes the session before returning.
func (r *Runner) Run(ctx context.Context, s scenario.Scenario) Result {
	start := time.Now()
	if timeout := r.config.Timeouts.Scenario; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	session, err := r.launcher.Launch(ctx)
	if err != nil {
		err = r.recordLaunchFailure(s, err)
		return Result{Name: s.Name, Err: err, Duration: time.Since(start)}
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			r.logger.Warn("Failed to close browser session", zap.String("scenario", s.Name), zap.Error(cerr))
		}
	}()

	env := &scenario.Env{
		Session:  session,
		Recorder: r.recorder,
		Capturer: r.capturer,
		Config:   r.config,
		Logger:   r.logger,
	}
	err = scenario.Execute(ctx, env, s)

	return Result{
		Name:     s.Name,
		Passed:   err == nil,
		Err:      err,
		Duration: time.Since(start),
	}
}

// recordLaunchFailure still produces a FAIL case so the report lists every
// selected scenario.
func (r *Runner) recordLaunchFailure(s scenario.Scenario, launchErr error) error {
	launchErr = fmt.Errorf("launch %s browser: %w", r.launcher.Name(), launchErr)
	r.logger.Error("Browser launch failed", zap.String("scenario", s.Name), zap.Error(launchErr))

	if err := r.recorder.StartCase(s.Name); err != nil {
		return errors.Join(launchErr, err)
	}
	stepErr := r.recorder.Fail("Error: "+launchErr.Error(), "")
	_, endErr := r.recorder.EndCase(domain.OutcomeFail)
	return errors.Join(launchErr, stepErr, endErr)
}
