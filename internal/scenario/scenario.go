// Package scenario holds the scripted user flows run against the portal and the
// guard that records each one as a test case.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pmtest/internal/domain"
)

// TagSlow marks scenarios that log in or walk through navigation.
const TagSlow = "slow"

// Func is the body of a scenario.
type Func func(ctx context.Context, env *Env) error

// Scenario is one named user flow.
type Scenario struct {
	Name string
	// Slug prefixes the screenshot taken when the scenario fails.
	Slug string
	Tags []string
	Run  Func
}

// HasTag reports whether the scenario carries tag.
func (s Scenario) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Slow reports whether the scenario is tagged slow.
func (s Scenario) Slow() bool {
	return s.HasTag(TagSlow)
}

// AssertionError is a page-state expectation that did not hold.
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string {
	return "assertion failed: " + e.Message
}

// Assertf builds an AssertionError.
func Assertf(format string, args ...any) error {
	return &AssertionError{Message: fmt.Sprintf(format, args...)}
}

// failureCaptureTimeout bounds the error screenshot, which may run after the
// scenario's own context expired.
const failureCaptureTimeout = 10 * time.Second

// Execute runs s as one recorded case. On success the case ends PASS. On any
// error the page is captured as <slug>_error, an "Error: ..." FAIL step is added,
// the case ends FAIL and the original error is returned joined with anything that
// went wrong while recording the failure.
func Execute(ctx context.Context, env *Env, s Scenario) error {
	if err := env.Recorder.StartCase(s.Name); err != nil {
		return err
	}
	log := env.log().With(zap.String("scenario", s.Name))
	log.Info("Scenario started")

	runErr := s.Run(ctx, env)
	if runErr == nil {
		rec, err := env.Recorder.EndCase(domain.OutcomePass)
		if err != nil {
			return err
		}
		log.Info("Scenario passed", zap.Float64("duration", rec.Duration()))
		return nil
	}

	log.Warn("Scenario failed", zap.Error(runErr))

	captureCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), failureCaptureTimeout)
	defer cancel()

	path, captureErr := env.Capturer.Capture(captureCtx, env.Session, s.Slug+"_error")
	if captureErr != nil {
		log.Error("Failed to capture failure screenshot", zap.Error(captureErr))
		path = ""
	}
	stepErr := env.Recorder.Fail("Error: "+runErr.Error(), path)
	_, endErr := env.Recorder.EndCase(domain.OutcomeFail)

	return errors.Join(runErr, captureErr, stepErr, endErr)
}
