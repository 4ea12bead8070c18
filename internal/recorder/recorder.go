// Package recorder accumulates the steps and outcome of each scenario. It follows
// a strict sequential protocol: one case at a time, finalized exactly once.
package recorder

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"pmtest/internal/domain"
)

var (
	// ErrProtocolViolation is wrapped by every misuse of the recorder.
	ErrProtocolViolation = errors.New("recorder protocol violation")
	// ErrCaseActive is returned by StartCase while another case is running.
	ErrCaseActive = fmt.Errorf("%w: a case is already running", ErrProtocolViolation)
	// ErrNoActiveCase is returned by AddStep and EndCase when no case is running.
	ErrNoActiveCase = fmt.Errorf("%w: no active case", ErrProtocolViolation)
)

// Recorder tracks the active case and the completed ones.
type Recorder struct {
	mu        sync.Mutex
	now       func() time.Time
	active    *domain.TestCaseRecord
	completed []domain.TestCaseRecord
}

// New creates an empty Recorder.
func New() *Recorder {
	return &Recorder{now: time.Now}
}

// NewWithClock creates a Recorder that reads time from now.
func NewWithClock(now func() time.Time) *Recorder {
	return &Recorder{now: now}
}

// StartCase opens a new RUNNING case.
func (r *Recorder) StartCase(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		return fmt.Errorf("start %q while %q is running: %w", name, r.active.Name, ErrCaseActive)
	}
	r.active = &domain.TestCaseRecord{
		Name:      name,
		StartedAt: r.now(),
		Outcome:   domain.OutcomeRunning,
		Steps:     []domain.StepRecord{},
	}
	return nil
}

// AddStep appends a step to the active case. artifactPath may be empty.
func (r *Recorder) AddStep(description, artifactPath string, outcome domain.Outcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == nil {
		return fmt.Errorf("add step %q: %w", description, ErrNoActiveCase)
	}
	if !outcome.IsTerminal() {
		return fmt.Errorf("%w: step outcome must be PASS or FAIL, got %q", ErrProtocolViolation, outcome)
	}
	r.active.Steps = append(r.active.Steps, domain.StepRecord{
		Description:  description,
		ArtifactPath: artifactPath,
		Outcome:      outcome,
		Timestamp:    r.now(),
	})
	return nil
}

// Pass appends a PASS step.
func (r *Recorder) Pass(description, artifactPath string) error {
	return r.AddStep(description, artifactPath, domain.OutcomePass)
}

// Fail appends a FAIL step.
func (r *Recorder) Fail(description, artifactPath string) error {
	return r.AddStep(description, artifactPath, domain.OutcomeFail)
}

// EndCase finalizes the active case with outcome and returns a copy of it.
func (r *Recorder) EndCase(outcome domain.Outcome) (domain.TestCaseRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == nil {
		return domain.TestCaseRecord{}, fmt.Errorf("end case: %w", ErrNoActiveCase)
	}
	if !outcome.IsTerminal() {
		return domain.TestCaseRecord{}, fmt.Errorf("%w: case outcome must be PASS or FAIL, got %q", ErrProtocolViolation, outcome)
	}

	end := r.now()
	duration := end.Sub(r.active.StartedAt).Seconds()
	r.active.Outcome = outcome
	r.active.EndedAt = &end
	r.active.DurationSeconds = &duration

	finished := *r.active
	r.completed = append(r.completed, finished)
	r.active = nil
	return finished.Clone(), nil
}

// Active returns the name of the running case, if any.
func (r *Recorder) Active() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return "", false
	}
	return r.active.Name, true
}

// Cases returns copies of the completed cases in recording order.
func (r *Recorder) Cases() []domain.TestCaseRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.TestCaseRecord, len(r.completed))
	for i, c := range r.completed {
		out[i] = c.Clone()
	}
	return out
}

// Report snapshots the completed cases into a RunReport stamped now.
func (r *Recorder) Report() domain.RunReport {
	cases := r.Cases()
	return domain.RunReport{GeneratedAt: r.now(), Cases: cases}
}
