package domain

import "time"

// StepRecord is one checkpoint inside a test case.
type StepRecord struct {
	Description  string    `json:"description"`
	ArtifactPath string    `json:"artifact_path,omitempty"` // Screenshot taken at this checkpoint
	Outcome      Outcome   `json:"outcome"`
	Timestamp    time.Time `json:"timestamp"`
}

// HasArtifact reports whether a screenshot is attached to the step.
func (s StepRecord) HasArtifact() bool {
	return s.ArtifactPath != ""
}

// TestCaseRecord is the recorded execution of one scenario.
type TestCaseRecord struct {
	Name            string       `json:"name"`
	StartedAt       time.Time    `json:"started_at"`
	EndedAt         *time.Time   `json:"ended_at,omitempty"`
	DurationSeconds *float64     `json:"duration_seconds,omitempty"`
	Outcome         Outcome      `json:"outcome"`
	Steps           []StepRecord `json:"steps"`
}

// Duration returns the finalized duration in seconds, or zero for a running case.
func (c TestCaseRecord) Duration() float64 {
	if c.DurationSeconds == nil {
		return 0
	}
	return *c.DurationSeconds
}

// Passed reports whether the case finished with PASS.
func (c TestCaseRecord) Passed() bool {
	return c.Outcome == OutcomePass
}

// LastFailure returns the last FAIL step of the case, if any.
func (c TestCaseRecord) LastFailure() (StepRecord, bool) {
	for i := len(c.Steps) - 1; i >= 0; i-- {
		if c.Steps[i].Outcome == OutcomeFail {
			return c.Steps[i], true
		}
	}
	return StepRecord{}, false
}

// Clone returns a deep copy so callers cannot mutate recorder state.
func (c TestCaseRecord) Clone() TestCaseRecord {
	out := c
	out.Steps = append([]StepRecord(nil), c.Steps...)
	if c.EndedAt != nil {
		t := *c.EndedAt
		out.EndedAt = &t
	}
	if c.DurationSeconds != nil {
		d := *c.DurationSeconds
		out.DurationSeconds = &d
	}
	return out
}
