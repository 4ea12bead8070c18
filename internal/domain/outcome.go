package domain

import "fmt"

// Outcome is the state of a test case or the verdict of a single step.
type Outcome string

const (
	OutcomeRunning Outcome = "RUNNING"
	OutcomePass    Outcome = "PASS"
	OutcomeFail    Outcome = "FAIL"
)

// IsTerminal reports whether the outcome closes a test case.
func (o Outcome) IsTerminal() bool {
	return o == OutcomePass || o == OutcomeFail
}

// ParseOutcome converts a stored outcome string back to an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(s); o {
	case OutcomeRunning, OutcomePass, OutcomeFail:
		return o, nil
	}
	return "", fmt.Errorf("unknown outcome %q", s)
}
