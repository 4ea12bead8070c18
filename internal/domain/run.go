package domain

import "time"

// RunReport is the read-only aggregate of every completed case in a run.
type RunReport struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Cases       []TestCaseRecord `json:"cases"`
}

// Total returns the number of completed cases.
func (r RunReport) Total() int {
	return len(r.Cases)
}

// Passed returns the number of PASS cases.
func (r RunReport) Passed() int {
	return r.count(OutcomePass)
}

// Failed returns the number of FAIL cases.
func (r RunReport) Failed() int {
	return r.count(OutcomeFail)
}

// SuccessRate returns passed/total as a percentage; an empty run has a rate of 0.
func (r RunReport) SuccessRate() float64 {
	total := r.Total()
	if total == 0 {
		return 0
	}
	return float64(r.Passed()) / float64(total) * 100
}

// FailedCases returns the FAIL cases in recording order.
func (r RunReport) FailedCases() []TestCaseRecord {
	var failed []TestCaseRecord
	for _, c := range r.Cases {
		if c.Outcome == OutcomeFail {
			failed = append(failed, c)
		}
	}
	return failed
}

func (r RunReport) count(o Outcome) int {
	n := 0
	for _, c := range r.Cases {
		if c.Outcome == o {
			n++
		}
	}
	return n
}

// RunMeta contains metadata about a suite run
type RunMeta struct {
	RunID           string  `json:"run_id"`
	BaseURL         string  `json:"base_url"`
	Driver          string  `json:"driver"`
	Total           int     `json:"total"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	SuccessRate     float64 `json:"success_rate"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
	ReportPath      string  `json:"report_path,omitempty"`
}

// RunResults is the persisted form of a run, read back by the report and failures commands.
type RunResults struct {
	Meta     RunMeta          `json:"meta"`
	Cases    []TestCaseRecord `json:"cases"`
	Resolved map[string]bool  `json:"resolved,omitempty"` // Failed cases marked as triaged in the viewer
}

// Report rebuilds the RunReport the results were saved from.
func (r *RunResults) Report() RunReport {
	generated, err := time.Parse(time.RFC3339, r.Meta.Timestamp)
	if err != nil {
		generated = time.Time{}
	}
	return RunReport{GeneratedAt: generated, Cases: r.Cases}
}

// NewRunResults builds the persisted form of a report.
func NewRunResults(runID string, report RunReport, baseURL, driver string, duration time.Duration) *RunResults {
	return &RunResults{
		Meta: RunMeta{
			RunID:           runID,
			BaseURL:         baseURL,
			Driver:          driver,
			Total:           report.Total(),
			Passed:          report.Passed(),
			Failed:          report.Failed(),
			SuccessRate:     report.SuccessRate(),
			DurationSeconds: duration.Seconds(),
			Timestamp:       report.GeneratedAt.Format(time.RFC3339),
		},
		Cases: report.Cases,
	}
}
