package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func caseWith(name string, o Outcome) TestCaseRecord {
	return TestCaseRecord{Name: name, Outcome: o, StartedAt: time.Now()}
}

func TestRunReport_Summary(t *testing.T) {
	tests := []struct {
		name     string
		cases    []TestCaseRecord
		total    int
		passed   int
		failed   int
		rate     float64
		rateText string
	}{
		{
			name:     "empty run",
			total:    0,
			rate:     0,
			rateText: "0.0",
		},
		{
			name:     "two passes one failure",
			cases:    []TestCaseRecord{caseWith("a", OutcomePass), caseWith("b", OutcomePass), caseWith("c", OutcomeFail)},
			total:    3,
			passed:   2,
			failed:   1,
			rate:     200.0 / 3.0,
			rateText: "66.7",
		},
		{
			name:     "all failed",
			cases:    []TestCaseRecord{caseWith("a", OutcomeFail), caseWith("b", OutcomeFail)},
			total:    2,
			failed:   2,
			rateText: "0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := RunReport{Cases: tt.cases}
			assert.Equal(t, tt.total, r.Total())
			assert.Equal(t, tt.passed, r.Passed())
			assert.Equal(t, tt.failed, r.Failed())
			assert.InDelta(t, tt.rate, r.SuccessRate(), 1e-9)
			assert.Equal(t, tt.rateText, fmt.Sprintf("%.1f", r.SuccessRate()))
		})
	}
}

func TestTestCaseRecord_Clone(t *testing.T) {
	d := 1.5
	end := time.Now()
	orig := TestCaseRecord{
		Name:            "Admin Login Test",
		Outcome:         OutcomePass,
		EndedAt:         &end,
		DurationSeconds: &d,
		Steps:           []StepRecord{{Description: "one", Outcome: OutcomePass}},
	}

	cp := orig.Clone()
	cp.Steps[0].Description = "changed"
	*cp.DurationSeconds = 9

	assert.Equal(t, "one", orig.Steps[0].Description)
	assert.Equal(t, 1.5, orig.Duration())
}

func TestTestCaseRecord_LastFailure(t *testing.T) {
	c := TestCaseRecord{Steps: []StepRecord{
		{Description: "ok", Outcome: OutcomePass},
		{Description: "Error: boom", Outcome: OutcomeFail},
	}}
	step, ok := c.LastFailure()
	assert.True(t, ok)
	assert.Equal(t, "Error: boom", step.Description)

	_, ok = TestCaseRecord{}.LastFailure()
	assert.False(t, ok)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("petugas")
	assert.NoError(t, err)
	assert.Equal(t, RolePetugas, r)
	assert.Equal(t, "Petugas", r.Label())

	_, err = ParseRole("guest")
	assert.Error(t, err)
}
