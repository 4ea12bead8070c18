package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmtest/internal/domain"
)

var generated = time.Date(2026, 10, 19, 14, 30, 5, 0, time.UTC)

func finished(name string, outcome domain.Outcome, seconds float64, steps ...domain.StepRecord) domain.TestCaseRecord {
	start := generated.Add(-time.Minute)
	end := start.Add(time.Duration(seconds * float64(time.Second)))
	return domain.TestCaseRecord{
		Name:            name,
		StartedAt:       start,
		EndedAt:         &end,
		DurationSeconds: &seconds,
		Outcome:         outcome,
		Steps:           steps,
	}
}

func step(desc, artifact string, outcome domain.Outcome) domain.StepRecord {
	return domain.StepRecord{
		Description:  desc,
		ArtifactPath: artifact,
		Outcome:      outcome,
		Timestamp:    time.Date(2026, 10, 19, 8, 5, 9, 0, time.UTC),
	}
}

func render(t *testing.T, r *Renderer, report domain.RunReport) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, report))
	return buf.String()
}

func TestRender_Summary(t *testing.T) {
	report := domain.RunReport{
		GeneratedAt: generated,
		Cases: []domain.TestCaseRecord{
			finished("Admin Login Test", domain.OutcomePass, 3.456),
			finished("Petugas Login Test", domain.OutcomePass, 1),
			finished("Masyarakat Login Test", domain.OutcomeFail, 2),
		},
	}

	out := render(t, New("reports"), report)

	assert.Contains(t, out, "Generated: 2026-10-19 14:30:05")
	assert.Contains(t, out, `<div class="value">3</div><div>Total</div>`)
	assert.Contains(t, out, `<div class="value badge PASS">2</div>`)
	assert.Contains(t, out, `<div class="value badge FAIL">1</div>`)
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "PASS (3.46s)")
	assert.Less(t, strings.Index(out, "Admin Login Test"), strings.Index(out, "Masyarakat Login Test"))
}

func TestRender_EmptyRun(t *testing.T) {
	out := render(t, New("reports"), domain.RunReport{GeneratedAt: generated})
	assert.Contains(t, out, `<div class="value">0</div><div>Total</div>`)
	assert.Contains(t, out, "0.0%")
}

func TestRender_ZeroStepCase(t *testing.T) {
	report := domain.RunReport{
		GeneratedAt: generated,
		Cases:       []domain.TestCaseRecord{finished("Settings Page Test", domain.OutcomePass, 0.5)},
	}

	out := render(t, New("reports"), report)
	assert.Contains(t, out, "Settings Page Test")
	assert.Contains(t, out, "No steps recorded")
	assert.NotContains(t, out, "<img")
}

func TestRender_Steps(t *testing.T) {
	report := domain.RunReport{
		GeneratedAt: generated,
		Cases: []domain.TestCaseRecord{
			finished("Admin Login Test", domain.OutcomeFail, 1,
				step("Navigate to login page", "screenshots/login_page_20261019_080509_000001.png", domain.OutcomePass),
				step("Error: dashboard not reached", "", domain.OutcomeFail),
			),
		},
	}

	out := render(t, New("reports"), report)
	assert.Contains(t, out, `<img src="../screenshots/login_page_20261019_080509_000001.png"`)
	assert.Contains(t, out, "08:05:09")
	assert.Contains(t, out, "[FAIL]</span> Error: dashboard not reached")
	assert.Equal(t, 1, strings.Count(out, "<img"))
}

func TestRender_EscapesText(t *testing.T) {
	report := domain.RunReport{
		GeneratedAt: generated,
		Cases: []domain.TestCaseRecord{
			finished(`<script>alert("x")</script>`, domain.OutcomeFail, 1,
				step("Error: element <a href=x> & friends", "", domain.OutcomeFail),
			),
		},
	}

	out := render(t, New("reports"), report)
	assert.NotContains(t, out, "<script>alert")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "&lt;a href=x&gt; &amp; friends")
}

func TestRender_Deterministic(t *testing.T) {
	report := domain.RunReport{
		GeneratedAt: generated,
		Cases: []domain.TestCaseRecord{
			finished("Logout Functionality Test", domain.OutcomePass, 4.2,
				step("Logged out as admin", "screenshots/a.png", domain.OutcomePass)),
		},
	}
	r := New("reports")

	assert.Equal(t, render(t, r, report), render(t, r, report))
}

func TestRender_DoesNotMutateInput(t *testing.T) {
	c := finished("Admin Login Test", domain.OutcomePass, 1, step("s", "screenshots/s.png", domain.OutcomePass))
	report := domain.RunReport{GeneratedAt: generated, Cases: []domain.TestCaseRecord{c}}

	render(t, New("reports"), report)
	assert.Equal(t, "screenshots/s.png", report.Cases[0].Steps[0].ArtifactPath)
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	r := New(dir)

	path, err := r.WriteFile(domain.RunReport{GeneratedAt: generated})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "test_report_20261019_143005.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")
}
