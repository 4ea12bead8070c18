package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"pmtest/internal/domain"
	"pmtest/internal/scenario"
)

// Formatter formats and displays console output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to stdout
func NewFormatter() *Formatter {
	return &Formatter{out: color.Output}
}

// NewFormatterTo creates a Formatter writing to w
func NewFormatterTo(w io.Writer) *Formatter {
	if w == nil {
		w = os.Stdout
	}
	return &Formatter{out: w}
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
)

const (
	tableTop    = "┌─────────────────────────────────┬─────────────────────────────────────────┐"
	tableMiddle = "├─────────────────────────────────┼─────────────────────────────────────────┤"
	tableBottom = "└─────────────────────────────────┴─────────────────────────────────────────┘"
)

func (f *Formatter) row(label string, c *color.Color, value string) {
	fmt.Fprintf(f.out, "│ %-31s │ ", label)
	c.Fprintf(f.out, "%-39s", value)
	fmt.Fprintln(f.out, " │")
}

// PrintSummary displays the statistics of a run and its failed scenarios
func (f *Formatter) PrintSummary(results *domain.RunResults) {
	meta := results.Meta

	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                       E2E Test Execution Statistics                       ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	fmt.Fprintln(f.out, tableTop)
	rows := []struct {
		label string
		c     *color.Color
		value string
	}{
		{"Total Scenarios", white, fmt.Sprintf("%d", meta.Total)},
		{"Passed", green, fmt.Sprintf("%d", meta.Passed)},
		{"Failed", red, fmt.Sprintf("%d", meta.Failed)},
		{"Success Rate", white, fmt.Sprintf("%.1f%%", meta.SuccessRate)},
		{"Duration", white, fmt.Sprintf("%.2fs", meta.DurationSeconds)},
		{"Driver", white, meta.Driver},
		{"Base URL", white, meta.BaseURL},
		{"Report", white, meta.ReportPath},
		{"Timestamp", white, meta.Timestamp},
	}
	for i, r := range rows {
		if i > 0 {
			fmt.Fprintln(f.out, tableMiddle)
		}
		f.row(r.label, r.c, r.value)
	}
	fmt.Fprintln(f.out, tableBottom)

	fmt.Fprintln(f.out)
	if meta.Failed == 0 {
		green.Fprintln(f.out, "✓ All scenarios passed!")
		return
	}
	red.Fprintf(f.out, "✗ %d scenario(s) failed\n", meta.Failed)
	fmt.Fprintln(f.out)
	f.printFailedTree(results.Report().FailedCases())
}

// printFailedTree lists each failed case with the step that failed it
func (f *Formatter) printFailedTree(failed []domain.TestCaseRecord) {
	for i, c := range failed {
		last := i == len(failed)-1
		branch, pad := "├── ", "│   "
		if last {
			branch, pad = "└── ", "    "
		}
		yellow.Fprintf(f.out, "%s%s\n", branch, c.Name)
		if step, ok := c.LastFailure(); ok {
			red.Fprintf(f.out, "%s└── %s\n", pad, step.Description)
			if step.HasArtifact() {
				fmt.Fprintf(f.out, "%s    %s\n", pad, step.ArtifactPath)
			}
		}
	}
}

// PrintScenarioList prints the selected scenarios. Names in failed are marked
// with [F] in red (from the last run).
func (f *Formatter) PrintScenarioList(scenarios []scenario.Scenario, failed map[string]struct{}) {
	green.Fprintf(f.out, "Found %d scenario(s):\n\n", len(scenarios))

	for i, s := range scenarios {
		branch := "├── "
		if i == len(scenarios)-1 {
			branch = "└── "
		}

		failMarker := ""
		if _, ok := failed[s.Name]; ok {
			failMarker = " " + red.Sprint("[F]")
		}
		tags := ""
		if len(s.Tags) > 0 {
			tags = " " + yellow.Sprintf("[%s]", strings.Join(s.Tags, ", "))
		}
		fmt.Fprintf(f.out, "%s%s%s\n", cyan.Sprint(branch+s.Name), tags, failMarker)
	}
}

// PrintHistory prints archived runs, newest first
func (f *Formatter) PrintHistory(runs []domain.RunMeta) {
	if len(runs) == 0 {
		yellow.Fprintln(f.out, "No archived runs yet. Run with --archive after `pmtest migrate`.")
		return
	}

	cyan.Fprintf(f.out, "%-36s  %-20s  %-10s  %6s  %6s  %6s  %8s\n", "RUN", "TIMESTAMP", "DRIVER", "TOTAL", "PASS", "FAIL", "RATE")
	for _, r := range runs {
		rate := fmt.Sprintf("%.1f%%", r.SuccessRate)
		line := fmt.Sprintf("%-36s  %-20s  %-10s  %6d  %6d  %6d  %8s", r.RunID, r.Timestamp, r.Driver, r.Total, r.Passed, r.Failed, rate)
		if r.Failed > 0 {
			red.Fprintln(f.out, line)
		} else {
			green.Fprintln(f.out, line)
		}
	}
}
