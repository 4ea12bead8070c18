// Package report renders a RunReport as a self-contained HTML page.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"pmtest/internal/domain"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var page = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

// Renderer writes HTML reports into a directory.
type Renderer struct {
	dir string
	now func() time.Time
}

// New creates a Renderer for dir. The directory is created on the first WriteFile.
func New(dir string) *Renderer {
	return &Renderer{dir: dir, now: time.Now}
}

// Dir returns the report directory.
func (r *Renderer) Dir() string {
	return r.dir
}

type pageView struct {
	GeneratedAt string
	Total       int
	Passed      int
	Failed      int
	SuccessRate string
	Cases       []caseView
}

type caseView struct {
	Name     string
	Outcome  string
	Duration string
	Steps    []stepView
}

type stepView struct {
	Description string
	Outcome     string
	Time        string
	Image       string
}

// Render writes report to w.
func (r *Renderer) Render(w io.Writer, report domain.RunReport) error {
	if err := page.Execute(w, r.view(report)); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// WriteFile renders report to reports/test_report_<YYYYMMDD_HHMMSS>.html and returns the path.
func (r *Renderer) WriteFile(report domain.RunReport) (string, error) {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	stamp := report.GeneratedAt
	if stamp.IsZero() {
		stamp = r.now()
	}
	path := filepath.Join(r.dir, fmt.Sprintf("test_report_%s.html", stamp.Format("20060102_150405")))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}

	if err := r.Render(file, report); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close report file: %w", err)
	}
	return path, nil
}

func (r *Renderer) view(report domain.RunReport) pageView {
	v := pageView{
		GeneratedAt: report.GeneratedAt.Format("2006-01-02 15:04:05"),
		Total:       report.Total(),
		Passed:      report.Passed(),
		Failed:      report.Failed(),
		SuccessRate: fmt.Sprintf("%.1f", report.SuccessRate()),
		Cases:       make([]caseView, 0, len(report.Cases)),
	}

	for _, c := range report.Cases {
		cv := caseView{
			Name:     c.Name,
			Outcome:  string(c.Outcome),
			Duration: fmt.Sprintf("%.2f", c.Duration()),
			Steps:    make([]stepView, 0, len(c.Steps)),
		}
		for _, s := range c.Steps {
			cv.Steps = append(cv.Steps, stepView{
				Description: s.Description,
				Outcome:     string(s.Outcome),
				Time:        s.Timestamp.Format("15:04:05"),
				Image:       r.imageSource(s.ArtifactPath),
			})
		}
		v.Cases = append(v.Cases, cv)
	}
	return v
}

// imageSource makes an artifact path relative to the report directory.
func (r *Renderer) imageSource(artifact string) string {
	if artifact == "" {
		return ""
	}
	absArtifact, err := filepath.Abs(artifact)
	if err != nil {
		return filepath.ToSlash(artifact)
	}
	absDir, err := filepath.Abs(r.dir)
	if err != nil {
		return filepath.ToSlash(artifact)
	}
	rel, err := filepath.Rel(absDir, absArtifact)
	if err != nil {
		return filepath.ToSlash(artifact)
	}
	return filepath.ToSlash(rel)
}
