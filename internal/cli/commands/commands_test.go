package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmtest/internal/browser"
	"pmtest/internal/browser/browsertest"
	"pmtest/internal/cli"
	"pmtest/internal/config"
	"pmtest/internal/domain"
	"pmtest/internal/locator"
	"pmtest/internal/storage"
	"pmtest/internal/ui"
)

type stubViewer struct {
	viewed *domain.RunResults
}

func (s *stubViewer) View(results *domain.RunResults) error {
	s.viewed = results
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.New()
	cfg.Paths.Screenshots = filepath.Join(dir, "screenshots")
	cfg.Paths.Reports = filepath.Join(dir, "reports")
	cfg.Paths.Storage = filepath.Join(dir, "storage")
	return cfg
}

func savedRun(t *testing.T, st storage.Storage) *domain.RunResults {
	t.Helper()
	start := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Second)
	d := 2.0
	report := domain.RunReport{
		GeneratedAt: end,
		Cases: []domain.TestCaseRecord{
			{Name: "Admin Login Test", StartedAt: start, EndedAt: &end, DurationSeconds: &d, Outcome: domain.OutcomePass},
			{
				Name: "Petugas Login Test", StartedAt: start, EndedAt: &end, DurationSeconds: &d, Outcome: domain.OutcomeFail,
				Steps: []domain.StepRecord{{Description: "Error: timed out", Outcome: domain.OutcomeFail, Timestamp: end}},
			},
		},
	}
	results := domain.NewRunResults("run-1", report, config.DefaultBaseURL, "playwright", 4*time.Second)
	require.NoError(t, st.Save(results))
	return results
}

func TestReportCommandRerendersLastRun(t *testing.T) {
	cfg := testConfig(t)
	st := storage.NewJSONStorage(cfg)
	savedRun(t, st)

	rc := NewReportCommand(cfg, st)
	require.NoError(t, rc.Execute(&cobra.Command{}, nil))

	loaded, err := st.Load()
	require.NoError(t, err)
	require.NotEmpty(t, loaded.Meta.ReportPath)
	assert.Equal(t, "test_report_20261019_090002.html", filepath.Base(loaded.Meta.ReportPath))

	html, err := os.ReadFile(loaded.Meta.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Petugas Login Test")
}

func TestReportCommandWithoutPreviousRun(t *testing.T) {
	cfg := testConfig(t)
	rc := NewReportCommand(cfg, storage.NewJSONStorage(cfg))

	err := rc.Execute(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no previous run")
}

func TestFailuresCommandOpensViewer(t *testing.T) {
	cfg := testConfig(t)
	st := storage.NewJSONStorage(cfg)
	savedRun(t, st)

	viewer := &stubViewer{}
	require.NoError(t, NewFailuresCommand(st, viewer).Execute(&cobra.Command{}, nil))
	require.NotNil(t, viewer.viewed)
	assert.Equal(t, "run-1", viewer.viewed.Meta.RunID)
}

func TestListCommandMarksLastFailures(t *testing.T) {
	cfg := testConfig(t)
	st := storage.NewJSONStorage(cfg)
	savedRun(t, st)
	cfg.Flags.Filter = "*Login Test"

	var out bytes.Buffer
	lc := NewListCommand(cfg, st, ui.NewFormatterTo(&out))
	require.NoError(t, lc.Execute(&cobra.Command{}, nil))

	for _, line := range strings.Split(out.String(), "\n") {
		if strings.Contains(line, "Petugas Login Test") {
			assert.Contains(t, line, "[F]")
		}
		if strings.Contains(line, "Admin Login Test") {
			assert.NotContains(t, line, "[F]")
		}
	}
	assert.Contains(t, out.String(), "Masyarakat Login Test")
}

func TestRunCommandWithNothingSelected(t *testing.T) {
	cfg := testConfig(t)
	cfg.Flags.Filter = "no such scenario"
	st := storage.NewJSONStorage(cfg)

	rc := NewRunCommand(cfg, st, ui.NewFormatterTo(&bytes.Buffer{}), nil, &stubViewer{})
	require.NoError(t, rc.Execute(&cobra.Command{}, nil))

	_, err := st.Load()
	assert.Error(t, err, "nothing ran so no results are written")
}

func TestRegisterLoadsConfigBeforeCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pmtest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: http://from-file.local/\nbrowser:\n  driver: chromedp\n"), 0644))

	cfg := config.New()
	var flags cli.Flags
	root := &cobra.Command{Use: "pmtest", SilenceUsage: true, SilenceErrors: true}
	NewCommands(cfg).Register(root, &flags, cfg)

	var seen config.Config
	probe := &cobra.Command{Use: "probe", RunE: func(*cobra.Command, []string) error {
		seen = *cfg
		return nil
	}}
	root.AddCommand(probe)
	root.SetArgs([]string{"probe", "--config", path, "--log-level", "debug"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "http://from-file.local", seen.BaseURL)
	assert.Equal(t, "chromedp", seen.Browser.Driver)
	assert.Equal(t, "debug", seen.Logger.Level)
}

func runWithSite(t *testing.T, cfg *config.Config, site *browsertest.Site) (*browsertest.Launcher, error) {
	t.Helper()
	launcher := &browsertest.Launcher{Site: site}
	rc := NewRunCommand(cfg, storage.NewJSONStorage(cfg), ui.NewFormatterTo(&bytes.Buffer{}), nil, &stubViewer{})
	rc.newLauncher = func(config.BrowserConfig) (browser.Launcher, error) { return launcher, nil }
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return launcher, rc.Execute(cmd, nil)
}

func TestRunCommandFailingScenarioExitsWithError(t *testing.T) {
	cfg := testConfig(t)
	cfg.Flags.Filter = "Login Page Accessibility"

	// Wrong title: the accessibility check fails on its first assertion
	site := browsertest.NewSite()
	site.Page("/auth/login", "Dashboard").With(locator.Auth.EmailInput, locator.Auth.PasswordInput)

	launcher, err := runWithSite(t, cfg, site)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 scenario(s) failed")
	assert.True(t, launcher.Closed)
	require.Len(t, launcher.Sessions, 1)
	assert.True(t, launcher.Sessions[0].Closed)

	loaded, err := storage.NewJSONStorage(cfg).Load()
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Meta.Total)
	assert.Equal(t, 1, loaded.Meta.Failed)
	assert.Equal(t, "fake", loaded.Meta.Driver)
	assert.NotEmpty(t, loaded.Meta.RunID)

	require.NotEmpty(t, loaded.Meta.ReportPath)
	html, err := os.ReadFile(loaded.Meta.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Login Page Accessibility")

	failure, ok := loaded.Cases[0].LastFailure()
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(failure.Description, "Error: "))
	assert.True(t, failure.HasArtifact())
}

func TestRunCommandPassingScenarioExitsCleanly(t *testing.T) {
	cfg := testConfig(t)
	cfg.Flags.Filter = "Login Page Accessibility"

	site := browsertest.NewSite()
	site.Page("/auth/login", "Login - Pengaduan Masyarakat").With(
		locator.Auth.EmailInput,
		locator.Auth.PasswordInput,
		locator.Auth.LoginButton,
		locator.Auth.RegisterLink,
	)

	_, err := runWithSite(t, cfg, site)
	require.NoError(t, err)

	loaded, err := storage.NewJSONStorage(cfg).Load()
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Meta.Passed)
	assert.Equal(t, 0, loaded.Meta.Failed)
}
