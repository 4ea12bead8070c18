package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmtest/internal/config"
)

func newRunCmd(f *Flags) *cobra.Command {
	cmd := &cobra.Command{Use: "run", RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.Flags().StringVar(&f.Filter, "filter", "", "")
	cmd.Flags().StringVar(&f.Driver, "driver", config.DefaultDriver, "")
	cmd.Flags().BoolVar(&f.Headless, "headless", true, "")
	cmd.Flags().StringVar(&f.BaseURL, "base-url", config.DefaultBaseURL, "")
	cmd.Flags().StringVar(&f.LogLevel, "log-level", config.DefaultLogLevel, "")
	cmd.Flags().BoolVar(&f.FailFast, "fail-fast", false, "")
	return cmd
}

func TestApplyKeepsConfigWhenFlagsUnset(t *testing.T) {
	var f Flags
	cmd := newRunCmd(&f)
	require.NoError(t, cmd.ParseFlags([]string{"--filter", "*Login*"}))

	cfg := config.New()
	cfg.Browser.Driver = "chromedp"
	cfg.Browser.Headless = false
	cfg.BaseURL = "http://localhost:3000"
	cfg.Logger.Level = "debug"

	f.Apply(cmd, cfg)

	assert.Equal(t, "chromedp", cfg.Browser.Driver)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "*Login*", cfg.Flags.Filter)
}

func TestApplyOverridesWithExplicitFlags(t *testing.T) {
	var f Flags
	cmd := newRunCmd(&f)
	require.NoError(t, cmd.ParseFlags([]string{
		"--driver", "chromedp",
		"--headless=false",
		"--base-url", "http://staging.local",
		"--log-level", "warn",
		"--fail-fast",
	}))

	cfg := config.New()
	f.Apply(cmd, cfg)

	assert.Equal(t, "chromedp", cfg.Browser.Driver)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, "http://staging.local", cfg.BaseURL)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.True(t, cfg.Flags.FailFast)
}

func TestToConfigFlags(t *testing.T) {
	f := Flags{Filter: "x", Tag: "auth", SkipSlow: true, Archive: true, OpenFailures: true, Limit: 5}
	got := f.ToConfigFlags()
	want := config.Flags{Filter: "x", Tag: "auth", SkipSlow: true, Archive: true, OpenFailures: true, Limit: 5}
	assert.Equal(t, want, got)
}
