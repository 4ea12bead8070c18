package cli

import (
	"github.com/spf13/cobra"

	"pmtest/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	ConfigFile   string
	LogLevel     string
	Filter       string
	Tag          string
	SkipSlow     bool
	FailFast     bool
	Driver       string
	Headless     bool
	BaseURL      string
	Archive      bool
	OpenFailures bool
	Limit        int
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Filter:       f.Filter,
		Tag:          f.Tag,
		SkipSlow:     f.SkipSlow,
		FailFast:     f.FailFast,
		Archive:      f.Archive,
		OpenFailures: f.OpenFailures,
		Limit:        f.Limit,
	}
}

// Apply copies command flags into cfg. Settings that also live in the config
// file or environment are only overridden when the flag was given explicitly.
func (f *Flags) Apply(cmd *cobra.Command, cfg *config.Config) {
	cfg.Flags = f.ToConfigFlags()

	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}
	if changed("driver") {
		cfg.Browser.Driver = f.Driver
	}
	if changed("headless") {
		cfg.Browser.Headless = f.Headless
	}
	if changed("base-url") {
		cfg.BaseURL = f.BaseURL
	}
	if changed("log-level") {
		cfg.Logger.Level = f.LogLevel
	}
}
