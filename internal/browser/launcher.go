package browser

import (
	"fmt"

	"pmtest/internal/config"
)

// NewLauncher returns the backend named by cfg.Driver.
func NewLauncher(cfg config.BrowserConfig) (Launcher, error) {
	switch cfg.Driver {
	case "", DriverPlaywright:
		return NewPlaywrightLauncher(cfg), nil
	case DriverChromedp:
		return NewChromedpLauncher(cfg), nil
	}
	return nil, fmt.Errorf("unknown browser driver %q (want %s or %s)", cfg.Driver, DriverPlaywright, DriverChromedp)
}

// chromeArgs are the switches every backend passes to Chromium.
func chromeArgs(cfg config.BrowserConfig) []string {
	return []string{
		"--disable-web-security",
		"--allow-running-insecure-content",
		"--disable-features=PasswordLeakDetection",
		"--password-store=basic",
		fmt.Sprintf("--window-size=%d,%d", cfg.Width, cfg.Height),
	}
}
