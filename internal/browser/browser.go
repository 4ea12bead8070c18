// Package browser is the boundary between the suite and a real browser. Scenarios
// only see Session and Element; the playwright and chromedp backends live behind
// Launcher.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pmtest/internal/locator"
)

var (
	// ErrNotFound is returned when an expected element is absent from the page.
	ErrNotFound = errors.New("element not found")
	// ErrTimeout is returned when a waited-for condition did not hold in time.
	ErrTimeout = errors.New("timed out waiting for condition")
)

// Session is one browser tab driven by a scenario.
type Session interface {
	Navigate(ctx context.Context, url string) error
	// FindElement returns the first element matching the entry or an error wrapping ErrNotFound.
	FindElement(ctx context.Context, entry locator.Entry) (Element, error)
	// FindElements returns every match; an empty slice is not an error.
	FindElements(ctx context.Context, entry locator.Entry) ([]Element, error)
	CurrentURL(ctx context.Context) (string, error)
	Title(ctx context.Context) (string, error)
	PageSource(ctx context.Context) (string, error)
	// SaveScreenshot writes the current viewport as PNG to path.
	SaveScreenshot(ctx context.Context, path string) error
	Close() error
}

// Element is a handle to a located DOM element.
type Element interface {
	SendKeys(ctx context.Context, text string) error
	Clear(ctx context.Context) error
	Click(ctx context.Context) error
	Visible(ctx context.Context) (bool, error)
	Enabled(ctx context.Context) (bool, error)
	Text(ctx context.Context) (string, error)
}

// Launcher opens a fresh Session for every scenario.
type Launcher interface {
	Name() string
	Launch(ctx context.Context) (Session, error)
	// Close releases whatever the launcher shares between sessions.
	Close() error
}

// NotFound builds the lookup error for an entry.
func NotFound(entry locator.Entry) error {
	return fmt.Errorf("%w: %s", ErrNotFound, entry)
}

// TimeoutError describes which condition did not hold.
type TimeoutError struct {
	Condition string
	Timeout   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for %s", e.Timeout, e.Condition)
}

func (e *TimeoutError) Unwrap() error {
	return ErrTimeout
}
