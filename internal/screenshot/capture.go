// Package screenshot turns step descriptions into uniquely named PNG files
// captured from a browser session.
package screenshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"pmtest/internal/browser"
)

// Capturer writes screenshots into one directory.
type Capturer struct {
	dir string
	now func() time.Time

	mu       sync.Mutex
	lastBase string
	repeats  int
}

// Option configures a Capturer.
type Option func(*Capturer)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Capturer) { c.now = now }
}

// New creates a Capturer for dir. The directory is created on first capture.
func New(dir string, opts ...Option) *Capturer {
	c := &Capturer{
		dir: dir,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dir returns the target directory.
func (c *Capturer) Dir() string {
	return c.dir
}

// Capture saves the session's viewport and returns the file path. Errors from
// the session are returned as is; capture is never best-effort.
func (c *Capturer) Capture(ctx context.Context, s browser.Session, description string) (string, error) {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}
	path, err := c.nextPath(description)
	if err != nil {
		return "", err
	}
	if err := s.SaveScreenshot(ctx, path); err != nil {
		return "", fmt.Errorf("save screenshot %s: %w", path, err)
	}
	return path, nil
}

// nextPath builds <token>_<YYYYMMDD_HHMMSS_ffffff>.png, adding a counter when the
// same name was already handed out within the same microsecond.
func (c *Capturer) nextPath(description string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	base := Sanitize(description) + "_" + Timestamp(c.now())
	if base != c.lastBase {
		c.lastBase = base
		c.repeats = 0
	}
	for {
		name := base
		if c.repeats > 0 {
			name = fmt.Sprintf("%s_%d", base, c.repeats)
		}
		c.repeats++
		path := filepath.Join(c.dir, name+".png")
		_, err := os.Stat(path)
		if os.IsNotExist(err) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("check screenshot path %s: %w", path, err)
		}
	}
}

// Timestamp formats t with microsecond resolution as YYYYMMDD_HHMMSS_ffffff.
func Timestamp(t time.Time) string {
	return fmt.Sprintf("%s_%06d", t.Format("20060102_150405"), t.Nanosecond()/int(time.Microsecond))
}

// MaxTokenLength bounds the description part of a screenshot file name.
const MaxTokenLength = 100

// Sanitize lowercases description and reduces it to [a-z0-9-_], collapsing runs
// of replaced characters into a single underscore. The result is at most
// MaxTokenLength bytes.
func Sanitize(description string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(description) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	token := strings.Trim(b.String(), "_")
	if len(token) > MaxTokenLength {
		token = strings.TrimRight(token[:MaxTokenLength], "_")
	}
	if token == "" {
		return "screenshot"
	}
	return token
}
