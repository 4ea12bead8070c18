package screenshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmtest/internal/browser/browsertest"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name        string
		description string
		expected    string
	}{
		{name: "spaces", description: "Admin Login Start", expected: "admin_login_start"},
		{name: "already a token", description: "admin_dashboard_loaded", expected: "admin_dashboard_loaded"},
		{name: "path separators", description: "../etc/passwd", expected: "etc_passwd"},
		{name: "punctuation collapses", description: "Error: element <a> not found!!", expected: "error_element_a_not_found"},
		{name: "hyphen kept", description: "log-out", expected: "log-out"},
		{name: "empty", description: "", expected: "screenshot"},
		{name: "only symbols", description: "*** ///", expected: "screenshot"},
		{name: "long description truncated", description: strings.Repeat("a", 300), expected: strings.Repeat("a", MaxTokenLength)},
		{name: "truncation drops trailing underscore", description: strings.Repeat("a", MaxTokenLength-1) + " b", expected: strings.Repeat("a", MaxTokenLength-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.description))
		})
	}
}

func TestTimestamp(t *testing.T) {
	ts := time.Date(2026, 10, 19, 8, 5, 3, 42_123_456, time.UTC)
	assert.Equal(t, "20261019_080503_042123", Timestamp(ts))
}

func TestCapture_WritesFileAndCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "screenshots")
	ts := time.Date(2026, 10, 19, 8, 5, 3, 1000, time.UTC)
	c := New(dir, WithClock(func() time.Time { return ts }))
	s := browsertest.NewSession(browsertest.NewSite())

	path, err := c.Capture(context.Background(), s, "Login Page Loaded")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "login_page_loaded_20261019_080503_000001.png"), path)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestCapture_SameTickIsUnique(t *testing.T) {
	dir := t.TempDir()
	frozen := time.Date(2026, 10, 19, 8, 5, 3, 0, time.UTC)
	c := New(dir, WithClock(func() time.Time { return frozen }))
	s := browsertest.NewSession(browsertest.NewSite())

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		path, err := c.Capture(context.Background(), s, "admin dropdown opened")
		require.NoError(t, err)
		assert.False(t, seen[path], "duplicate path %s", path)
		seen[path] = true
	}
	assert.Len(t, s.Screenshots, 3)
}

func TestCapture_RapidRealClock(t *testing.T) {
	c := New(t.TempDir())
	s := browsertest.NewSession(browsertest.NewSite())

	first, err := c.Capture(context.Background(), s, "rapid")
	require.NoError(t, err)
	second, err := c.Capture(context.Background(), s, "rapid")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCapture_ErrorPropagates(t *testing.T) {
	boom := errors.New("session gone")
	s := browsertest.NewSession(browsertest.NewSite())
	s.ScreenshotErr = boom

	_, err := New(t.TempDir()).Capture(context.Background(), s, "anything")
	assert.ErrorIs(t, err, boom)
}

func TestCapture_LongDescriptionReturns(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)
	s := browsertest.NewSession(browsertest.NewSite())

	type result struct {
		path string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		path, err := c.Capture(context.Background(), s, strings.Repeat("a", 300))
		done <- result{path, err}
	}()

	select {
	case r := <-done:
		require.NoError(t, r.err)
		assert.True(t, strings.HasPrefix(filepath.Base(r.path), strings.Repeat("a", MaxTokenLength)+"_"))
		assert.LessOrEqual(t, len(filepath.Base(r.path)), 255)
	case <-time.After(3 * time.Second):
		t.Fatal("Capture of a long description did not return")
	}
}

func TestCapture_StatErrorIsReturned(t *testing.T) {
	// A regular file where the directory should be makes Stat fail with ENOTDIR
	parent := t.TempDir()
	blocker := filepath.Join(parent, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	c := &Capturer{dir: filepath.Join(blocker, "shots"), now: time.Now}
	_, err := c.nextPath("Login Page Loaded")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check screenshot path")
}

func TestCapture_InterleavedNamesStayUnique(t *testing.T) {
	dir := t.TempDir()
	frozen := time.Date(2026, 10, 19, 8, 5, 3, 0, time.UTC)
	c := New(dir, WithClock(func() time.Time { return frozen }))
	s := browsertest.NewSession(browsertest.NewSite())

	var paths []string
	for _, desc := range []string{"menu", "logout", "menu"} {
		path, err := c.Capture(context.Background(), s, desc)
		require.NoError(t, err)
		paths = append(paths, path)
	}

	assert.Equal(t, filepath.Join(dir, "menu_20261019_080503_000000.png"), paths[0])
	assert.Equal(t, filepath.Join(dir, "logout_20261019_080503_000000.png"), paths[1])
	assert.Equal(t, filepath.Join(dir, "menu_20261019_080503_000000_1.png"), paths[2])
	assert.Equal(t, "menu_20261019_080503_000000", c.lastBase)
}
