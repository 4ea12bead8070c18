package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmtest/internal/domain"
)

func TestConfig_URL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		path     string
		expected string
	}{
		{
			name:     "plain join",
			baseURL:  "https://rpl.0xfzz.xyz",
			path:     "/auth/login",
			expected: "https://rpl.0xfzz.xyz/auth/login",
		},
		{
			name:     "trailing slash on base",
			baseURL:  "https://rpl.0xfzz.xyz/",
			path:     "/auth/register",
			expected: "https://rpl.0xfzz.xyz/auth/register",
		},
		{
			name:     "path without leading slash",
			baseURL:  "http://localhost:3000",
			path:     "dashboard",
			expected: "http://localhost:3000/dashboard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{BaseURL: tt.baseURL}
			assert.Equal(t, tt.expected, cfg.URL(tt.path))
		})
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultDriver, cfg.Browser.Driver)
	assert.Equal(t, DefaultWaitTimeout, cfg.Timeouts.Wait)
	assert.Len(t, cfg.Credentials, len(domain.Roles))

	creds, err := cfg.CredentialsFor(domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "admin@rpl.0xfzz.xyz", creds.Email)
}

func TestConfig_CredentialsFor_Missing(t *testing.T) {
	cfg := New()
	cfg.Credentials[domain.RolePetugas] = domain.Credentials{Email: "petugas@example.com"}

	_, err := cfg.CredentialsFor(domain.RolePetugas)
	assert.Error(t, err)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pmtest.yaml")
	content := []byte(`base_url: http://localhost:3000/
browser:
  driver: chromedp
  headless: false
timeouts:
  wait: 3s
credentials:
  admin:
    email: root@example.com
`)
	require.NoError(t, os.WriteFile(path, content, 0644))
	t.Setenv("PMTEST_TIMEOUTS_SHORT", "2s")
	t.Setenv("PMTEST_CREDENTIALS_ADMIN_PASSWORD", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, "chromedp", cfg.Browser.Driver)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 3*time.Second, cfg.Timeouts.Wait)
	assert.Equal(t, 2*time.Second, cfg.Timeouts.Short)
	assert.Equal(t, DefaultScenarioTimeout, cfg.Timeouts.Scenario)
	assert.Equal(t, domain.Credentials{Email: "root@example.com", Password: "secret"}, cfg.Credentials[domain.RoleAdmin])
	assert.Equal(t, "petugas@rpl.0xfzz.xyz", cfg.Credentials[domain.RolePetugas].Email)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPathsConfig_Initialize(t *testing.T) {
	dir := t.TempDir()
	paths := PathsConfig{
		Screenshots: filepath.Join(dir, "screenshots"),
		Reports:     filepath.Join(dir, "reports"),
		Storage:     filepath.Join(dir, "storage"),
	}

	require.NoError(t, paths.Initialize())
	require.NoError(t, paths.Initialize())

	for _, d := range []string{paths.Screenshots, paths.Reports, paths.Storage} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
