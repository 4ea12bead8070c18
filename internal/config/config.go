package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"pmtest/internal/domain"
)

// Config holds all configuration for the suite
type Config struct {
	BaseURL     string
	Browser     BrowserConfig
	Timeouts    TimeoutConfig
	Paths       PathsConfig
	Credentials map[domain.Role]domain.Credentials
	Logger      LoggerConfig
	Database    DatabaseConfig

	// Command flags
	Flags Flags
}

// BrowserConfig selects and shapes the browser backend.
type BrowserConfig struct {
	Driver         string
	Headless       bool
	SlowMo         time.Duration
	Width          int
	Height         int
	ImplicitWait   time.Duration
	InstallDrivers bool
}

// TimeoutConfig bounds every wait the suite performs.
type TimeoutConfig struct {
	Wait     time.Duration
	Short    time.Duration
	Scenario time.Duration
}

// PathsConfig locates artifacts on disk.
type PathsConfig struct {
	Screenshots string
	Reports     string
	Storage     string
	ResultsFile string
}

// LoggerConfig configures zap.
type LoggerConfig struct {
	Level      string
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
}

// DatabaseConfig points at the optional MySQL run history.
type DatabaseConfig struct {
	DSN  string
	Name string
}

// Flags holds command-line flags
type Flags struct {
	Filter       string
	Tag          string
	SkipSlow     bool
	FailFast     bool
	Archive      bool
	OpenFailures bool
	Limit        int
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		BaseURL: DefaultBaseURL,
		Browser: BrowserConfig{
			Driver:       DefaultDriver,
			Headless:     true,
			Width:        DefaultWindowWidth,
			Height:       DefaultWindowHeight,
			ImplicitWait: DefaultImplicitWait,
		},
		Timeouts: TimeoutConfig{
			Wait:     DefaultWaitTimeout,
			Short:    DefaultShortTimeout,
			Scenario: DefaultScenarioTimeout,
		},
		Paths: PathsConfig{
			Screenshots: DefaultScreenshotsDir,
			Reports:     DefaultReportsDir,
			Storage:     DefaultStorageDir,
			ResultsFile: DefaultResultsFile,
		},
		Logger:   LoggerConfig{Level: DefaultLogLevel, MaxSize: 10, MaxBackups: 3, MaxAge: 7},
		Database: DatabaseConfig{Name: DefaultDatabaseName},
	}
	cfg.Credentials = make(map[domain.Role]domain.Credentials, len(DefaultCredentials))
	for role, c := range DefaultCredentials {
		cfg.Credentials[domain.Role(role)] = domain.Credentials{Email: c[0], Password: c[1]}
	}
	return cfg
}

// Load builds a Config from defaults, an optional config file, .env and PMTEST_*
// environment variables, in increasing order of precedence. An empty path looks
// for pmtest.yaml in the working directory and tolerates its absence.
func Load(path string) (*Config, error) {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, New())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("browser.driver", d.Browser.Driver)
	v.SetDefault("browser.headless", d.Browser.Headless)
	v.SetDefault("browser.slow_mo", d.Browser.SlowMo)
	v.SetDefault("browser.width", d.Browser.Width)
	v.SetDefault("browser.height", d.Browser.Height)
	v.SetDefault("browser.implicit_wait", d.Browser.ImplicitWait)
	v.SetDefault("browser.install_drivers", d.Browser.InstallDrivers)
	v.SetDefault("timeouts.wait", d.Timeouts.Wait)
	v.SetDefault("timeouts.short", d.Timeouts.Short)
	v.SetDefault("timeouts.scenario", d.Timeouts.Scenario)
	v.SetDefault("paths.screenshots", d.Paths.Screenshots)
	v.SetDefault("paths.reports", d.Paths.Reports)
	v.SetDefault("paths.storage", d.Paths.Storage)
	v.SetDefault("paths.results_file", d.Paths.ResultsFile)
	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.file", d.Logger.File)
	v.SetDefault("logger.max_size", d.Logger.MaxSize)
	v.SetDefault("logger.max_backups", d.Logger.MaxBackups)
	v.SetDefault("logger.max_age", d.Logger.MaxAge)
	v.SetDefault("database.dsn", d.Database.DSN)
	v.SetDefault("database.name", d.Database.Name)
	for role, c := range d.Credentials {
		v.SetDefault("credentials."+string(role)+".email", c.Email)
		v.SetDefault("credentials."+string(role)+".password", c.Password)
	}
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		BaseURL: strings.TrimRight(v.GetString("base_url"), "/"),
		Browser: BrowserConfig{
			Driver:         v.GetString("browser.driver"),
			Headless:       v.GetBool("browser.headless"),
			SlowMo:         v.GetDuration("browser.slow_mo"),
			Width:          v.GetInt("browser.width"),
			Height:         v.GetInt("browser.height"),
			ImplicitWait:   v.GetDuration("browser.implicit_wait"),
			InstallDrivers: v.GetBool("browser.install_drivers"),
		},
		Timeouts: TimeoutConfig{
			Wait:     v.GetDuration("timeouts.wait"),
			Short:    v.GetDuration("timeouts.short"),
			Scenario: v.GetDuration("timeouts.scenario"),
		},
		Paths: PathsConfig{
			Screenshots: v.GetString("paths.screenshots"),
			Reports:     v.GetString("paths.reports"),
			Storage:     v.GetString("paths.storage"),
			ResultsFile: v.GetString("paths.results_file"),
		},
		Logger: LoggerConfig{
			Level:      v.GetString("logger.level"),
			File:       v.GetString("logger.file"),
			MaxSize:    v.GetInt("logger.max_size"),
			MaxBackups: v.GetInt("logger.max_backups"),
			MaxAge:     v.GetInt("logger.max_age"),
		},
		Database: DatabaseConfig{
			DSN:  v.GetString("database.dsn"),
			Name: v.GetString("database.name"),
		},
		Credentials: make(map[domain.Role]domain.Credentials, len(domain.Roles)),
	}
	for _, role := range domain.Roles {
		cfg.Credentials[role] = domain.Credentials{
			Email:    v.GetString("credentials." + string(role) + ".email"),
			Password: v.GetString("credentials." + string(role) + ".password"),
		}
	}
	return cfg
}

// URL joins a path onto the base URL.
func (c *Config) URL(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// CredentialsFor returns the account for role, failing when it is not configured.
func (c *Config) CredentialsFor(role domain.Role) (domain.Credentials, error) {
	creds, ok := c.Credentials[role]
	if !ok || creds.Empty() {
		return domain.Credentials{}, fmt.Errorf("credentials for role %q not configured", role)
	}
	return creds, nil
}

// GetResultsPath returns the absolute path of the last-run JSON file.
func (c *Config) GetResultsPath() string {
	p := filepath.Join(c.Paths.Storage, c.Paths.ResultsFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// Initialize creates the artifact directories. It is idempotent and is the only
// place directories are created ahead of use.
func (p PathsConfig) Initialize() error {
	for _, dir := range []string{p.Screenshots, p.Reports, p.Storage} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}
