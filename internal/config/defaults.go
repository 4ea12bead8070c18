package config

import "time"

const (
	// DefaultBaseURL is the deployed portal the suite targets
	DefaultBaseURL = "https://rpl.0xfzz.xyz"
	// DefaultDriver is the browser backend used when none is configured
	DefaultDriver = "playwright"
	// DefaultScreenshotsDir is where step screenshots are written
	DefaultScreenshotsDir = "screenshots"
	// DefaultReportsDir is where HTML reports are written
	DefaultReportsDir = "reports"
	// DefaultStorageDir holds the last-run JSON file
	DefaultStorageDir = "storage"
	// DefaultResultsFile is the last-run JSON file name
	DefaultResultsFile = "last-run.json"
	// DefaultWindowWidth and DefaultWindowHeight size the browser viewport
	DefaultWindowWidth  = 1920
	DefaultWindowHeight = 1080
	// DefaultWaitTimeout bounds ordinary page waits
	DefaultWaitTimeout = 10 * time.Second
	// DefaultShortTimeout bounds waits for inline error messages
	DefaultShortTimeout = 5 * time.Second
	// DefaultScenarioTimeout bounds a whole scenario
	DefaultScenarioTimeout = 3 * time.Minute
	// DefaultImplicitWait is how long element lookups keep retrying
	DefaultImplicitWait = 10 * time.Second
	// DefaultLogLevel is the zap level name
	DefaultLogLevel = "info"
	// DefaultDatabaseName is the MySQL schema used for run history
	DefaultDatabaseName = "pmtest_history"
	// DefaultConfigName is the config file looked up in the working directory
	DefaultConfigName = "pmtest"
	// EnvPrefix prefixes every environment override
	EnvPrefix = "PMTEST"
)

// DefaultCredentials are the demo accounts of the public deployment.
var DefaultCredentials = map[string][2]string{
	"admin":      {"admin@rpl.0xfzz.xyz", "12345678"},
	"petugas":    {"petugas@rpl.0xfzz.xyz", "12345678"},
	"masyarakat": {"rakyat@rakyat.com", "rakyat@rakyat.com"},
}
