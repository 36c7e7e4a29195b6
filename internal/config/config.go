package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "sitescan"

	// DriverMySQL selects a MySQL server as the store.
	DriverMySQL = "mysql"

	// DriverSQLite selects a local SQLite file as the store.
	DriverSQLite = "sqlite"

	// DefaultDriver is the store used when none is configured.
	DefaultDriver = DriverMySQL

	// DefaultDBAddress is the MySQL server address in "host:port" format.
	DefaultDBAddress = "localhost:3306"

	// DefaultDBName is the database created and used by the schema initializer.
	DefaultDBName = "scraped_data"

	// DefaultSitesFile is the newline-delimited list of URLs to scrape.
	DefaultSitesFile = "files/sites.txt"

	// DefaultTimeout bounds a single HTTP request, including the second
	// request issued by technology detection.
	DefaultTimeout = 60 * time.Second

	// DefaultUserAgent identifies sitescan in HTTP requests.
	DefaultUserAgent = "Mozilla/5.0 (compatible; sitescan/1.0; +https://github.com/nao1215/sitescan)"

	// DefaultMaxBodySize limits the response body read from each site.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB
)

// Report formats accepted by Config.ReportFormat.
const (
	// ReportNone disables the run summary. Only per-site status lines are printed.
	ReportNone = ""

	// ReportText writes a plain text run summary.
	ReportText = "text"

	// ReportMarkdown writes a GitHub Flavored Markdown run summary.
	ReportMarkdown = "markdown"

	// ReportJSON writes the run summary as JSON.
	ReportJSON = "json"
)

// Config holds all configuration options for sitescan.
// It is populated from defaults, the config file, the environment and CLI
// flags, and passed down explicitly rather than kept in global state.
type Config struct {
	// Driver selects the database engine: DriverMySQL or DriverSQLite.
	Driver string

	// DBAddress is the MySQL server address in "host:port" format.
	DBAddress string

	// DBName is the database (schema) name on the MySQL server.
	DBName string

	// DBDir is the directory holding the SQLite database file.
	// Only used when Driver is DriverSQLite.
	DBDir string

	// DBUser is the database user name.
	DBUser string

	// DBPassword is the database password.
	// It is never logged; the secure log handler masks it.
	DBPassword string

	// SitesFile is the path of the newline-delimited URL list.
	// "-" reads the list from standard input.
	SitesFile string

	// Timeout is the timeout of each HTTP request.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum number of response body bytes to read.
	// Set to 0 to use DefaultMaxBodySize.
	MaxBodySize int64

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, .sitescan is searched in the current and home directories.
	ConfigFilePath string

	// ReportFormat selects the optional run summary: ReportNone,
	// ReportText, ReportMarkdown or ReportJSON.
	ReportFormat string

	// ReportFile is where the run summary is written.
	// Empty means standard output.
	ReportFile string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Driver:      DefaultDriver,
		DBAddress:   DefaultDBAddress,
		DBName:      DefaultDBName,
		DBDir:       XDGDataDir(),
		SitesFile:   DefaultSitesFile,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// XDGDataDir returns the XDG data directory for sitescan.
// On Linux: ~/.local/share/sitescan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for sitescan.
// On Linux: ~/.config/sitescan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// RequiresCredentials reports whether the configured driver needs a user
// name and password.
func (c *Config) RequiresCredentials() bool {
	return c.Driver == DriverMySQL
}

// EffectiveMaxBodySize returns MaxBodySize, or the default when unset.
func (c *Config) EffectiveMaxBodySize() int64 {
	if c.MaxBodySize <= 0 {
		return DefaultMaxBodySize
	}
	return c.MaxBodySize
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.SitesFile == "" {
		return ErrNoSitesFile
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	switch c.Driver {
	case DriverMySQL:
		if c.DBAddress == "" || c.DBName == "" {
			return ErrIncompleteDatabase
		}
	case DriverSQLite:
		if c.DBDir == "" {
			return ErrIncompleteDatabase
		}
	default:
		return ErrUnsupportedDriver
	}

	switch c.ReportFormat {
	case ReportNone, ReportText, ReportMarkdown, ReportJSON:
	default:
		return ErrUnsupportedReportFormat
	}

	return nil
}
