package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".sitescan"

// Environment variables read by ApplyEnv.
const (
	EnvDBUser     = "SITESCAN_DB_USER"
	EnvDBPassword = "SITESCAN_DB_PASSWORD" //nolint:gosec // Variable name, not a credential
	EnvDBAddress  = "SITESCAN_DB_ADDRESS"
	EnvDBName     = "SITESCAN_DB_NAME"
	EnvEnvFile    = "SITESCAN_ENV_FILE"
)

// DatabaseFile is the database section of the configuration file.
type DatabaseFile struct {
	// Driver is "mysql" or "sqlite".
	Driver string `yaml:"driver,omitempty"`

	// Address is the MySQL server address in "host:port" format.
	Address string `yaml:"address,omitempty"`

	// Name is the MySQL database name.
	Name string `yaml:"name,omitempty"`

	// Dir is the directory of the SQLite database file.
	Dir string `yaml:"dir,omitempty"`

	// User is the database user name. The password is intentionally not
	// read from this file; use SITESCAN_DB_PASSWORD or the prompt.
	User string `yaml:"user,omitempty"`
}

// File represents the structure of the .sitescan configuration file.
// Zero values leave the corresponding default untouched.
type File struct {
	Database DatabaseFile `yaml:"database,omitempty"`

	// Sites is the path of the URL list.
	Sites string `yaml:"sites,omitempty"`

	// Timeout is the per-request HTTP timeout, e.g. "30s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// MaxBodySize overrides the response body limit in bytes.
	MaxBodySize int64 `yaml:"maxBodySize,omitempty"`
}

// LoadConfigFile loads a configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .sitescan in the current directory
// 3. Look for .sitescan in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// ApplyFile copies the non-zero settings of a configuration file into c.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.Database.Driver != "" {
		c.Driver = f.Database.Driver
	}
	if f.Database.Address != "" {
		c.DBAddress = f.Database.Address
	}
	if f.Database.Name != "" {
		c.DBName = f.Database.Name
	}
	if f.Database.Dir != "" {
		c.DBDir = f.Database.Dir
	}
	if f.Database.User != "" {
		c.DBUser = f.Database.User
	}
	if f.Sites != "" {
		c.SitesFile = f.Sites
	}
	if f.Timeout != 0 {
		c.Timeout = f.Timeout
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.MaxBodySize != 0 {
		c.MaxBodySize = f.MaxBodySize
	}
}

// LoadEnvFiles loads .env files into the process environment.
// If SITESCAN_ENV_FILE is set only that file is loaded; otherwise .env in
// the current directory is loaded when present. Variables that are already
// set are never overridden.
func LoadEnvFiles() error {
	if envFile := os.Getenv(EnvEnvFile); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// ApplyEnv copies database settings from environment variables into c.
// getenv is usually os.Getenv; tests pass a map lookup.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvDBUser); v != "" {
		c.DBUser = v
	}
	if v := getenv(EnvDBPassword); v != "" {
		c.DBPassword = v
	}
	if v := getenv(EnvDBAddress); v != "" {
		c.DBAddress = v
	}
	if v := getenv(EnvDBName); v != "" {
		c.DBName = v
	}
}
