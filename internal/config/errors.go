package config

import "errors"

// Configuration validation errors returned by Config.Validate and the
// credential helpers. Callers match them with errors.Is.
var (
	// ErrNoSitesFile is returned when no sites file path is configured.
	ErrNoSitesFile = errors.New("no sites file specified: use --list or set sites in the config file")

	// ErrInvalidTimeout is returned when the HTTP timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 for the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrUnsupportedDriver is returned for a database driver other than mysql or sqlite.
	ErrUnsupportedDriver = errors.New("unsupported database driver: must be mysql or sqlite")

	// ErrIncompleteDatabase is returned when the address, name or directory
	// required by the selected driver is empty.
	ErrIncompleteDatabase = errors.New("incomplete database settings")

	// ErrUnsupportedReportFormat is returned for a report format other than text, markdown or json.
	ErrUnsupportedReportFormat = errors.New("unsupported report format: must be text, markdown or json")

	// ErrMissingCredentials is returned when no database user name could be obtained.
	ErrMissingCredentials = errors.New("database user name is required")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
