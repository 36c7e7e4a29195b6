package database

import "errors"

var (
	// ErrUnsupportedDriver is returned when Options.Driver is neither
	// DriverMySQL nor DriverSQLite.
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrInvalidDatabaseName is returned when the database name is not a
	// plain identifier. The name is interpolated into DDL, so only letters,
	// digits and underscores are accepted.
	ErrInvalidDatabaseName = errors.New("invalid database name")

	// ErrWebsiteNotFound is returned by GetWebsite for an unknown id.
	ErrWebsiteNotFound = errors.New("website not found")
)
