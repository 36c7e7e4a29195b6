package database

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/go-sql-driver/mysql"
)

const (
	// DriverMySQL is the database/sql driver name of the MySQL engine.
	DriverMySQL = "mysql"

	// DriverSQLite is the database/sql driver name of the SQLite engine.
	DriverSQLite = "sqlite"
)

// validName matches database names that are safe to place in DDL.
var validName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Options describes where the database lives and how to reach it.
type Options struct {
	// Driver is DriverMySQL or DriverSQLite.
	Driver string

	// Address is the MySQL server address in "host:port" format.
	Address string

	// User and Password authenticate against the MySQL server.
	User     string
	Password string

	// Name is the MySQL database name. For SQLite it is the base name of
	// the database file.
	Name string

	// Dir is the directory holding the SQLite database file.
	Dir string

	// ConnectTimeout bounds dialing the MySQL server. Zero means the
	// driver default.
	ConnectTimeout time.Duration
}

// validate checks the options before any connection is attempted.
func (o Options) validate() error {
	switch o.Driver {
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, o.Driver)
	}
	if !validName.MatchString(o.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidDatabaseName, o.Name)
	}
	return nil
}

// mysqlConfig builds the driver configuration. An empty dbName connects to
// the server without selecting a database.
func (o Options) mysqlConfig(dbName string) *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = o.User
	cfg.Passwd = o.Password
	cfg.Net = "tcp"
	cfg.Addr = o.Address
	cfg.DBName = dbName
	if o.ConnectTimeout > 0 {
		cfg.Timeout = o.ConnectTimeout
	}
	return cfg
}

// serverDSN is the DSN used to create the database itself.
func (o Options) serverDSN() string {
	return o.mysqlConfig("").FormatDSN()
}

// SQLitePath returns the path of the SQLite database file.
func (o Options) SQLitePath() string {
	return filepath.Join(o.Dir, o.Name+".db")
}

// databaseDSN is the DSN of the configured database.
func (o Options) databaseDSN() string {
	if o.Driver == DriverSQLite {
		// mode=rwc creates the file; foreign keys are off by default in SQLite.
		return o.SQLitePath() + "?mode=rwc&_pragma=foreign_keys(1)"
	}
	return o.mysqlConfig(o.Name).FormatDSN()
}
