package database

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
)

// mysqlSchema creates the four tables on a MySQL server.
// Statements run one at a time because the driver rejects multi-statement
// queries unless multiStatements is enabled.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS websites (
		website_id INT AUTO_INCREMENT PRIMARY KEY,
		website_name VARCHAR(120),
		website_description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS social_links (
		id INT,
		social_link VARCHAR(60),
		FOREIGN KEY (id) REFERENCES websites(website_id)
	)`,
	`CREATE TABLE IF NOT EXISTS technologies (
		id INT,
		technologies VARCHAR(60),
		FOREIGN KEY (id) REFERENCES websites(website_id)
	)`,
	`CREATE TABLE IF NOT EXISTS payment_gateways (
		id INT,
		payment_gateway VARCHAR(120),
		FOREIGN KEY (id) REFERENCES websites(website_id)
	)`,
}

// sqliteSchema is the SQLite rendition of mysqlSchema.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS websites (
		website_id INTEGER PRIMARY KEY AUTOINCREMENT,
		website_name VARCHAR(120),
		website_description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS social_links (
		id INTEGER NOT NULL REFERENCES websites(website_id),
		social_link VARCHAR(60)
	)`,
	`CREATE TABLE IF NOT EXISTS technologies (
		id INTEGER NOT NULL REFERENCES websites(website_id),
		technologies VARCHAR(60)
	)`,
	`CREATE TABLE IF NOT EXISTS payment_gateways (
		id INTEGER NOT NULL REFERENCES websites(website_id),
		payment_gateway VARCHAR(120)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_social_links_id ON social_links(id)`,
	`CREATE INDEX IF NOT EXISTS idx_technologies_id ON technologies(id)`,
	`CREATE INDEX IF NOT EXISTS idx_payment_gateways_id ON payment_gateways(id)`,
}

// EnsureSchema makes sure the database and its tables exist.
// For MySQL it connects to the server, creates the database when missing
// and then creates the tables inside it. For SQLite it creates the data
// directory and the database file. Calling it repeatedly is harmless.
func EnsureSchema(ctx context.Context, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}

	if opts.Driver == DriverMySQL {
		server, err := sqlx.ConnectContext(ctx, DriverMySQL, opts.serverDSN())
		if err != nil {
			return fmt.Errorf("failed to connect to database server: %w", err)
		}
		err = createDatabase(ctx, server, opts.Name)
		_ = server.Close()
		if err != nil {
			return err
		}
	} else {
		if err := os.MkdirAll(opts.Dir, 0750); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sqlx.ConnectContext(ctx, opts.Driver, opts.databaseDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	return createTables(ctx, db, opts.Driver)
}

// createDatabase runs CREATE DATABASE IF NOT EXISTS for a validated name.
func createDatabase(ctx context.Context, db *sqlx.DB, name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidDatabaseName, name)
	}
	if _, err := db.ExecContext(ctx, "CREATE DATABASE IF NOT EXISTS `"+name+"`"); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return nil
}

// createTables creates the schema of the given driver if it doesn't exist.
func createTables(ctx context.Context, db *sqlx.DB, driver string) error {
	statements := mysqlSchema
	if driver == DriverSQLite {
		statements = sqliteSchema
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}
	return nil
}
