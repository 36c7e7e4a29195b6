package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/sitescan/internal/model"
)

func init() {
	// sqlx only knows the bind style of "sqlite3"; modernc registers "sqlite".
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Store writes scraped websites to the database.
// A Store holds a single connection and is meant to live for a whole run.
type Store struct {
	db *sqlx.DB
}

// Open connects to the database described by opts.
// The schema must already exist; see EnsureSchema.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	db, err := sqlx.ConnectContext(ctx, opts.Driver, opts.databaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Scraping is sequential; one connection is all a run ever needs.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	return newStore(db), nil
}

func newStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

const insertWebsite = `INSERT INTO websites (website_name, website_description) VALUES (?, ?)`

// childTable describes one of the tables keyed by website_id.
type childTable struct {
	insert string
	width  int
	values func(*model.Website) []string
}

var childTables = []childTable{
	{
		insert: `INSERT INTO social_links (id, social_link) VALUES (?, ?)`,
		width:  model.MaxSocialLinkLength,
		values: func(w *model.Website) []string { return w.SocialLinks },
	},
	{
		insert: `INSERT INTO technologies (id, technologies) VALUES (?, ?)`,
		width:  model.MaxTechnologyLength,
		values: func(w *model.Website) []string { return w.Technologies },
	},
	{
		insert: `INSERT INTO payment_gateways (id, payment_gateway) VALUES (?, ?)`,
		width:  model.MaxPaymentGatewayLength,
		values: func(w *model.Website) []string { return w.PaymentGateways },
	},
}

// SaveWebsite inserts the website and its child values in one transaction.
// Child values that do not fit their column are skipped. On any error the
// transaction is rolled back and nothing about the website is stored.
// On success w.ID is set to the generated id, which is also returned.
func (s *Store) SaveWebsite(ctx context.Context, w *model.Website) (id int64, err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, insertWebsite, w.Name, w.Description)
	if err != nil {
		return 0, fmt.Errorf("failed to insert website: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get website id: %w", err)
	}

	for _, table := range childTables {
		for _, v := range model.FilterByLength(table.values(w), table.width) {
			if _, err = tx.ExecContext(ctx, table.insert, id, v); err != nil {
				return 0, fmt.Errorf("failed to insert %q: %w", v, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit website: %w", err)
	}

	w.ID = id
	return id, nil
}

// WebsiteRow is a stored website with the number of its child values.
type WebsiteRow struct {
	ID              int64  `db:"website_id"`
	Name            string `db:"website_name"`
	Description     string `db:"website_description"`
	SocialLinks     int    `db:"social_links"`
	Technologies    int    `db:"technologies"`
	PaymentGateways int    `db:"payment_gateways"`
}

const listWebsites = `
	SELECT
		w.website_id,
		COALESCE(w.website_name, '') AS website_name,
		COALESCE(w.website_description, '') AS website_description,
		(SELECT COUNT(*) FROM social_links s WHERE s.id = w.website_id) AS social_links,
		(SELECT COUNT(*) FROM technologies t WHERE t.id = w.website_id) AS technologies,
		(SELECT COUNT(*) FROM payment_gateways p WHERE p.id = w.website_id) AS payment_gateways
	FROM websites w
	ORDER BY w.website_id`

// ListWebsites returns all stored websites ordered by id.
func (s *Store) ListWebsites(ctx context.Context) ([]WebsiteRow, error) {
	var rows []WebsiteRow
	if err := s.db.SelectContext(ctx, &rows, listWebsites); err != nil {
		return nil, fmt.Errorf("failed to list websites: %w", err)
	}
	return rows, nil
}

// GetWebsite loads a stored website together with its child values.
// It returns ErrWebsiteNotFound for an unknown id.
func (s *Store) GetWebsite(ctx context.Context, id int64) (*model.Website, error) {
	var row struct {
		Name        string `db:"website_name"`
		Description string `db:"website_description"`
	}
	err := s.db.GetContext(ctx, &row, `
		SELECT COALESCE(website_name, '') AS website_name,
		       COALESCE(website_description, '') AS website_description
		FROM websites WHERE website_id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrWebsiteNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get website %d: %w", id, err)
	}

	w := &model.Website{ID: id, Name: row.Name, Description: row.Description}
	children := []struct {
		dest  *[]string
		query string
	}{
		{&w.SocialLinks, `SELECT social_link FROM social_links WHERE id = ?`},
		{&w.Technologies, `SELECT technologies FROM technologies WHERE id = ?`},
		{&w.PaymentGateways, `SELECT payment_gateway FROM payment_gateways WHERE id = ?`},
	}
	for _, c := range children {
		if err := s.db.SelectContext(ctx, c.dest, c.query, id); err != nil {
			return nil, fmt.Errorf("failed to get children of website %d: %w", id, err)
		}
	}
	return w, nil
}
