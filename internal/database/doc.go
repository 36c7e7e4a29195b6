// Package database stores scraped websites in a relational schema.
//
// Four tables are kept: websites holds one row per scraped URL, and
// social_links, technologies and payment_gateways hold the child values
// keyed by the parent's website_id. The schema is created by EnsureSchema
// with idempotent DDL and filled through Store.SaveWebsite, which writes a
// website and all of its children in one transaction.
//
// Two engines are supported. MySQL (github.com/go-sql-driver/mysql) is the
// default and matches the schema used by existing deployments. SQLite
// (modernc.org/sqlite) keeps everything in a single local file under the
// XDG data directory and needs no server or credentials.
package database
