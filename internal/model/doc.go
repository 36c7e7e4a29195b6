// Package model defines the data structures shared by the scraper, the
// database layer and the report writers.
//
// This package contains the following main types:
//   - Website: one scraped site together with its link categories
//   - SiteResult: the outcome of scraping a single URL during a run
//   - RunSummary: the ordered outcomes of a complete run
//
// It also owns the column width rules of the relational schema, so that the
// scraper (which truncates) and the store (which filters) agree on them.
package model
