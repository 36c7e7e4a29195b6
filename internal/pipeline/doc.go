// Package pipeline runs a scrape over a list of URLs.
//
// The Runner processes URLs one at a time in input order. Every URL ends
// with exactly one status line on the output writer, and a failure never
// stops the run: the next URL is scraped regardless. Only cancellation of
// the context ends a run early.
package pipeline
