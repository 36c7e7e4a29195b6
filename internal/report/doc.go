// Package report writes the summary of a scrape run.
//
// Writers turn a model.RunSummary into text, Markdown or JSON. The text
// format is meant for terminals, Markdown for sharing in issues and pull
// requests, and JSON for other tools.
package report
