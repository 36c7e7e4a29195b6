package report

import (
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/sitescan/internal/model"
)

// Report formats understood by NewWriter.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// ErrUnsupportedFormat is returned by NewWriter for an unknown format.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Writer defines the interface for run summary output.
type Writer interface {
	// Write outputs the summary to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(summary *model.RunSummary) (int, error)
}

// WriterOption configures the Writer returned by NewWriter.
type WriterOption func(*writerOptions)

type writerOptions struct {
	details bool
}

// WithDetails lists the stored values of each site in the text format.
// Markdown and JSON always include them.
func WithDetails(details bool) WriterOption {
	return func(o *writerOptions) {
		o.details = details
	}
}

// NewWriter returns the Writer for format.
func NewWriter(format string, output io.Writer, opts ...WriterOption) (Writer, error) {
	var o writerOptions
	for _, opt := range opts {
		opt(&o)
	}

	switch format {
	case FormatText:
		return NewSimpleWriter(output, WithVerbose(o.details)), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// statusLabel returns a display label such as "Scraped".
func statusLabel(s model.SiteStatus) string {
	return cases.Title(language.English).String(s.String())
}

// formatDuration rounds d for display.
func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}

const timeLayout = "2006-01-02 15:04:05 MST"
