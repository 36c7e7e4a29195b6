package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/sitescan/internal/model"
)

const ruleWidth = 70

// SimpleWriter outputs a plain text summary for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose adds the stored links and technologies of each site.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables per-site details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the summary in human-readable format.
func (w *SimpleWriter) Write(summary *model.RunSummary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, summary)
	w.writeResults(&sb, summary)
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, summary *model.RunSummary) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("                         SITESCAN RUN SUMMARY\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	if summary.ID != "" {
		fmt.Fprintf(sb, "Run ID:     %s\n", summary.ID)
	}
	if !summary.StartedAt.IsZero() {
		fmt.Fprintf(sb, "Started:    %s\n", summary.StartedAt.Format(timeLayout))
	}
	fmt.Fprintf(sb, "Duration:   %s\n", formatDuration(summary.Elapsed()))
	fmt.Fprintf(sb, "Sites:      %d\n", len(summary.Results))
	fmt.Fprintf(sb, "Succeeded:  %d\n", summary.Succeeded())
	fmt.Fprintf(sb, "Failed:     %d\n", summary.Failed())
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeResults(sb *strings.Builder, summary *model.RunSummary) {
	if len(summary.Results) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\nSITES\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")

	for _, r := range summary.Results {
		marker := "[+]"
		if !r.Succeeded() {
			marker = "[-]"
		}
		fmt.Fprintf(sb, "  %s %-11s %s\n", marker, statusLabel(r.Status), r.URL)

		if r.Error != "" {
			fmt.Fprintf(sb, "      Reason: %s\n", r.Error)
		}
		if r.Website == nil {
			continue
		}
		for _, warning := range r.Website.Warnings {
			fmt.Fprintf(sb, "      Warning: %s\n", warning)
		}
		if w.verbose {
			w.writeWebsite(sb, r.Website)
		}
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeWebsite(sb *strings.Builder, site *model.Website) {
	fmt.Fprintf(sb, "      Title: %s\n", site.Name)
	lists := []struct {
		label  string
		values []string
	}{
		{"Social links", site.SocialLinks},
		{"Technologies", site.Technologies},
		{"Payment gateways", site.PaymentGateways},
	}
	for _, l := range lists {
		if len(l.values) == 0 {
			continue
		}
		fmt.Fprintf(sb, "      %s: %s\n", l.label, strings.Join(l.values, ", "))
	}
}
