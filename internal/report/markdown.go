package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/sitescan/internal/model"
)

// MarkdownWriter outputs the summary in GitHub Flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(summary *model.RunSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeStatusChart(md, summary)
	w.writeResults(md, summary)
	w.writeDetails(md, summary)

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [sitescan](https://github.com/nao1215/sitescan)*")

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.RunSummary) {
	md.H1("Sitescan Run Report")
	md.PlainText("")

	rows := [][]string{}
	if summary.ID != "" {
		rows = append(rows, []string{"Run ID", "`" + summary.ID + "`"})
	}
	if !summary.StartedAt.IsZero() {
		rows = append(rows, []string{"Started", summary.StartedAt.Format(timeLayout)})
	}
	rows = append(rows,
		[]string{"Duration", formatDuration(summary.Elapsed())},
		[]string{"Sites", strconv.Itoa(len(summary.Results))},
		[]string{"Succeeded", strconv.Itoa(summary.Succeeded())},
		[]string{"Failed", strconv.Itoa(summary.Failed())},
	)
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	switch {
	case len(summary.Results) == 0:
		md.Note("The sites list was empty.")
	case summary.Failed() == len(summary.Results):
		md.Cautionf("None of the %d sites could be scraped.", len(summary.Results))
	case summary.Failed() > 0:
		md.Warningf("%d of %d sites could not be scraped.", summary.Failed(), len(summary.Results))
	default:
		md.Tip("All sites were scraped.")
	}
	md.PlainText("")
}

// writeStatusChart writes a mermaid pie chart of site outcomes.
func (w *MarkdownWriter) writeStatusChart(md *markdown.Markdown, summary *model.RunSummary) {
	if len(summary.Results) == 0 {
		return
	}

	counts := make(map[model.SiteStatus]uint64)
	for _, r := range summary.Results {
		counts[r.Status]++
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Site Outcomes"),
		piechart.WithShowData(true),
	)
	for _, s := range []model.SiteStatus{model.SiteStatusScraped, model.SiteStatusUnreachable, model.SiteStatusFailed} {
		if counts[s] > 0 {
			chart.LabelAndIntValue(statusLabel(s), counts[s])
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeResults(md *markdown.Markdown, summary *model.RunSummary) {
	if len(summary.Results) == 0 {
		return
	}

	md.H2("Sites")
	md.PlainText("")

	rows := make([][]string, len(summary.Results))
	for i, r := range summary.Results {
		title, social, tech, payment := "-", "-", "-", "-"
		if r.Website != nil {
			title = escapeCell(r.Website.Name)
			social = strconv.Itoa(len(r.Website.SocialLinks))
			tech = strconv.Itoa(len(r.Website.Technologies))
			payment = strconv.Itoa(len(r.Website.PaymentGateways))
		}
		rows[i] = []string{
			r.URL,
			statusLabel(r.Status),
			title,
			social,
			tech,
			payment,
			formatDuration(r.Duration),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Status", "Title", "Social", "Technologies", "Payment", "Duration"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeDetails lists failure reasons and the values stored for each site.
func (w *MarkdownWriter) writeDetails(md *markdown.Markdown, summary *model.RunSummary) {
	var failures []string
	for _, r := range summary.Results {
		if r.Error != "" {
			failures = append(failures, "`"+r.URL+"`: "+r.Error)
		}
	}
	if len(failures) > 0 {
		md.H2("Failures")
		md.PlainText("")
		md.BulletList(failures...)
		md.PlainText("")
	}

	for _, r := range summary.Results {
		site := r.Website
		if site == nil {
			continue
		}
		var sb strings.Builder
		sb.WriteString("Description: " + site.Description + "\n")
		for _, warning := range site.Warnings {
			sb.WriteString("Warning: " + warning + "\n")
		}
		if len(site.SocialLinks) > 0 {
			sb.WriteString("Social links: " + strings.Join(site.SocialLinks, ", ") + "\n")
		}
		if len(site.Technologies) > 0 {
			sb.WriteString("Technologies: " + strings.Join(site.Technologies, ", ") + "\n")
		}
		if len(site.PaymentGateways) > 0 {
			sb.WriteString("Payment gateways: " + strings.Join(site.PaymentGateways, ", ") + "\n")
		}
		md.Details(r.URL, sb.String())
	}
}

// escapeCell keeps a multi-line value on one table row.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
