package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/nao1215/sitescan/internal/config"
	"github.com/nao1215/sitescan/internal/database"
	"github.com/nao1215/sitescan/internal/model"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the websites stored in the database",
		Long: `List prints the stored websites with the number of social links,
technologies and payment gateway links recorded for each.

Examples:
  # List websites stored in MySQL
  sitescan list

  # List websites of the local SQLite database as Markdown
  sitescan list --driver sqlite --markdown

  # Show everything stored for one website
  sitescan list --id 42`,
		Args: cobra.NoArgs,
		RunE: runListCmd,
	}

	addDatabaseFlags(cmd)

	cmd.Flags().BoolP("markdown", "m", false, "Output a Markdown table")
	cmd.Flags().Int64("id", 0, "Show the stored values of one website")

	return cmd
}

// runListCmd executes the list command.
func runListCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := cfg.ResolveCredentials(config.NewPrompter(bufio.NewReader(cmd.InOrStdin()), out)); err != nil {
		return fmt.Errorf("failed to obtain database credentials: %w", err)
	}

	ctx := cmd.Context()
	opts := databaseOptions(cfg)
	if err := database.EnsureSchema(ctx, opts); err != nil {
		return fmt.Errorf("failed to set up the database: %w", err)
	}
	store, err := database.Open(ctx, opts)
	if err != nil {
		return fmt.Errorf("could not connect to the database: %w", err)
	}
	defer store.Close()

	if id != 0 {
		w, err := store.GetWebsite(ctx, id)
		if err != nil {
			return err
		}
		renderWebsite(out, w)
		return nil
	}

	rows, err := store.ListWebsites(ctx)
	if err != nil {
		return err
	}
	if asMarkdown {
		return renderWebsitesMarkdown(out, rows)
	}
	renderWebsitesTable(out, rows)
	return nil
}

var listHeader = []string{"ID", "Name", "Description", "Social", "Technologies", "Payment"}

// listRow formats a stored website for display.
func listRow(r database.WebsiteRow) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.Name,
		shorten(r.Description, 60),
		strconv.Itoa(r.SocialLinks),
		strconv.Itoa(r.Technologies),
		strconv.Itoa(r.PaymentGateways),
	}
}

// renderWebsitesTable prints the websites as a terminal table.
func renderWebsitesTable(out io.Writer, rows []database.WebsiteRow) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(toRow(listHeader))
	for _, r := range rows {
		t.AppendRow(toRow(listRow(r)))
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d websites", len(rows))})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// renderWebsitesMarkdown prints the websites as a Markdown table.
func renderWebsitesMarkdown(out io.Writer, rows []database.WebsiteRow) error {
	tableRows := make([][]string, len(rows))
	for i, r := range rows {
		tableRows[i] = listRow(r)
	}
	return markdown.NewMarkdown(out).
		H1("Stored Websites").
		Table(markdown.TableSet{Header: listHeader, Rows: tableRows}).
		Build()
}

// renderWebsite prints every stored value of one website.
func renderWebsite(out io.Writer, w *model.Website) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRow(table.Row{"ID", w.ID})
	t.AppendRow(table.Row{"Name", w.Name})
	t.AppendRow(table.Row{"Description", w.Description})
	t.AppendSeparator()
	t.AppendRow(table.Row{"Social links", strings.Join(w.SocialLinks, "\n")})
	t.AppendRow(table.Row{"Technologies", strings.Join(w.Technologies, "\n")})
	t.AppendRow(table.Row{"Payment gateways", strings.Join(w.PaymentGateways, "\n")})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func toRow(values []string) table.Row {
	row := make(table.Row, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

// shorten cuts s to at most n characters, marking the cut with "...".
func shorten(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return model.Truncate(s, n-3) + "..."
}
