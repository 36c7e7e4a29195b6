package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nao1215/sitescan/internal/config"
	"github.com/nao1215/sitescan/internal/database"
	"github.com/nao1215/sitescan/internal/fingerprint"
	"github.com/nao1215/sitescan/internal/model"
	"github.com/nao1215/sitescan/internal/pipeline"
	"github.com/nao1215/sitescan/internal/report"
	"github.com/nao1215/sitescan/internal/scraper"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scrape every website in the sites list",
		Long: `Scan reads a newline-delimited list of URLs and scrapes each site in order.

For every site it stores the title, the meta description, social media
links, payment gateway links and the detected technologies. Sites are
processed one at a time; a site that cannot be scraped is reported and
skipped, and nothing about it is stored.

The database and its tables are created on the first run. Credentials are
taken from --db-user/--db-password, then SITESCAN_DB_USER and
SITESCAN_DB_PASSWORD (a .env file is read when present), and otherwise
prompted for.

Examples:
  # Scrape files/sites.txt into MySQL on localhost
  sitescan scan

  # Use a different list and a local SQLite database
  sitescan scan --list urls.txt --driver sqlite

  # Read URLs from standard input and write a Markdown summary
  cat urls.txt | sitescan scan --list - --report markdown -o summary.md`,
		Args: cobra.NoArgs,
		RunE: runScanCmd,
	}

	addDatabaseFlags(cmd)

	cmd.Flags().StringP("list", "l", config.DefaultSitesFile,
		"File with one URL per line (\"-\" reads standard input)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each HTTP request")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent to each site")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum number of bytes read from each page")

	cmd.Flags().StringP("report", "r", "",
		"Write a run summary: text, markdown or json")
	cmd.Flags().StringP("output", "o", "",
		"Write the run summary to a file instead of standard output")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runScan(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), cfg, logger)
}

// runScan sets up the store and scrapes every site of the list.
// Setup and input failures are returned; per-site failures are only reported.
func runScan(ctx context.Context, stdin io.Reader, out io.Writer, cfg *config.Config, logger *slog.Logger) error {
	// The prompt and a "-" sites list share standard input.
	in := bufio.NewReader(stdin)

	if err := cfg.ResolveCredentials(config.NewPrompter(in, out)); err != nil {
		return fmt.Errorf("failed to obtain database credentials: %w", err)
	}

	opts := databaseOptions(cfg)
	logger.Info("setting up database", "driver", opts.Driver, "address", opts.Address, "name", opts.Name, "user", opts.User)
	if err := database.EnsureSchema(ctx, opts); err != nil {
		return fmt.Errorf("failed to set up the database (check the database settings in %s or the flags): %w",
			config.DefaultConfigFile, err)
	}
	fmt.Fprintln(out, "Database setup successful")

	store, err := database.Open(ctx, opts)
	if err != nil {
		return fmt.Errorf("could not connect to the database: %w", err)
	}
	defer store.Close()

	sites, err := readSites(cfg.SitesFile, in)
	if err != nil {
		return fmt.Errorf("please ensure that %s exists and is readable: %w", cfg.SitesFile, err)
	}

	client := &http.Client{Timeout: cfg.Timeout}
	detector, err := fingerprint.NewDetector(client,
		fingerprint.WithUserAgent(cfg.UserAgent),
		fingerprint.WithMaxBodySize(cfg.EffectiveMaxBodySize()),
	)
	if err != nil {
		return err
	}

	s := scraper.NewScraper(client, detector, store,
		scraper.WithUserAgent(cfg.UserAgent),
		scraper.WithMaxBodySize(cfg.EffectiveMaxBodySize()),
		scraper.WithLogger(logger),
	)

	runner := pipeline.NewRunner(s,
		pipeline.WithOutput(out),
		pipeline.WithLogger(logger),
		pipeline.WithRunID(uuid.NewString()),
	)

	summary, runErr := runner.Run(ctx, sites)

	if cfg.ReportFormat != config.ReportNone {
		if err := outputReport(cfg, summary, out); err != nil {
			logger.Error("report failed", "error", err)
		}
	}

	return runErr
}

// readSites reads the sites list, taking "-" from in.
func readSites(path string, in io.Reader) ([]string, error) {
	if path == config.StdinSitesFile {
		return config.ParseSites(in)
	}
	return config.ReadSites(path)
}

// outputReport writes the run summary in the configured format.
func outputReport(cfg *config.Config, summary *model.RunSummary, stdout io.Writer) error {
	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	w, err := report.NewWriter(cfg.ReportFormat, output, report.WithDetails(cfg.Verbose))
	if err != nil {
		return err
	}
	_, err = w.Write(summary)
	return err
}
