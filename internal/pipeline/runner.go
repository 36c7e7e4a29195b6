package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/nao1215/sitescan/internal/log"
	"github.com/nao1215/sitescan/internal/model"
	"github.com/nao1215/sitescan/internal/scraper"
)

// SiteScraper scrapes and stores one website.
// *scraper.Scraper satisfies it.
type SiteScraper interface {
	Scrape(ctx context.Context, pageURL string) (*model.Website, error)
}

// Runner scrapes a list of URLs sequentially.
type Runner struct {
	// scraper handles each URL.
	scraper SiteScraper

	// out receives the per-site status lines.
	out io.Writer

	// logger is used for run-level logging.
	logger *slog.Logger

	// runID is attached to every log record of the run.
	runID string

	// now returns the current time. Replaced in tests.
	now func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithOutput sets where status lines are written. Default is io.Discard.
func WithOutput(w io.Writer) RunnerOption {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithRunID sets the identifier recorded in the summary and in logs.
func WithRunID(id string) RunnerOption {
	return func(r *Runner) {
		r.runID = id
	}
}

// NewRunner creates a Runner that uses s for every URL.
func NewRunner(s SiteScraper, opts ...RunnerOption) *Runner {
	r := &Runner{
		scraper: s,
		out:     io.Discard,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.logger = r.logger.With("run_id", r.runID)
	return r
}

// Run scrapes sites in order and returns one result per processed URL.
//
// For each URL it prints "Successfully scraped: <url>" or
// "Could not scrape: <url>: <reason>". A site stored without a meta
// description is additionally reported with a "[WARNING]" line.
//
// Per-site failures are recorded in the summary and never returned. The
// returned error is non-nil only when ctx is cancelled, in which case the
// summary holds the URLs processed so far.
func (r *Runner) Run(ctx context.Context, sites []string) (*model.RunSummary, error) {
	summary := model.NewRunSummary(r.runID)
	summary.StartedAt = r.now()
	defer func() {
		summary.FinishedAt = r.now()
	}()

	r.logger.Info("starting run", "total_sites", len(sites))

	for i, site := range sites {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("run cancelled", "processed", i, "total", len(sites))
			return summary, fmt.Errorf("run cancelled: %w", err)
		}

		r.logger.Debug("scraping site", "url", site, "index", i+1, "total", len(sites))
		summary.Add(r.scrapeOne(ctx, site))
	}

	r.logger.Info("run completed",
		"total_sites", len(sites),
		"succeeded", summary.Succeeded(),
		"failed", summary.Failed(),
	)
	return summary, nil
}

// scrapeOne scrapes a single URL and prints its status lines.
func (r *Runner) scrapeOne(ctx context.Context, site string) model.SiteResult {
	start := r.now()
	w, err := r.scraper.Scrape(ctx, site)
	result := model.SiteResult{
		URL:      site,
		Duration: r.now().Sub(start),
	}

	if err != nil {
		reason := log.SanitizeValue(err.Error())
		result.Status = classifyError(err)
		result.Error = reason
		r.logger.Warn("could not scrape site", "url", site, "status", result.Status.String(), "error", err)
		r.printf("Could not scrape: %s: %s\n", site, reason)
		return result
	}

	result.Status = model.SiteStatusScraped
	result.Website = w
	for _, warning := range w.Warnings {
		r.printf("[WARNING]: %s\n", warning)
	}
	r.printf("Successfully scraped: %s\n", site)
	return result
}

// classifyError maps a scrape error to a site status.
func classifyError(err error) model.SiteStatus {
	var statusErr *scraper.StatusError
	if errors.Is(err, scraper.ErrTransport) || errors.As(err, &statusErr) {
		return model.SiteStatusUnreachable
	}
	return model.SiteStatusFailed
}

func (r *Runner) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(r.out, format, args...); err != nil {
		r.logger.Debug("failed to write status line", "error", err)
	}
}
