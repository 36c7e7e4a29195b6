package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nao1215/sitescan/internal/model"
)

const (
	defaultUserAgent   = "Mozilla/5.0 (compatible; sitescan/1.0)"
	defaultMaxBodySize = 10 * 1024 * 1024 // 10MB
)

// TechnologyDetector reports the technologies a website uses.
type TechnologyDetector interface {
	Detect(ctx context.Context, pageURL string) ([]string, error)
}

// WebsiteSaver persists a website and its child values atomically.
type WebsiteSaver interface {
	SaveWebsite(ctx context.Context, w *model.Website) (int64, error)
}

// Scraper scrapes single websites and stores the results.
type Scraper struct {
	client      *http.Client
	detector    TechnologyDetector
	saver       WebsiteSaver
	userAgent   string
	maxBodySize int64
	logger      *slog.Logger
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithMaxBodySize limits how many bytes of a page are read.
func WithMaxBodySize(size int64) Option {
	return func(s *Scraper) {
		if size > 0 {
			s.maxBodySize = size
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scraper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScraper creates a Scraper that fetches pages with client, detects
// technologies with detector and stores websites with saver.
func NewScraper(client *http.Client, detector TechnologyDetector, saver WebsiteSaver, opts ...Option) *Scraper {
	if client == nil {
		client = http.DefaultClient
	}
	s := &Scraper{
		client:      client,
		detector:    detector,
		saver:       saver,
		userAgent:   defaultUserAgent,
		maxBodySize: defaultMaxBodySize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape fetches pageURL, extracts its fields and links, detects its
// technologies and saves the result.
//
// A transport failure returns an error wrapping ErrTransport, and a
// response other than 200 OK returns a *StatusError. In both cases, and
// whenever detection or saving fails, nothing is stored. A missing meta
// description is not an error: the description is set to
// model.NotAvailable and a warning is added to the returned website.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) (*model.Website, error) {
	start := time.Now()

	doc, err := s.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	w := &model.Website{
		URL:         pageURL,
		Name:        model.NotAvailable,
		Description: model.NotAvailable,
	}
	if title, ok := extractTitle(doc); ok {
		w.Name = model.Truncate(title, model.MaxTitleLength)
	}
	if desc, ok := extractDescription(doc); ok {
		w.Description = model.Truncate(desc, model.MaxDescriptionLength)
	} else {
		w.AddWarning("Could not find description for " + pageURL)
	}

	hrefs := extractHrefs(doc)
	w.SocialLinks = classify(hrefs, socialPatterns)
	w.PaymentGateways = classify(hrefs, paymentPatternsFor(pageURL))

	w.Technologies, err = s.detector.Detect(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to detect technologies: %w", err)
	}

	if _, err := s.saver.SaveWebsite(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to save website: %w", err)
	}

	s.logger.Debug("scraped website",
		"url", pageURL,
		"website_id", w.ID,
		"social_links", len(w.SocialLinks),
		"technologies", len(w.Technologies),
		"payment_gateways", len(w.PaymentGateways),
		"duration", time.Since(start),
	)
	return w, nil
}
