package fingerprint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	wappalyzer "github.com/projectdiscovery/wappalyzergo"
)

// ErrRequest is returned when the page could not be fetched for detection.
var ErrRequest = errors.New("technology detection request failed")

// defaultMaxBodySize limits the body handed to the fingerprint matcher.
const defaultMaxBodySize = 10 * 1024 * 1024

// fingerprinter matches headers and a body against known technologies.
// *wappalyzer.Wappalyze satisfies it.
type fingerprinter interface {
	Fingerprint(headers map[string][]string, data []byte) map[string]struct{}
}

// Detector reports the technologies used by a website.
type Detector struct {
	client      *http.Client
	matcher     fingerprinter
	userAgent   string
	maxBodySize int64
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithUserAgent sets the User-Agent header of detection requests.
func WithUserAgent(ua string) DetectorOption {
	return func(d *Detector) {
		d.userAgent = ua
	}
}

// WithMaxBodySize limits how much of the response body is fingerprinted.
func WithMaxBodySize(size int64) DetectorOption {
	return func(d *Detector) {
		if size > 0 {
			d.maxBodySize = size
		}
	}
}

// withMatcher replaces the wappalyzer matcher.
func withMatcher(m fingerprinter) DetectorOption {
	return func(d *Detector) {
		d.matcher = m
	}
}

// NewDetector creates a Detector that fetches pages with client.
// Loading the fingerprint database can fail, in which case an error is
// returned.
func NewDetector(client *http.Client, opts ...DetectorOption) (*Detector, error) {
	if client == nil {
		client = http.DefaultClient
	}
	d := &Detector{
		client:      client,
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.matcher == nil {
		w, err := wappalyzer.New()
		if err != nil {
			return nil, fmt.Errorf("failed to load technology fingerprints: %w", err)
		}
		d.matcher = w
	}
	return d, nil
}

// Detect fetches pageURL and returns the technologies found, sorted and
// without version suffixes. Only transport failures are errors; a page
// answering with an error status is still fingerprinted.
func (d *Detector) Detect(ctx context.Context, pageURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %w", ErrRequest, err)
	}

	return normalizeLabels(d.matcher.Fingerprint(resp.Header, body)), nil
}

// normalizeLabels turns wappalyzer results such as "Nginx:1.25.3" into
// sorted, unique technology names.
func normalizeLabels(found map[string]struct{}) []string {
	seen := make(map[string]struct{}, len(found))
	labels := make([]string, 0, len(found))
	for name := range found {
		if i := strings.IndexByte(name, ':'); i >= 0 {
			name = name[:i]
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		labels = append(labels, name)
	}
	sort.Strings(labels)
	return labels
}
