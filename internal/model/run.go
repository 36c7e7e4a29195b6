package model

import "time"

// SiteStatus is the outcome of scraping one URL.
type SiteStatus int

const (
	// SiteStatusScraped means the site was fetched, extracted and committed.
	SiteStatusScraped SiteStatus = iota

	// SiteStatusUnreachable means the request failed or returned a status other than 200.
	SiteStatusUnreachable

	// SiteStatusFailed means extraction, detection or persistence failed.
	SiteStatusFailed
)

// String returns a lower-case label for the status.
func (s SiteStatus) String() string {
	switch s {
	case SiteStatusScraped:
		return "scraped"
	case SiteStatusUnreachable:
		return "unreachable"
	case SiteStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status as its label.
func (s SiteStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SiteResult records what happened to one URL of the input list.
type SiteResult struct {
	// URL is the input line as read from the sites file.
	URL string `json:"url"`

	// Status is the outcome.
	Status SiteStatus `json:"status"`

	// Website is the stored record. Nil unless Status is SiteStatusScraped.
	Website *Website `json:"website,omitempty"`

	// Error is the failure reason. Empty on success.
	Error string `json:"error,omitempty"`

	// Duration is the wall time spent on the URL.
	Duration time.Duration `json:"duration"`
}

// Succeeded reports whether the site was committed.
func (r *SiteResult) Succeeded() bool {
	return r.Status == SiteStatusScraped
}

// RunSummary collects the results of one run in input order.
type RunSummary struct {
	// ID identifies the run in logs.
	ID string `json:"id"`

	// StartedAt is when the first URL was processed.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the last URL was processed.
	FinishedAt time.Time `json:"finished_at"`

	// Results holds one entry per input URL, in order.
	Results []SiteResult `json:"results"`
}

// NewRunSummary creates an empty summary for the given run id.
func NewRunSummary(id string) *RunSummary {
	return &RunSummary{
		ID:      id,
		Results: make([]SiteResult, 0),
	}
}

// Add appends a result.
func (s *RunSummary) Add(r SiteResult) {
	s.Results = append(s.Results, r)
}

// Succeeded returns the number of committed sites.
func (s *RunSummary) Succeeded() int {
	n := 0
	for i := range s.Results {
		if s.Results[i].Succeeded() {
			n++
		}
	}
	return n
}

// Failed returns the number of sites that were not committed.
func (s *RunSummary) Failed() int {
	return len(s.Results) - s.Succeeded()
}

// Elapsed returns the duration of the run.
func (s *RunSummary) Elapsed() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
