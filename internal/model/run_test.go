package model

import (
	"testing"
	"time"
)

// TestSiteStatus tests status labels.
func TestSiteStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status SiteStatus
		want   string
	}{
		{SiteStatusScraped, "scraped"},
		{SiteStatusUnreachable, "unreachable"},
		{SiteStatusFailed, "failed"},
		{SiteStatus(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("SiteStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

// TestRunSummary tests counting and timing.
func TestRunSummary(t *testing.T) {
	t.Parallel()

	s := NewRunSummary("run-1")
	s.Add(SiteResult{URL: "https://a.example", Status: SiteStatusScraped})
	s.Add(SiteResult{URL: "https://b.example", Status: SiteStatusUnreachable})
	s.Add(SiteResult{URL: "https://c.example", Status: SiteStatusFailed})

	if s.Succeeded() != 1 {
		t.Errorf("expected 1 success, got %d", s.Succeeded())
	}
	if s.Failed() != 2 {
		t.Errorf("expected 2 failures, got %d", s.Failed())
	}
	if s.Results[0].URL != "https://a.example" {
		t.Errorf("expected results in insertion order, got %q first", s.Results[0].URL)
	}

	if s.Elapsed() != 0 {
		t.Error("expected zero elapsed time before the run finishes")
	}
	s.StartedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.FinishedAt = s.StartedAt.Add(3 * time.Second)
	if s.Elapsed() != 3*time.Second {
		t.Errorf("expected 3s elapsed, got %s", s.Elapsed())
	}
}
