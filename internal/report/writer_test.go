package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/sitescan/internal/model"
)

// createTestSummary creates a summary with one success and one failure.
func createTestSummary() *model.RunSummary {
	summary := model.NewRunSummary("3f0c6d9e-run")
	summary.StartedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	summary.FinishedAt = summary.StartedAt.Add(1500 * time.Millisecond)

	summary.Add(model.SiteResult{
		URL:    "https://a.example",
		Status: model.SiteStatusScraped,
		Website: &model.Website{
			ID:              1,
			URL:             "https://a.example",
			Name:            "Shop Home",
			Description:     model.NotAvailable,
			SocialLinks:     []string{"https://twitter.com/shop"},
			Technologies:    []string{"Nginx", "PHP"},
			PaymentGateways: []string{"https://paypal.me/shop"},
			Warnings:        []string{"Could not find description for https://a.example"},
		},
		Duration: 800 * time.Millisecond,
	})
	summary.Add(model.SiteResult{
		URL:      "https://b.example",
		Status:   model.SiteStatusUnreachable,
		Error:    "unexpected status code 404 from https://b.example",
		Duration: 200 * time.Millisecond,
	})
	return summary
}

// TestSimpleWriter tests the human-readable summary writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header and sites", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"SITESCAN RUN SUMMARY",
			"Run ID:     3f0c6d9e-run",
			"Duration:   1.5s",
			"Succeeded:  1",
			"Failed:     1",
			"[+] Scraped     https://a.example",
			"[-] Unreachable https://b.example",
			"Reason: unexpected status code 404",
			"Warning: Could not find description for https://a.example",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q\n%s", want, output)
			}
		}
		if strings.Contains(output, "Technologies:") {
			t.Error("technologies should only be listed in verbose mode")
		}
	})

	t.Run("verbose lists stored values", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(createTestSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "Technologies: Nginx, PHP") {
			t.Errorf("expected technologies in verbose output\n%s", buf.String())
		}
	})

	t.Run("empty summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(model.NewRunSummary("")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "SITESCAN RUN SUMMARY") {
			t.Errorf("expected header\n%s", out)
		}
		if strings.Contains(out, "\nSITES\n") {
			t.Error("expected no sites section")
		}
	})
}

// TestMarkdownWriter tests the Markdown summary writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes tables chart and details", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewMarkdownWriter(&buf).Write(createTestSummary())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n == 0 {
			t.Error("expected bytes to be reported")
		}

		output := buf.String()
		for _, want := range []string{
			"# Sitescan Run Report",
			"## Sites",
			"## Failures",
			"```mermaid",
			"Scraped",
			"Unreachable",
			"Shop Home",
			"https://paypal.me/shop",
			"1 of 2 sites could not be scraped.",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q\n%s", want, output)
			}
		}
	})

	t.Run("all sites scraped", func(t *testing.T) {
		t.Parallel()

		summary := model.NewRunSummary("ok")
		summary.Add(model.SiteResult{
			URL:     "https://a.example",
			Status:  model.SiteStatusScraped,
			Website: &model.Website{Name: "a", Description: "d"},
		})

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(summary); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "All sites were scraped.") {
			t.Errorf("expected success tip\n%s", buf.String())
		}
		if strings.Contains(buf.String(), "## Failures") {
			t.Error("expected no failures section")
		}
	})
}

// TestJSONWriter tests the JSON summary writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestSummary()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		ID        string `json:"id"`
		Succeeded int    `json:"succeeded"`
		Failed    int    `json:"failed"`
		Results   []struct {
			URL    string `json:"url"`
			Status string `json:"status"`
		} `json:"results"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if decoded.ID != "3f0c6d9e-run" || decoded.Succeeded != 1 || decoded.Failed != 1 {
		t.Errorf("unexpected summary: %+v", decoded)
	}
	if len(decoded.Results) != 2 || decoded.Results[1].Status != "unreachable" {
		t.Errorf("unexpected results: %+v", decoded.Results)
	}
	if !strings.HasPrefix(buf.String(), "{\n  ") {
		t.Error("expected indented output")
	}
}

// TestNewWriter_WithDetails tests that details reach the text writer.
func TestNewWriter_WithDetails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		details bool
		want    bool
	}{
		{name: "details", details: true, want: true},
		{name: "no details", details: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			w, err := NewWriter(FormatText, &buf, WithDetails(tt.details))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := w.Write(createTestSummary()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := strings.Contains(buf.String(), "Technologies: Nginx, PHP"); got != tt.want {
				t.Errorf("technologies shown = %v, want %v\n%s", got, tt.want, buf.String())
			}
		})
	}
}

// TestNewWriter tests format selection.
func TestNewWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  string
		wantErr bool
	}{
		{format: FormatText},
		{format: FormatMarkdown},
		{format: FormatJSON},
		{format: "html", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			w, err := NewWriter(tt.format, &bytes.Buffer{})
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil || w == nil {
				t.Errorf("unexpected result: %v, %v", w, err)
			}
		})
	}
}
