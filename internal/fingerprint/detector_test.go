package fingerprint

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"slices"
	"testing"
)

type stubMatcher struct {
	result  map[string]struct{}
	headers map[string][]string
	body    []byte
}

func (s *stubMatcher) Fingerprint(headers map[string][]string, data []byte) map[string]struct{} {
	s.headers = headers
	s.body = data
	return s.result
}

// TestNormalizeLabels tests version stripping, de-duplication and ordering.
func TestNormalizeLabels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		found map[string]struct{}
		want  []string
	}{
		{
			name:  "empty",
			found: map[string]struct{}{},
			want:  []string{},
		},
		{
			name: "versions stripped and sorted",
			found: map[string]struct{}{
				"Nginx:1.25.3": {},
				"PHP:8.2":      {},
				"jQuery":       {},
			},
			want: []string{"Nginx", "PHP", "jQuery"},
		},
		{
			name: "same technology with and without version",
			found: map[string]struct{}{
				"Nginx":        {},
				"Nginx:1.25.3": {},
			},
			want: []string{"Nginx"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeLabels(tt.found); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("normalizeLabels() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestDetector_Detect tests that the page is fetched and handed to the matcher.
func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	t.Run("fingerprints headers and body", func(t *testing.T) {
		t.Parallel()

		userAgents := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userAgents <- r.UserAgent()
			w.Header().Set("X-Powered-By", "PHP/8.2")
			_, _ = w.Write([]byte("<html><body>hello</body></html>"))
		}))
		defer server.Close()

		stub := &stubMatcher{result: map[string]struct{}{"PHP:8.2": {}}}
		d, err := NewDetector(server.Client(), withMatcher(stub), WithUserAgent("sitescan-test"))
		if err != nil {
			t.Fatalf("NewDetector() error = %v", err)
		}

		got, err := d.Detect(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Detect() error = %v", err)
		}
		if !slices.Equal(got, []string{"PHP"}) {
			t.Errorf("Detect() = %v, want [PHP]", got)
		}
		if gotUA := <-userAgents; gotUA != "sitescan-test" {
			t.Errorf("expected User-Agent sitescan-test, got %q", gotUA)
		}
		if string(stub.body) != "<html><body>hello</body></html>" {
			t.Errorf("unexpected body handed to matcher: %q", stub.body)
		}
		if stub.headers["X-Powered-By"] == nil {
			t.Error("expected response headers to be handed to matcher")
		}
	})

	t.Run("error status is still fingerprinted", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		d, err := NewDetector(server.Client(), withMatcher(&stubMatcher{result: map[string]struct{}{}}))
		if err != nil {
			t.Fatalf("NewDetector() error = %v", err)
		}
		if _, err := d.Detect(context.Background(), server.URL); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := server.URL
		server.Close()

		d, err := NewDetector(http.DefaultClient, withMatcher(&stubMatcher{}))
		if err != nil {
			t.Fatalf("NewDetector() error = %v", err)
		}
		if _, err := d.Detect(context.Background(), url); !errors.Is(err, ErrRequest) {
			t.Errorf("expected ErrRequest, got %v", err)
		}
	})

	t.Run("body size limit", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("0123456789"))
		}))
		defer server.Close()

		stub := &stubMatcher{result: map[string]struct{}{}}
		d, err := NewDetector(server.Client(), withMatcher(stub), WithMaxBodySize(4))
		if err != nil {
			t.Fatalf("NewDetector() error = %v", err)
		}
		if _, err := d.Detect(context.Background(), server.URL); err != nil {
			t.Fatalf("Detect() error = %v", err)
		}
		if string(stub.body) != "0123" {
			t.Errorf("expected truncated body, got %q", stub.body)
		}
	})
}

// TestDetector_Wappalyzer tests detection with the real fingerprint database.
func TestDetector_Wappalyzer(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Server", "nginx")
		_, _ = w.Write([]byte("<html><head><title>t</title></head><body></body></html>"))
	}))
	defer server.Close()

	d, err := NewDetector(server.Client())
	if err != nil {
		t.Fatalf("NewDetector() error = %v", err)
	}
	got, err := d.Detect(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if !slices.Contains(got, "Nginx") {
		t.Errorf("expected Nginx to be detected, got %v", got)
	}
}
