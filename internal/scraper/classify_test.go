package scraper

import (
	"slices"
	"testing"
)

// TestClassify_Social tests the social link patterns.
func TestClassify_Social(t *testing.T) {
	t.Parallel()

	tests := []struct {
		href string
		want bool
	}{
		{href: "https://instagram.com/example", want: true},
		{href: "https://www.facebook.com/example", want: true},
		{href: "https://twitter.com/example", want: true},
		{href: "https://www.youtube.com/user/example", want: true},
		{href: "https://tiktok.com/@example", want: true},
		{href: "https://www.linkedin.com/company/example", want: true},
		{href: "https://instagram.com/", want: false},
		{href: "http://instagram.com/example", want: false},
		{href: "HTTPS://INSTAGRAM.COM/example", want: false},
		{href: "https://instagramXcom/example", want: false},
		{href: "https://www.youtube.com/channel/example", want: false},
		{href: "https://www.linkedin.com/in/someone", want: false},
		{href: "/relative/path", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			t.Parallel()

			got := len(classify([]string{tt.href}, socialPatterns)) == 1
			if got != tt.want {
				t.Errorf("classify(%q) matched = %v, want %v", tt.href, got, tt.want)
			}
		})
	}
}

// TestClassify_Payment tests the payment gateway patterns.
func TestClassify_Payment(t *testing.T) {
	t.Parallel()

	const site = "https://example.com"

	tests := []struct {
		href string
		want bool
	}{
		{href: "https://example.com/subscribe", want: true},
		{href: "https://example.com/subscription-plans", want: true},
		{href: "https://example.com/donate", want: true},
		{href: "https://example.comdonate", want: true},
		{href: "https://news.example.net/subscribe/now", want: true},
		{href: "https://charity.org/donate/", want: true},
		{href: "https://magazine.com/subscription/annual", want: true},
		{href: "https://store.com/buy/123", want: true},
		{href: "https://paypal.me/someone", want: true},
		{href: "https://www.razorpay.com/pay", want: true},
		{href: "https://stripe.com/checkout", want: true},
		{href: "https://other.com/donate", want: false},
		{href: "http://store.com/buy/123", want: false},
		{href: "https://example.com/about", want: false},
		{href: "https://paypal.me/", want: false},
	}

	patterns := paymentPatternsFor(site)
	if len(patterns) != 10 {
		t.Fatalf("expected 10 payment patterns, got %d", len(patterns))
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			t.Parallel()

			got := len(classify([]string{tt.href}, patterns)) == 1
			if got != tt.want {
				t.Errorf("classify(%q) matched = %v, want %v", tt.href, got, tt.want)
			}
		})
	}
}

// TestPaymentPatternsFor_EscapesSiteURL tests that the site URL matches literally.
func TestPaymentPatternsFor_EscapesSiteURL(t *testing.T) {
	t.Parallel()

	patterns := paymentPatternsFor("https://example.com/?a=1")

	if got := classify([]string{"https://example.com/?a=1/subscribe"}, patterns); len(got) != 1 {
		t.Errorf("expected literal site URL to match, got %v", got)
	}
	// "?" would make the slash optional if the URL were not escaped.
	if got := classify([]string{"https://example.coma=1subscribe"}, patterns); len(got) != 0 {
		t.Errorf("expected escaped site URL not to match, got %v", got)
	}
}

// TestClassify_Dedup tests set semantics and first-seen ordering.
func TestClassify_Dedup(t *testing.T) {
	t.Parallel()

	hrefs := []string{
		"https://twitter.com/b",
		"https://twitter.com/a",
		"https://twitter.com/b",
		"/about",
		"https://twitter.com/a",
	}
	got := classify(hrefs, socialPatterns)
	want := []string{"https://twitter.com/b", "https://twitter.com/a"}
	if !slices.Equal(got, want) {
		t.Errorf("classify() = %v, want %v", got, want)
	}
}
