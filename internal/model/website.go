package model

import "unicode/utf8"

// NotAvailable is the sentinel stored when a field cannot be extracted.
const NotAvailable = "NA"

// Column widths of the relational schema, measured in characters.
const (
	// MaxTitleLength is the width of websites.website_name.
	// Longer titles are truncated to this length.
	MaxTitleLength = 120

	// MaxDescriptionLength is the longest description that is stored.
	// Longer descriptions are truncated to this length.
	MaxDescriptionLength = 500

	// MaxSocialLinkLength is the width of social_links.social_link.
	MaxSocialLinkLength = 60

	// MaxTechnologyLength is the width of technologies.technologies.
	MaxTechnologyLength = 60

	// MaxPaymentGatewayLength is the width of payment_gateways.payment_gateway.
	MaxPaymentGatewayLength = 120
)

// Website is the parent record for one scraped URL.
// Child collections are kept on the struct so they can be persisted in the
// same transaction as the parent row.
type Website struct {
	// ID is the generated website_id. Zero until the row is stored.
	ID int64 `json:"id,omitempty"`

	// URL is the address the website was scraped from.
	// It is not part of the stored schema.
	URL string `json:"url"`

	// Name is the page title, truncated to MaxTitleLength.
	Name string `json:"name"`

	// Description is the meta description, truncated to MaxDescriptionLength,
	// or NotAvailable.
	Description string `json:"description"`

	// SocialLinks are the unique social media links found on the page.
	SocialLinks []string `json:"social_links,omitempty"`

	// Technologies are the technology labels reported by fingerprinting.
	Technologies []string `json:"technologies,omitempty"`

	// PaymentGateways are the unique payment or donation links found on the page.
	PaymentGateways []string `json:"payment_gateways,omitempty"`

	// Warnings are non-fatal problems met while scraping.
	Warnings []string `json:"warnings,omitempty"`
}

// HasDescription reports whether a description was extracted.
func (w *Website) HasDescription() bool {
	return w.Description != NotAvailable
}

// AddWarning records a non-fatal problem.
func (w *Website) AddWarning(msg string) {
	w.Warnings = append(w.Warnings, msg)
}

// Truncate returns the first max characters of s.
// Strings that already fit are returned unchanged.
func Truncate(s string, max int) string {
	if max < 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

// FitsColumn reports whether s can be stored in a column of the given width.
// A value whose length equals the width is rejected.
func FitsColumn(s string, width int) bool {
	return utf8.RuneCountInString(s) < width
}

// FilterByLength returns the values that fit a column of the given width,
// preserving their order. Values that do not fit are dropped.
func FilterByLength(values []string, width int) []string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if FitsColumn(v, width) {
			kept = append(kept, v)
		}
	}
	return kept
}
