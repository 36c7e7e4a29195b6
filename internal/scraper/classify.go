package scraper

import (
	"regexp"
)

// socialPatterns match links to social media profiles.
// Patterns are case-sensitive and may match anywhere in the href.
var socialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https://(www\.)?instagram\.com/.+`),
	regexp.MustCompile(`https://(www\.)?facebook\.com/.+`),
	regexp.MustCompile(`https://(www\.)?twitter\.com/.+`),
	regexp.MustCompile(`https://(www\.)?youtube\.com/user/.+`),
	regexp.MustCompile(`https://(www\.)?tiktok\.com/.+`),
	regexp.MustCompile(`https://(www\.)?linkedin\.com/company/.+`),
}

// paymentPatterns match subscription, donation and checkout links on any
// host, and links to known payment providers.
var paymentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https://.*/subscribe/`),
	regexp.MustCompile(`https://.*/donate/`),
	regexp.MustCompile(`https://.*/subscription/`),
	regexp.MustCompile(`https://.*/buy/`),
	regexp.MustCompile(`https://(www\.)?paypal\.me/.+`),
	regexp.MustCompile(`https://(www\.)?razorpay.+`),
	regexp.MustCompile(`https://(www\.)?stripe.+`),
}

// sitePaymentPaths are subscription and donation paths directly under the
// scraped site.
var sitePaymentPaths = []string{"subscribe", "subscription", "donate"}

// paymentPatternsFor returns the payment patterns for a site: the
// site-relative patterns followed by paymentPatterns. The site URL is
// escaped so it only ever matches literally.
func paymentPatternsFor(siteURL string) []*regexp.Regexp {
	quoted := regexp.QuoteMeta(siteURL)
	patterns := make([]*regexp.Regexp, 0, len(sitePaymentPaths)+len(paymentPatterns))
	for _, path := range sitePaymentPaths {
		patterns = append(patterns, regexp.MustCompile(quoted+`/?`+path))
	}
	return append(patterns, paymentPatterns...)
}

// classify returns the hrefs matching any of the patterns, without
// duplicates, in the order they first appear.
func classify(hrefs []string, patterns []*regexp.Regexp) []string {
	seen := make(map[string]struct{})
	var matched []string
	for _, href := range hrefs {
		if _, ok := seen[href]; ok {
			continue
		}
		for _, re := range patterns {
			if re.MatchString(href) {
				seen[href] = struct{}{}
				matched = append(matched, href)
				break
			}
		}
	}
	return matched
}
