// Package fingerprint identifies the technologies a website is built with.
//
// Detection is delegated to wappalyzergo, which matches response headers
// and the HTML body against the Wappalyzer fingerprint database. The
// Detector issues its own request for the page so it can be used
// independently of the scraper's fetch.
package fingerprint
