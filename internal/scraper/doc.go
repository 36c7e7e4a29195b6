// Package scraper turns one website URL into a stored model.Website.
//
// A scrape fetches the page, reads the title and meta description, sorts
// the page's anchors into social links and payment gateway links, asks a
// TechnologyDetector for the technologies in use and hands the result to a
// WebsiteSaver. Nothing is saved when any of these steps fails.
package scraper
