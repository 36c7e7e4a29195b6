// Package main provides the entry point for the sitescan CLI.
//
// sitescan reads a list of website URLs, scrapes each page for its title,
// meta description, social media links, payment gateway links and the
// technologies it is built with, and stores the results in MySQL or SQLite.
//
// Usage:
//
//	sitescan scan --list files/sites.txt
//	sitescan list
//
// See --help for all available options.
package main

// main is the entry point for sitescan.
func main() {
	Execute()
}
