package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinSitesFile makes ReadSites read the URL list from standard input.
const StdinSitesFile = "-"

// ReadSites reads the newline-delimited URL list at path.
// Each line is trimmed of surrounding whitespace and blank lines are
// skipped. The URLs are returned in file order.
func ReadSites(path string) ([]string, error) {
	if path == StdinSitesFile {
		return ParseSites(os.Stdin)
	}

	f, err := os.Open(path) //nolint:gosec // User-provided sites file is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open sites file: %w", err)
	}
	defer f.Close()

	return ParseSites(f)
}

// ParseSites reads a newline-delimited URL list from r.
func ParseSites(r io.Reader) ([]string, error) {
	sites := make([]string, 0)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		site := strings.TrimSpace(sc.Text())
		if site == "" {
			continue
		}
		sites = append(sites, site)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sites: %w", err)
	}

	return sites, nil
}
