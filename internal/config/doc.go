// Package config provides configuration structures and utilities for sitescan.
// It covers database selection and credentials, the location of the sites
// file, HTTP fetch settings and report output preferences.
//
// Values are resolved in this order, later sources winning:
//  1. Defaults from NewConfig
//  2. The YAML configuration file (.sitescan)
//  3. Environment variables, including those loaded from .env files
//  4. Command line flags
//
// Database credentials that are still missing after these steps are read
// from an interactive prompt.
package config
