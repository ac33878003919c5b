// Package file provides the TOML settings file for ghcorpus.
//
// The file has three tables: [clean] for cleaning options, [scrape] for
// the GitHub scraper and [data] for artefact and database locations.
package file
