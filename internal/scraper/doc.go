// Package scraper fetches the public standings and results pages.
//
// The fetcher is deliberately thin: one GET per page with a fixed timeout, no retries.
// Every transport error and non-2xx response is marked with ErrFetchFailure so callers
// can abort the run with errors.Is regardless of how much context was wrapped around it.
package scraper
