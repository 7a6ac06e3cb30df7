// Package cli implements the command-line interface for fagerborg-tabeller.
//
// The cli package provides the Cobra-based CLI with two commands: run, which fetches
// both competitions, guards against regressions and publishes the feed file, and show,
// which prints a published feed as tables or JSON. Exit codes distinguish a refused
// publication (2) from other failures (1).
package cli
