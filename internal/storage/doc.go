// Package storage persists the published feed and guards it against regressions.
//
// The feed is a single JSON document (default data/tables.json) polled by the display
// page. Reads are tolerant: a missing or unreadable file is treated as a feed with two
// empty snapshots. Writes are atomic: the document is written to a temporary file in the
// same directory, synced, and renamed over the old one, so readers never see a partial
// file.
package storage
