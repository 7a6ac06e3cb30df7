// Package standings defines the league table feed: standings rows, match results,
// per-competition snapshots and the two-competition feed persisted for the display page.
//
// All numeric row fields are carried as strings because that is the wire contract of the
// persisted file. Compare summarizes what moved between two snapshots of the same
// competition and is used for run logging only.
package standings
