// Package extract turns loosely structured standings and results pages into normalized
// rows.
//
// Every stage is a pure function of its input markup and the configured heuristics:
//
//   - the selector scores each <table> by header keywords and picks the likeliest
//     standings table
//   - the column mapper resolves semantic columns by keyword, falling back to the
//     conventional column order and reporting what it could not resolve
//   - the text parser handles pages without a usable table by matching a header
//     signature and a strict per-line grammar
//   - the normalizer canonicalizes dashes, digits, goal pairs and goal difference
//   - logos and match results are read from the competition's results page, and
//     recent form is derived from the match list
//
// Ambiguous input never fails extraction. It degrades to default values and is reported
// through Result.Degraded and Result.Unmapped.
package extract
