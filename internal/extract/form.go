package extract

import (
	"slices"

	"github.com/elmoro10/fagerborg-tabeller/internal/standings"
)

// DeriveForm returns a copy of rows with each team's recent outcomes filled in from
// matches.
//
// newestFirst tells how matches are ordered. The walk always goes from the most recent
// match backwards, collecting at most length outcomes per known team, and the stored
// sequence is oldest first so the last entry is the latest result.
func DeriveForm(rows []standings.Row, matches []standings.Match, length int, newestFirst bool) []standings.Row {
	length = max(0, min(length, standings.MaxForm))

	form := make(map[string][]standings.Outcome, len(rows))
	for _, r := range rows {
		form[standings.TeamKey(r.Team)] = nil
	}

	visit := func(m standings.Match) {
		home, away := standings.TeamKey(m.Home), standings.TeamKey(m.Away)
		if home == away {
			return
		}
		for _, key := range []string{home, away} {
			seq, known := form[key]
			if !known || len(seq) >= length {
				continue
			}
			if o, ok := m.OutcomeFor(key); ok {
				form[key] = append(seq, o)
			}
		}
	}

	if newestFirst {
		for _, m := range matches {
			visit(m)
		}
	} else {
		for i := len(matches) - 1; i >= 0; i-- {
			visit(matches[i])
		}
	}

	out := make([]standings.Row, len(rows))
	for i, r := range rows {
		seq := slices.Clone(form[standings.TeamKey(r.Team)])
		slices.Reverse(seq)
		if seq == nil {
			seq = []standings.Outcome{}
		}
		r.Form = seq
		out[i] = r
	}
	return out
}
