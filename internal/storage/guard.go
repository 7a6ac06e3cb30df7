package storage

import (
	crerr "github.com/cockroachdb/errors"

	"github.com/elmoro10/fagerborg-tabeller/internal/standings"
)

var (
	// ErrExtractionRegression is returned when a competition that had rows now has none.
	ErrExtractionRegression = crerr.New("extraction regression")

	// ErrEmptyFeed is returned when every competition is empty. It is also an
	// extraction regression.
	ErrEmptyFeed = crerr.Mark(crerr.New("refusing to publish an empty feed"), ErrExtractionRegression)
)

// Check decides whether next may replace previous. It refuses when any competition goes
// from non-empty to empty, and when every competition in next is empty regardless of
// history. Degraded but non-empty snapshots are accepted.
func Check(previous, next *standings.Feed) error {
	empty := 0
	for _, key := range standings.Keys {
		prev, cur := previous.Get(key), next.Get(key)
		if !prev.Empty() && cur.Empty() {
			return crerr.Mark(
				crerr.Newf("competition %s: had %d rows, new extraction has none", key, prev.Len()),
				ErrExtractionRegression,
			)
		}
		if cur.Empty() {
			empty++
		}
	}

	if empty == len(standings.Keys) {
		return crerr.WithStack(ErrEmptyFeed)
	}
	return nil
}
