// Package pipeline runs one publication cycle: fetch and extract both competitions,
// compare against the published feed, guard, and write.
//
// The run is strictly sequential and fail-fast. A fetch failure aborts before anything
// is written; a guard refusal leaves the previous feed untouched.
package pipeline

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/elmoro10/fagerborg-tabeller/internal/config"
	"github.com/elmoro10/fagerborg-tabeller/internal/extract"
	"github.com/elmoro10/fagerborg-tabeller/internal/logger"
	"github.com/elmoro10/fagerborg-tabeller/internal/standings"
	"github.com/elmoro10/fagerborg-tabeller/internal/storage"
)

// Fetcher returns the markup of a page or a fetch failure.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Store reads the previous feed and writes the new one.
type Store interface {
	Load() *standings.Feed
	Save(feed *standings.Feed) error
}

// Report describes a finished run.
type Report struct {
	Feed    *standings.Feed
	Changes map[string]*standings.CompareResult
	Written bool
}

// Runner executes runs against one immutable configuration.
type Runner struct {
	cfg       config.Config
	fetcher   Fetcher
	store     Store
	extractor *extract.Extractor
	now       func() time.Time
}

// New validates cfg and prepares a Runner.
func New(cfg config.Config, fetcher Fetcher, store Store) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ex, err := extract.New(cfg.Heuristics)
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:       cfg,
		fetcher:   fetcher,
		store:     store,
		extractor: ex,
		now:       time.Now,
	}, nil
}

// Run builds a fresh feed and publishes it unless the guard refuses. On refusal the
// report is still returned so callers can inspect what was extracted.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	defer func() {
		logger.RecordTiming("run", time.Since(start))
	}()

	feed := standings.NewFeed()
	for _, comp := range r.cfg.Competitions {
		snap, err := r.competition(ctx, comp)
		if err != nil {
			return nil, crerr.Wrapf(err, "competition %s", comp.Key)
		}
		feed.Set(comp.Key, snap)
	}

	previous := r.store.Load()
	report := &Report{
		Feed:    feed,
		Changes: make(map[string]*standings.CompareResult, len(standings.Keys)),
	}
	for _, key := range standings.Keys {
		changes := standings.Compare(previous.Get(key), feed.Get(key))
		report.Changes[key] = changes
		logger.Info("compared with published feed", logger.Fields{
			"competition": key,
			"added":       changes.Added,
			"removed":     changes.Removed,
			"moves":       len(changes.Moves),
			"row_delta":   changes.Delta,
		})
	}

	if err := storage.Check(previous, feed); err != nil {
		logger.IncrCounter("guard.refused")
		logger.Error("refusing to publish feed", logger.Fields{
			"rows_a": feed.A.Len(),
			"rows_b": feed.B.Len(),
		}, err)
		return report, err
	}

	feed.Stamp(r.now())
	if err := r.store.Save(feed); err != nil {
		return report, crerr.Wrap(err, "saving feed")
	}
	report.Written = true

	logger.Info("published feed", logger.Fields{
		"updated_at": feed.UpdatedAt,
		"rows_a":     feed.A.Len(),
		"rows_b":     feed.B.Len(),
	})
	return report, nil
}

// competition fetches and extracts one competition's standings, logos and form.
func (r *Runner) competition(ctx context.Context, comp config.Competition) (*standings.Snapshot, error) {
	tableURL := r.cfg.TableURLFor(comp)
	page, err := r.fetcher.Fetch(ctx, tableURL)
	if err != nil {
		return nil, crerr.Wrap(err, "fetch table page")
	}

	res, err := r.extractor.Standings(page)
	if err != nil {
		return nil, crerr.Wrap(err, "extract standings")
	}

	fields := logger.Fields{
		"competition": comp.Key,
		"fiks_id":     comp.FiksID,
		"source":      string(res.Source),
		"rows":        len(res.Rows),
	}
	logger.SetGauge("rows."+comp.Key, float64(len(res.Rows)))
	if res.Source == standings.SourceText {
		logger.IncrCounter("extract.text_fallback")
	}
	if res.Degraded {
		logger.IncrCounter("extract.degraded")
		fields["unmapped"] = res.Unmapped
		logger.Warn("standings extracted in degraded mode", fields)
	} else {
		logger.Info("extracted standings", fields)
	}

	matchesURL := r.cfg.MatchesURLFor(comp)
	results, err := r.fetcher.Fetch(ctx, matchesURL)
	if err != nil {
		return nil, crerr.Wrap(err, "fetch results page")
	}

	logos, err := r.extractor.Logos(results, matchesURL)
	if err != nil {
		return nil, crerr.Wrap(err, "extract logos")
	}
	matches, err := r.extractor.Matches(results)
	if err != nil {
		return nil, crerr.Wrap(err, "extract matches")
	}
	logger.Debug("read results page", logger.Fields{
		"competition": comp.Key,
		"logos":       logos.Len(),
		"matches":     len(matches),
	})

	rows := extract.ApplyLogos(res.Rows, logos, r.cfg.Heuristics.Logos.FuzzyThreshold)
	rows = extract.DeriveForm(rows, matches, r.cfg.FormLength, r.cfg.MatchOrder == config.MatchOrderNewestFirst)
	res.Rows = rows

	return res.Snapshot(comp.FiksID), nil
}
