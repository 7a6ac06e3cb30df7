package extract

import (
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"

	"github.com/elmoro10/fagerborg-tabeller/internal/config"
	"github.com/elmoro10/fagerborg-tabeller/internal/standings"
)

// Result is the outcome of reading one standings page.
type Result struct {
	Rows     []standings.Row
	Source   standings.Source
	Degraded bool
	Unmapped []string
}

// Snapshot wraps the result for competition fiksID.
func (r Result) Snapshot(fiksID string) *standings.Snapshot {
	snap := standings.NewSnapshot(fiksID)
	snap.Source = r.Source
	snap.Degraded = r.Degraded
	snap.Unmapped = r.Unmapped
	if r.Rows != nil {
		snap.Rows = r.Rows
	}
	return snap
}

// Extractor applies one set of heuristics. It holds no per-page state and is safe to
// reuse across pages.
type Extractor struct {
	scorer  scorer
	columns columnMapper
	text    textParser
	logos   logoScanner
}

// New compiles the heuristics into an Extractor.
func New(h config.Heuristics) (*Extractor, error) {
	text, err := newTextParser(h.TextHeader)
	if err != nil {
		return nil, crerr.Wrap(err, "compiling text header pattern")
	}
	logos, err := newLogoScanner(h.Logos)
	if err != nil {
		return nil, crerr.Wrap(err, "compiling logo image pattern")
	}
	return &Extractor{
		scorer:  newScorer(h.Scoring),
		columns: newColumnMapper(h.Columns),
		text:    text,
		logos:   logos,
	}, nil
}

func parse(page string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, crerr.Wrap(err, "parsing HTML")
	}
	return doc, nil
}

// Standings extracts the league table from a standings page. The best scoring table is
// read through the column mapper; when no table qualifies, or the chosen one yields no
// rows, the flattened page text is parsed instead.
func (e *Extractor) Standings(page string) (Result, error) {
	doc, err := parse(page)
	if err != nil {
		return Result{}, err
	}

	res := Result{Source: standings.SourceNone}
	if c := e.scorer.selectTable(doc); c != nil {
		l := e.columns.resolve(c.headers)
		if rows, goalsRead := e.columns.rows(c, l); len(rows) > 0 {
			unmapped := l.unmapped
			if !goalsRead && !slices.Contains(unmapped, columnNames[colGoals]) {
				unmapped = append(unmapped, columnNames[colGoals])
			}
			return Result{
				Rows:     rows,
				Source:   standings.SourceTable,
				Degraded: len(unmapped) > 0,
				Unmapped: unmapped,
			}, nil
		}
		res.Degraded = true
	}

	if rows := e.text.parse(flattenLines(doc.Get(0))); len(rows) > 0 {
		return Result{Rows: rows, Source: standings.SourceText, Degraded: res.Degraded}, nil
	}
	return res, nil
}

// Logos collects team logos from a results page; relative sources resolve against
// pageURL.
func (e *Extractor) Logos(page, pageURL string) (*LogoMap, error) {
	doc, err := parse(page)
	if err != nil {
		return nil, err
	}
	return e.logos.scan(doc, pageURL), nil
}

// Matches reads played matches from a results page in listed order. Score cells in table
// rows are preferred; pages without them are read line by line.
func (e *Extractor) Matches(page string) ([]standings.Match, error) {
	doc, err := parse(page)
	if err != nil {
		return nil, err
	}
	if matches := tableMatches(doc); len(matches) > 0 {
		return matches, nil
	}
	return lineMatches(flattenLines(doc.Get(0))), nil
}
