package extract

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/elmoro10/fagerborg-tabeller/internal/config"
)

type concept struct {
	weight   float64
	keywords []string
}

// scorer ranks candidate tables by how much their header looks like a standings header.
type scorer struct {
	concepts []concept
	bonus    float64
	cap      int
}

func newScorer(s config.Scoring) scorer {
	sc := scorer{bonus: s.RowBonusWeight, cap: s.RowBonusCap}
	for _, w := range []config.Weighted{s.Position, s.Team, s.Points, s.Played, s.Goals} {
		sc.concepts = append(sc.concepts, concept{weight: w.Weight, keywords: foldKeywords(w.Keywords)})
	}
	return sc
}

// score sums the weight of every concept matched by at least one header, once per
// concept. Tables matching nothing score zero regardless of size.
func (sc scorer) score(headers []string, dataRows int) float64 {
	var total float64
	matched := false
	for _, c := range sc.concepts {
		for _, h := range headers {
			if matchAny(h, c.keywords) {
				total += c.weight
				matched = true
				break
			}
		}
	}
	if !matched {
		return 0
	}
	return total + float64(min(dataRows, sc.cap))*sc.bonus
}

// candidate is one <table> on the page with its folded header texts.
type candidate struct {
	table   *goquery.Selection
	headers []string
	rows    *goquery.Selection
	score   float64
}

// selectTable returns the best scoring table, or nil when every table scores zero.
// The first table wins among equal scores.
func (sc scorer) selectTable(doc *goquery.Document) *candidate {
	var best *candidate
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		c := newCandidate(table)
		c.score = sc.score(c.headers, countDataRows(c.rows))
		if c.score > 0 && (best == nil || c.score > best.score) {
			best = c
		}
	})
	return best
}

func newCandidate(table *goquery.Selection) *candidate {
	return &candidate{
		table:   table,
		headers: headerTexts(table),
		rows:    ownRows(table),
	}
}

// ownRows returns the rows of table, excluding rows of nested tables.
func ownRows(table *goquery.Selection) *goquery.Selection {
	return table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(table)
	})
}

// headerTexts reads thead cells, else the first row's th cells, else the first row's cells.
func headerTexts(table *goquery.Selection) []string {
	cells := table.ChildrenFiltered("thead").First().Find("th, td")
	if cells.Length() == 0 {
		first := ownRows(table).First()
		cells = first.ChildrenFiltered("th")
		if cells.Length() == 0 {
			cells = first.ChildrenFiltered("td")
		}
	}

	headers := make([]string, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, foldHeader(cell.Text()))
	})
	return headers
}

func countDataRows(rows *goquery.Selection) int {
	return rows.FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.ChildrenFiltered("td").Length() > 0
	}).Length()
}
