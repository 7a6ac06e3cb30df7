package extract

import (
	"slices"

	"github.com/PuerkitoBio/goquery"

	"github.com/elmoro10/fagerborg-tabeller/internal/config"
	"github.com/elmoro10/fagerborg-tabeller/internal/standings"
)

type column int

const (
	colPosition column = iota
	colTeam
	colPlayed
	colWins
	colDraws
	colLosses
	colGoals
	colDifference
	colPoints
	numColumns
)

// Conventional order doubles as the positional fallback index.
var columnNames = [numColumns]string{
	"position", "team", "played", "wins", "draws", "losses", "goals", "difference", "points",
}

// resolveOrder lets specific columns claim their header before generic ones, so
// "Målforskjell" goes to difference before goals sees "mål".
var resolveOrder = []column{
	colDifference, colPoints, colPlayed, colWins, colDraws, colLosses, colGoals, colPosition, colTeam,
}

type columnMapper struct {
	keywords       [numColumns][]string
	against        []string
	labelSelectors []string
}

func newColumnMapper(c config.Columns) columnMapper {
	m := columnMapper{
		against:        foldKeywords(c.GoalsAgainst),
		labelSelectors: c.TeamLabelSelectors,
	}
	m.keywords[colPosition] = foldKeywords(c.Position)
	m.keywords[colTeam] = foldKeywords(c.Team)
	m.keywords[colPlayed] = foldKeywords(c.Played)
	m.keywords[colWins] = foldKeywords(c.Wins)
	m.keywords[colDraws] = foldKeywords(c.Draws)
	m.keywords[colLosses] = foldKeywords(c.Losses)
	m.keywords[colGoals] = foldKeywords(c.Goals)
	m.keywords[colDifference] = foldKeywords(c.Difference)
	m.keywords[colPoints] = foldKeywords(c.Points)
	return m
}

// layout is the resolved column positions of one table.
type layout struct {
	idx [numColumns]int
	// against is the goals-against column when goals are split in two, otherwise -1.
	against  int
	unmapped []string
}

// resolve maps every semantic column to a header index. Keywords are tried in their
// configured order so "pts" claims "Pts" before "p" can claim a "P" column. Columns
// without a matching header take their conventional index and are listed as unmapped.
func (m columnMapper) resolve(headers []string) layout {
	claimed := make([]bool, len(headers))
	resolved := [numColumns]bool{}
	l := layout{against: -1}

	claim := func(keywords []string) int {
		for _, kw := range keywords {
			for i, h := range headers {
				if !claimed[i] && matchKeyword(h, kw) {
					claimed[i] = true
					return i
				}
			}
		}
		return -1
	}

	for _, col := range resolveOrder {
		if i := claim(m.keywords[col]); i >= 0 {
			l.idx[col] = i
			resolved[col] = true
		}
	}
	if resolved[colGoals] {
		l.against = claim(m.against)
	}

	for col := colPosition; col < numColumns; col++ {
		if !resolved[col] {
			l.idx[col] = int(col)
			l.unmapped = append(l.unmapped, columnNames[col])
		}
	}
	return l
}

// rows extracts normalized rows from the selected table. goalsRead reports whether any
// row carried a parsable goals pair; a goals column that never parses was misassigned.
func (m columnMapper) rows(c *candidate, l layout) (out []standings.Row, goalsRead bool) {
	c.rows.Each(func(_ int, tr *goquery.Selection) {
		if tr.ChildrenFiltered("td").Length() == 0 {
			return
		}
		cells := tr.ChildrenFiltered("td, th")
		if isRepeatedHeader(cells, c.headers) {
			return
		}

		team := m.teamName(cells.Eq(l.idx[colTeam]))
		if team == "" {
			return
		}

		text := func(col column) string {
			return cells.Eq(l.idx[col]).Text()
		}

		goalsText := text(colGoals)
		if l.against >= 0 {
			goalsText = collapse(goalsText) + "-" + collapse(cells.Eq(l.against).Text())
		}
		if _, _, ok := GoalPair(goalsText); ok {
			goalsRead = true
		}

		goals := Goals(goalsText)
		diff, _ := Difference(text(colDifference), goals)
		out = append(out, standings.Row{
			Pos:    clean(text(colPosition)),
			Team:   team,
			Played: Digits(text(colPlayed)),
			Wins:   Digits(text(colWins)),
			Draws:  Digits(text(colDraws)),
			Losses: Digits(text(colLosses)),
			Goals:  goals,
			Diff:   diff,
			Points: Digits(text(colPoints)),
			Form:   []standings.Outcome{},
		})
	})
	return out, goalsRead
}

// teamName prefers a link or label inside the cell over the whole cell text.
func (m columnMapper) teamName(cell *goquery.Selection) string {
	for _, sel := range m.labelSelectors {
		if name := collapse(cell.Find(sel).First().Text()); name != "" {
			return name
		}
	}
	return collapse(cell.Text())
}

func isRepeatedHeader(cells *goquery.Selection, headers []string) bool {
	if len(headers) == 0 || cells.Length() != len(headers) {
		return false
	}
	texts := make([]string, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		texts = append(texts, foldHeader(cell.Text()))
	})
	return slices.Equal(texts, headers)
}
