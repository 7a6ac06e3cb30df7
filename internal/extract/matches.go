package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/elmoro10/fagerborg-tabeller/internal/standings"
)

// Colons are left out so kickoff times on unplayed fixtures are not read as scores. A
// trailing half-time score in parentheses is ignored.
const (
	scorePair = `(\d+)\s*` + dashClass + `\s*(\d+)`
	halfTime  = `\(\d+\s*` + dashClass + `\s*\d+\)`
)

var (
	scoreCell = regexp.MustCompile(`^` + scorePair + `(?:\s*` + halfTime + `)?$`)
	scoreLine = regexp.MustCompile(`^(.+?)\s+` + scorePair + `\s+(?:` + halfTime + `\s+)?(.+)$`)
)

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// tableMatches reads played matches from table rows in document order. In each row the
// first score cell splits home (nearest preceding named cell) from away (nearest
// following one).
func tableMatches(doc *goquery.Document) []standings.Match {
	var out []standings.Match
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("td, th")
		texts := make([]string, cells.Length())
		cells.Each(func(i int, cell *goquery.Selection) {
			texts[i] = cellName(cell)
		})

		score := -1
		var hg, ag int
		for i, t := range texts {
			if m := scoreCell.FindStringSubmatch(t); m != nil {
				var ok bool
				if hg, ag, ok = atoiPair(m[1], m[2]); ok {
					score = i
					break
				}
			}
		}
		if score < 0 {
			return
		}

		home, away := "", ""
		for i := score - 1; i >= 0 && home == ""; i-- {
			if hasLetter(texts[i]) {
				home = texts[i]
			}
		}
		for i := score + 1; i < len(texts) && away == ""; i++ {
			if hasLetter(texts[i]) {
				away = texts[i]
			}
		}
		if home == "" || away == "" {
			return
		}
		out = append(out, standings.Match{Home: home, Away: away, HomeGoals: hg, AwayGoals: ag})
	})
	return out
}

// cellName prefers link text, which carries the team name on results pages.
func cellName(cell *goquery.Selection) string {
	if name := collapse(cell.Find("a").First().Text()); name != "" {
		return name
	}
	return collapse(cell.Text())
}

// lineMatches is the fallback for result lists rendered as plain lines.
func lineMatches(lines []string) []standings.Match {
	var out []standings.Match
	for _, line := range lines {
		m := scoreLine.FindStringSubmatch(collapse(line))
		if m == nil || !hasLetter(m[1]) || !hasLetter(m[4]) {
			continue
		}
		hg, ag, ok := atoiPair(m[2], m[3])
		if !ok {
			continue
		}
		out = append(out, standings.Match{Home: m[1], Away: m[4], HomeGoals: hg, AwayGoals: ag})
	}
	return out
}

func atoiPair(a, b string) (int, int, bool) {
	x, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, false
	}
	y, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, false
	}
	return x, y, true
}
