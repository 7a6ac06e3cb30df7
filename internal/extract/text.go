package extract

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/elmoro10/fagerborg-tabeller/internal/config"
	"github.com/elmoro10/fagerborg-tabeller/internal/standings"
)

// rowLine is the strict per-line grammar of a text standings row:
// position, team, played, wins, draws, losses, goals for-against, difference, points.
var rowLine = regexp.MustCompile(
	`^(\d+)\.?\s+(.+?)\s+(\d+)\s+(\d+)\s+(\d+)\s+(\d+)\s+(\d+)\s*` + dashClass +
		`\s*(\d+)\s+((?:\+|` + dashClass + `)?\d+)\s+(\d+)$`,
)

var lineBreaking = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Caption: true, atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Fieldset: true, atom.Figure: true, atom.Footer: true, atom.Form: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.P: true, atom.Pre: true, atom.Section: true, atom.Table: true,
	atom.Tbody: true, atom.Tfoot: true, atom.Thead: true, atom.Tr: true, atom.Ul: true,
}

var skipped = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Noscript: true, atom.Template: true, atom.Head: true,
}

// flattenLines renders the visible text of a document as one string per visual line.
// Block elements and <br> end a line, table cells are separated by a space, and
// whitespace is collapsed. Newlines in text only break lines inside <pre>.
func flattenLines(root *html.Node) []string {
	var (
		lines []string
		cur   strings.Builder
	)
	flush := func() {
		if line := collapse(cur.String()); line != "" {
			lines = append(lines, line)
		}
		cur.Reset()
	}

	var walk func(n *html.Node, pre bool)
	walk = func(n *html.Node, pre bool) {
		switch n.Type {
		case html.TextNode:
			if !pre {
				cur.WriteString(n.Data)
				return
			}
			parts := strings.Split(n.Data, "\n")
			for i, part := range parts {
				if i > 0 {
					flush()
				}
				cur.WriteString(part)
			}
			return
		case html.ElementNode:
			if skipped[n.DataAtom] {
				return
			}
			if n.DataAtom == atom.Br {
				flush()
				return
			}
		}

		isCell := n.Type == html.ElementNode && (n.DataAtom == atom.Td || n.DataAtom == atom.Th)
		isBlock := n.Type == html.ElementNode && lineBreaking[n.DataAtom]
		pre = pre || (n.Type == html.ElementNode && n.DataAtom == atom.Pre)

		if isBlock {
			flush()
		}
		if isCell {
			cur.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, pre)
		}
		if isCell {
			cur.WriteByte(' ')
		}
		if isBlock {
			flush()
		}
	}

	walk(root, false)
	flush()
	return lines
}

// textParser finds a standings header line and reads the rows that follow it.
type textParser struct {
	header *regexp.Regexp
}

func newTextParser(h config.TextHeader) (textParser, error) {
	re, err := compileHeader(h.Position, h.Team, h.Played, h.Goals, h.Difference, h.Points)
	if err != nil {
		return textParser{}, err
	}
	return textParser{header: re}, nil
}

// compileHeader builds one case-insensitive pattern requiring a marker from every group,
// in order. Longer markers are tried first so "målforskjell" is not read as "mål".
func compileHeader(groups ...[]string) (*regexp.Regexp, error) {
	parts := make([]string, 0, len(groups))
	for _, markers := range groups {
		quoted := make([]string, 0, len(markers))
		for _, m := range markers {
			quoted = append(quoted, regexp.QuoteMeta(m))
		}
		slices.SortStableFunc(quoted, func(a, b string) int {
			return cmp.Compare(len(b), len(a))
		})
		parts = append(parts, "(?:"+strings.Join(quoted, "|")+")")
	}
	return regexp.Compile("(?i)" + strings.Join(parts, ".*?"))
}

// parse scans lines after the first header match. Lines that do not match the row
// grammar exactly are skipped, and scanning continues to the end of the text.
func (p textParser) parse(lines []string) []standings.Row {
	start := -1
	for i, line := range lines {
		if p.header.MatchString(line) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	var rows []standings.Row
	for _, line := range lines[start:] {
		m := rowLine.FindStringSubmatch(collapse(line))
		if m == nil {
			continue
		}
		goals := m[7] + "-" + m[8]
		diff, _ := Difference(m[9], goals)
		rows = append(rows, standings.Row{
			Pos:    m[1],
			Team:   m[2],
			Played: m[3],
			Wins:   m[4],
			Draws:  m[5],
			Losses: m[6],
			Goals:  Goals(goals),
			Diff:   diff,
			Points: m[10],
			Form:   []standings.Outcome{},
		})
	}
	return rows
}
