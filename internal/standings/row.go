package standings

import (
	"strings"

	"golang.org/x/text/cases"
)

// MaxForm is the longest form sequence kept for a team.
const MaxForm = 5

// Outcome is one recent result from a team's point of view.
type Outcome string

const (
	Win  Outcome = "W"
	Draw Outcome = "D"
	Loss Outcome = "L"
)

// Valid reports whether o is one of Win, Draw, Loss.
func (o Outcome) Valid() bool {
	return o == Win || o == Draw || o == Loss
}

// Row is one line of a league table.
type Row struct {
	Pos    string    `json:"pos"`
	Team   string    `json:"team"`
	Logo   string    `json:"logo,omitempty"`
	Played string    `json:"played"`
	Wins   string    `json:"wins"`
	Draws  string    `json:"draws"`
	Losses string    `json:"losses"`
	Goals  string    `json:"goals"` // "<for>-<against>"
	Diff   string    `json:"diff"`
	Points string    `json:"points"`
	Form   []Outcome `json:"form"`
}

// Match is a played match as listed on a results page.
type Match struct {
	Home      string
	Away      string
	HomeGoals int
	AwayGoals int
}

// OutcomeFor returns the result for team key, or false when the team did not play.
func (m Match) OutcomeFor(key string) (Outcome, bool) {
	var own, other int
	switch key {
	case TeamKey(m.Home):
		own, other = m.HomeGoals, m.AwayGoals
	case TeamKey(m.Away):
		own, other = m.AwayGoals, m.HomeGoals
	default:
		return "", false
	}

	switch {
	case own > other:
		return Win, true
	case own < other:
		return Loss, true
	default:
		return Draw, true
	}
}

var dashReplacer = strings.NewReplacer(
	"\u2212", "-", // minus sign
	"\u2013", "-", // en dash
	"\u2014", "-", // em dash
	"\u2012", "-", // figure dash
	"\u2010", "-", // hyphen
	"\u2011", "-", // non-breaking hyphen
)

// NormalizeDashes replaces dash-like code points with an ASCII hyphen.
func NormalizeDashes(s string) string {
	return dashReplacer.Replace(s)
}

// TeamKey normalizes a team name for lookups: dashes unified, whitespace collapsed,
// case-folded. Stored names keep their source spelling.
func TeamKey(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(NormalizeDashes(name)), " "))
}
