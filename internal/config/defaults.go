package config

import "time"

const (
	// DefaultUserAgent identifies the job to fotball.no.
	DefaultUserAgent = "fagerborg-tabeller/1.0 (github.com/elmoro10/fagerborg-tabeller)"
	// DefaultTimeout bounds each page fetch.
	DefaultTimeout = 20 * time.Second
)

// Default returns the built-in configuration. Competition fiksIds are empty and must
// come from a config file or flags.
func Default() Config {
	return Config{
		Competitions: []Competition{
			{Key: "a", Name: "A-lag"},
			{Key: "b", Name: "B-lag"},
		},
		TableURL:   "https://www.fotball.no/fotballdata/turnering/tabell/?fiksId=%s",
		MatchesURL: "https://www.fotball.no/fotballdata/turnering/terminliste/?fiksId=%s",
		UserAgent:  DefaultUserAgent,
		Timeout:    DefaultTimeout.String(),
		MatchOrder: MatchOrderNewestFirst,
		FormLength: 5,
		Output:     "data/tables.json",
		Heuristics: DefaultHeuristics(),
	}
}

// DefaultHeuristics returns keyword lists for Norwegian and English table layouts.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		Scoring: Scoring{
			Position: Weighted{Weight: 2, Keywords: []string{"plass", "pos", "position", "place", "#", "nr"}},
			Team:     Weighted{Weight: 3, Keywords: []string{"lag", "team", "klubb", "club"}},
			Points:   Weighted{Weight: 3, Keywords: []string{"poeng", "points", "pts", "p"}},
			Played:   Weighted{Weight: 2, Keywords: []string{"kamper", "spilt", "played", "k", "sp", "mp", "gp"}},
			Goals:    Weighted{Weight: 1, Keywords: []string{"mål", "goals", "score", "gf"}},

			RowBonusWeight: 0.05,
			RowBonusCap:    30,
		},
		Columns: Columns{
			Position:   []string{"plass", "pos", "position", "place", "#", "nr"},
			Team:       []string{"lag", "team", "klubb", "club"},
			Played:     []string{"kamper", "kamp", "spilt", "played", "pld", "k", "sp", "mp", "gp", "s", "p"},
			Wins:       []string{"vunnet", "seier", "seire", "wins", "won", "v", "w"},
			Draws:      []string{"uavgjort", "draws", "drawn", "u", "d"},
			Losses:     []string{"tapt", "tap", "losses", "lost", "t", "l"},
			Goals:      []string{"målscore", "mål", "goals", "score", "gf"},
			Difference: []string{"målforskjell", "forskjell", "diff", "+/-", "gd", "md"},
			Points:     []string{"poeng", "points", "pts", "p"},

			GoalsAgainst:       []string{"goals against", "against", "ga", "mål mot", "innslupne", "imot"},
			TeamLabelSelectors: []string{"a", "label", "[class*='name']"},
		},
		TextHeader: TextHeader{
			Position:   []string{"plass", "pos", "#", "nr"},
			Team:       []string{"lag", "team", "klubb"},
			Played:     []string{"kamper", "kamp", "spilt", "played", "k"},
			Goals:      []string{"mål", "goals", "score"},
			Difference: []string{"målforskjell", "forskjell", "diff", "+/-"},
			Points:     []string{"poeng", "points", "pts", "p"},
		},
		Logos: Logos{
			ImagePattern:   `(?i)(logo|klubb|club|crest|emblem)[^?#]*\.(png|jpe?g|gif|svg|webp)`,
			MinNameLen:     2,
			MaxNameLen:     60,
			FuzzyThreshold: 0.92,
		},
	}
}
