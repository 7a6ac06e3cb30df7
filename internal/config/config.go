// Package config holds the immutable run configuration: tracked competitions, endpoint
// templates, fetch settings and every heuristic keyword list and weight the extractor uses.
//
// A Config starts from Default, is merged with an optional JSON5 file (and its
// <name>.local.json5 override), and must pass Validate before the pipeline accepts it.
package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

const (
	MatchOrderNewestFirst = "newest-first"
	MatchOrderOldestFirst = "oldest-first"
)

// Competition is one tracked league/division.
type Competition struct {
	Key    string `json:"key" validate:"oneof=a b"`
	FiksID string `json:"fiksId" validate:"required"`
	Name   string `json:"name"`
}

// Weighted is a keyword concept used to score candidate tables.
type Weighted struct {
	Weight   float64  `json:"weight" validate:"gt=0"`
	Keywords []string `json:"keywords" validate:"required,dive,required"`
}

// Scoring configures the table candidate selector.
type Scoring struct {
	Position       Weighted `json:"position"`
	Team           Weighted `json:"team"`
	Points         Weighted `json:"points"`
	Played         Weighted `json:"played"`
	Goals          Weighted `json:"goals"`
	RowBonusWeight float64  `json:"rowBonusWeight" validate:"gte=0"`
	RowBonusCap    int      `json:"rowBonusCap" validate:"gte=0"`
}

// Columns holds header keywords per semantic column of a standings table.
type Columns struct {
	Position           []string `json:"position" validate:"required,dive,required"`
	Team               []string `json:"team" validate:"required,dive,required"`
	Played             []string `json:"played" validate:"required,dive,required"`
	Wins               []string `json:"wins" validate:"required,dive,required"`
	Draws              []string `json:"draws" validate:"required,dive,required"`
	Losses             []string `json:"losses" validate:"required,dive,required"`
	Goals              []string `json:"goals" validate:"required,dive,required"`
	Difference         []string `json:"difference" validate:"required,dive,required"`
	Points             []string `json:"points" validate:"required,dive,required"`
	// GoalsAgainst names the second goals column of layouts that split goals for and
	// against. Optional.
	GoalsAgainst       []string `json:"goalsAgainst" validate:"dive,required"`
	TeamLabelSelectors []string `json:"teamLabelSelectors" validate:"dive,required"`
}

// TextHeader holds the marker alternatives of the text fallback header line, in order.
type TextHeader struct {
	Position   []string `json:"position" validate:"required,dive,required"`
	Team       []string `json:"team" validate:"required,dive,required"`
	Played     []string `json:"played" validate:"required,dive,required"`
	Goals      []string `json:"goals" validate:"required,dive,required"`
	Difference []string `json:"difference" validate:"required,dive,required"`
	Points     []string `json:"points" validate:"required,dive,required"`
}

// Logos configures the logo associator.
type Logos struct {
	ImagePattern   string  `json:"imagePattern" validate:"required"`
	MinNameLen     int     `json:"minNameLen" validate:"min=1"`
	MaxNameLen     int     `json:"maxNameLen" validate:"gtfield=MinNameLen"`
	FuzzyThreshold float64 `json:"fuzzyThreshold" validate:"gte=0,lte=1"`
}

// Heuristics groups everything the extractor needs to read drifting markup.
type Heuristics struct {
	Scoring    Scoring    `json:"scoring"`
	Columns    Columns    `json:"columns"`
	TextHeader TextHeader `json:"textHeader"`
	Logos      Logos      `json:"logos"`
}

// Config is the complete run configuration. Treat it as a value; nothing mutates it
// after Validate.
type Config struct {
	Competitions []Competition `json:"competitions" validate:"len=2,unique=Key,dive"`
	TableURL     string        `json:"tableURL" validate:"required"`
	MatchesURL   string        `json:"matchesURL" validate:"required"`
	UserAgent    string        `json:"userAgent" validate:"required"`
	Timeout      string        `json:"timeout" validate:"required"`
	MatchOrder   string        `json:"matchOrder" validate:"oneof=newest-first oldest-first"`
	FormLength   int           `json:"formLength" validate:"min=1,max=5"`
	Output       string        `json:"output" validate:"required"`
	Heuristics   Heuristics    `json:"heuristics"`
}

var validate = validator.New()

// Validate checks struct constraints plus the ones tags cannot express.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return crerr.Wrap(err, "invalid config")
	}

	for _, tmpl := range []struct{ name, value string }{
		{"tableURL", c.TableURL},
		{"matchesURL", c.MatchesURL},
	} {
		if strings.Count(tmpl.value, "%s") != 1 {
			return crerr.Newf("invalid config: %s must contain exactly one %%s placeholder", tmpl.name)
		}
		u, err := url.Parse(fmt.Sprintf(tmpl.value, "0"))
		if err != nil {
			return crerr.Wrapf(err, "invalid config: %s", tmpl.name)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return crerr.Newf("invalid config: %s uses unsupported scheme %q", tmpl.name, u.Scheme)
		}
	}

	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return crerr.Wrap(err, "invalid config: timeout")
	}
	if _, err := regexp.Compile(c.Heuristics.Logos.ImagePattern); err != nil {
		return crerr.Wrap(err, "invalid config: heuristics.logos.imagePattern")
	}

	return nil
}

// FetchTimeout returns the parsed fetch timeout, falling back to the default when unset.
func (c Config) FetchTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

// TableURLFor renders the standings page URL of a competition.
func (c Config) TableURLFor(comp Competition) string {
	return fmt.Sprintf(c.TableURL, url.QueryEscape(comp.FiksID))
}

// MatchesURLFor renders the results page URL of a competition.
func (c Config) MatchesURLFor(comp Competition) string {
	return fmt.Sprintf(c.MatchesURL, url.QueryEscape(comp.FiksID))
}

// WithFiksIDs returns a copy with non-empty ids overriding competitions a and b.
func (c Config) WithFiksIDs(a, b string) Config {
	comps := make([]Competition, len(c.Competitions))
	copy(comps, c.Competitions)
	for i := range comps {
		switch {
		case comps[i].Key == "a" && a != "":
			comps[i].FiksID = a
		case comps[i].Key == "b" && b != "":
			comps[i].FiksID = b
		}
	}
	c.Competitions = comps
	return c
}

// WithOutput returns a copy writing to path when path is non-empty.
func (c Config) WithOutput(path string) Config {
	if path != "" {
		c.Output = path
	}
	return c
}
