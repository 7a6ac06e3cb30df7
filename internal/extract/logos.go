package extract

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/antzucaro/matchr"

	"github.com/elmoro10/fagerborg-tabeller/internal/config"
	"github.com/elmoro10/fagerborg-tabeller/internal/standings"
)

// LogoMap maps case-folded team names to logo URLs, remembering insertion order.
type LogoMap struct {
	keys []string
	urls map[string]string
}

// NewLogoMap returns an empty map.
func NewLogoMap() *LogoMap {
	return &LogoMap{urls: make(map[string]string)}
}

// Add records url for team unless the team already has one. It reports whether the
// entry was added.
func (m *LogoMap) Add(team, logoURL string) bool {
	key := standings.TeamKey(team)
	if key == "" || logoURL == "" {
		return false
	}
	if _, ok := m.urls[key]; ok {
		return false
	}
	m.keys = append(m.keys, key)
	m.urls[key] = logoURL
	return true
}

// Len returns the number of teams with a logo.
func (m *LogoMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Lookup finds the logo of team by exact key, then by the closest Jaro-Winkler match at
// or above threshold. Fuzzy candidates must carry the same team number, so "Lyn 2"
// never borrows the logo of "Lyn". Ties go to the earliest inserted key.
func (m *LogoMap) Lookup(team string, threshold float64) (string, bool) {
	if m.Len() == 0 {
		return "", false
	}
	key := standings.TeamKey(team)
	if u, ok := m.urls[key]; ok {
		return u, true
	}

	number := teamNumber(key)
	best, bestScore := "", 0.0
	for _, k := range m.keys {
		if teamNumber(k) != number {
			continue
		}
		s := matchr.JaroWinkler(key, k, false)
		if s >= threshold && s > bestScore {
			best, bestScore = k, s
		}
	}
	if best == "" {
		return "", false
	}
	return m.urls[best], true
}

// teamNumber returns the trailing numeric token of a team key ("lyn 2" gives "2"), or
// "" for a first team.
func teamNumber(key string) string {
	tail := key[strings.LastIndexByte(key, ' ')+1:]
	if digitsPattern.MatchString(tail) {
		return tail
	}
	return ""
}

type logoScanner struct {
	image          *regexp.Regexp
	minLen, maxLen int
}

func newLogoScanner(l config.Logos) (logoScanner, error) {
	re, err := regexp.Compile(l.ImagePattern)
	if err != nil {
		return logoScanner{}, err
	}
	return logoScanner{image: re, minLen: l.MinNameLen, maxLen: l.MaxNameLen}, nil
}

// scan collects logos from links that embed a club-logo image. The link text names the
// team, falling back to the image alt or title.
func (s logoScanner) scan(doc *goquery.Document, pageURL string) *LogoMap {
	// An unparsable page URL leaves relative sources as they are.
	base, _ := url.Parse(pageURL)

	logos := NewLogoMap()
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		img := a.Find("img").FilterFunction(func(_ int, img *goquery.Selection) bool {
			return s.imageSource(img) != ""
		}).First()
		if img.Length() == 0 {
			return
		}
		src := s.imageSource(img)

		name := collapse(a.Text())
		if name == "" {
			name = collapse(img.AttrOr("alt", ""))
		}
		if name == "" {
			name = collapse(img.AttrOr("title", ""))
		}
		if n := utf8.RuneCountInString(name); n < s.minLen || n > s.maxLen {
			return
		}

		logos.Add(name, resolveURL(base, src))
	})
	return logos
}

// imageSource returns the first of src and data-src that looks like a club logo.
func (s logoScanner) imageSource(img *goquery.Selection) string {
	for _, attr := range []string{"src", "data-src"} {
		if v, ok := img.Attr(attr); ok && s.image.MatchString(v) {
			return v
		}
	}
	return ""
}

func resolveURL(base *url.URL, ref string) string {
	if base == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}

// ApplyLogos returns a copy of rows with logos looked up by team name. Rows without a
// match keep an empty logo.
func ApplyLogos(rows []standings.Row, logos *LogoMap, threshold float64) []standings.Row {
	out := make([]standings.Row, len(rows))
	for i, r := range rows {
		if u, ok := logos.Lookup(r.Team, threshold); ok {
			r.Logo = u
		}
		out[i] = r
	}
	return out
}
