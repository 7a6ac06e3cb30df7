package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/elmoro10/fagerborg-tabeller/internal/standings"
)

// dashClass matches the ASCII hyphen and every dash standings.NormalizeDashes rewrites.
const dashClass = `[-\x{2010}-\x{2014}\x{2212}]`

var (
	digitsPattern = regexp.MustCompile(`^\d+$`)
	goalsPattern  = regexp.MustCompile(`^(\d+)\s*[-:]\s*(\d+)$`)
	signedPattern = regexp.MustCompile(`^[+-]?\d+$`)
)

// collapse trims s and squeezes every whitespace run into a single space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// clean prepares numeric cells. Team names go through collapse only.
func clean(s string) string {
	return collapse(standings.NormalizeDashes(s))
}

// Digits returns s trimmed when it is a non-negative integer, otherwise "0".
func Digits(s string) string {
	s = clean(s)
	if digitsPattern.MatchString(s) {
		return s
	}
	return "0"
}

// GoalPair parses "<for> - <against>" with a hyphen or colon separator.
func GoalPair(s string) (int, int, bool) {
	m := goalsPattern.FindStringSubmatch(clean(s))
	if m == nil {
		return 0, 0, false
	}
	gf, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	ga, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false
	}
	return gf, ga, true
}

// Goals returns the canonical "<for>-<against>" form of s, or "0-0".
func Goals(s string) string {
	gf, ga, ok := GoalPair(s)
	if !ok {
		return "0-0"
	}
	return strconv.Itoa(gf) + "-" + strconv.Itoa(ga)
}

// SignedInt returns the canonical form of a signed integer ("+10" becomes "10"), or ""
// when s is not one.
func SignedInt(s string) string {
	s = strings.ReplaceAll(clean(s), " ", "")
	if !signedPattern.MatchString(s) {
		return ""
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return ""
	}
	return strconv.Itoa(n)
}

// Difference keeps a valid source difference and otherwise derives it from goals.
// derived reports whether the value was computed rather than taken from the source.
func Difference(diff, goals string) (value string, derived bool) {
	if v := SignedInt(diff); v != "" {
		return v, false
	}
	if gf, ga, ok := GoalPair(goals); ok {
		return strconv.Itoa(gf - ga), true
	}
	return "0", true
}
