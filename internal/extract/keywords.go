package extract

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// foldHeader prepares header text for keyword comparison.
func foldHeader(s string) string {
	return cases.Fold().String(clean(s))
}

// foldKeywords case-folds a configured keyword list once.
func foldKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = foldHeader(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// matchKeyword reports whether a folded header matches a folded keyword. Keywords of up
// to two runes ("p", "#", "gd") must equal the header or one of its tokens; longer ones
// match anywhere in the header.
func matchKeyword(header, keyword string) bool {
	if utf8.RuneCountInString(keyword) > 2 {
		return strings.Contains(header, keyword)
	}
	if header == keyword {
		return true
	}
	for _, tok := range strings.Fields(header) {
		if strings.Trim(tok, ".:()[]") == keyword {
			return true
		}
	}
	return false
}

func matchAny(header string, keywords []string) bool {
	for _, k := range keywords {
		if matchKeyword(header, k) {
			return true
		}
	}
	return false
}
