package mux

import (
	"regexp"
	"strings"
)

// foldCase returns a regexp source matching s literally, with every ASCII
// letter expanded into a class of its lower and upper case forms
// ("Home" becomes "[hH][oO][mM][eE]"). Other characters are quoted.
func foldCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 4)

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteByte('[')
			b.WriteByte(c)
			b.WriteByte(c - 'a' + 'A')
			b.WriteByte(']')
		case c >= 'A' && c <= 'Z':
			b.WriteByte('[')
			b.WriteByte(c - 'A' + 'a')
			b.WriteByte(c)
			b.WriteByte(']')
		default:
			b.WriteString(regexp.QuoteMeta(s[i : i+1]))
		}
	}

	return b.String()
}

// foldAlternation folds each literal and joins them into a single
// non-capturing alternation.
func foldAlternation(literals []string) string {
	alts := make([]string, len(literals))
	for i, l := range literals {
		alts[i] = foldCase(l)
	}

	return "(?:" + strings.Join(alts, "|") + ")"
}
