package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Fold trims s and folds its case so that survey cells typed in any casing compare equal.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// CompactKey folds s and strips every whitespace rune, e.g. "1 - 3 km" -> "1-3km".
func CompactKey(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, Fold(s))
}

// ContainsAnyFold reports whether s contains any of the given substrings, ignoring case.
// Substrings are expected to be folded already.
func ContainsAnyFold(s string, subs []string) bool {
	folded := Fold(s)
	for _, sub := range subs {
		if strings.Contains(folded, sub) {
			return true
		}
	}
	return false
}

// EqualsAnyFold reports whether s equals any of the given (folded) candidates, ignoring case.
func EqualsAnyFold(s string, candidates []string) bool {
	folded := Fold(s)
	for _, c := range candidates {
		if folded == c {
			return true
		}
	}
	return false
}

// SplitList splits a comma separated cell into its trimmed, non-empty parts.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
