// Package text holds the literal string rules the checks share: plain
// byte/rune comparisons with no locale-aware casing.
package text

import (
	"strings"
	"unicode/utf8"
)

// ContainsFold reports whether s contains substr after lower-casing both.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// URLTail returns the text after the last '/' in u, or u if it has none.
func URLTail(u string) string {
	return u[strings.LastIndex(u, "/")+1:]
}

// UpperFirst upper-cases the first character of s and leaves the rest
// unchanged.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return strings.ToUpper(string(r)) + s[size:]
}

// FirstIsUpper reports whether the first character of s equals its own
// upper-cased form. Digits and punctuation count as upper. Empty is true.
func FirstIsUpper(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return true
	}
	first := string(r)
	return first == strings.ToUpper(first)
}

// Length counts characters, not bytes.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// ShortDate turns "2026-02-14" into "2/14": everything after the first '-'
// joined by '/', with one leading '0' removed.
func ShortDate(iso string) string {
	parts := strings.Split(iso, "-")
	short := strings.Join(parts[1:], "/")
	return strings.TrimPrefix(short, "0")
}

// CompactLower removes ASCII spaces and lower-cases s.
func CompactLower(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}
