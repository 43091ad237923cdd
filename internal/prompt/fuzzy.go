package prompt

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Filter returns the indexes of choices that contain every rune of pattern
// in order, ignoring case. Tighter matches come first, then shorter
// choices; remaining ties keep the input order. An empty pattern keeps
// every choice in its original order.
func Filter(pattern string, choices []string) []int {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		all := make([]int, len(choices))
		for i := range all {
			all[i] = i
		}
		return all
	}

	type match struct {
		index int
		span  int
		size  int
	}
	var matches []match
	for i, c := range choices {
		if span, ok := subsequenceSpan(pattern, strings.ToLower(c)); ok {
			matches = append(matches, match{index: i, span: span, size: utf8.RuneCountInString(c)})
		}
	}
	slices.SortStableFunc(matches, func(a, b match) int {
		if a.span != b.span {
			return a.span - b.span
		}
		return a.size - b.size
	})

	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.index
	}
	return out
}

// subsequenceSpan reports whether pattern is a subsequence of s and, if so,
// how many runes of s the match covers.
func subsequenceSpan(pattern, s string) (int, bool) {
	start, pos := -1, 0
	p, size := utf8.DecodeRuneInString(pattern)
	for i, r := range s {
		if r != p {
			continue
		}
		if start < 0 {
			start = i
		}
		pos += size
		if pos == len(pattern) {
			return utf8.RuneCountInString(s[start : i+utf8.RuneLen(r)]), true
		}
		p, size = utf8.DecodeRuneInString(pattern[pos:])
	}
	return 0, false
}
