package textedit

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Boundaries appends the byte offset of every grapheme cluster boundary in s
// to dst, including 0 and len(s).
func Boundaries(dst []int, s string) []int {
	dst = append(dst, 0)
	state := -1
	pos := 0
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		pos += len(cluster)
		dst = append(dst, pos)
	}
	return dst
}

// prevBoundary returns the last grapheme boundary strictly before pos, or 0.
func prevBoundary(s string, pos int) int {
	prev := 0
	state := -1
	at := 0
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		next := at + len(cluster)
		if next >= pos {
			return at
		}
		prev = next
		at = next
	}
	return prev
}

// nextBoundary returns the first grapheme boundary strictly after pos, or len(s).
func nextBoundary(s string, pos int) int {
	state := -1
	at := 0
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		at += len(cluster)
		if at > pos {
			return at
		}
	}
	return len(s)
}

// snap clamps pos into s and moves it back to the nearest grapheme boundary.
func snap(s string, pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos >= len(s) {
		return len(s)
	}
	state := -1
	at := 0
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if at+len(cluster) > pos {
			return at
		}
		at += len(cluster)
	}
	return at
}

// fitUTF8 returns the longest prefix of s no longer than n bytes that ends on
// a rune boundary.
func fitUTF8(s string, n int) string {
	if n >= len(s) {
		return s
	}
	if n <= 0 {
		return ""
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
