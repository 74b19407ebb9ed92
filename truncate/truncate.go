// Package truncate shortens user-authored text on word boundaries.
//
// All lengths are measured in Unicode code points, so characters outside
// the Basic Multilingual Plane count as one unit and are never split.
package truncate

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis is appended to text that had to be shortened.
const Ellipsis = "..."

var ellipsisLen = utf8.RuneCountInString(Ellipsis)

// Words returns text unchanged if it is at most maxLen code points long.
// Otherwise it returns the longest prefix of whitespace-separated words,
// rejoined by single spaces, that fits in maxLen minus the ellipsis, followed
// by Ellipsis. When the first word alone does not fit, the result is the
// bare Ellipsis.
func Words(text string, maxLen int) string {
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}

	budget := maxLen - ellipsisLen

	var (
		b    strings.Builder
		size int
	)

	for _, word := range strings.Fields(text) {
		n := utf8.RuneCountInString(word)
		if size > 0 {
			n++ // separating space
		}

		if size+n > budget {
			break
		}

		if size > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(word)
		size += n
	}

	b.WriteString(Ellipsis)

	return b.String()
}

// Len returns the length of s in code points.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}
