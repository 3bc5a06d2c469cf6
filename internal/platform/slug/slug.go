package slug

import (
	"strings"
	"unicode"
)

const maxLen = 48

// Make lowercases input and joins its letter and digit runs with hyphens,
// cutting at a word boundary past 48 characters.
func Make(input string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(input) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	s := b.String()
	if len(s) > maxLen {
		s = s[:maxLen]
		if i := strings.LastIndexByte(s, '-'); i > 0 {
			s = s[:i]
		}
	}
	if s == "" {
		return "untitled"
	}
	return s
}
