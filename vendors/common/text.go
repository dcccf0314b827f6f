package common

import (
	"regexp"
	"strings"
)

// ansiRegex matches ANSI escape sequences (colors, cursor movement, etc.)
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// NormalizeOutput strips ANSI codes, turns CRLF and stray CR into LF and drops
// backspace sequences some OLT shells emit while redrawing the prompt.
func NormalizeOutput(s string) string {
	s = StripANSI(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	for strings.Contains(s, "\b") {
		i := strings.Index(s, "\b")
		if i == 0 {
			s = s[1:]
			continue
		}
		s = s[:i-1] + s[i+1:]
	}
	return s
}
