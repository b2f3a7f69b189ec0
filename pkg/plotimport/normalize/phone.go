// Package normalize canonicalizes single phone and plot-identifier values.
package normalize

import (
	"strings"
	"unicode"
)

// FormatPhone renders a phone value as 8(XXX)XXX-XX-XX.
//
// Eleven-digit numbers starting with 7 or 8 and bare ten-digit numbers are
// reformatted. Any other shape is returned trimmed but otherwise unchanged.
func FormatPhone(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	d := digits(trimmed)

	if len(d) == 11 && d[0] == '7' {
		d[0] = '8'
	}

	switch {
	case len(d) == 11 && d[0] == '8':
		return groupPhone(d[1:])
	case len(d) == 10:
		return groupPhone(d)
	default:
		return trimmed
	}
}

// digits keeps only the decimal digits of s.
func digits(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return out
}

// groupPhone formats ten subscriber digits as 8(ddd)ddd-dd-dd.
func groupPhone(d []rune) string {
	var b strings.Builder
	b.WriteString("8(")
	b.WriteString(string(d[0:3]))
	b.WriteByte(')')
	b.WriteString(string(d[3:6]))
	b.WriteByte('-')
	b.WriteString(string(d[6:8]))
	b.WriteByte('-')
	b.WriteString(string(d[8:10]))
	return b.String()
}
