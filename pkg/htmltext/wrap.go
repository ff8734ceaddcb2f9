package htmltext

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// linePrefix matches quote markers, indentation and a list marker.
var linePrefix = regexp.MustCompile(`^([ >]*)(\* |\d+\. )?`)

// Wrap breaks every line of s at word boundaries so no line exceeds width
// runes, unless a single word is longer. Quote markers and list indentation
// are repeated on continuation lines. A width of zero or less returns s.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = wrapLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func wrapLine(line string, width int) string {
	if width <= 0 || utf8.RuneCountInString(line) <= width {
		return line
	}

	m := linePrefix.FindStringSubmatch(line)
	lead := m[0]
	cont := m[1] + strings.Repeat(" ", len(m[2]))

	words := strings.Fields(line[len(lead):])
	if len(words) == 0 {
		return line
	}

	var b strings.Builder
	b.WriteString(lead)
	col := utf8.RuneCountInString(lead)
	fresh := true

	for _, w := range words {
		wl := utf8.RuneCountInString(w)
		if !fresh && col+1+wl > width {
			b.WriteByte('\n')
			b.WriteString(cont)
			col = utf8.RuneCountInString(cont)
			fresh = true
		}
		if !fresh {
			b.WriteByte(' ')
			col++
		}
		b.WriteString(w)
		col += wl
		fresh = false
	}

	return b.String()
}
