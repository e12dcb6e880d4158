package zedit

import "strings"

// filterInput converts text to runes, dropping control characters except
// '\n' and, unless stripTabs is set, '\t'.
func filterInput(text string, stripTabs bool) []rune {
	out := make([]rune, 0, len(text))
	for _, r := range text {
		switch {
		case r == '\n':
		case r == '\t':
			if stripTabs {
				continue
			}
		case r < 0x20 || r == 0x7f:
			continue
		}
		out = append(out, r)
	}
	return out
}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// normalizeLineEndings turns CRLF and lone CR line endings into '\n'.
func normalizeLineEndings(text string) string {
	return lineEndings.Replace(text)
}

// splitLines splits text on '\n'. The result always has at least one
// (possibly empty) segment; segments alias text.
func splitLines(text []rune) [][]rune {
	segments := make([][]rune, 0, 1)
	from := 0
	for i, r := range text {
		if r == '\n' {
			segments = append(segments, text[from:i])
			from = i + 1
		}
	}
	return append(segments, text[from:])
}
