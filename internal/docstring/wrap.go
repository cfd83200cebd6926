package docstring

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapProse reflows lines to at most width columns. Each input line is
// wrapped independently; blank lines are paragraph separators and survive as
// a single empty output line.
func wrapProse(lines []string, width int) []string {
	var out []string
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			out = append(out, "")
			continue
		}
		out = append(out, wrapLine(stripped, width)...)
	}
	return out
}

// wrapLine greedily packs whitespace-separated tokens into lines of at most
// width display columns. A single token wider than width is emitted on its
// own line without being broken.
func wrapLine(s string, width int) []string {
	var lines []string
	var cur string
	var curWidth int
	for _, word := range strings.Fields(s) {
		w := runewidth.StringWidth(word)
		switch {
		case cur == "":
			cur, curWidth = word, w
		case curWidth+1+w <= width:
			cur += " " + word
			curWidth += 1 + w
		default:
			lines = append(lines, cur)
			cur, curWidth = word, w
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
