package docstring

import "strings"

// Formatter reformats whole docstrings according to a schema. It holds no
// mutable state across calls; independent goroutines may share one Formatter.
type Formatter struct {
	schema  Schema
	snippet SnippetFormatter
}

// NewFormatter creates a docstring formatter. snippet may be nil, in which
// case fenced code examples pass through unchanged.
func NewFormatter(schema Schema, snippet SnippetFormatter) *Formatter {
	return &Formatter{schema: schema, snippet: snippet}
}

// Format reformats a raw documentation block. An empty or whitespace-only
// input yields an empty string. Format never fails: malformed regions fall
// back to verbatim passthrough.
func (f *Formatter) Format(doc string) string {
	segments := f.schema.Accumulate(strings.Split(doc, "\n"))
	formatted := make([]string, 0, len(segments))
	for _, seg := range segments {
		if s := f.formatSegment(seg); s != "" {
			formatted = append(formatted, s)
		}
	}
	return assemble(formatted)
}

// formatSegment renders one segment. Segments outside any section keep their
// stripped non-empty lines. Code sections run the fence machine; prose
// sections rewrap to the section width. The header is re-emitted from the
// section's marker.
func (f *Formatter) formatSegment(seg Segment) string {
	if seg.Section == nil {
		var kept []string
		for _, line := range seg.Lines {
			if stripped := strings.TrimSpace(line); stripped != "" {
				kept = append(kept, stripped)
			}
		}
		return strings.TrimSpace(strings.Join(kept, "\n"))
	}

	var lines []string
	if ce := seg.Section.CodeExample; ce != nil {
		lines = processCodeBlocks(seg.Lines, ce.StartMarker, ce.EndMarker, f.snippet)
	} else {
		lines = wrapProse(seg.Lines, seg.Section.wrapWidth())
	}
	body := strings.Join(trimBlankEdges(lines), "\n")
	if seg.Section.Marker != "" {
		return seg.Section.Marker + "\n" + body
	}
	return body
}

// assemble joins formatted segments with exactly one blank line between each,
// dropping empty segments and trimming the final result.
func assemble(formatted []string) string {
	return strings.TrimSpace(strings.Join(formatted, "\n\n"))
}

// trimBlankEdges drops leading and trailing blank lines, leaving interior
// lines (and their indentation) untouched.
func trimBlankEdges(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
