// Package docstring reformats free-form documentation blocks according to a
// schema of named sections. Prose is rewrapped to a per-section width, and
// fenced code examples are handed to an external snippet formatter while
// their original indentation is preserved.
package docstring

import "strings"

// DefaultWidth is the wrap width used when a section does not configure one.
const DefaultWidth = 72

// CodeExample marks a section as containing fenced code blocks.
type CodeExample struct {
	StartMarker string
	EndMarker   string
}

// SectionSpec describes one named region of a docstring. A SectionSpec with
// an empty Marker is the implicit leading summary section and matches a blank
// line.
type SectionSpec struct {
	Name        string
	Marker      string
	Width       int
	CodeExample *CodeExample
}

func (s *SectionSpec) wrapWidth() int {
	if s.Width > 0 {
		return s.Width
	}
	return DefaultWidth
}

// Schema is an ordered list of sections. Order is the tie-break for
// classification: the first section that matches a line wins.
type Schema []SectionSpec

// Classify returns the section a single line belongs to, or nil when no
// section matches. The line is stripped first; a section with an empty marker
// matches only a fully empty stripped line, and a section with a non-empty
// marker matches when the stripped line starts with it.
func (s Schema) Classify(line string) *SectionSpec {
	stripped := strings.TrimSpace(line)
	for i := range s {
		if s[i].Marker == "" {
			if stripped == "" {
				return &s[i]
			}
			continue
		}
		if strings.HasPrefix(stripped, s[i].Marker) {
			return &s[i]
		}
	}
	return nil
}

// Segment is a maximal run of consecutive lines classified to the same
// section (or to none). The header line that opened a named segment is not
// part of Lines; it is re-emitted from the section's marker at format time.
type Segment struct {
	Section *SectionSpec
	Lines   []string
}
