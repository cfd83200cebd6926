package docstring

import "strings"

// SnippetFormatter is the external code formatter collaborator. It returns
// the formatted snippet, or an error when the snippet could not be parsed or
// no change was needed; either way the caller falls back to the original
// text. A nil SnippetFormatter leaves every snippet unchanged.
type SnippetFormatter func(snippet string) (string, error)

// processCodeBlocks runs a two-state machine over a code section's lines.
// Outside a fence lines pass through unchanged. A line whose stripped form
// equals startMarker opens a fence: the marker line is emitted as-is and its
// leading indentation is recorded. Inside, lines buffer until a line whose
// stripped form equals endMarker closes the fence; the buffered body is
// dedented, formatted, and re-indented to the opening fence's column.
//
// An unterminated fence at end of input emits the buffered raw lines
// unmodified without invoking the formatter.
func processCodeBlocks(lines []string, startMarker, endMarker string, format SnippetFormatter) []string {
	var out []string
	var body []string
	indent := 0
	inside := false

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		switch {
		case !inside && stripped == startMarker:
			out = append(out, line)
			indent = leadingWidth(line)
			body = nil
			inside = true
		case inside && stripped == endMarker:
			out = append(out, formatFenceBody(body, indent, format)...)
			out = append(out, line)
			body = nil
			inside = false
		case inside:
			body = append(body, line)
		default:
			out = append(out, line)
		}
	}
	if inside {
		out = append(out, body...)
	}
	return out
}

// formatFenceBody dedents the buffered body, hands it to the formatter, and
// re-indents every non-blank result line by the opening fence's indentation.
// On any formatter error the raw body lines are returned verbatim.
func formatFenceBody(body []string, indent int, format SnippetFormatter) []string {
	if len(body) == 0 {
		return nil
	}
	if format == nil {
		return body
	}
	formatted, err := format(dedent(strings.Join(body, "\n")))
	if err != nil {
		return body
	}
	prefix := strings.Repeat(" ", indent)
	var out []string
	for _, line := range strings.Split(strings.TrimRight(formatted, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			out = append(out, "")
			continue
		}
		out = append(out, prefix+line)
	}
	return out
}

// leadingWidth counts the columns of leading whitespace on a line.
func leadingWidth(line string) int {
	n := 0
	for _, r := range line {
		if r != ' ' && r != '\t' {
			break
		}
		n++
	}
	return n
}

// dedent removes the longest common leading whitespace shared by all
// non-blank lines of s.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	margin := ""
	found := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !found {
			margin, found = indent, true
			continue
		}
		margin = commonPrefix(margin, indent)
	}
	if margin == "" {
		return s
	}
	for i, line := range lines {
		if strings.HasPrefix(line, margin) {
			lines[i] = line[len(margin):]
		}
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	max := len(a)
	if len(b) < max {
		max = len(b)
	}
	i := 0
	for i < max && a[i] == b[i] {
		i++
	}
	return a[:i]
}
