// Package rewriter locates docstrings in parsed Python source and splices in
// replacement text, leaving every other byte of the file untouched.
package rewriter

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// docHolder is a syntax node kind that may carry a documentation string as
// its first body statement. One variant exists per node kind instead of a
// generic tree visitor: the only capability the rewriter needs is "find the
// docstring literal, if any".
type docHolder interface {
	docNode() *sitter.Node
}

type moduleNode struct{ node *sitter.Node }

func (m moduleNode) docNode() *sitter.Node { return docstringOf(m.node) }

type classNode struct{ node *sitter.Node }

func (c classNode) docNode() *sitter.Node { return docstringOf(c.node.ChildByFieldName("body")) }

type functionNode struct{ node *sitter.Node }

func (f functionNode) docNode() *sitter.Node { return docstringOf(f.node.ChildByFieldName("body")) }

// docstringOf returns the string node when the first statement of body is a
// bare string expression.
func docstringOf(body *sitter.Node) *sitter.Node {
	if body == nil || body.NamedChildCount() == 0 {
		return nil
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() != 1 {
		return nil
	}
	str := first.NamedChild(0)
	if str.Type() != "string" {
		return nil
	}
	return str
}

const holderQuery = `
	(function_definition) @function
	(class_definition) @class
`

// Rewriter parses Python sources and rewrites their docstrings.
type Rewriter struct {
	lang  *sitter.Language
	query *sitter.Query
}

// New creates a Rewriter for Python source files.
func New() (*Rewriter, error) {
	lang := python.GetLanguage()
	query, err := sitter.NewQuery([]byte(holderQuery), lang)
	if err != nil {
		return nil, fmt.Errorf("compiling docstring query: %w", err)
	}
	return &Rewriter{lang: lang, query: query}, nil
}

type edit struct {
	start, end  uint32
	replacement string
}

// Rewrite runs format over every docstring of source and returns the source
// with the formatted docstrings spliced back in. The second return reports
// whether anything changed. Literals the rewriter cannot safely re-render
// (exotic prefixes, formatted text containing triple quotes) are skipped.
func (r *Rewriter) Rewrite(ctx context.Context, source []byte, format func(string) string) ([]byte, bool, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(r.lang)
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, false, fmt.Errorf("parsing python source: %w", err)
	}
	defer tree.Close()

	holders := []docHolder{moduleNode{tree.RootNode()}}
	qc := sitter.NewQueryCursor()
	qc.Exec(r.query, tree.RootNode())
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			switch r.query.CaptureNameForId(c.Index) {
			case "function":
				holders = append(holders, functionNode{c.Node})
			case "class":
				holders = append(holders, classNode{c.Node})
			}
		}
	}

	var edits []edit
	for _, holder := range holders {
		str := holder.docNode()
		if str == nil {
			continue
		}
		if e, ok := buildEdit(str, source, format); ok {
			edits = append(edits, e)
		}
	}
	if len(edits) == 0 {
		return source, false, nil
	}

	// Apply back-to-front so earlier offsets stay valid.
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })
	out := append([]byte{}, source...)
	for _, e := range edits {
		out = append(out[:e.start], append([]byte(e.replacement), out[e.end:]...)...)
	}
	return out, true, nil
}

// buildEdit formats one docstring literal and renders the replacement.
func buildEdit(str *sitter.Node, source []byte, format func(string) string) (edit, bool) {
	raw := str.Content(source)
	prefix, quote, inner, ok := splitLiteral(raw)
	if !ok {
		return edit{}, false
	}
	formatted := format(inner)
	if formatted == "" || formatted == inner {
		return edit{}, false
	}
	replacement, ok := renderLiteral(prefix, quote, formatted, int(str.StartPoint().Column))
	if !ok {
		return edit{}, false
	}
	if replacement == raw {
		return edit{}, false
	}
	return edit{start: str.StartByte(), end: str.EndByte(), replacement: replacement}, true
}

// splitLiteral takes a string literal apart into prefix, quote delimiter, and
// inner source text. Byte and f-string prefixes are not docstrings and are
// rejected.
func splitLiteral(raw string) (prefix, quote, inner string, ok bool) {
	rest := raw
	for len(rest) > 0 {
		ch := rest[0] | 0x20 // lowercase
		if ch == 'r' || ch == 'u' {
			prefix += rest[:1]
			rest = rest[1:]
			continue
		}
		if ch == 'b' || ch == 'f' {
			return "", "", "", false
		}
		break
	}
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(rest, q) && strings.HasSuffix(rest, q) && len(rest) >= 2*len(q) {
			return prefix, q, rest[len(q) : len(rest)-len(q)], true
		}
	}
	return "", "", "", false
}

// renderLiteral produces the replacement literal. The content is spliced
// verbatim: a single-line docstring stays on one line, and multi-line content
// sits between a bare opening delimiter and a closing delimiter indented to
// the statement column. Content is never re-indented, so repeated runs are
// stable even when it contains as-is fence lines.
func renderLiteral(prefix, quote, content string, column int) (string, bool) {
	if len(quote) == 1 {
		quote = strings.Repeat(quote, 3)
	}
	if strings.Contains(content, quote) {
		return "", false
	}
	if !strings.Contains(content, "\n") {
		if strings.HasSuffix(content, `"`) || strings.HasSuffix(content, `'`) || strings.HasSuffix(content, `\`) {
			return "", false
		}
		return prefix + quote + content + quote, true
	}
	if strings.HasSuffix(content, `\`) {
		return "", false
	}
	indent := strings.Repeat(" ", column)
	return prefix + quote + "\n" + content + "\n" + indent + quote, true
}
