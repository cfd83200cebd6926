package rewriter

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePy = `"""module doc"""

import os


def f(x):
    """function doc"""
    return x


class C:
    '''class doc'''

    def m(self):
        s = "not a docstring"
        return s
`

func TestRewriter_Rewrite(t *testing.T) {
	ctx := context.Background()
	r, err := New()
	require.NoError(t, err)

	t.Run("rewrites module, function, and class docstrings", func(t *testing.T) {
		out, changed, err := r.Rewrite(ctx, []byte(samplePy), func(string) string {
			return "REWRITTEN"
		})
		require.NoError(t, err)
		assert.True(t, changed)

		got := string(out)
		assert.Contains(t, got, `"""REWRITTEN"""`+"\n\nimport os")
		assert.Contains(t, got, `def f(x):`+"\n    "+`"""REWRITTEN"""`)
		assert.Contains(t, got, `'''REWRITTEN'''`)
		assert.Contains(t, got, `s = "not a docstring"`, "assignment strings stay untouched")
		assert.Equal(t, 3, strings.Count(got, "REWRITTEN"))
	})

	t.Run("no change reports false and returns the source", func(t *testing.T) {
		out, changed, err := r.Rewrite(ctx, []byte(samplePy), func(s string) string {
			return s
		})
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, samplePy, string(out))
	})

	t.Run("empty formatter output leaves the literal alone", func(t *testing.T) {
		_, changed, err := r.Rewrite(ctx, []byte(samplePy), func(string) string {
			return ""
		})
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("multi-line content closes at the statement column", func(t *testing.T) {
		src := "def f():\n    \"\"\"one line\"\"\"\n    return 0\n"
		out, changed, err := r.Rewrite(ctx, []byte(src), func(string) string {
			return "Summary:\nhello"
		})
		require.NoError(t, err)
		require.True(t, changed)
		assert.Equal(t, "def f():\n    \"\"\"\nSummary:\nhello\n    \"\"\"\n    return 0\n", string(out))
	})

	t.Run("formatted text containing triple quotes is skipped", func(t *testing.T) {
		_, changed, err := r.Rewrite(ctx, []byte(samplePy), func(string) string {
			return `has """ inside`
		})
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("rewriting twice is stable", func(t *testing.T) {
		format := func(s string) string {
			// A format shaped like the docstring core: strips surrounding
			// whitespace and collapses internal runs.
			return strings.Join(strings.Fields(s), " ")
		}
		once, _, err := r.Rewrite(ctx, []byte(samplePy), format)
		require.NoError(t, err)
		twice, changed, err := r.Rewrite(ctx, once, format)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, string(once), string(twice))
	})

	t.Run("byte string literals are not docstrings", func(t *testing.T) {
		src := "def f():\n    b\"raw bytes\"\n    return 0\n"
		_, changed, err := r.Rewrite(ctx, []byte(src), func(string) string {
			return "X"
		})
		require.NoError(t, err)
		assert.False(t, changed)
	})
}

func TestSplitLiteral(t *testing.T) {
	cases := []struct {
		raw           string
		prefix, quote string
		inner         string
		ok            bool
	}{
		{`"""abc"""`, "", `"""`, "abc", true},
		{`'''abc'''`, "", `'''`, "abc", true},
		{`"abc"`, "", `"`, "abc", true},
		{`r"""a\b"""`, "r", `"""`, `a\b`, true},
		{`b"abc"`, "", "", "", false},
		{`f"abc"`, "", "", "", false},
		{`"unterminated`, "", "", "", false},
	}
	for _, tc := range cases {
		prefix, quote, inner, ok := splitLiteral(tc.raw)
		assert.Equal(t, tc.ok, ok, tc.raw)
		if tc.ok {
			assert.Equal(t, tc.prefix, prefix, tc.raw)
			assert.Equal(t, tc.quote, quote, tc.raw)
			assert.Equal(t, tc.inner, inner, tc.raw)
		}
	}
}

func TestRenderLiteral(t *testing.T) {
	t.Run("single line stays single line", func(t *testing.T) {
		got, ok := renderLiteral("", `"""`, "hello", 4)
		require.True(t, ok)
		assert.Equal(t, `"""hello"""`, got)
	})

	t.Run("single quotes are widened to triple quotes", func(t *testing.T) {
		got, ok := renderLiteral("", `"`, "hello", 0)
		require.True(t, ok)
		assert.Equal(t, `"""hello"""`, got)
	})

	t.Run("trailing backslash cannot be spliced", func(t *testing.T) {
		_, ok := renderLiteral("", `"""`, `oops\`, 0)
		assert.False(t, ok)
	})

	t.Run("multi-line closes on an indented line", func(t *testing.T) {
		got, ok := renderLiteral("", `"""`, "a\nb", 4)
		require.True(t, ok)
		assert.Equal(t, "\"\"\"\na\nb\n    \"\"\"", got)
	})
}
