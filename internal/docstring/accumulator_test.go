package docstring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_Accumulate(t *testing.T) {
	schema := testSchema()

	t.Run("partitions lines in original order", func(t *testing.T) {
		lines := strings.Split("Summary:\nHello.\n\nParameters:\nx (int): thing", "\n")
		segments := schema.Accumulate(lines)
		require.Len(t, segments, 2)

		assert.Equal(t, "Summary", segments[0].Section.Name)
		assert.Equal(t, []string{"Hello.", ""}, segments[0].Lines)

		assert.Equal(t, "Parameters", segments[1].Section.Name)
		assert.Equal(t, []string{"x (int): thing"}, segments[1].Lines)

		// Every non-header input line lands in exactly one segment, in order.
		var rebuilt []string
		for _, seg := range segments {
			rebuilt = append(rebuilt, seg.Lines...)
		}
		assert.Equal(t, []string{"Hello.", "", "x (int): thing"}, rebuilt)
	})

	t.Run("leading content before any header is section-less", func(t *testing.T) {
		segments := schema.Accumulate([]string{"free prose", "Returns:", "bool"})
		require.Len(t, segments, 2)
		assert.Nil(t, segments[0].Section)
		assert.Equal(t, []string{"free prose"}, segments[0].Lines)
		assert.Equal(t, "Returns", segments[1].Section.Name)
	})

	t.Run("header with no body still produces a segment", func(t *testing.T) {
		segments := schema.Accumulate([]string{"Summary:", "Parameters:", "x"})
		require.Len(t, segments, 2)
		assert.Equal(t, "Summary", segments[0].Section.Name)
		assert.Empty(t, segments[0].Lines)
		assert.Equal(t, "Parameters", segments[1].Section.Name)
	})

	t.Run("no phantom segment at the very start", func(t *testing.T) {
		segments := schema.Accumulate([]string{"Summary:", "Hi."})
		require.Len(t, segments, 1)
		assert.Equal(t, "Summary", segments[0].Section.Name)
	})

	t.Run("repeated matches to the same section do not split", func(t *testing.T) {
		withSummary := append(Schema{{Name: "Lead", Marker: ""}}, schema...)
		segments := withSummary.Accumulate([]string{"", "", "prose"})
		require.Len(t, segments, 1)
		assert.Equal(t, "Lead", segments[0].Section.Name)
		assert.Equal(t, []string{"", "", "prose"}, segments[0].Lines)
	})

	t.Run("implicit summary seeds the current section", func(t *testing.T) {
		withSummary := append(Schema{{Name: "Lead", Marker: ""}}, schema...)
		segments := withSummary.Accumulate([]string{"First sentence.", "Summary:", "rest"})
		require.Len(t, segments, 2)
		require.NotNil(t, segments[0].Section)
		assert.Equal(t, "Lead", segments[0].Section.Name)
		assert.Equal(t, []string{"First sentence."}, segments[0].Lines)
	})

	t.Run("empty input yields at most one empty segment", func(t *testing.T) {
		segments := schema.Accumulate(strings.Split("", "\n"))
		require.Len(t, segments, 1)
		assert.Nil(t, segments[0].Section)
		assert.Equal(t, []string{""}, segments[0].Lines)
	})
}
