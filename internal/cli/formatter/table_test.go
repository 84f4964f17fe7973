package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"ID", "NAME"}, [][]string{{"a", "first"}, {"long-id", "second"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	col := strings.Index(lines[0], "NAME")
	assert.Equal(t, col, strings.Index(lines[2], "first"))
	assert.Equal(t, col, strings.Index(lines[3], "second"))
	assert.Contains(t, lines[1], "───────")
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestRenderTable_ShortRowsPadded(t *testing.T) {
	out := RenderTable([]string{"A", "B", "C"}, [][]string{{"1"}})
	assert.Contains(t, out, "1")
}
