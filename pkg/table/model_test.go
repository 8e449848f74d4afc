package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdftables-golang/pkg/geometry"
)

// parseMarkdown splits a rendered pipe table back into trimmed cells,
// skipping the separator row
func parseMarkdown(md string) [][]string {
	var rows [][]string
	for i, line := range strings.Split(strings.TrimRight(md, "\n"), "\n") {
		if i == 1 {
			continue
		}
		parts := strings.Split(line, "|")
		parts = parts[1 : len(parts)-1]
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
		}
		rows = append(rows, parts)
	}
	return rows
}

func TestRenderMarkdown(t *testing.T) {
	tbl := NewTable(1, geometry.BBox{}, [][]string{{"Name", "Qty"}, {"Apple", "3"}})

	assert.Equal(t, "| Name  | Qty |\n| ----- | --- |\n| Apple | 3   |\n", tbl.Markdown)
	assert.Equal(t, tbl.Markdown, tbl.RenderMarkdown())
}

func TestRenderMarkdownRoundTrip(t *testing.T) {
	cells := [][]string{
		{"Region", "Q1", "Q2", "Note"},
		{"North", "1,200", "", "steady"},
		{"South", "980", "1,010", ""},
		{"서울", "5", "6", "wide"},
	}
	tbl := NewTable(2, geometry.BBox{}, cells)

	assert.Equal(t, cells, parseMarkdown(tbl.Markdown))
	assert.NotContains(t, tbl.Markdown, "null")
}

func TestRenderMarkdownEscaping(t *testing.T) {
	tbl := NewTable(1, geometry.BBox{}, [][]string{{"a|b", "line1\nline2"}, {"x", "y"}})

	lines := strings.Split(tbl.Markdown, "\n")
	assert.Equal(t, `| a\|b | line1<br>line2 |`, lines[0])
}

func TestRenderMarkdownDisplayWidth(t *testing.T) {
	tbl := NewTable(1, geometry.BBox{}, [][]string{{"名前", "x"}, {"ab", "y"}})

	lines := strings.Split(tbl.Markdown, "\n")
	assert.Equal(t, "| 名前 | x   |", lines[0])
	assert.Equal(t, "| ab   | y   |", lines[2])
}

func TestNewTablePadsRaggedRows(t *testing.T) {
	tbl := NewTable(1, geometry.BBox{}, [][]string{{"a"}, {"b", "c", "d"}, {}})

	require.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, 3, tbl.NumCols())
	for _, row := range tbl.Cells {
		assert.Len(t, row, 3)
	}
	assert.Equal(t, []string{"a", "", ""}, tbl.Cells[0])
}

func TestEmptyTable(t *testing.T) {
	tbl := NewTable(1, geometry.BBox{}, nil)

	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, 0, tbl.NumCols())
	assert.Equal(t, "", tbl.Markdown)
}
