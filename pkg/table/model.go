package table

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pyhub-apps/pdftables-golang/pkg/geometry"
)

// Row is one row of detected cells. Cells has one slot per table column;
// a nil slot means no cell starts in that column (it is covered by a
// spanning cell or the grid is open there).
type Row struct {
	BBox  geometry.BBox    `json:"bbox"`
	Cells []*geometry.BBox `json:"cells"`
}

// Table is a detected table. Cells holds the text grid; every row has the
// same number of columns and an empty string marks a cell without text.
type Table struct {
	BBox       geometry.BBox `json:"bbox"`
	PageNumber int           `json:"page_number"`
	Rows       []Row         `json:"rows,omitempty"`
	Cells      [][]string    `json:"cells"`
	Markdown   string        `json:"markdown"`
}

// NewTable builds a table from a text grid. Ragged rows are padded with
// empty cells to the widest row; nothing is truncated. The markdown
// rendering is computed once here.
func NewTable(pageNumber int, bbox geometry.BBox, cells [][]string) Table {
	width := 0
	for _, row := range cells {
		width = max(width, len(row))
	}

	grid := make([][]string, len(cells))
	for i, row := range cells {
		grid[i] = make([]string, width)
		copy(grid[i], row)
	}

	t := Table{BBox: bbox, PageNumber: pageNumber, Cells: grid}
	t.Markdown = t.RenderMarkdown()
	return t
}

// NumRows returns the number of rows
func (t Table) NumRows() int {
	return len(t.Cells)
}

// NumCols returns the number of columns, or 0 for an empty table
func (t Table) NumCols() int {
	if len(t.Cells) == 0 {
		return 0
	}
	return len(t.Cells[0])
}

// RenderMarkdown renders the grid as a pipe table with the first row as
// header. Pipes are escaped as \| and line breaks inside a cell become <br>.
// Columns are padded to a common display width so the source stays aligned
// for wide (CJK) characters.
func (t Table) RenderMarkdown() string {
	if t.NumRows() == 0 || t.NumCols() == 0 {
		return ""
	}

	text := make([][]string, len(t.Cells))
	widths := make([]int, t.NumCols())
	for i := range widths {
		widths[i] = 3
	}
	for i, row := range t.Cells {
		text[i] = make([]string, len(row))
		for j, cell := range row {
			text[i][j] = escapeCell(cell)
			widths[j] = max(widths[j], runewidth.StringWidth(text[i][j]))
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		sb.WriteString("|")
		for j, cell := range cells {
			sb.WriteString(" ")
			sb.WriteString(runewidth.FillRight(cell, widths[j]))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(text[0])
	separator := make([]string, len(widths))
	for j, w := range widths {
		separator[j] = strings.Repeat("-", w)
	}
	writeRow(separator)
	for _, row := range text[1:] {
		writeRow(row)
	}
	return sb.String()
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>", "\r", "<br>")

func escapeCell(s string) string {
	return cellEscaper.Replace(strings.TrimSpace(s))
}
