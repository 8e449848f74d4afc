package table

import (
	"github.com/pyhub-apps/pdftables-golang/pkg/cluster"
	"github.com/pyhub-apps/pdftables-golang/pkg/geometry"
	"github.com/pyhub-apps/pdftables-golang/pkg/pdf"
)

// textCells synthesizes a grid from word positions. Words are clustered
// into rows by their top coordinate and into columns by their left edge,
// both with the snap tolerance. Columns with fewer than MinWordsVertical
// words are dropped as noise, then rows with fewer than MinWordsHorizontal
// words in the surviving columns. Each row band runs from its highest word
// to the next row's top, each column band from its leftmost word to the
// next column's left edge, so the bands tile the table without gaps.
func textCells(words []pdf.Word, s Settings) []geometry.BBox {
	if len(words) == 0 {
		return nil
	}
	top := func(w pdf.Word) float64 { return w.Y0 }
	left := func(w pdf.Word) float64 { return w.X0 }

	var columns [][]pdf.Word
	inColumn := map[*pdf.Word]bool{}
	byIndex := make([]*pdf.Word, len(words))
	for i := range words {
		byIndex[i] = &words[i]
	}
	for _, col := range cluster.ClusterObjects(byIndex, func(w *pdf.Word) float64 { return w.X0 }, s.SnapTolerance) {
		if len(col) < s.MinWordsVertical {
			continue
		}
		members := make([]pdf.Word, len(col))
		for i, w := range col {
			members[i] = *w
			inColumn[w] = true
		}
		columns = append(columns, members)
	}
	if len(columns) == 0 {
		return nil
	}

	var rows [][]pdf.Word
	for _, row := range cluster.ClusterObjects(byIndex, func(w *pdf.Word) float64 { return w.Y0 }, s.SnapTolerance) {
		var members []pdf.Word
		for _, w := range row {
			if inColumn[w] {
				members = append(members, *w)
			}
		}
		if len(members) == 0 || len(members) < s.MinWordsHorizontal {
			continue
		}
		rows = append(rows, members)
	}
	if len(rows) == 0 {
		return nil
	}

	rowBands := bands(rows, top, func(w pdf.Word) float64 { return w.Y1 })
	colBands := bands(columns, left, func(w pdf.Word) float64 { return w.X1 })

	cells := make([]geometry.BBox, 0, len(rowBands)*len(colBands))
	for _, r := range rowBands {
		for _, c := range colBands {
			cells = append(cells, geometry.BBox{X0: c[0], Top: r[0], X1: c[1], Bottom: r[1]})
		}
	}
	return cells
}

// bands turns ordered clusters into contiguous [start, end) intervals. A
// band ends where the next one starts; the last band ends at its furthest
// member.
func bands(groups [][]pdf.Word, start, end func(pdf.Word) float64) [][2]float64 {
	out := make([][2]float64, len(groups))
	for i, g := range groups {
		lo, hi := start(g[0]), end(g[0])
		for _, w := range g[1:] {
			lo = min(lo, start(w))
			hi = max(hi, end(w))
		}
		out[i] = [2]float64{lo, hi}
	}
	for i := 0; i+1 < len(out); i++ {
		out[i][1] = out[i+1][0]
	}
	return out
}
