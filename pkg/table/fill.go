package table

import (
	"sort"
	"strings"

	"github.com/tidwall/rtree"
	"golang.org/x/text/unicode/norm"

	"github.com/pyhub-apps/pdftables-golang/internal/logging"
	"github.com/pyhub-apps/pdftables-golang/pkg/cluster"
	"github.com/pyhub-apps/pdftables-golang/pkg/geometry"
	"github.com/pyhub-apps/pdftables-golang/pkg/pdf"
)

// charIndex looks up characters by the centroid of their box
type charIndex struct {
	tr    rtree.RTreeG[int]
	chars []pdf.CharObject
}

func newCharIndex(chars []pdf.CharObject) *charIndex {
	ix := &charIndex{chars: chars}
	skipped := 0
	for i, c := range chars {
		box := c.GetBBox()
		if !box.Valid() {
			skipped++
			continue
		}
		center := box.Center()
		at := [2]float64{center.X, center.Y}
		ix.tr.Insert(at, at, i)
	}
	if skipped > 0 {
		logging.Logger().Warn("skipping malformed characters", "count", skipped)
	}
	return ix
}

// textIn returns the text of the characters whose centroid lies in the
// half-open box [X0, X1) × [Top, Bottom). Characters are grouped into lines
// by their top within tolerance; lines read top to bottom and are joined
// with "\n", characters read left to right with a space wherever the gap
// exceeds tolerance. The result is NFC-normalized.
func (ix *charIndex) textIn(cell geometry.BBox, tolerance float64) string {
	var hits []int
	ix.tr.Search([2]float64{cell.X0, cell.Top}, [2]float64{cell.X1, cell.Bottom},
		func(at, _ [2]float64, i int) bool {
			if at[0] < cell.X1 && at[1] < cell.Bottom {
				hits = append(hits, i)
			}
			return true
		})
	if len(hits) == 0 {
		return ""
	}
	sort.Ints(hits)

	chars := make([]pdf.CharObject, len(hits))
	for i, idx := range hits {
		chars[i] = ix.chars[idx]
	}

	var lines []string
	for _, line := range cluster.ClusterObjects(chars, func(c pdf.CharObject) float64 { return c.Y0 }, tolerance) {
		sort.SliceStable(line, func(i, j int) bool { return line[i].X0 < line[j].X0 })
		var b strings.Builder
		for i, c := range line {
			if i > 0 && c.X0-line[i-1].X1 > tolerance {
				b.WriteByte(' ')
			}
			b.WriteString(c.Text)
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			lines = append(lines, s)
		}
	}
	return norm.NFC.String(strings.Join(lines, "\n"))
}
