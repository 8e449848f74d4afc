package page

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdftables-golang/pkg/pdf"
	"github.com/pyhub-apps/pdftables-golang/pkg/table"
)

func TestCropRejectsBadBox(t *testing.T) {
	p := pdf.NewMemoryPage(1, 600, 800, pdf.Objects{})

	_, err := Crop(p, pdf.BoundingBox{X0: 100, Top: 0, X1: 50, Bottom: 10})
	assert.Error(t, err)

	_, err = Crop(p, pdf.BoundingBox{X0: 0, Top: 0, X1: 0, Bottom: 10})
	assert.Error(t, err)
}

func TestWithinBBox(t *testing.T) {
	objs := pdf.Objects{
		Chars: []pdf.CharObject{
			{Text: "a", X0: 10, Y0: 10, X1: 15, Y1: 20},
			{Text: "b", X0: 200, Y0: 10, X1: 205, Y1: 20},
			// centroid just outside
			{Text: "c", X0: 96, Y0: 10, X1: 106, Y1: 20},
		},
		Lines: []pdf.LineObject{
			{X0: 0, Y0: 50, X1: 300, Y1: 50},
			{X0: 50, Y0: 90, X1: 50, Y1: 400},
			{X0: 150, Y0: 0, X1: 150, Y1: 100},
			{X0: 0, Y0: 0, X1: 80, Y1: 80},
		},
		Rects: []pdf.RectObject{
			{X0: 20, Y0: 20, X1: 120, Y1: 60, NonStroking: true},
			{X0: 300, Y0: 300, X1: 400, Y1: 400},
		},
		Curves: []pdf.CurveObject{
			{Points: []pdf.Point{{X: 500, Y: 500}, {X: 50, Y: 50}}},
			{Points: []pdf.Point{{X: 500, Y: 500}, {X: 600, Y: 600}}},
		},
	}

	got := WithinBBox(objs, pdf.BoundingBox{X0: 0, Top: 0, X1: 100, Bottom: 100})

	require.Len(t, got.Chars, 1)
	assert.Equal(t, "a", got.Chars[0].Text)

	require.Len(t, got.Lines, 3)
	assert.Equal(t, pdf.LineObject{X0: 0, Y0: 50, X1: 100, Y1: 50}, got.Lines[0])
	assert.Equal(t, pdf.LineObject{X0: 50, Y0: 90, X1: 50, Y1: 100}, got.Lines[1])
	assert.Equal(t, pdf.LineObject{X0: 0, Y0: 0, X1: 80, Y1: 80}, got.Lines[2])

	require.Len(t, got.Rects, 1)
	assert.Equal(t, pdf.RectObject{X0: 20, Y0: 20, X1: 100, Y1: 60, NonStroking: true}, got.Rects[0])

	assert.Len(t, got.Curves, 1)
}

func TestCroppedPageRestrictsDetection(t *testing.T) {
	p := pdf.NewMemoryPage(3, 600, 800, pdf.Objects{})
	// two separate 1x2 grids, one on the left and one on the right
	for _, x := range []float64{50, 350} {
		p.AddRect(x, 100, x+100, 120)
		p.AddRect(x+100, 100, x+200, 120)
	}

	all, err := table.FindTables(p, table.DefaultSettings())
	require.NoError(t, err)
	require.Len(t, all, 2)

	cropped, err := Crop(p, pdf.BoundingBox{X0: 0, Top: 0, X1: 300, Bottom: 800})
	require.NoError(t, err)
	assert.Equal(t, 3, cropped.GetPageNumber())
	assert.Equal(t, 300.0, cropped.GetWidth())

	tables, err := table.FindTables(cropped, table.DefaultSettings())
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, 3, tables[0].PageNumber)
	assert.InDelta(t, 50, tables[0].BBox.X0, 1e-9)
	assert.InDelta(t, 250, tables[0].BBox.X1, 1e-9)
}

func TestCroppedPagePropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	p := &pdf.MemoryPage{Number: 1, Width: 10, Height: 10, Err: boom}

	cropped, err := Crop(p, pdf.BoundingBox{X1: 5, Bottom: 5})
	require.NoError(t, err)
	_, err = cropped.GetObjects()
	assert.ErrorIs(t, err, boom)
}

func TestCropDocument(t *testing.T) {
	doc := &pdf.MemoryDocument{Pages: []pdf.Page{
		pdf.NewMemoryPage(1, 100, 100, pdf.Objects{}),
		pdf.NewMemoryPage(2, 100, 100, pdf.Objects{}),
	}}

	cropped, err := CropDocument(doc, pdf.BoundingBox{X1: 50, Bottom: 50})
	require.NoError(t, err)
	require.Equal(t, 2, cropped.PageCount())
	pg, err := cropped.GetPage(1)
	require.NoError(t, err)
	assert.Equal(t, 2, pg.GetPageNumber())
	assert.Equal(t, pdf.BoundingBox{X1: 50, Bottom: 50}, pg.GetBBox())

	_, err = CropDocument(doc, pdf.BoundingBox{X0: 10, X1: 5, Bottom: 5})
	assert.Error(t, err)
}
