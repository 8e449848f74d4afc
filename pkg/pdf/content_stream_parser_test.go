package pdf

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdftables-golang/internal/logging"
)

func TestContentStreamParserRectangle(t *testing.T) {
	// 100x50 box whose lower-left corner is at (10, 700) on a Letter page
	parser := NewContentStreamParser(0, 792)
	objs := parser.Parse([]byte("q 0.5 w 10 700 100 50 re S Q"))

	require.Len(t, objs.Rects, 1)
	r := objs.Rects[0]
	assert.Equal(t, 10.0, r.X0)
	assert.Equal(t, 42.0, r.Y0)
	assert.Equal(t, 110.0, r.X1)
	assert.Equal(t, 92.0, r.Y1)
	assert.Equal(t, 0.5, r.Width)
	assert.False(t, r.NonStroking)
	assert.Empty(t, objs.Lines)
}

func TestContentStreamParserFilledRectangle(t *testing.T) {
	parser := NewContentStreamParser(0, 100)
	objs := parser.Parse([]byte("0.5 g 0 0 10 10 re f"))

	require.Len(t, objs.Rects, 1)
	assert.True(t, objs.Rects[0].NonStroking)
	assert.Equal(t, Color{R: 128, G: 128, B: 128, A: 255}, objs.Rects[0].FillColor)
}

func TestContentStreamParserLines(t *testing.T) {
	parser := NewContentStreamParser(0, 100)
	objs := parser.Parse([]byte("10 90 m 60 90 l S\n10 90 m 10 40 l 60 40 l S"))

	require.Len(t, objs.Lines, 3)
	assert.Equal(t, LineObject{X0: 10, Y0: 10, X1: 60, Y1: 10, Width: 1}, objs.Lines[0])
	assert.Equal(t, 60.0, objs.Lines[1].Y1)
	assert.Equal(t, 60.0, objs.Lines[2].X1)
	assert.Empty(t, objs.Rects)
}

func TestContentStreamParserClosedPathBecomesRect(t *testing.T) {
	parser := NewContentStreamParser(0, 100)
	objs := parser.Parse([]byte("0 0 m 20 0 l 20 10 l 0 10 l h S"))

	require.Len(t, objs.Rects, 1)
	assert.Equal(t, 90.0, objs.Rects[0].Y0)
	assert.Equal(t, 100.0, objs.Rects[0].Y1)
}

func TestContentStreamParserTransform(t *testing.T) {
	parser := NewContentStreamParser(0, 100)
	objs := parser.Parse([]byte("q 2 0 0 2 5 0 cm 0 0 m 10 0 l S Q 0 0 m 10 0 l S"))

	require.Len(t, objs.Lines, 2)
	assert.Equal(t, 5.0, objs.Lines[0].X0)
	assert.Equal(t, 25.0, objs.Lines[0].X1)
	assert.Equal(t, 10.0, objs.Lines[1].X1, "Q restores the identity transform")
}

func TestContentStreamParserCurve(t *testing.T) {
	parser := NewContentStreamParser(0, 100)
	objs := parser.Parse([]byte("0 0 m 0 10 10 10 10 0 c S"))

	require.Len(t, objs.Curves, 1)
	assert.Len(t, objs.Curves[0].Points, 4)
}

func TestContentStreamParserSkipsTextAndJunk(t *testing.T) {
	content := []byte(`BT /F1 12 Tf (a (nested) \) string) Tj [(x) 10 (y)] TJ ET
% comment 1 2 m 3 4 l S
<< /MCID 0 >> BDC 1 nan 5 5 re f EMC
BI /W 1 /H 1 ID ` + "\x00\xff EI" + ` EI
n 0 0 m 5 0 l n`)
	parser := NewContentStreamParser(0, 100)
	objs := parser.Parse(content)

	assert.Equal(t, 0, objs.Len())
}

func TestMatrixMultiply(t *testing.T) {
	scale := Matrix{A: 2, D: 2}
	translate := Matrix{A: 1, D: 1, E: 3, F: 4}

	x, y := scale.Multiply(translate).Transform(1, 1)
	assert.Equal(t, 5.0, x)
	assert.Equal(t, 6.0, y)

	x, y = IdentityMatrix().Transform(7, 8)
	assert.Equal(t, 7.0, x)
	assert.Equal(t, 8.0, y)
}

func TestContentStreamParserReportsFormXObjects(t *testing.T) {
	capture := logging.NewCaptureHandler(slog.LevelDebug)
	logging.SetLogger(slog.New(capture))
	t.Cleanup(func() { logging.SetLogger(nil) })

	parser := NewContentStreamParser(0, 100)
	objs := parser.Parse([]byte("q 1 0 0 1 10 10 cm /Fm0 Do Q /Fm1 Do 0 0 m 50 0 l S"))

	assert.Len(t, objs.Lines, 1)
	require.Equal(t, 1, capture.Count())
	assert.True(t, capture.Contains("form XObjects not inspected for rules"))
	assert.True(t, capture.Contains("count=2"))

	capture.Reset()
	NewContentStreamParser(0, 100).Parse([]byte("0 0 m 50 0 l S"))
	assert.Equal(t, 0, capture.Count())
}
