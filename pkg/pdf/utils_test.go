package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeduplicateLines(t *testing.T) {
	lines := []LineObject{
		{X0: 0, Y0: 10, X1: 100, Y1: 10},
		{X0: 100, Y0: 10.05, X1: 0, Y1: 10},
		{X0: 0, Y0: 20, X1: 100, Y1: 20},
	}
	input := append([]LineObject(nil), lines...)

	got := DeduplicateLines(lines)

	assert.Len(t, got, 2)
	assert.Equal(t, input, lines, "input is not reordered")
}

func TestDeduplicateRectangles(t *testing.T) {
	rects := []RectObject{
		{X0: 0, Y0: 0, X1: 10, Y1: 10, Width: 1},
		{X0: 0.01, Y0: 0, X1: 10, Y1: 10, NonStroking: true},
		{X0: 20, Y0: 0, X1: 30, Y1: 10},
	}

	got := DeduplicateRectangles(rects)

	assert.Len(t, got, 2)
	assert.True(t, got[0].NonStroking)
	assert.Equal(t, 1.0, got[0].Width)
}

func TestMergeObjects(t *testing.T) {
	graphics := Objects{
		Lines: []LineObject{{X0: 0, Y0: 0, X1: 10, Y1: 0}},
		Rects: []RectObject{{X0: 0, Y0: 0, X1: 10, Y1: 10}},
		Chars: []CharObject{{Text: "ignored"}},
	}
	text := Objects{
		Rects: []RectObject{{X0: 0, Y0: 0, X1: 10, Y1: 10, NonStroking: true}},
		Chars: []CharObject{{Text: "a"}},
	}

	merged := MergeObjects(graphics, text)

	assert.Equal(t, text.Chars, merged.Chars)
	assert.Len(t, merged.Lines, 1)
	assert.Len(t, merged.Rects, 1)
	assert.Len(t, graphics.Rects, 1, "inputs are not modified")
}
