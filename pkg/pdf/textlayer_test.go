package pdf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTextObjects(t *testing.T) {
	runs := []textRun{
		{Font: "Helvetica", FontSize: 10, X: 100, Y: 700, W: 30, S: "a b"},
		{Font: "Helvetica", FontSize: 10, X: 50, Y: 700, W: 10, S: "z"},
	}
	boxes := []boxRun{{MinX: 10, MinY: 600, MaxX: 200, MaxY: 601}}

	objs := buildTextObjects(792, runs, boxes)

	require.Len(t, objs.Chars, 3)
	assert.Equal(t, []string{"z", "a", "b"}, []string{objs.Chars[0].Text, objs.Chars[1].Text, objs.Chars[2].Text})
	assert.Equal(t, 84.0, objs.Chars[1].Y0)
	assert.Equal(t, 94.0, objs.Chars[1].Y1)
	assert.Equal(t, 120.0, objs.Chars[2].X0, "the space advances the pen")

	require.Len(t, objs.Rects, 1)
	assert.Equal(t, 191.0, objs.Rects[0].Y0)
	assert.Equal(t, 192.0, objs.Rects[0].Y1)
	assert.True(t, objs.Rects[0].NonStroking)
}

func TestRecoverContent(t *testing.T) {
	decode := func() (err error) {
		defer recoverContent(4, &err)
		panic(errors.New("malformed stream"))
	}

	err := decode()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 4")
	assert.Contains(t, err.Error(), "malformed stream")
}
