package pdf

import (
	"fmt"
	"sort"
)

// textRun is one positioned string as reported by the text-layer readers,
// in PDF user space (baseline at Y, bottom-left origin).
type textRun struct {
	Font     string
	FontSize float64
	X, Y, W  float64
	S        string
}

// boxRun is a filled rectangle reported by the text-layer readers, in PDF
// user space.
type boxRun struct {
	MinX, MinY, MaxX, MaxY float64
}

// baselineRatio places the baseline at 80% of the font height.
const baselineRatio = 0.8

// buildTextObjects converts reader output into top-left-origin objects.
// Each run's width is split evenly across its characters; spaces advance
// the pen without producing a character.
func buildTextObjects(height float64, runs []textRun, boxes []boxRun) Objects {
	objs := Objects{}

	for _, run := range runs {
		chars := []rune(run.S)
		if len(chars) == 0 {
			continue
		}

		top := height - (run.Y + run.FontSize*baselineRatio)
		charWidth := run.W / float64(len(chars))
		x := run.X
		for _, ch := range chars {
			if ch != ' ' && ch != '\n' && ch != '\r' {
				objs.Chars = append(objs.Chars, CharObject{
					Text:     string(ch),
					Font:     run.Font,
					FontSize: run.FontSize,
					X0:       x,
					Y0:       top,
					X1:       x + charWidth,
					Y1:       top + run.FontSize,
				})
			}
			x += charWidth
		}
	}

	for _, b := range boxes {
		objs.Rects = append(objs.Rects, RectObject{
			X0:          min(b.MinX, b.MaxX),
			Y0:          height - max(b.MinY, b.MaxY),
			X1:          max(b.MinX, b.MaxX),
			Y1:          height - min(b.MinY, b.MaxY),
			NonStroking: true,
		})
	}

	// Reading order keeps downstream word grouping deterministic.
	sort.SliceStable(objs.Chars, func(i, j int) bool {
		if objs.Chars[i].Y0 != objs.Chars[j].Y0 {
			return objs.Chars[i].Y0 < objs.Chars[j].Y0
		}
		return objs.Chars[i].X0 < objs.Chars[j].X0
	})

	return objs
}

// recoverContent turns a panic inside a third-party content decoder into an
// error so one malformed page cannot abort the whole document.
func recoverContent(pageNumber int, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("page %d: content decoding panicked: %v", pageNumber, r)
	}
}
