package pdf

import (
	"math"
	"slices"
	"sort"
)

// FloatTolerance is the distance below which two coordinates are the same
const FloatTolerance = 0.1

// DeduplicateLines removes lines that repeat another line's coordinates in
// either direction. The input slice is not modified.
func DeduplicateLines(lines []LineObject) []LineObject {
	if len(lines) == 0 {
		return lines
	}

	sorted := slices.Clone(lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := normalizedLine(sorted[i]), normalizedLine(sorted[j])
		if math.Abs(a.Y0-b.Y0) > FloatTolerance {
			return a.Y0 < b.Y0
		}
		if math.Abs(a.X0-b.X0) > FloatTolerance {
			return a.X0 < b.X0
		}
		if math.Abs(a.Y1-b.Y1) > FloatTolerance {
			return a.Y1 < b.Y1
		}
		return a.X1 < b.X1
	})

	result := []LineObject{sorted[0]}
	for _, curr := range sorted[1:] {
		if !linesEqual(result[len(result)-1], curr) {
			result = append(result, curr)
		}
	}
	return result
}

// normalizedLine orders endpoints so reversed duplicates sort together.
func normalizedLine(l LineObject) LineObject {
	if l.Y0 > l.Y1 || (l.Y0 == l.Y1 && l.X0 > l.X1) {
		l.X0, l.Y0, l.X1, l.Y1 = l.X1, l.Y1, l.X0, l.Y0
	}
	return l
}

func linesEqual(a, b LineObject) bool {
	sameDirection := math.Abs(a.X0-b.X0) < FloatTolerance &&
		math.Abs(a.Y0-b.Y0) < FloatTolerance &&
		math.Abs(a.X1-b.X1) < FloatTolerance &&
		math.Abs(a.Y1-b.Y1) < FloatTolerance

	reversedDirection := math.Abs(a.X0-b.X1) < FloatTolerance &&
		math.Abs(a.Y0-b.Y1) < FloatTolerance &&
		math.Abs(a.X1-b.X0) < FloatTolerance &&
		math.Abs(a.Y1-b.Y0) < FloatTolerance

	return sameDirection || reversedDirection
}

// DeduplicateRectangles removes rectangles that repeat another rectangle's
// coordinates. Fill and stroke flags are OR-ed into the survivor.
func DeduplicateRectangles(rects []RectObject) []RectObject {
	if len(rects) == 0 {
		return rects
	}

	sorted := slices.Clone(rects)
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Y0-sorted[j].Y0) > FloatTolerance {
			return sorted[i].Y0 < sorted[j].Y0
		}
		if math.Abs(sorted[i].X0-sorted[j].X0) > FloatTolerance {
			return sorted[i].X0 < sorted[j].X0
		}
		if math.Abs(sorted[i].Y1-sorted[j].Y1) > FloatTolerance {
			return sorted[i].Y1 < sorted[j].Y1
		}
		return sorted[i].X1 < sorted[j].X1
	})

	result := []RectObject{sorted[0]}
	for _, curr := range sorted[1:] {
		last := &result[len(result)-1]
		if rectsEqual(*last, curr) {
			last.NonStroking = last.NonStroking || curr.NonStroking
			last.Width = max(last.Width, curr.Width)
			continue
		}
		result = append(result, curr)
	}
	return result
}

func rectsEqual(a, b RectObject) bool {
	return math.Abs(a.X0-b.X0) < FloatTolerance &&
		math.Abs(a.Y0-b.Y0) < FloatTolerance &&
		math.Abs(a.X1-b.X1) < FloatTolerance &&
		math.Abs(a.Y1-b.Y1) < FloatTolerance
}

// MergeObjects combines the objects of two decoders for the same page.
// Characters come from text; graphics are the union of both, deduplicated.
func MergeObjects(graphics, text Objects) Objects {
	return Objects{
		Chars:  text.Chars,
		Lines:  DeduplicateLines(append(slices.Clone(graphics.Lines), text.Lines...)),
		Rects:  DeduplicateRectangles(append(slices.Clone(graphics.Rects), text.Rects...)),
		Curves: append(slices.Clone(graphics.Curves), text.Curves...),
	}
}
