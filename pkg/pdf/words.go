package pdf

import (
	"math"
	"sort"
	"strings"
)

// WordExtractionOption is a function that modifies word extraction behavior
type WordExtractionOption func(*wordExtractionConfig)

type wordExtractionConfig struct {
	XTolerance float64
	YTolerance float64
}

// WithWordXTolerance sets the largest horizontal gap inside a word
func WithWordXTolerance(tolerance float64) WordExtractionOption {
	return func(c *wordExtractionConfig) {
		c.XTolerance = tolerance
	}
}

// WithWordYTolerance sets the largest vertical drift between characters of one line
func WithWordYTolerance(tolerance float64) WordExtractionOption {
	return func(c *wordExtractionConfig) {
		c.YTolerance = tolerance
	}
}

// ExtractWords groups characters into words. Characters are grouped into
// lines by their top coordinate, then split into words wherever the
// horizontal gap exceeds the x tolerance. Whitespace characters always break
// a word and are dropped.
func ExtractWords(chars []CharObject, opts ...WordExtractionOption) []Word {
	config := &wordExtractionConfig{
		XTolerance: 3.0,
		YTolerance: 3.0,
	}
	for _, opt := range opts {
		opt(config)
	}

	sorted := make([]CharObject, 0, len(chars))
	for _, c := range chars {
		if c.GetBBox().Valid() {
			sorted = append(sorted, c)
		}
	}
	if len(sorted) == 0 {
		return nil
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y0 < sorted[j].Y0
	})

	// Group characters into lines
	var lines [][]CharObject
	currentLine := []CharObject{sorted[0]}
	currentY := sorted[0].Y0
	for _, char := range sorted[1:] {
		if math.Abs(char.Y0-currentY) > config.YTolerance {
			lines = append(lines, currentLine)
			currentLine = []CharObject{char}
			currentY = char.Y0
		} else {
			currentLine = append(currentLine, char)
		}
	}
	lines = append(lines, currentLine)

	var words []Word
	for _, line := range lines {
		words = append(words, wordsFromLine(line, config.XTolerance)...)
	}
	return words
}

// wordsFromLine splits a single line of characters into words
func wordsFromLine(line []CharObject, xTolerance float64) []Word {
	sort.SliceStable(line, func(i, j int) bool {
		return line[i].X0 < line[j].X0
	})

	var words []Word
	var current []CharObject
	flush := func() {
		if len(current) > 0 {
			words = append(words, createWord(current))
			current = nil
		}
	}

	for _, char := range line {
		if strings.TrimSpace(char.Text) == "" {
			flush()
			continue
		}
		if len(current) > 0 && char.X0-current[len(current)-1].X1 > xTolerance {
			flush()
		}
		current = append(current, char)
	}
	flush()

	return words
}

// createWord creates a Word from a group of characters
func createWord(chars []CharObject) Word {
	var text strings.Builder
	w := Word{X0: chars[0].X0, Y0: chars[0].Y0, X1: chars[0].X1, Y1: chars[0].Y1}

	for _, char := range chars {
		text.WriteString(char.Text)
		w.X0 = min(w.X0, char.X0)
		w.Y0 = min(w.Y0, char.Y0)
		w.X1 = max(w.X1, char.X1)
		w.Y1 = max(w.Y1, char.Y1)
	}

	w.Text = text.String()
	w.Characters = chars
	return w
}
