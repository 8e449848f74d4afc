package table

import (
	"errors"
	"fmt"

	"github.com/pyhub-apps/pdftables-golang/internal/logging"
	"github.com/pyhub-apps/pdftables-golang/pkg/geometry"
	"github.com/pyhub-apps/pdftables-golang/pkg/pdf"
)

// FindTables detects the tables on one page. It reads the page's objects
// once and is otherwise a pure function of its inputs, so pages may be
// processed concurrently.
//
// A page without qualifying rules or words yields no tables and no error.
// Errors are *Error values: KindConfig for unusable settings, KindInput when
// the page cannot supply its objects and KindLimit when the page exceeds
// Settings.MaxEdges (wrapping ErrTooManyEdges).
func FindTables(page pdf.Page, s Settings) ([]Table, error) {
	pageNumber := page.GetPageNumber()
	if err := s.Validate(); err != nil {
		return nil, &Error{Kind: KindConfig, Page: pageNumber, Err: err}
	}

	objs, err := page.GetObjects()
	if err != nil {
		return nil, &Error{Kind: KindInput, Page: pageNumber, Err: err}
	}

	cells, err := seedCells(objs, s)
	if err != nil {
		kind := KindConfig
		if errors.Is(err, ErrTooManyEdges) {
			kind = KindLimit
		}
		return nil, &Error{Kind: kind, Page: pageNumber, Err: err}
	}

	groups := groupCells(cells, s.IntersectionTolerance)
	if len(groups) == 0 {
		return nil, nil
	}

	chars := newCharIndex(objs.Chars)
	tables := make([]Table, 0, len(groups))
	for _, group := range groups {
		rows := layoutCells(group)
		grid := make([][]string, len(rows))
		for i, row := range rows {
			grid[i] = make([]string, len(row.Cells))
			for j, cell := range row.Cells {
				if cell != nil {
					grid[i][j] = chars.textIn(*cell, s.TextTolerance)
				}
			}
		}
		bbox, _ := geometry.MergeBBoxes(group)
		t := NewTable(pageNumber, bbox, grid)
		t.Rows = rows
		tables = append(tables, t)
	}

	logging.Logger().Debug("tables detected",
		"page", pageNumber, "strategy", s.Strategy, "cells", len(cells), "tables", len(tables))
	return tables, nil
}

// seedCells dispatches on the strategy and returns the page's cells
func seedCells(objs pdf.Objects, s Settings) ([]geometry.BBox, error) {
	switch s.Strategy {
	case Lines, LinesStrict:
		cells, err := latticeCells(ExtractEdges(objs, s.EdgeMinLength), s, s.Strategy == LinesStrict)
		if err != nil {
			return nil, err
		}
		if len(cells) == 0 && s.Strategy == Lines && s.TextFallback {
			logging.Logger().Debug("no ruled cells, falling back to text strategy")
			return textCells(pageWords(objs, s), s), nil
		}
		return cells, nil
	case Text:
		return textCells(pageWords(objs, s), s), nil
	case Explicit:
		return latticeCells(explicitEdges(s.ExplicitVerticalLines, s.ExplicitHorizontalLines), s, false)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, s.Strategy)
	}
}

// latticeCells runs snap, join, intersection and cell construction
func latticeCells(edges []geometry.Edge, s Settings, strict bool) ([]geometry.BBox, error) {
	horizontal, vertical := mergeEdges(edges, s.SnapTolerance, s.JoinTolerance)
	if n := len(horizontal) + len(vertical); n > s.MaxEdges {
		return nil, fmt.Errorf("%w: %d merged edges exceed the limit of %d", ErrTooManyEdges, n, s.MaxEdges)
	}
	if len(horizontal) == 0 || len(vertical) == 0 {
		return nil, nil
	}

	points := findIntersections(horizontal, vertical, s.IntersectionTolerance)
	return buildCells(points, horizontal, vertical, s.IntersectionTolerance, strict), nil
}

func pageWords(objs pdf.Objects, s Settings) []pdf.Word {
	return pdf.ExtractWords(objs.Chars,
		pdf.WithWordXTolerance(s.TextTolerance),
		pdf.WithWordYTolerance(s.TextTolerance))
}
