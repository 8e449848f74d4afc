// Package pdftables detects tables in PDF documents from drawn rules and
// positioned text, in the manner of Python's pdfplumber
package pdftables

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/pyhub-apps/pdftables-golang/internal/logging"
	"github.com/pyhub-apps/pdftables-golang/pkg/pdf"
	"github.com/pyhub-apps/pdftables-golang/pkg/table"
)

// Re-export types for the public API
type (
	Document    = pdf.Document
	Page        = pdf.Page
	Objects     = pdf.Objects
	CharObject  = pdf.CharObject
	LineObject  = pdf.LineObject
	RectObject  = pdf.RectObject
	CurveObject = pdf.CurveObject
	BoundingBox = pdf.BoundingBox
	Table       = table.Table
	Settings    = table.Settings
	Strategy    = table.Strategy
	Option      = table.Option
)

// Re-export strategies and option functions
const (
	Lines       = table.Lines
	LinesStrict = table.LinesStrict
	Text        = table.Text
	Explicit    = table.Explicit
)

var (
	DefaultSettings           = table.DefaultSettings
	NewSettings               = table.NewSettings
	ParseStrategy             = table.ParseStrategy
	WithStrategy              = table.WithStrategy
	WithSnapTolerance         = table.WithSnapTolerance
	WithJoinTolerance         = table.WithJoinTolerance
	WithEdgeMinLength         = table.WithEdgeMinLength
	WithIntersectionTolerance = table.WithIntersectionTolerance
	WithMinWords              = table.WithMinWords
	WithTextTolerance         = table.WithTextTolerance
	WithMaxEdges              = table.WithMaxEdges
	WithTextFallback          = table.WithTextFallback
	WithExplicitLines         = table.WithExplicitLines
	FindTables                = table.FindTables
)

// Open opens a PDF file for table detection. Text comes from
// ledongthuc/pdf (falling back to dslipak/pdf) and drawn geometry from
// pdfcpu.
func Open(filepath string) (Document, error) {
	return pdf.Open(filepath)
}

// ExtractionResult holds the tables of a whole document
type ExtractionResult struct {
	Tables    []Table `json:"tables"`
	PageCount int     `json:"page_count"`
	// SkippedPages lists pages whose objects could not be decoded or that
	// exceeded the edge limit. They contribute no tables.
	SkippedPages []int `json:"skipped_pages,omitempty"`
}

// TablesOnPage returns the tables found on a 1-based page number
func (r ExtractionResult) TablesOnPage(pageNumber int) []Table {
	var out []Table
	for _, t := range r.Tables {
		if t.PageNumber == pageNumber {
			out = append(out, t)
		}
	}
	return out
}

// ExtractTables runs table detection on every page of doc. Pages are
// processed concurrently, at most GOMAXPROCS at a time, and the tables are
// returned ordered by page number. A page that fails to decode or exceeds
// Settings.MaxEdges is logged and skipped; only invalid settings or a
// cancelled context fail the whole document.
func ExtractTables(ctx context.Context, doc Document, s Settings) (ExtractionResult, error) {
	if err := s.Validate(); err != nil {
		return ExtractionResult{}, fmt.Errorf("invalid settings: %w", err)
	}

	pages := doc.GetPages()
	results := make([][]Table, len(pages))
	skipped := make([]bool, len(pages))
	log := logging.Logger()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, page := range pages {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tables, err := table.FindTables(page, s)
			if err != nil {
				log.Warn("skipping page", "page", page.GetPageNumber(), "error", err)
				skipped[i] = true
				return nil
			}
			results[i] = tables
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ExtractionResult{}, fmt.Errorf("table extraction cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return ExtractionResult{}, fmt.Errorf("table extraction cancelled: %w", err)
	}

	result := ExtractionResult{PageCount: len(pages), Tables: []Table{}}
	for i, tables := range results {
		result.Tables = append(result.Tables, tables...)
		if skipped[i] {
			result.SkippedPages = append(result.SkippedPages, pages[i].GetPageNumber())
		}
	}
	sort.SliceStable(result.Tables, func(i, j int) bool {
		return result.Tables[i].PageNumber < result.Tables[j].PageNumber
	})
	sort.Ints(result.SkippedPages)

	log.Info("table extraction finished",
		"pages", result.PageCount, "tables", len(result.Tables), "skipped", len(result.SkippedPages))
	return result, nil
}

// ExtractFile opens a PDF file, extracts its tables and closes it
func ExtractFile(ctx context.Context, filepath string, s Settings) (ExtractionResult, error) {
	doc, err := Open(filepath)
	if err != nil {
		return ExtractionResult{}, err
	}
	defer doc.Close()

	return ExtractTables(ctx, doc, s)
}
