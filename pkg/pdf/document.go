package pdf

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pyhub-apps/pdftables-golang/internal/logging"
)

// Open reads a PDF file for table detection. Drawn geometry comes from
// pdfcpu; characters come from ledongthuc/pdf, or dslipak/pdf when the first
// reader cannot open the file. When pdfcpu cannot read the file the filled
// rectangles reported by the text reader are the only geometry.
func Open(filepath string) (Document, error) {
	text, err := openTextLayer(filepath)
	if err != nil {
		return nil, err
	}

	graphics, gerr := OpenWithPDFCPU(filepath)
	if gerr != nil {
		logging.Logger().Warn("graphics decoder unavailable, using text-layer rectangles only",
			"file", filepath, "error", gerr)
		return text, nil
	}

	if graphics.PageCount() != text.PageCount() {
		logging.Logger().Warn("page count mismatch between decoders",
			"file", filepath, "graphics", graphics.PageCount(), "text", text.PageCount())
	}

	doc := &CompositeDocument{text: text}
	for i, tp := range text.GetPages() {
		cp := &CompositePage{text: tp}
		if i < graphics.PageCount() {
			cp.graphics = graphics.pages[i]
		}
		doc.pages = append(doc.pages, cp)
	}
	return doc, nil
}

func openTextLayer(filepath string) (Document, error) {
	ld, lerr := OpenWithLedongthuc(filepath)
	if lerr == nil {
		return ld, nil
	}
	logging.Logger().Debug("ledongthuc reader failed, trying dslipak", "file", filepath, "error", lerr)

	dd, derr := OpenWithDslipak(filepath)
	if derr == nil {
		return dd, nil
	}
	return nil, fmt.Errorf("failed to open %s: %w", filepath, errors.Join(lerr, derr))
}

// CompositeDocument pairs a text-layer reader with pdfcpu geometry
type CompositeDocument struct {
	text  Document
	pages []Page
}

// GetPages returns all pages in the document
func (d *CompositeDocument) GetPages() []Page {
	return d.pages
}

// GetPage returns a specific page by index (0-based)
func (d *CompositeDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// PageCount returns the total number of pages
func (d *CompositeDocument) PageCount() int {
	return len(d.pages)
}

// Close releases resources associated with the document
func (d *CompositeDocument) Close() error {
	d.pages = nil
	return d.text.Close()
}

// CompositePage merges characters from the text layer with drawn geometry.
// The page box is taken from the graphics decoder when present.
type CompositePage struct {
	text     Page
	graphics Page

	once    sync.Once
	objects Objects
	err     error
}

// GetPageNumber returns the page number (1-based)
func (p *CompositePage) GetPageNumber() int {
	return p.text.GetPageNumber()
}

// GetWidth returns the page width
func (p *CompositePage) GetWidth() float64 {
	return p.box().GetWidth()
}

// GetHeight returns the page height
func (p *CompositePage) GetHeight() float64 {
	return p.box().GetHeight()
}

// GetBBox returns the page bounding box
func (p *CompositePage) GetBBox() BoundingBox {
	return p.box().GetBBox()
}

func (p *CompositePage) box() Page {
	if p.graphics != nil {
		return p.graphics
	}
	return p.text
}

// GetObjects returns text-layer characters together with the union of both
// decoders' geometry. A text-layer failure is fatal for the page; a graphics
// failure degrades to text-layer rectangles and is logged.
func (p *CompositePage) GetObjects() (Objects, error) {
	p.once.Do(func() {
		text, err := p.text.GetObjects()
		if err != nil {
			p.err = err
			return
		}
		if p.graphics == nil {
			p.objects = text
			return
		}
		graphics, err := p.graphics.GetObjects()
		if err != nil {
			logging.Logger().Warn("graphics decoding failed",
				"page", p.GetPageNumber(), "error", err)
			p.objects = text
			return
		}
		p.objects = MergeObjects(graphics, text)
	})
	return p.objects, p.err
}
