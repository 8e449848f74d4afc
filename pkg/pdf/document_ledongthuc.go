package pdf

import (
	"fmt"
	"io"

	lpdf "github.com/ledongthuc/pdf"
)

// LedongthucDocument reads the text layer of a PDF with ledongthuc/pdf
type LedongthucDocument struct {
	file  io.Closer
	pages []Page
}

// OpenWithLedongthuc opens a PDF file using the ledongthuc/pdf library
func OpenWithLedongthuc(filepath string) (*LedongthucDocument, error) {
	f, r, err := lpdf.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with ledongthuc: %w", err)
	}

	doc := &LedongthucDocument{file: f}
	for i := 1; i <= r.NumPage(); i++ {
		doc.pages = append(doc.pages, newLedongthucPage(r.Page(i), i))
	}

	return doc, nil
}

// GetPages returns all pages in the document
func (d *LedongthucDocument) GetPages() []Page {
	return d.pages
}

// GetPage returns a specific page by index (0-based)
func (d *LedongthucDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// PageCount returns the total number of pages
func (d *LedongthucDocument) PageCount() int {
	return len(d.pages)
}

// Close releases resources associated with the document
func (d *LedongthucDocument) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}

// LedongthucPage is a text-layer page decoded by ledongthuc/pdf. Content is
// decoded once at construction; the reader is not safe for concurrent use.
type LedongthucPage struct {
	pageNumber int
	width      float64
	height     float64
	objects    Objects
	err        error
}

func newLedongthucPage(page lpdf.Page, pageNumber int) *LedongthucPage {
	// Default to US Letter
	p := &LedongthucPage{pageNumber: pageNumber, width: 612, height: 792}

	mediaBox := page.V.Key("MediaBox")
	if mediaBox.Kind() == lpdf.Array && mediaBox.Len() == 4 {
		p.width = mediaBox.Index(2).Float64() - mediaBox.Index(0).Float64()
		p.height = mediaBox.Index(3).Float64() - mediaBox.Index(1).Float64()
	}

	p.objects, p.err = p.decode(page)
	return p
}

func (p *LedongthucPage) decode(page lpdf.Page) (objs Objects, err error) {
	defer recoverContent(p.pageNumber, &err)

	content := page.Content()
	runs := make([]textRun, 0, len(content.Text))
	for _, t := range content.Text {
		runs = append(runs, textRun{Font: t.Font, FontSize: t.FontSize, X: t.X, Y: t.Y, W: t.W, S: t.S})
	}
	boxes := make([]boxRun, 0, len(content.Rect))
	for _, r := range content.Rect {
		boxes = append(boxes, boxRun{MinX: r.Min.X, MinY: r.Min.Y, MaxX: r.Max.X, MaxY: r.Max.Y})
	}
	return buildTextObjects(p.height, runs, boxes), nil
}

// GetPageNumber returns the page number (1-based)
func (p *LedongthucPage) GetPageNumber() int {
	return p.pageNumber
}

// GetWidth returns the page width
func (p *LedongthucPage) GetWidth() float64 {
	return p.width
}

// GetHeight returns the page height
func (p *LedongthucPage) GetHeight() float64 {
	return p.height
}

// GetBBox returns the page bounding box
func (p *LedongthucPage) GetBBox() BoundingBox {
	return BoundingBox{X1: p.width, Bottom: p.height}
}

// GetObjects returns the decoded characters and filled rectangles
func (p *LedongthucPage) GetObjects() (Objects, error) {
	return p.objects, p.err
}
