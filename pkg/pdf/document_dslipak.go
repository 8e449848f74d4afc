package pdf

import (
	"fmt"

	gopdf "github.com/dslipak/pdf"
)

// DslipakDocument reads the text layer of a PDF with dslipak/pdf
type DslipakDocument struct {
	pages []Page
}

// OpenWithDslipak opens a PDF file using the dslipak/pdf library
func OpenWithDslipak(filepath string) (*DslipakDocument, error) {
	r, err := gopdf.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with dslipak: %w", err)
	}

	doc := &DslipakDocument{}
	for i := 1; i <= r.NumPage(); i++ {
		doc.pages = append(doc.pages, newDslipakPage(r.Page(i), i))
	}

	return doc, nil
}

// GetPages returns all pages in the document
func (d *DslipakDocument) GetPages() []Page {
	return d.pages
}

// GetPage returns a specific page by index (0-based)
func (d *DslipakDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// PageCount returns the total number of pages
func (d *DslipakDocument) PageCount() int {
	return len(d.pages)
}

// Close releases resources associated with the document. dslipak/pdf keeps
// no handle beyond the reader, so this only drops page references.
func (d *DslipakDocument) Close() error {
	d.pages = nil
	return nil
}

// DslipakPage is a text-layer page decoded by dslipak/pdf. Content is
// decoded once at construction; the reader is not safe for concurrent use.
type DslipakPage struct {
	pageNumber int
	width      float64
	height     float64
	objects    Objects
	err        error
}

func newDslipakPage(page gopdf.Page, pageNumber int) *DslipakPage {
	// Default to US Letter
	p := &DslipakPage{pageNumber: pageNumber, width: 612, height: 792}

	mediaBox := page.V.Key("MediaBox")
	if mediaBox.Kind() == gopdf.Array && mediaBox.Len() == 4 {
		p.width = mediaBox.Index(2).Float64() - mediaBox.Index(0).Float64()
		p.height = mediaBox.Index(3).Float64() - mediaBox.Index(1).Float64()
	}

	p.objects, p.err = p.decode(page)
	return p
}

func (p *DslipakPage) decode(page gopdf.Page) (objs Objects, err error) {
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
func (p *DslipakPage) GetPageNumber() int {
	return p.pageNumber
}

// GetWidth returns the page width
func (p *DslipakPage) GetWidth() float64 {
	return p.width
}

// GetHeight returns the page height
func (p *DslipakPage) GetHeight() float64 {
	return p.height
}

// GetBBox returns the page bounding box
func (p *DslipakPage) GetBBox() BoundingBox {
	return BoundingBox{X1: p.width, Bottom: p.height}
}

// GetObjects returns the decoded characters and filled rectangles
func (p *DslipakPage) GetObjects() (Objects, error) {
	return p.objects, p.err
}
