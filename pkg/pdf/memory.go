package pdf

import (
	"fmt"
)

// MemoryPage is a Page whose objects are supplied directly. It backs unit
// tests and callers that already hold decoded page geometry.
type MemoryPage struct {
	Number  int
	Width   float64
	Height  float64
	Objects Objects
	Err     error
}

// NewMemoryPage creates an in-memory page
func NewMemoryPage(number int, width, height float64, objects Objects) *MemoryPage {
	return &MemoryPage{Number: number, Width: width, Height: height, Objects: objects}
}

// GetPageNumber returns the page number (1-based)
func (p *MemoryPage) GetPageNumber() int { return p.Number }

// GetWidth returns the page width
func (p *MemoryPage) GetWidth() float64 { return p.Width }

// GetHeight returns the page height
func (p *MemoryPage) GetHeight() float64 { return p.Height }

// GetBBox returns the page bounding box
func (p *MemoryPage) GetBBox() BoundingBox {
	return BoundingBox{X1: p.Width, Bottom: p.Height}
}

// GetObjects returns the supplied objects, or Err when set
func (p *MemoryPage) GetObjects() (Objects, error) {
	if p.Err != nil {
		return Objects{}, p.Err
	}
	return p.Objects, nil
}

// AddText lays out s as fixed-width characters starting at (x, top). Spaces
// advance the pen without producing a character.
func (p *MemoryPage) AddText(s string, x, top, charWidth, fontSize float64) {
	for _, r := range s {
		if r != ' ' {
			p.Objects.Chars = append(p.Objects.Chars, CharObject{
				Text:     string(r),
				FontSize: fontSize,
				X0:       x,
				Y0:       top,
				X1:       x + charWidth,
				Y1:       top + fontSize,
			})
		}
		x += charWidth
	}
}

// AddLine adds a stroked segment
func (p *MemoryPage) AddLine(x0, y0, x1, y1 float64) {
	p.Objects.Lines = append(p.Objects.Lines, LineObject{X0: x0, Y0: y0, X1: x1, Y1: y1, Width: 1})
}

// AddRect adds a stroked rectangle
func (p *MemoryPage) AddRect(x0, top, x1, bottom float64) {
	p.Objects.Rects = append(p.Objects.Rects, RectObject{X0: x0, Y0: top, X1: x1, Y1: bottom, Width: 1})
}

// MemoryDocument is a Document over in-memory pages
type MemoryDocument struct {
	Pages []Page
}

// GetPages returns all pages in the document
func (d *MemoryDocument) GetPages() []Page { return d.Pages }

// GetPage returns a specific page by index (0-based)
func (d *MemoryDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(d.Pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.Pages))
	}
	return d.Pages[index], nil
}

// PageCount returns the total number of pages
func (d *MemoryDocument) PageCount() int { return len(d.Pages) }

// Close releases resources associated with the document
func (d *MemoryDocument) Close() error { return nil }
