// Package page provides views over a pdf.Page that restrict table
// detection to part of the page.
package page

import (
	"fmt"

	"github.com/pyhub-apps/pdftables-golang/pkg/geometry"
	"github.com/pyhub-apps/pdftables-golang/pkg/pdf"
)

// CroppedPage exposes only the objects of a parent page that fall inside a
// bounding box. Coordinates are left in the parent's page space so detected
// tables can be placed on the original page.
type CroppedPage struct {
	parent pdf.Page
	bbox   pdf.BoundingBox
}

// Crop returns a view of page restricted to bbox
func Crop(page pdf.Page, bbox pdf.BoundingBox) (*CroppedPage, error) {
	if !bbox.Valid() || bbox.IsEmpty() {
		return nil, fmt.Errorf("invalid crop box %+v", bbox)
	}
	return &CroppedPage{parent: page, bbox: bbox}, nil
}

// GetPageNumber returns the parent's page number
func (p *CroppedPage) GetPageNumber() int {
	return p.parent.GetPageNumber()
}

// GetWidth returns the crop box width
func (p *CroppedPage) GetWidth() float64 {
	return p.bbox.Width()
}

// GetHeight returns the crop box height
func (p *CroppedPage) GetHeight() float64 {
	return p.bbox.Height()
}

// GetBBox returns the crop box
func (p *CroppedPage) GetBBox() pdf.BoundingBox {
	return p.bbox
}

// GetObjects returns the parent's objects inside the crop box. Characters
// are kept when their centroid is inside, lines and rectangles are clipped
// to the box, and curves are kept when any point is inside.
func (p *CroppedPage) GetObjects() (pdf.Objects, error) {
	objs, err := p.parent.GetObjects()
	if err != nil {
		return pdf.Objects{}, err
	}
	return WithinBBox(objs, p.bbox), nil
}

// WithinBBox filters objects to those inside bbox
func WithinBBox(objs pdf.Objects, bbox pdf.BoundingBox) pdf.Objects {
	filtered := pdf.Objects{}

	for _, obj := range objs.Chars {
		if c := obj.GetBBox().Center(); bbox.Contains(c.X, c.Y) {
			filtered.Chars = append(filtered.Chars, obj)
		}
	}

	for _, obj := range objs.Lines {
		if clipped, ok := clipLine(obj, bbox); ok {
			filtered.Lines = append(filtered.Lines, clipped)
		}
	}

	for _, obj := range objs.Rects {
		overlap, ok := geometry.BBoxOverlap(obj.GetBBox(), bbox)
		if !ok {
			continue
		}
		obj.X0, obj.Y0, obj.X1, obj.Y1 = overlap.X0, overlap.Top, overlap.X1, overlap.Bottom
		filtered.Rects = append(filtered.Rects, obj)
	}

	for _, obj := range objs.Curves {
		for _, pt := range obj.Points {
			if bbox.Contains(pt.X, pt.Y) {
				filtered.Curves = append(filtered.Curves, obj)
				break
			}
		}
	}

	return filtered
}

// clipLine clips axis-aligned lines to bbox. Other lines are kept whole
// when their box intersects bbox; edge extraction discards them anyway.
func clipLine(line pdf.LineObject, bbox pdf.BoundingBox) (pdf.LineObject, bool) {
	box := line.GetBBox()
	if !box.Valid() || !bbox.Intersects(box) {
		return line, false
	}
	if line.X0 != line.X1 && line.Y0 != line.Y1 {
		return line, true
	}

	overlap, ok := geometry.BBoxOverlap(box, bbox)
	if !ok {
		return line, false
	}
	if line.Y0 == line.Y1 {
		line.X0, line.X1 = overlap.X0, overlap.X1
	} else {
		line.Y0, line.Y1 = overlap.Top, overlap.Bottom
	}
	return line, true
}

// CropDocument returns a document whose pages are the pages of doc cropped
// to the same box
func CropDocument(doc pdf.Document, bbox pdf.BoundingBox) (*pdf.MemoryDocument, error) {
	cropped := &pdf.MemoryDocument{}
	for _, pg := range doc.GetPages() {
		c, err := Crop(pg, bbox)
		if err != nil {
			return nil, err
		}
		cropped.Pages = append(cropped.Pages, c)
	}
	return cropped, nil
}
