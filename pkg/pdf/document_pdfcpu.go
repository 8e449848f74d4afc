package pdf

import (
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// PDFCPUDocument reads page geometry (lines, rectangles, curves) through
// pdfcpu. Content streams are decoded eagerly at open time so that pages can
// be parsed concurrently afterwards without touching the shared context.
type PDFCPUDocument struct {
	pages []Page
}

// OpenWithPDFCPU opens a PDF file and decodes the content stream of every page
func OpenWithPDFCPU(filepath string) (*PDFCPUDocument, error) {
	ctx, err := api.ReadContextFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	doc := &PDFCPUDocument{pages: make([]Page, ctx.PageCount)}
	for i := 1; i <= ctx.PageCount; i++ {
		page, err := newPDFCPUPage(ctx, i)
		if err != nil {
			return nil, fmt.Errorf("failed to create page %d: %w", i, err)
		}
		doc.pages[i-1] = page
	}

	return doc, nil
}

// GetPages returns all pages in the document
func (d *PDFCPUDocument) GetPages() []Page {
	return d.pages
}

// GetPage returns a specific page by index (0-based)
func (d *PDFCPUDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// PageCount returns the total number of pages
func (d *PDFCPUDocument) PageCount() int {
	return len(d.pages)
}

// Close releases resources associated with the document
func (d *PDFCPUDocument) Close() error {
	d.pages = nil
	return nil
}

// PDFCPUPage holds one page's decoded content stream
type PDFCPUPage struct {
	pageNumber int
	mediaBox   types.Rectangle
	content    []byte
	decodeErr  error

	once    sync.Once
	objects Objects
}

func newPDFCPUPage(ctx *model.Context, pageNumber int) (*PDFCPUPage, error) {
	pageDict, _, attrs, err := ctx.PageDict(pageNumber, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get page dict: %w", err)
	}

	// Default US Letter size
	mediaBox := *types.NewRectangle(0, 0, 612, 792)
	if attrs != nil && attrs.MediaBox != nil {
		mediaBox = *attrs.MediaBox
	}

	page := &PDFCPUPage{pageNumber: pageNumber, mediaBox: mediaBox}
	page.content, page.decodeErr = decodeContents(ctx, pageDict["Contents"])
	return page, nil
}

// decodeContents decodes and concatenates a page's content streams. A page
// may reference a single stream or an array of streams.
func decodeContents(ctx *model.Context, contents types.Object) ([]byte, error) {
	var refs []types.IndirectRef
	switch v := contents.(type) {
	case nil:
		return nil, nil
	case types.IndirectRef:
		refs = append(refs, v)
	case *types.IndirectRef:
		refs = append(refs, *v)
	case types.Array:
		for _, item := range v {
			switch ref := item.(type) {
			case types.IndirectRef:
				refs = append(refs, ref)
			case *types.IndirectRef:
				refs = append(refs, *ref)
			}
		}
	default:
		return nil, fmt.Errorf("unexpected Contents type %T", contents)
	}

	var combined []byte
	for _, ref := range refs {
		sd, _, err := ctx.DereferenceStreamDict(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to dereference content stream %s: %w", ref, err)
		}
		if sd == nil {
			continue
		}
		if len(sd.Content) == 0 {
			if err := sd.Decode(); err != nil {
				return nil, fmt.Errorf("failed to decode content stream %s: %w", ref, err)
			}
		}
		combined = append(combined, sd.Content...)
		combined = append(combined, '\n')
	}
	return combined, nil
}

// GetPageNumber returns the page number (1-based)
func (p *PDFCPUPage) GetPageNumber() int {
	return p.pageNumber
}

// GetWidth returns the page width
func (p *PDFCPUPage) GetWidth() float64 {
	return p.mediaBox.Width()
}

// GetHeight returns the page height
func (p *PDFCPUPage) GetHeight() float64 {
	return p.mediaBox.Height()
}

// GetBBox returns the page bounding box
func (p *PDFCPUPage) GetBBox() BoundingBox {
	return BoundingBox{X1: p.GetWidth(), Bottom: p.GetHeight()}
}

// GetObjects parses the content stream on first use
func (p *PDFCPUPage) GetObjects() (Objects, error) {
	if p.decodeErr != nil {
		return Objects{}, p.decodeErr
	}
	p.once.Do(func() {
		parser := NewContentStreamParser(p.mediaBox.LL.X, p.mediaBox.UR.Y)
		p.objects = parser.Parse(p.content)
	})
	return p.objects, nil
}
