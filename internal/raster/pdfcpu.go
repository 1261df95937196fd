package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFRasterizer extracts the embedded page bitmaps of scanned PDFs. Scanned
// forms typically store one full-page image per page; for each page the
// largest decodable image wins. Pages without raster content yield a Page
// with a nil Image.
type PDFRasterizer struct {
	conf *model.Configuration
}

// NewPDFRasterizer returns a rasterizer with relaxed validation, since
// scanned forms frequently come from sloppy producers.
func NewPDFRasterizer() *PDFRasterizer {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFRasterizer{conf: conf}
}

// Rasterize implements Rasterizer.
func (r *PDFRasterizer) Rasterize(ctx context.Context, data []byte) ([]Page, error) {
	rs := bytes.NewReader(data)

	pdfCtx, err := api.ReadContext(rs, r.conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := pdfCtx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}
	total := pdfCtx.PageCount
	if total == 0 {
		return nil, fmt.Errorf("document has no pages")
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	extracted, err := api.ExtractImagesRaw(rs, nil, r.conf)
	if err != nil {
		return nil, fmt.Errorf("failed to extract page images: %w", err)
	}

	best := make(map[int]image.Image, total)
	for _, pageImages := range extracted {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		for _, im := range pageImages {
			decoded, _, err := image.Decode(im)
			if err != nil {
				// undecodable embedded object, not fatal for the page
				continue
			}
			if prev, ok := best[im.PageNr]; !ok || area(decoded) > area(prev) {
				best[im.PageNr] = decoded
			}
		}
	}

	pages := make([]Page, total)
	for i := range pages {
		pages[i] = Page{Number: i + 1, Image: best[i+1]}
	}
	return pages, nil
}

func area(img image.Image) int {
	return img.Bounds().Dx() * img.Bounds().Dy()
}
