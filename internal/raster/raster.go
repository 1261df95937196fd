// Package raster adapts external page-rasterization sources to the
// extraction pipeline. The pipeline consumes ordered page bitmaps and does
// not care where they came from.
package raster

import (
	"context"
	"image"
)

// Page is one rasterized page of the source document.
type Page struct {
	// Number is 1-based.
	Number int
	// Image is the page bitmap, nil when the page carried no extractable
	// raster content. Such pages still count toward the page total.
	Image image.Image
}

// Rasterizer converts raw document bytes into ordered page images.
type Rasterizer interface {
	Rasterize(ctx context.Context, data []byte) ([]Page, error)
}
