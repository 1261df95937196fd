package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ImageRasterizer handles documents that already are a single bitmap, such
// as a photographed or scanned one-page form uploaded as PNG or JPEG.
type ImageRasterizer struct{}

// NewImageRasterizer returns a rasterizer for single-image documents.
func NewImageRasterizer() *ImageRasterizer {
	return &ImageRasterizer{}
}

// Rasterize implements Rasterizer. The whole input is one page.
func (r *ImageRasterizer) Rasterize(_ context.Context, data []byte) ([]Page, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image document: %w", err)
	}
	return []Page{{Number: 1, Image: img}}, nil
}
