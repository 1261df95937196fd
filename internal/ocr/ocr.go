// Package ocr adapts external text-recognition sources. The pipeline hands
// in a preprocessed page bitmap and gets back plain text; recognition
// accuracy is the engine's problem, not this package's.
package ocr

import (
	"context"
	"image"
)

// Engine recognizes text in a single page image.
type Engine interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// TextLayer reads per-page text a document already carries, letting the
// pipeline skip recognition for born-digital pages.
type TextLayer interface {
	PageCount() int
	PageText(page int) (string, error)
}
