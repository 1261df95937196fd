// Package processor selects the extraction path for a document based on
// its declared content kind, mirroring how uploads arrive with either a
// short form-type tag or a full MIME type.
package processor

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/formsense/formsense/internal/extract"
	"github.com/formsense/formsense/internal/markup"
	"github.com/formsense/formsense/internal/ocr"
	"github.com/formsense/formsense/internal/raster"
)

// Processor extracts form fields from raw document bytes.
type Processor interface {
	Extract(ctx context.Context, data []byte) (*extract.ExtractionResult, error)
}

// Factory builds processors per content kind. Matching is exact first, then
// partial, then falls back to the markup processor with a logged warning;
// the kinds table is ordered so partial matching stays deterministic.
type Factory struct {
	tesseractPath string
	workers       int
	logger        *log.Logger
}

// NewFactory returns a processor factory. workers bounds per-page
// parallelism for image pipelines; a nil logger falls back to the default
// logger.
func NewFactory(tesseractPath string, workers int, logger *log.Logger) *Factory {
	if logger == nil {
		logger = log.Default()
	}
	return &Factory{
		tesseractPath: tesseractPath,
		workers:       workers,
		logger:        logger,
	}
}

type kindEntry struct {
	kind  string
	build func(*Factory) (Processor, error)
}

var kinds = []kindEntry{
	{"html", (*Factory).markupProcessor},
	{"pdf", (*Factory).pdfProcessor},
	{"text/html", (*Factory).markupProcessor},
	{"application/pdf", (*Factory).pdfProcessor},
	{"image/jpeg", (*Factory).imageProcessor},
	{"image/png", (*Factory).imageProcessor},
	{"image/tiff", (*Factory).imageProcessor},
}

// ProcessorFor returns the processor for a content kind or MIME type. The
// kind is normalized (lowercased, parameters after ";" dropped) before
// matching.
func (f *Factory) ProcessorFor(contentKind string) (Processor, error) {
	kind := normalizeKind(contentKind)
	if kind == "" {
		f.logger.Printf("processor: empty content kind, defaulting to html")
		kind = "html"
	}

	for _, entry := range kinds {
		if entry.kind == kind {
			return entry.build(f)
		}
	}
	for _, entry := range kinds {
		if strings.HasPrefix(kind, entry.kind) || strings.Contains(kind, entry.kind) {
			f.logger.Printf("processor: partial match for content kind %q -> %q", kind, entry.kind)
			return entry.build(f)
		}
	}

	f.logger.Printf("processor: unsupported content kind %q, defaulting to html", kind)
	return f.markupProcessor()
}

// SupportedKinds lists all content kinds with a dedicated processor.
func (f *Factory) SupportedKinds() []string {
	out := make([]string, 0, len(kinds))
	for _, entry := range kinds {
		out = append(out, entry.kind)
	}
	return out
}

func (f *Factory) markupProcessor() (Processor, error) {
	return markup.NewExtractor(f.logger), nil
}

func (f *Factory) pdfProcessor() (Processor, error) {
	engine, err := ocr.NewTesseract(f.tesseractPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", extract.ErrMissingCapability, err)
	}
	return extract.NewPipeline(raster.NewPDFRasterizer(), engine,
		extract.WithWorkers(f.workers),
		extract.WithLogger(f.logger),
		extract.WithTextLayer(func(data []byte) (ocr.TextLayer, error) {
			return ocr.NewPDFTextLayer(data)
		}),
	)
}

func (f *Factory) imageProcessor() (Processor, error) {
	engine, err := ocr.NewTesseract(f.tesseractPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", extract.ErrMissingCapability, err)
	}
	return extract.NewPipeline(raster.NewImageRasterizer(), engine,
		extract.WithWorkers(f.workers),
		extract.WithLogger(f.logger),
	)
}

func normalizeKind(kind string) string {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if i := strings.Index(kind, ";"); i >= 0 {
		kind = strings.TrimSpace(kind[:i])
	}
	return kind
}
