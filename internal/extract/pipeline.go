package extract

import (
	"context"
	"fmt"
	"image"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/formsense/formsense/internal/classify"
	"github.com/formsense/formsense/internal/imaging"
	"github.com/formsense/formsense/internal/ocr"
	"github.com/formsense/formsense/internal/raster"
	"github.com/formsense/formsense/internal/textmatch"
)

// DefaultWorkers bounds per-page parallelism when no override is given.
const DefaultWorkers = 4

// TextLayerFactory builds a per-document embedded-text reader. Returning an
// error means the document carries no usable text layer; the pipeline then
// falls back to recognition for every page.
type TextLayerFactory func(data []byte) (ocr.TextLayer, error)

// Pipeline sequences preprocessing, detection, matching and merging across
// all pages of an image-based document. It holds no per-request state:
// every Extract call is a pure function of its inputs and the two external
// providers.
type Pipeline struct {
	rasterizer raster.Rasterizer
	engine     ocr.Engine
	textLayer  TextLayerFactory
	workers    int
	logger     *log.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWorkers bounds the number of pages processed concurrently.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithTextLayer enables the embedded-text fast path for documents that
// carry one.
func WithTextLayer(factory TextLayerFactory) Option {
	return func(p *Pipeline) { p.textLayer = factory }
}

// WithLogger routes page-scoped failure logging.
func WithLogger(logger *log.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline wires the external providers. Both are required: a missing
// rasterizer or recognition engine is fatal for the whole pipeline and
// surfaced immediately rather than at first use.
func NewPipeline(rasterizer raster.Rasterizer, engine ocr.Engine, opts ...Option) (*Pipeline, error) {
	if rasterizer == nil {
		return nil, fmt.Errorf("%w: rasterizer", ErrMissingCapability)
	}
	if engine == nil {
		return nil, fmt.Errorf("%w: recognition engine", ErrMissingCapability)
	}

	p := &Pipeline{
		rasterizer: rasterizer,
		engine:     engine,
		workers:    DefaultWorkers,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Extract runs the full pipeline over one document. A rasterization failure
// is fatal for the request: the error is returned alongside the documented
// empty result (generic category, no fields, zero pages). Any page-scoped
// failure is logged and contained; the page contributes nothing but the
// remaining pages still process, so partial extraction is a valid non-error
// outcome.
func (p *Pipeline) Extract(ctx context.Context, data []byte) (*ExtractionResult, error) {
	pages, err := p.rasterizer.Rasterize(ctx, data)
	if err != nil {
		rerr := &RasterizationError{Err: err}
		p.logger.Printf("extract: %v", rerr)
		return &ExtractionResult{
			FormType:  classify.CategoryGeneric,
			Fields:    []MergedField{},
			PageCount: 0,
		}, rerr
	}

	var layer ocr.TextLayer
	if p.textLayer != nil {
		if tl, tlErr := p.textLayer(data); tlErr == nil {
			layer = tl
		}
	}

	pageFields := make([][]MergedField, len(pages))
	pageTexts := make([]string, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, page := range pages {
		i, page := i, page
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fields, text := p.processPage(gctx, page, layer)
			pageFields[i] = fields
			pageTexts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fields := make([]MergedField, 0)
	for _, pf := range pageFields {
		fields = append(fields, pf...)
	}

	fullText := strings.Join(pageTexts, "\n")
	return &ExtractionResult{
		FormType:   classify.Categorize(fullText),
		Fields:     fields,
		PageCount:  len(pages),
		Confidence: ConfidenceImageDocument,
	}, nil
}

// processPage runs stages 1-5 for one page. Every failure here is scoped to
// the page: it is logged with the page index and cause, and the stage
// simply contributes nothing.
func (p *Pipeline) processPage(ctx context.Context, page raster.Page, layer ocr.TextLayer) ([]MergedField, string) {
	var bin *image.Gray
	if page.Image != nil {
		b, err := imaging.Binarize(page.Image)
		if err != nil {
			p.logger.Printf("extract: %v", pagePreprocessingError(page.Number, err))
		} else {
			bin = b
		}
	}

	text := ""
	if layer != nil {
		t, err := layer.PageText(page.Number)
		if err != nil {
			p.logger.Printf("extract: %v", pageOCRError(page.Number, err))
		} else {
			text = t
		}
	}
	if strings.TrimSpace(text) == "" && bin != nil {
		t, err := p.engine.Recognize(ctx, bin)
		if err != nil {
			p.logger.Printf("extract: %v", pageOCRError(page.Number, err))
		} else {
			text = t
		}
	}

	var boxes []imaging.Box
	if bin != nil {
		boxes = p.detectBoxes(page.Number, bin)
	}

	candidates := textmatch.Match(text, page.Number)
	geom := PageGeometry{Lines: countLines(text)}
	if bin != nil {
		geom.Height = bin.Rect.Dy()
	}
	return MergeFields(page.Number, candidates, boxes, geom), text
}

// detectBoxes isolates the detector so a panic on a degenerate bitmap stays
// a page-scoped detection failure.
func (p *Pipeline) detectBoxes(page int, bin *image.Gray) (boxes []imaging.Box) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Printf("extract: %v", pageDetectionError(page, fmt.Errorf("%v", r)))
			boxes = nil
		}
	}()
	return imaging.DetectFieldBoxes(bin)
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
