package extract

import (
	"errors"
	"fmt"
)

// ErrMissingCapability indicates a required external engine (OCR,
// rasterization) is unavailable at startup. It is fatal for the whole
// pipeline and surfaced to the caller immediately.
var ErrMissingCapability = errors.New("required processing capability unavailable")

// RasterizationError indicates the document could not be converted into
// page images at all. It is fatal for the whole request.
type RasterizationError struct {
	Err error
}

func (e *RasterizationError) Error() string {
	return fmt.Sprintf("rasterization failed: %v", e.Err)
}

func (e *RasterizationError) Unwrap() error { return e.Err }

// PageError is a failure scoped to a single page. The page contributes no
// candidates but processing continues for the remaining pages. Stage is one
// of the pageStage constants below.
type PageError struct {
	Page  int
	Stage string
	Err   error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %s failed: %v", e.Page, e.Stage, e.Err)
}

func (e *PageError) Unwrap() error { return e.Err }

const (
	stagePreprocess = "preprocessing"
	stageOCR        = "ocr"
	stageDetection  = "detection"
)

func pagePreprocessingError(page int, err error) *PageError {
	return &PageError{Page: page, Stage: stagePreprocess, Err: err}
}

func pageOCRError(page int, err error) *PageError {
	return &PageError{Page: page, Stage: stageOCR, Err: err}
}

func pageDetectionError(page int, err error) *PageError {
	return &PageError{Page: page, Stage: stageDetection, Err: err}
}
