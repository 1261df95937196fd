package extract

import (
	"encoding/json"
	"fmt"
)

// DocumentConfidence values reported at the result level. OCR-derived
// extractions score lower than structured-markup extractions because
// recognition introduces uncertainty the markup path does not have.
const (
	ConfidenceImageDocument  = 0.7
	ConfidenceMarkupDocument = 1.0
)

// Per-field confidence values. Visual-only detections are always scored
// strictly below text-sourced detections.
const (
	ConfidenceTextField   = 0.7
	ConfidenceVisualField = 0.5
)

// FieldPosition locates a field on its page. Text-sourced fields carry a
// character offset into the page text; visually detected fields carry the
// pixel coordinates of their bounding box.
type FieldPosition struct {
	Offset int `json:"-"`
	X      int `json:"-"`
	Y      int `json:"-"`

	// FromBox selects the coordinate form when marshaling.
	FromBox bool `json:"-"`
}

// TextPosition returns a position backed by a text offset.
func TextPosition(offset int) FieldPosition {
	return FieldPosition{Offset: offset}
}

// BoxPosition returns a position backed by pixel coordinates.
func BoxPosition(x, y int) FieldPosition {
	return FieldPosition{X: x, Y: y, FromBox: true}
}

// MarshalJSON emits either a bare offset integer or an {x, y} object,
// matching the wire contract consumed by the API layer.
func (p FieldPosition) MarshalJSON() ([]byte, error) {
	if p.FromBox {
		return json.Marshal(struct {
			X int `json:"x"`
			Y int `json:"y"`
		}{p.X, p.Y})
	}
	return json.Marshal(p.Offset)
}

// UnmarshalJSON accepts both position forms.
func (p *FieldPosition) UnmarshalJSON(data []byte) error {
	var offset int
	if err := json.Unmarshal(data, &offset); err == nil {
		*p = TextPosition(offset)
		return nil
	}
	var box struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	if err := json.Unmarshal(data, &box); err != nil {
		return fmt.Errorf("position is neither an offset nor coordinates: %w", err)
	}
	*p = BoxPosition(box.X, box.Y)
	return nil
}

// Dimensions is the pixel size of a visually detected field box.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MergedField is the deduplicated, confidence-scored field unit returned
// to callers. Dimensions is present only when the field was derived from,
// or corroborated by, a detected visual box.
type MergedField struct {
	Name       string        `json:"name"`
	Label      string        `json:"label"`
	Type       string        `json:"type"`
	Value      string        `json:"value"`
	Page       int           `json:"page"`
	Position   FieldPosition `json:"position"`
	Dimensions *Dimensions   `json:"dimensions,omitempty"`
	Required   bool          `json:"required"`
	Confidence float64       `json:"confidence"`
}

// ExtractionResult is the complete output for one document. It is built
// once per request, never mutated afterwards, and owned by the caller.
type ExtractionResult struct {
	FormType   string        `json:"form_type"`
	Fields     []MergedField `json:"fields"`
	PageCount  int           `json:"page_count"`
	Confidence float64       `json:"confidence"`
}
