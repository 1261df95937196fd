package extract

import (
	"fmt"

	"github.com/formsense/formsense/internal/imaging"
	"github.com/formsense/formsense/internal/textmatch"
)

// PageGeometry carries what the merger needs to translate a text line index
// into an approximate vertical pixel position.
type PageGeometry struct {
	// Height is the binarized page height in pixels, 0 when unknown.
	Height int
	// Lines is the number of text lines OCR produced for the page.
	Lines int
}

// defaultLineHeight is used when page geometry is unknown, roughly one text
// line at common scan resolutions.
const defaultLineHeight = 24

// Line height estimates outside this range mean the OCR output and the
// image disagree badly; clamp rather than trust them.
const (
	minLineHeight = 8
	maxLineHeight = 96
)

// MergeFields fuses one page's text candidates and visual boxes into a
// deduplicated field list. Text candidates map to fields after dropping
// matches that overlap an earlier candidate's span, since rule evaluation
// order is the priority ("Email Address" stays an email field, the nested
// address match is discarded). A visual box corresponds to a surviving text
// candidate when the box's vertical center falls within one estimated line
// height of the candidate's implied line position; corresponding boxes only
// enrich the matched field's dimensions, everything else is appended as an
// unlabeled visual-only field. OCR plain text has no 2-D coordinates, so
// the candidate's line index is the vertical proxy, a known precision
// limitation.
//
// The result never exceeds len(texts) plus the number of boxes that fail to
// correspond to any text candidate.
func MergeFields(page int, texts []textmatch.Candidate, boxes []imaging.Box, geom PageGeometry) []MergedField {
	texts = dedupeCandidates(texts)

	fields := make([]MergedField, 0, len(texts)+len(boxes))
	for _, cand := range texts {
		fields = append(fields, MergedField{
			Name:       cand.Rule,
			Label:      cand.Label,
			Type:       textmatch.KindForRule(cand.Rule),
			Value:      cand.Value,
			Page:       page,
			Position:   TextPosition(cand.Offset),
			Required:   cand.Required,
			Confidence: ConfidenceTextField,
		})
	}

	lineHeight := estimateLineHeight(geom)
	for _, box := range boxes {
		center := box.Y + box.Height/2

		matched := -1
		for i, cand := range texts {
			implied := cand.Line*lineHeight + lineHeight/2
			if abs(center-implied) <= lineHeight {
				matched = i
				break
			}
		}

		if matched >= 0 {
			if fields[matched].Dimensions == nil {
				fields[matched].Dimensions = &Dimensions{Width: box.Width, Height: box.Height}
			}
			continue
		}

		fields = append(fields, MergedField{
			Name:       fmt.Sprintf("field_%d_%d_%d", page, box.X, box.Y),
			Label:      fmt.Sprintf("Unlabeled Field (page %d)", page),
			Type:       "text",
			Page:       page,
			Position:   BoxPosition(box.X, box.Y),
			Dimensions: &Dimensions{Width: box.Width, Height: box.Height},
			Confidence: ConfidenceVisualField,
		})
	}
	return fields
}

// dedupeCandidates drops candidates whose match span overlaps an earlier
// kept candidate on the same page. Candidates arrive in rule-catalog order,
// so the earlier rule wins.
func dedupeCandidates(texts []textmatch.Candidate) []textmatch.Candidate {
	if len(texts) < 2 {
		return texts
	}
	kept := make([]textmatch.Candidate, 0, len(texts))
	for _, cand := range texts {
		overlaps := false
		for _, prev := range kept {
			if cand.Overlaps(prev) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, cand)
		}
	}
	return kept
}

// estimateLineHeight derives the per-line pixel height from page geometry,
// falling back to a fixed default when either dimension is unknown.
func estimateLineHeight(geom PageGeometry) int {
	if geom.Height <= 0 || geom.Lines <= 0 {
		return defaultLineHeight
	}
	lh := geom.Height / geom.Lines
	if lh < minLineHeight {
		return minLineHeight
	}
	if lh > maxLineHeight {
		return maxLineHeight
	}
	return lh
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
