package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formsense/formsense/internal/imaging"
	"github.com/formsense/formsense/internal/textmatch"
)

func TestMergeFieldsTextOnly(t *testing.T) {
	text := "Full Name: John Doe\nEmail Address: john@example.com"
	cands := textmatch.Match(text, 1)

	fields := MergeFields(1, cands, nil, PageGeometry{})
	require.Len(t, fields, 2)

	assert.Equal(t, "name", fields[0].Name)
	assert.Equal(t, "Full Name", fields[0].Label)
	assert.Equal(t, "text", fields[0].Type)
	assert.Equal(t, "John Doe", fields[0].Value)
	assert.Equal(t, ConfidenceTextField, fields[0].Confidence)
	assert.Nil(t, fields[0].Dimensions)

	assert.Equal(t, "email", fields[1].Name)
	assert.Equal(t, "email", fields[1].Type)
	assert.Equal(t, "john@example.com", fields[1].Value)
}

// "Email Address" also matches the address rule; the earlier email rule
// keeps the span and the nested address candidate is dropped.
func TestMergeFieldsDropsOverlappingRuleMatches(t *testing.T) {
	text := "Full Name: John Doe\nEmail Address: john@example.com"
	cands := textmatch.Match(text, 1)
	require.Len(t, cands, 3)

	fields := MergeFields(1, cands, nil, PageGeometry{})
	require.Len(t, fields, 2)
	for _, f := range fields {
		assert.NotEqual(t, "address", f.Name)
	}
}

func TestMergeFieldsBoxEnrichesCorrespondingText(t *testing.T) {
	// candidate on line 2, page 300px tall with 10 lines: line height 30,
	// implied center 75; box center 70 is within one line height
	cands := []textmatch.Candidate{
		{Rule: "name", Label: "Name", Page: 1, Offset: 40, End: 50, Line: 2},
	}
	boxes := []imaging.Box{{X: 200, Y: 55, Width: 150, Height: 30}}

	fields := MergeFields(1, cands, boxes, PageGeometry{Height: 300, Lines: 10})
	require.Len(t, fields, 1)

	require.NotNil(t, fields[0].Dimensions)
	assert.Equal(t, 150, fields[0].Dimensions.Width)
	assert.Equal(t, 30, fields[0].Dimensions.Height)
	assert.Equal(t, ConfidenceTextField, fields[0].Confidence)
}

func TestMergeFieldsFarBoxBecomesUnlabeled(t *testing.T) {
	// same geometry, but the box sits hundreds of pixels below the only
	// text candidate and must not attach to it
	cands := []textmatch.Candidate{
		{Rule: "name", Label: "Name", Page: 1, Offset: 0, End: 10, Line: 0},
	}
	boxes := []imaging.Box{{X: 120, Y: 250, Width: 160, Height: 25}}

	fields := MergeFields(1, cands, boxes, PageGeometry{Height: 300, Lines: 10})
	require.Len(t, fields, 2)

	assert.Nil(t, fields[0].Dimensions)

	unlabeled := fields[1]
	assert.Equal(t, "field_1_120_250", unlabeled.Name)
	assert.Equal(t, "Unlabeled Field (page 1)", unlabeled.Label)
	assert.Equal(t, "text", unlabeled.Type)
	assert.Empty(t, unlabeled.Value)
	assert.Equal(t, ConfidenceVisualField, unlabeled.Confidence)
	require.NotNil(t, unlabeled.Dimensions)
	assert.Equal(t, 160, unlabeled.Dimensions.Width)
	assert.Equal(t, 25, unlabeled.Dimensions.Height)
}

func TestMergeFieldsBoxesOnly(t *testing.T) {
	boxes := []imaging.Box{
		{X: 100, Y: 100, Width: 120, Height: 30},
		{X: 100, Y: 200, Width: 180, Height: 25},
	}

	fields := MergeFields(3, nil, boxes, PageGeometry{Height: 400, Lines: 0})
	require.Len(t, fields, 2)
	for _, f := range fields {
		assert.Equal(t, 3, f.Page)
		assert.Equal(t, ConfidenceVisualField, f.Confidence)
		assert.Contains(t, f.Label, "page 3")
	}
}

func TestMergeFieldsFirstBoxWinsDimensions(t *testing.T) {
	cands := []textmatch.Candidate{
		{Rule: "email", Label: "Email", Page: 1, Offset: 0, End: 5, Line: 0},
	}
	boxes := []imaging.Box{
		{X: 100, Y: 5, Width: 140, Height: 20},
		{X: 300, Y: 8, Width: 200, Height: 22},
	}

	fields := MergeFields(1, cands, boxes, PageGeometry{Height: 240, Lines: 10})
	require.Len(t, fields, 1)
	require.NotNil(t, fields[0].Dimensions)
	assert.Equal(t, 140, fields[0].Dimensions.Width)
}

func TestMergeFieldsEmpty(t *testing.T) {
	fields := MergeFields(1, nil, nil, PageGeometry{})
	assert.Empty(t, fields)
}

func TestEstimateLineHeight(t *testing.T) {
	tests := []struct {
		name string
		geom PageGeometry
		want int
	}{
		{"unknown geometry", PageGeometry{}, defaultLineHeight},
		{"no lines", PageGeometry{Height: 600}, defaultLineHeight},
		{"typical page", PageGeometry{Height: 600, Lines: 20}, 30},
		{"clamped low", PageGeometry{Height: 100, Lines: 50}, minLineHeight},
		{"clamped high", PageGeometry{Height: 4000, Lines: 2}, maxLineHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, estimateLineHeight(tt.geom))
		})
	}
}
