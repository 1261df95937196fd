package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldPositionMarshalOffset(t *testing.T) {
	data, err := json.Marshal(TextPosition(42))
	require.NoError(t, err)
	assert.Equal(t, "42", string(data))
}

func TestFieldPositionMarshalCoordinates(t *testing.T) {
	data, err := json.Marshal(BoxPosition(100, 250))
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":100,"y":250}`, string(data))
}

func TestFieldPositionUnmarshalBothForms(t *testing.T) {
	var p FieldPosition
	require.NoError(t, json.Unmarshal([]byte("17"), &p))
	assert.False(t, p.FromBox)
	assert.Equal(t, 17, p.Offset)

	require.NoError(t, json.Unmarshal([]byte(`{"x":3,"y":9}`), &p))
	assert.True(t, p.FromBox)
	assert.Equal(t, 3, p.X)
	assert.Equal(t, 9, p.Y)

	assert.Error(t, json.Unmarshal([]byte(`"left"`), &p))
}

func TestMergedFieldJSONShape(t *testing.T) {
	field := MergedField{
		Name:       "email",
		Label:      "Email Address",
		Type:       "email",
		Value:      "john@example.com",
		Page:       1,
		Position:   TextPosition(20),
		Required:   true,
		Confidence: ConfidenceTextField,
	}

	data, err := json.Marshal(field)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "email",
		"label": "Email Address",
		"type": "email",
		"value": "john@example.com",
		"page": 1,
		"position": 20,
		"required": true,
		"confidence": 0.7
	}`, string(data))
}

func TestMergedFieldDimensionsOmittedWhenAbsent(t *testing.T) {
	data, err := json.Marshal(MergedField{Name: "name", Position: TextPosition(0)})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dimensions")

	data, err = json.Marshal(MergedField{
		Name:       "field_1_100_200",
		Position:   BoxPosition(100, 200),
		Dimensions: &Dimensions{Width: 120, Height: 30},
	})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dimensions":{"width":120,"height":30}`)
	assert.Contains(t, string(data), `"position":{"x":100,"y":200}`)
}

func TestExtractionResultJSON(t *testing.T) {
	result := ExtractionResult{
		FormType:   "banking",
		Fields:     []MergedField{},
		PageCount:  2,
		Confidence: ConfidenceImageDocument,
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"form_type": "banking",
		"fields": [],
		"page_count": 2,
		"confidence": 0.7
	}`, string(data))
}
