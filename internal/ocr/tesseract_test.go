package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTesseractMissingBinary(t *testing.T) {
	_, err := NewTesseract("/nonexistent/path/to/tesseract")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestNewPDFTextLayerRejectsGarbage(t *testing.T) {
	_, err := NewPDFTextLayer([]byte("not a pdf"))
	require.Error(t, err)
}
