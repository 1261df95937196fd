package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinarizeEmptyImage(t *testing.T) {
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))

	_, err := Binarize(empty)
	require.ErrorIs(t, err, ErrEmptyImage)
}

func TestBinarizeZeroWidth(t *testing.T) {
	_, err := Binarize(image.NewGray(image.Rect(0, 0, 0, 10)))
	require.ErrorIs(t, err, ErrEmptyImage)
}

func TestBinarizePreservesDimensions(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 320, 200))

	bin, err := Binarize(src)
	require.NoError(t, err)
	assert.Equal(t, 320, bin.Rect.Dx())
	assert.Equal(t, 200, bin.Rect.Dy())
}

func TestBinarizeOutputIsTwoLevel(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			// gradient plus a dark block to exercise both sides of
			// the threshold
			v := uint8(100 + x)
			if x > 20 && x < 40 && y > 20 && y < 40 {
				v = 10
			}
			src.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	bin, err := Binarize(src)
	require.NoError(t, err)

	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := bin.GrayAt(x, y).Y
			assert.True(t, v == inkPixel || v == paperPixel,
				"pixel (%d,%d) is %d, expected 0 or 255", x, y, v)
		}
	}
}

func TestBinarizeSeparatesInkFromPaper(t *testing.T) {
	// white page with a black block; the block interior must come out as
	// ink edges at least, the far background as paper
	src := image.NewGray(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			src.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	for y := 40; y < 60; y++ {
		for x := 30; x < 70; x++ {
			src.SetGray(x, y, color.Gray{Y: 0})
		}
	}

	bin, err := Binarize(src)
	require.NoError(t, err)

	assert.Equal(t, uint8(paperPixel), bin.GrayAt(5, 5).Y)
	assert.Equal(t, uint8(inkPixel), bin.GrayAt(31, 41).Y)
}

func TestBinarizeDoesNotMutateSource(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			src.SetGray(x, y, color.Gray{Y: 128})
		}
	}

	_, err := Binarize(src)
	require.NoError(t, err)

	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			require.Equal(t, uint8(128), src.GrayAt(x, y).Y)
		}
	}
}
