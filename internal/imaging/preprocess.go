package imaging

import (
	"errors"
	"image"
	"image/color"
)

// ErrEmptyImage is returned when a page image has zero area.
var ErrEmptyImage = errors.New("image has zero area")

// Pixel values in binarized output.
const (
	inkPixel   = 0
	paperPixel = 255
)

// Adaptive threshold parameters. The 11-pixel neighborhood tolerates the
// uneven lighting of typical scans; the bias pulls the cutoff slightly
// below the local mean so faint paper texture stays background.
const (
	thresholdWindow = 11
	thresholdBias   = 2
)

// Binarize converts a raster page image into a two-level image of identical
// dimensions: grayscale conversion, adaptive local thresholding, then a
// minimal morphological opening to drop speckle noise. The source image is
// never mutated.
func Binarize(src image.Image) (*image.Gray, error) {
	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, ErrEmptyImage
	}

	gray := toGray(src)
	bin := adaptiveThreshold(gray, thresholdWindow, thresholdBias)
	return opened(bin), nil
}

// toGray produces a single-channel copy with bounds normalized to (0,0).
func toGray(src image.Image) *image.Gray {
	bounds := src.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.SetGray(x-bounds.Min.X, y-bounds.Min.Y, color.GrayModel.Convert(src.At(x, y)).(color.Gray))
		}
	}
	return gray
}

// adaptiveThreshold separates ink from paper using the local mean over a
// window x window neighborhood, computed via a summed-area table. A pixel
// darker than its local mean minus bias becomes ink.
func adaptiveThreshold(gray *image.Gray, window, bias int) *image.Gray {
	w := gray.Rect.Dx()
	h := gray.Rect.Dy()
	radius := window / 2

	// integral[y][x] holds the sum over the rectangle [0,x) x [0,y)
	integral := make([]uint64, (w+1)*(h+1))
	stride := w + 1
	for y := 0; y < h; y++ {
		var rowSum uint64
		for x := 0; x < w; x++ {
			rowSum += uint64(gray.GrayAt(x, y).Y)
			integral[(y+1)*stride+x+1] = integral[y*stride+x+1] + rowSum
		}
	}

	bin := image.NewGray(gray.Rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0 := max(0, x-radius)
			y0 := max(0, y-radius)
			x1 := min(w-1, x+radius)
			y1 := min(h-1, y+radius)

			area := uint64((x1 - x0 + 1) * (y1 - y0 + 1))
			sum := integral[(y1+1)*stride+x1+1] - integral[y0*stride+x1+1] -
				integral[(y1+1)*stride+x0] + integral[y0*stride+x0]
			mean := int(sum / area)

			if int(gray.GrayAt(x, y).Y) > mean-bias {
				bin.SetGray(x, y, color.Gray{Y: paperPixel})
			} else {
				bin.SetGray(x, y, color.Gray{Y: inkPixel})
			}
		}
	}
	return bin
}

// opened applies a 3x3 morphological opening (erosion then dilation) with
// paper as foreground, removing isolated bright specks inside ink regions
// without thickening or thinning strokes overall.
func opened(bin *image.Gray) *image.Gray {
	return dilate(erode(bin))
}

// erode keeps a paper pixel only when its full 3x3 neighborhood is paper.
// Out-of-bounds neighbors count as paper so page borders are not eaten.
func erode(src *image.Gray) *image.Gray {
	w := src.Rect.Dx()
	h := src.Rect.Dy()
	dst := image.NewGray(src.Rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(paperPixel)
		probe:
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					if src.GrayAt(nx, ny).Y != paperPixel {
						v = inkPixel
						break probe
					}
				}
			}
			dst.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return dst
}

// dilate turns a pixel to paper when any 3x3 neighbor is paper.
func dilate(src *image.Gray) *image.Gray {
	w := src.Rect.Dx()
	h := src.Rect.Dy()
	dst := image.NewGray(src.Rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(inkPixel)
		probe:
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					if src.GrayAt(nx, ny).Y == paperPixel {
						v = paperPixel
						break probe
					}
				}
			}
			dst.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return dst
}
