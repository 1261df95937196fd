package imaging

import (
	"image"
	"math"
)

// Box is the axis-aligned bounding rectangle of a detected candidate field,
// in pixel coordinates of the binarized page image.
type Box struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Size filters for candidate boxes, tuned for a field occupying roughly one
// text line at common scan resolutions. Bounds are exclusive.
const (
	minBoxWidth  = 50
	maxBoxWidth  = 500
	minBoxHeight = 15
	maxBoxHeight = 80
)

// approxEpsilonRatio scales the polygon approximation tolerance by contour
// perimeter, mirroring the classic approxPolyDP(0.02 * arcLength) setup.
const approxEpsilonRatio = 0.02

// Components smaller than this cannot form a box that survives the size
// filters, so they are skipped before tracing.
const minComponentPixels = 8

// DetectFieldBoxes finds quadrilateral contours in a binarized page image
// that plausibly outline fillable field boxes. The binary image is scanned
// with ink as foreground (the inverse of the paper-background convention),
// external contours are traced, approximated to polygons, and only
// 4-vertex shapes whose bounding rectangles pass the size and landscape
// filters are kept. Rejects are discarded silently: false positives hurt
// the merged result more than missed boxes, which the text matcher can
// still recover. Output order follows scan order and is not a contract.
func DetectFieldBoxes(bin *image.Gray) []Box {
	if bin == nil {
		return nil
	}
	w := bin.Rect.Dx()
	h := bin.Rect.Dy()

	labels := make([]int, w*h)
	boxes := make([]Box, 0)
	next := 1

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if bin.GrayAt(x, y).Y != inkPixel || labels[y*w+x] != 0 {
				continue
			}
			comp := floodFill(bin, labels, x, y, next)
			next++
			if len(comp.pixels) < minComponentPixels {
				continue
			}

			contour := traceBoundary(comp, comp.start)
			poly := approxPolygon(contour, approxEpsilonRatio*perimeter(contour))
			if len(poly) != 4 {
				continue
			}

			box := boundingBox(contour)
			if box.Width > minBoxWidth && box.Width < maxBoxWidth &&
				box.Height > minBoxHeight && box.Height < maxBoxHeight &&
				box.Width > box.Height {
				boxes = append(boxes, box)
			}
		}
	}
	return boxes
}

// component is one 8-connected ink region. start is its topmost-leftmost
// pixel, which is where boundary tracing begins.
type component struct {
	pixels map[image.Point]struct{}
	start  image.Point
}

func (c *component) has(x, y int) bool {
	_, ok := c.pixels[image.Point{X: x, Y: y}]
	return ok
}

// floodFill collects the 8-connected ink component containing (sx, sy) and
// marks it in labels so the outer scan skips it.
func floodFill(bin *image.Gray, labels []int, sx, sy, label int) *component {
	w := bin.Rect.Dx()
	h := bin.Rect.Dy()
	comp := &component{
		pixels: make(map[image.Point]struct{}),
		start:  image.Point{X: sx, Y: sy},
	}

	queue := []image.Point{{X: sx, Y: sy}}
	labels[sy*w+sx] = label
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		comp.pixels[p] = struct{}{}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				if labels[ny*w+nx] != 0 || bin.GrayAt(nx, ny).Y != inkPixel {
					continue
				}
				labels[ny*w+nx] = label
				queue = append(queue, image.Point{X: nx, Y: ny})
			}
		}
	}
	return comp
}

// traceBoundary walks the external contour of a component clockwise using
// Moore neighbor tracing, starting at the topmost-leftmost pixel.
func traceBoundary(comp *component, start image.Point) []image.Point {
	// clockwise neighbor order in image coordinates (y grows downward)
	dirs := [8]image.Point{
		{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: -1, Y: 1},
		{X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	}
	maxSteps := 4 * (len(comp.pixels) + 4)

	contour := []image.Point{start}
	cur := start
	// start has no component neighbors above it or directly west, so the
	// first probe can begin at northeast and sweep clockwise
	dir := 7
	for step := 0; step < maxSteps; step++ {
		moved := false
		for i := 0; i < 8; i++ {
			d := (dir + i) % 8
			next := image.Point{X: cur.X + dirs[d].X, Y: cur.Y + dirs[d].Y}
			if comp.has(next.X, next.Y) {
				cur = next
				dir = (d + 6) % 8
				moved = true
				break
			}
		}
		if !moved || cur == start {
			break
		}
		contour = append(contour, cur)
	}
	return contour
}

// perimeter is the closed arc length of a contour.
func perimeter(contour []image.Point) float64 {
	if len(contour) < 2 {
		return 0
	}
	var sum float64
	for i := range contour {
		sum += pointDistance(contour[i], contour[(i+1)%len(contour)])
	}
	return sum
}

// approxPolygon simplifies a closed contour with the Douglas-Peucker
// algorithm, splitting at the point farthest from the trace origin so both
// halves are open chains.
func approxPolygon(contour []image.Point, epsilon float64) []image.Point {
	if len(contour) < 3 {
		return contour
	}

	far := 0
	for i, p := range contour {
		if pointDistance(p, contour[0]) > pointDistance(contour[far], contour[0]) {
			far = i
		}
	}
	if far == 0 {
		return contour[:1]
	}

	back := make([]image.Point, 0, len(contour)-far+1)
	back = append(back, contour[far:]...)
	back = append(back, contour[0])

	first := douglasPeucker(contour[:far+1], epsilon)
	second := douglasPeucker(back, epsilon)

	// endpoints of the two chains coincide; keep each corner once
	poly := append([]image.Point{}, first...)
	if len(second) > 2 {
		poly = append(poly, second[1:len(second)-1]...)
	}
	return poly
}

func douglasPeucker(points []image.Point, epsilon float64) []image.Point {
	if len(points) < 3 {
		return points
	}

	maxDist := 0.0
	maxIdx := 0
	for i := 1; i < len(points)-1; i++ {
		d := segmentDistance(points[i], points[0], points[len(points)-1])
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= epsilon {
		return []image.Point{points[0], points[len(points)-1]}
	}

	left := douglasPeucker(points[:maxIdx+1], epsilon)
	right := douglasPeucker(points[maxIdx:], epsilon)
	return append(left[:len(left)-1], right...)
}

// segmentDistance is the perpendicular distance from p to the segment ab.
func segmentDistance(p, a, b image.Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return pointDistance(p, a)
	}
	return math.Abs(dx*float64(a.Y-p.Y)-float64(a.X-p.X)*dy) / length
}

func pointDistance(a, b image.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

func boundingBox(contour []image.Point) Box {
	minX, minY := contour[0].X, contour[0].Y
	maxX, maxY := minX, minY
	for _, p := range contour[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return Box{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
}
