package quadtree

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Histogram holds per-channel intensity counts, in R, G, B order.
type Histogram [3][256]int

// Source is the read-only pixel buffer a Tree is built from.
type Source interface {
	// Bounds returns the full extent of the pixels, with Min at the origin.
	Bounds() image.Rectangle
	// Crop converts a real-valued box into the pixel rectangle it covers.
	// The result may be empty.
	Crop(b BBox) image.Rectangle
	Histogram(r image.Rectangle) Histogram
	MeanColor(r image.Rectangle) RGB
}

// PixelSource is a Source backed by an in-memory NRGBA copy of an image.
// Alpha is ignored.
type PixelSource struct {
	img *image.NRGBA
}

// NewPixelSource copies img so later changes to it don't affect trees built
// from the returned source.
func NewPixelSource(img image.Image) *PixelSource {
	return &PixelSource{img: imaging.Clone(img)}
}

func (s *PixelSource) Bounds() image.Rectangle {
	return s.img.Bounds()
}

// Crop rounds each edge half-to-even and clips the result to the image.
func (s *PixelSource) Crop(b BBox) image.Rectangle {
	return b.Rect().Intersect(s.img.Bounds())
}

func (s *PixelSource) Histogram(r image.Rectangle) Histogram {
	var h Histogram
	r = r.Intersect(s.img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := s.img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			h[0][s.img.Pix[i]]++
			h[1][s.img.Pix[i+1]]++
			h[2][s.img.Pix[i+2]]++
			i += 4
		}
	}
	return h
}

// MeanColor returns the truncated per-channel average of r, or black if r
// holds no pixels.
func (s *PixelSource) MeanColor(r image.Rectangle) RGB {
	r = r.Intersect(s.img.Bounds())
	n := int64(r.Dx()) * int64(r.Dy())
	if n == 0 {
		return RGB{}
	}
	var sr, sg, sb int64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := s.img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			sr += int64(s.img.Pix[i])
			sg += int64(s.img.Pix[i+1])
			sb += int64(s.img.Pix[i+2])
			i += 4
		}
	}
	return RGB{uint8(sr / n), uint8(sg / n), uint8(sb / n)}
}

// round matches the half-to-even rounding used when mapping box edges onto
// pixel boundaries.
func round(f float64) int {
	return int(math.RoundToEven(f))
}
