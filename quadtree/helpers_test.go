package quadtree

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

var (
	red   = RGB{255, 0, 0}
	green = RGB{0, 255, 0}
	blue  = RGB{0, 0, 255}
	white = RGB{255, 255, 255}
)

func solidImage(w, h int, c color.Color) *image.NRGBA {
	return imaging.New(w, h, c)
}

// quadImage has four solid quadrants: red, green, blue and white.
func quadImage(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	half := size / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			var c RGB
			switch {
			case x < half && y < half:
				c = red
			case y < half:
				c = green
			case x < half:
				c = blue
			default:
				c = white
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// noiseImage is busy everywhere, but deterministic.
func noiseImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x*37 + y*91) % 256),
				G: uint8((x*x + y*53) % 256),
				B: uint8((x*y*7 + 11) % 256),
				A: 255,
			})
		}
	}
	return img
}

func buildTree(t *testing.T, img image.Image, cfg Config) *Tree {
	t.Helper()
	tree, err := Build(NewPixelSource(img), cfg)
	require.NoError(t, err)
	return tree
}

func nrgbaAt(img *image.NRGBA, x, y int) RGB {
	c := img.NRGBAAt(x, y)
	return RGB{c.R, c.G, c.B}
}
