package quadtree

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// RenderOptions controls how frontier quadrants are drawn.
type RenderOptions struct {
	// Outline draws a one pixel border just inside every quadrant.
	Outline bool

	// OutlineColor defaults to black.
	OutlineColor color.Color
}

func (t *Tree) checkDepth(depth int) error {
	if depth < 0 || depth > t.maxDepth {
		return &InvalidDepthError{Requested: depth, Max: t.maxDepth}
	}
	return nil
}

// Frontier returns the nodes visible when the tree is cut off at viewDepth:
// every leaf above viewDepth, plus every node at exactly viewDepth. The
// returned nodes tile the root box and are in depth-first order.
func (t *Tree) Frontier(viewDepth int) ([]*Node, error) {
	if err := t.checkDepth(viewDepth); err != nil {
		return nil, err
	}

	var nodes []*Node
	Walk(t.root, func(n *Node) bool {
		if n.Leaf() || n.depth == viewDepth {
			nodes = append(nodes, n)
			return false
		}
		return true
	})
	return nodes, nil
}

// Render draws the frontier at viewDepth onto a new image the size of the
// root box. Pixels not covered by any quadrant are black.
func (t *Tree) Render(viewDepth int, opts RenderOptions) (*image.NRGBA, error) {
	nodes, err := t.Frontier(viewDepth)
	if err != nil {
		return nil, err
	}

	r := t.root.bbox.Rect()
	img := imaging.New(r.Dx(), r.Dy(), color.Black)
	// imaging.New always starts at the origin
	offset := r.Min

	outline := opts.OutlineColor
	if outline == nil {
		outline = color.Black
	}

	for _, n := range nodes {
		rect := n.bbox.Rect().Sub(offset).Intersect(img.Bounds())
		if rect.Empty() {
			continue
		}
		draw.Draw(img, rect, image.NewUniform(n.Display()), image.Point{}, draw.Src)
		if opts.Outline {
			drawOutline(img, rect, outline)
		}
	}
	return img, nil
}

// drawOutline paints the outermost ring of pixels of r.
func drawOutline(img draw.Image, r image.Rectangle, c color.Color) {
	src := image.NewUniform(c)
	edges := [4]image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(img, e.Intersect(r), src, image.Point{}, draw.Src)
	}
}
