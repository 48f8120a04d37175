package quadtree

import (
	"fmt"
	"image"
	"image/color"
)

// BBox is a real-valued rectangle in source image coordinates.
// Right and Bottom are exclusive once mapped to pixels.
type BBox struct {
	Left, Top, Right, Bottom float64
}

func (b BBox) Width() float64  { return b.Right - b.Left }
func (b BBox) Height() float64 { return b.Bottom - b.Top }

// Rect maps b onto the pixel grid. Adjacent boxes sharing an edge map to
// adjacent rectangles, so a tiling of boxes is also a tiling of pixels.
func (b BBox) Rect() image.Rectangle {
	return image.Rect(round(b.Left), round(b.Top), round(b.Right), round(b.Bottom))
}

// Split divides b at its midpoint into upper-left, upper-right, lower-left
// and lower-right quadrants.
func (b BBox) Split() [4]BBox {
	midX := b.Left + (b.Right-b.Left)/2
	midY := b.Top + (b.Bottom-b.Top)/2
	return [4]BBox{
		{b.Left, b.Top, midX, midY},
		{midX, b.Top, b.Right, midY},
		{b.Left, midY, midX, b.Bottom},
		{midX, midY, b.Right, b.Bottom},
	}
}

func (b BBox) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", b.Left, b.Top, b.Right, b.Bottom)
}

// RGB is an opaque 8-bit color. It implements color.Color.
type RGB struct {
	R, G, B uint8
}

func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{c.R, c.G, c.B, 255}.RGBA()
}

// Node is one quadrant of a Tree. A leaf has no children, an internal node
// has exactly four. Nodes are never modified once Build returns.
type Node struct {
	bbox   BBox
	depth  int
	detail float64
	color  RGB

	// filtered is nil unless the tree was built with a filter.
	filtered *RGB

	// children is nil for leaves.
	children *[4]*Node
}

func (n *Node) BBox() BBox      { return n.bbox }
func (n *Node) Depth() int      { return n.depth }
func (n *Node) Detail() float64 { return n.detail }

// Color is the average color of the quadrant's pixels.
func (n *Node) Color() RGB { return n.color }

// Filtered returns the filtered color, and false when no filter was used.
func (n *Node) Filtered() (RGB, bool) {
	if n.filtered == nil {
		return RGB{}, false
	}
	return *n.filtered, true
}

// Display returns the color painted for the quadrant.
func (n *Node) Display() RGB {
	if n.filtered != nil {
		return *n.filtered
	}
	return n.color
}

func (n *Node) Leaf() bool { return n.children == nil }

// Children returns the four children in upper-left, upper-right, lower-left,
// lower-right order, or nil for a leaf.
func (n *Node) Children() []*Node {
	if n.children == nil {
		return nil
	}
	c := *n.children
	return c[:]
}

// Walk visits n and its descendants depth-first, parents before children,
// in child order. Children of a node are skipped when fn returns false.
func Walk(n *Node, fn func(*Node) bool) {
	if !fn(n) || n.children == nil {
		return
	}
	for _, c := range n.children {
		Walk(c, fn)
	}
}
