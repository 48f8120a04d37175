package quadtree

import (
	"fmt"
	"math"
	"sync"
)

// parallelDepth is the depth below which siblings are built concurrently
// when Config.Parallel is set. Deeper subtrees are built on the goroutine
// that owns their ancestor.
const parallelDepth = 2

// Config holds the parameters a tree is built with.
type Config struct {
	// MaxDepth stops splitting once a node is deeper than this. Leaves may
	// therefore sit at MaxDepth+1.
	MaxDepth int

	// DetailThreshold stops splitting nodes whose detail score is below it.
	// Zero disables the check.
	DetailThreshold float64

	Filter FilterMode

	// Parallel builds sibling subtrees near the root on separate goroutines.
	// The resulting tree is identical to a sequential build.
	Parallel bool
}

// Validate reports whether c can be used to build a tree.
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth %d is negative", ErrInvalidConfig, c.MaxDepth)
	}
	if math.IsNaN(c.DetailThreshold) || c.DetailThreshold < 0 {
		return fmt.Errorf("%w: detail threshold %v must be zero or greater", ErrInvalidConfig, c.DetailThreshold)
	}
	if !c.Filter.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Filter)
	}
	return nil
}

// Tree is a built quadtree. It is safe for concurrent reads.
type Tree struct {
	root     *Node
	maxDepth int
	config   Config
}

// Root returns the node covering the whole image.
func (t *Tree) Root() *Node { return t.root }

// MaxDepth returns the depth of the deepest leaf. Valid view depths are
// 0 to MaxDepth inclusive.
func (t *Tree) MaxDepth() int { return t.maxDepth }

func (t *Tree) Config() Config { return t.config }

// Build validates cfg and builds the tree for the whole of src.
func Build(src Source, cfg Config) (*Tree, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := builder{src: src, config: cfg}
	r := src.Bounds()
	root := b.newNode(BBox{
		Left:   float64(r.Min.X),
		Top:    float64(r.Min.Y),
		Right:  float64(r.Max.X),
		Bottom: float64(r.Max.Y),
	}, 0)

	return &Tree{
		root:     root,
		maxDepth: b.build(root),
		config:   cfg,
	}, nil
}

type builder struct {
	src    Source
	config Config
}

// newNode samples the region under bbox. Regions with no pixels get a zero
// detail score, so they always become leaves.
func (b *builder) newNode(bbox BBox, depth int) *Node {
	region := b.src.Crop(bbox)
	hist := b.src.Histogram(region)

	n := &Node{
		bbox:   bbox,
		depth:  depth,
		detail: Detail(&hist),
		color:  b.src.MeanColor(region),
	}
	if b.config.Filter != FilterNone {
		f := b.config.Filter.Apply(n.color)
		n.filtered = &f
	}
	return n
}

func (b *builder) stop(n *Node) bool {
	return n.depth > b.config.MaxDepth || n.detail < b.config.DetailThreshold
}

// build splits n until every leaf under it stops, and returns the depth of
// the deepest of those leaves.
func (b *builder) build(n *Node) int {
	if b.stop(n) {
		return n.depth
	}

	boxes := n.bbox.Split()
	var children [4]*Node
	var reached [4]int

	if b.config.Parallel && n.depth < parallelDepth {
		var wg sync.WaitGroup
		for i := range boxes {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				children[i] = b.newNode(boxes[i], n.depth+1)
				reached[i] = b.build(children[i])
			}(i)
		}
		wg.Wait()
	} else {
		for i := range boxes {
			children[i] = b.newNode(boxes[i], n.depth+1)
			reached[i] = b.build(children[i])
		}
	}

	n.children = &children
	return max(reached[0], reached[1], reached[2], reached[3])
}
