package quadtree

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	tree := buildTree(t, quadImage(8), Config{MaxDepth: 4, DetailThreshold: 1})
	require.Equal(t, Stats{
		Nodes:          5,
		Leaves:         4,
		MaxDepth:       1,
		LeavesPerDepth: []int{0, 4},
	}, tree.Stats())

	tree = buildTree(t, solidImage(3, 3, color.Black), Config{MaxDepth: 4, DetailThreshold: 1})
	require.Equal(t, Stats{
		Nodes:          1,
		Leaves:         1,
		LeavesPerDepth: []int{1},
	}, tree.Stats())
}
