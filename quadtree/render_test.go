package quadtree

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrontierOutOfRange(t *testing.T) {
	tree := buildTree(t, quadImage(8), Config{MaxDepth: 4, DetailThreshold: 1})
	require.Equal(t, 1, tree.MaxDepth())

	_, err := tree.Render(tree.MaxDepth()+1, RenderOptions{})
	var depthErr *InvalidDepthError
	require.True(t, errors.As(err, &depthErr))
	require.Equal(t, 2, depthErr.Requested)
	require.Equal(t, 1, depthErr.Max)

	_, err = tree.Frontier(-1)
	require.True(t, errors.As(err, &depthErr))
}

func TestFrontierCoverage(t *testing.T) {
	w, h := 50, 37
	tree := buildTree(t, noiseImage(w, h), Config{MaxDepth: 5, DetailThreshold: 35})
	require.Greater(t, tree.MaxDepth(), 1)

	for d := 0; d <= tree.MaxDepth(); d++ {
		nodes, err := tree.Frontier(d)
		require.NoError(t, err)

		covered := make([]int, w*h)
		for _, n := range nodes {
			require.True(t, n.Leaf() || n.Depth() == d)
			require.LessOrEqual(t, n.Depth(), d)

			r := n.BBox().Rect()
			for y := r.Min.Y; y < r.Max.Y; y++ {
				for x := r.Min.X; x < r.Max.X; x++ {
					covered[y*w+x]++
				}
			}
		}
		for i, c := range covered {
			require.Equal(t, 1, c, "depth %d pixel %d", d, i)
		}
	}
}

func TestFrontierAtRoot(t *testing.T) {
	tree := buildTree(t, quadImage(8), Config{MaxDepth: 4, DetailThreshold: 1})

	nodes, err := tree.Frontier(0)
	require.NoError(t, err)
	require.Equal(t, []*Node{tree.Root()}, nodes)

	nodes, err = tree.Frontier(1)
	require.NoError(t, err)
	require.Equal(t, tree.Root().Children(), nodes)
}

func TestRender(t *testing.T) {
	img := quadImage(8)
	tree := buildTree(t, img, Config{MaxDepth: 4, DetailThreshold: 1})

	out, err := tree.Render(1, RenderOptions{})
	require.NoError(t, err)
	require.Equal(t, img.Bounds(), out.Bounds())
	require.Equal(t, img.Pix, out.Pix)

	out, err = tree.Render(0, RenderOptions{})
	require.NoError(t, err)
	mean := tree.Root().Color()
	require.Equal(t, RGB{127, 127, 127}, mean)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			require.Equal(t, mean, nrgbaAt(out, x, y))
		}
	}
}

func TestRenderOutline(t *testing.T) {
	tree := buildTree(t, quadImage(8), Config{MaxDepth: 4, DetailThreshold: 1})

	out, err := tree.Render(1, RenderOptions{Outline: true})
	require.NoError(t, err)
	black := RGB{}
	require.Equal(t, black, nrgbaAt(out, 0, 0))
	require.Equal(t, black, nrgbaAt(out, 3, 1))
	require.Equal(t, black, nrgbaAt(out, 4, 1))
	require.Equal(t, black, nrgbaAt(out, 7, 7))
	require.Equal(t, red, nrgbaAt(out, 1, 1))
	require.Equal(t, green, nrgbaAt(out, 5, 2))
	require.Equal(t, blue, nrgbaAt(out, 2, 5))
	require.Equal(t, white, nrgbaAt(out, 6, 6))

	out, err = tree.Render(1, RenderOptions{Outline: true, OutlineColor: color.NRGBA{1, 2, 3, 255}})
	require.NoError(t, err)
	require.Equal(t, RGB{1, 2, 3}, nrgbaAt(out, 4, 4))
	require.Equal(t, white, nrgbaAt(out, 5, 5))
}

func TestRenderFiltered(t *testing.T) {
	tree := buildTree(t, quadImage(8), Config{MaxDepth: 4, DetailThreshold: 1, Filter: FilterInverted})

	out, err := tree.Render(1, RenderOptions{})
	require.NoError(t, err)
	require.Equal(t, RGB{0, 255, 255}, nrgbaAt(out, 0, 0))
	require.Equal(t, RGB{0, 0, 0}, nrgbaAt(out, 7, 7))
}

func TestRenderLeavesTreeUntouched(t *testing.T) {
	img := noiseImage(30, 30)
	cfg := Config{MaxDepth: 4, DetailThreshold: 40}
	a := buildTree(t, img, cfg)
	b := buildTree(t, img, cfg)

	for d := 0; d <= a.MaxDepth(); d++ {
		_, err := a.Render(d, RenderOptions{Outline: true})
		require.NoError(t, err)
	}
	require.Equal(t, b.Root(), a.Root())
}
