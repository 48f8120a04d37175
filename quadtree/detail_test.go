package quadtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChannelDetail(t *testing.T) {
	var counts [256]int
	require.Zero(t, ChannelDetail(&counts))

	counts[42] = 100
	require.Zero(t, ChannelDetail(&counts))

	counts = [256]int{}
	counts[0] = 1
	counts[255] = 1
	require.InDelta(t, 127.5, ChannelDetail(&counts), 1e-9)

	// mean 2, deviations -2, 0, 2 weighted 1, 2, 1
	counts = [256]int{}
	counts[0] = 1
	counts[2] = 2
	counts[4] = 1
	require.InDelta(t, 1.4142135623730951, ChannelDetail(&counts), 1e-9)
}

func TestDetailUsesLumaWeights(t *testing.T) {
	var h Histogram
	for c := range h {
		h[c][0] = 1
		h[c][255] = 1
	}
	require.InDelta(t, 127.5*(lumaR+lumaG+lumaB), Detail(&h), 1e-9)

	h = Histogram{}
	h[0][7] = 3
	h[1][0] = 1
	h[1][255] = 1
	h[2][9] = 5
	require.InDelta(t, 127.5*lumaG, Detail(&h), 1e-9)
}

func TestDetailEmpty(t *testing.T) {
	var h Histogram
	require.Zero(t, Detail(&h))
}
