package quadtree

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Perceptual luma weights, shared by the detail score and the gray filters.
const (
	lumaR = 0.2989
	lumaG = 0.5870
	lumaB = 0.1140
)

// intensities is the value of each histogram bucket.
var intensities = func() []float64 {
	v := make([]float64, 256)
	for i := range v {
		v[i] = float64(i)
	}
	return v
}()

// ChannelDetail returns the count-weighted population standard deviation of
// the intensities in a single channel histogram. An empty histogram scores 0.
func ChannelDetail(counts *[256]int) float64 {
	weights := make([]float64, len(counts))
	total := 0
	for i, c := range counts {
		total += c
		weights[i] = float64(c)
	}
	if total == 0 {
		return 0
	}
	// Rounding can leave a flat histogram with a tiny negative variance.
	_, variance := stat.PopMeanVariance(intensities, weights)
	if variance <= 0 {
		return 0
	}
	return math.Sqrt(variance)
}

// Detail combines the three channel scores of h using the luma weights.
func Detail(h *Histogram) float64 {
	return lumaR*ChannelDetail(&h[0]) +
		lumaG*ChannelDetail(&h[1]) +
		lumaB*ChannelDetail(&h[2])
}

// luma returns the truncated perceptual brightness of c.
func luma(c RGB) int {
	return int(lumaR*float64(c.R) + lumaG*float64(c.G) + lumaB*float64(c.B))
}
