package quadtree

import (
	"fmt"
	"strings"
)

// FilterMode selects the tonal transform applied to each quadrant's color.
// Filters act on a single flat color and never look at neighboring quadrants.
type FilterMode int

const (
	FilterNone FilterMode = iota
	FilterGrayscale
	FilterBlackAndWhite
	FilterSepia
	FilterInverted
	FilterThresholded
	FilterBrightened
	FilterHighContrast
	FilterSoftBlur
	FilterEmboss
)

const (
	bwCutoff          = 128
	thresholdCutoff   = 128
	brightenAmount    = 50
	contrastFactor    = 50
	softBlurReduction = 100
	embossAmount      = 50
)

var filterNames = [...]string{
	FilterNone:          "none",
	FilterGrayscale:     "grayscale",
	FilterBlackAndWhite: "black-and-white",
	FilterSepia:         "sepia",
	FilterInverted:      "inverted",
	FilterThresholded:   "thresholded",
	FilterBrightened:    "brightened",
	FilterHighContrast:  "high-contrast",
	FilterSoftBlur:      "soft-blur",
	FilterEmboss:        "emboss",
}

// Alternate spellings accepted by ParseFilterMode.
var filterAliases = map[string]FilterMode{
	"":            FilterNone,
	"color":       FilterNone,
	"gray":        FilterGrayscale,
	"gray-scale":  FilterGrayscale,
	"greyscale":   FilterGrayscale,
	"bw":          FilterBlackAndWhite,
	"invert":      FilterInverted,
	"threshold":   FilterThresholded,
	"brighten":    FilterBrightened,
	"contrast":    FilterHighContrast,
	"blur":        FilterSoftBlur,
	"emboss-like": FilterEmboss,
}

// FilterModes returns every valid mode, in declaration order.
func FilterModes() []FilterMode {
	modes := make([]FilterMode, len(filterNames))
	for i := range modes {
		modes[i] = FilterMode(i)
	}
	return modes
}

// ParseFilterMode parses names like "sepia", "High Contrast" or "soft_blur".
func ParseFilterMode(s string) (FilterMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer(" ", "-", "_", "-").Replace(name)

	for i, n := range filterNames {
		if n == name {
			return FilterMode(i), nil
		}
	}
	if m, ok := filterAliases[name]; ok {
		return m, nil
	}
	return FilterNone, fmt.Errorf("unknown filter mode '%s'", s)
}

func (m FilterMode) Valid() bool {
	return m >= 0 && int(m) < len(filterNames)
}

func (m FilterMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("FilterMode(%d)", int(m))
	}
	return filterNames[m]
}

// Apply returns the color displayed for a quadrant whose average color is c.
// Results are clamped to the 0-255 range.
func (m FilterMode) Apply(c RGB) RGB {
	r, g, b := int(c.R), int(c.G), int(c.B)

	switch m {
	case FilterGrayscale:
		v := luma(c)
		return rgb(v, v, v)

	case FilterBlackAndWhite:
		v := 255
		if luma(c) < bwCutoff {
			v = 0
		}
		return rgb(v, v, v)

	case FilterSepia:
		fr, fg, fb := float64(r), float64(g), float64(b)
		return rgb(
			int(0.393*fr+0.769*fg+0.189*fb),
			int(0.349*fr+0.686*fg+0.168*fb),
			int(0.272*fr+0.534*fg+0.131*fb),
		)

	case FilterInverted:
		return rgb(255-r, 255-g, 255-b)

	case FilterThresholded:
		return rgb(cutoff(r, thresholdCutoff), cutoff(g, thresholdCutoff), cutoff(b, thresholdCutoff))

	case FilterBrightened:
		return rgb(r+brightenAmount, g+brightenAmount, b+brightenAmount)

	case FilterHighContrast:
		avg := float64(r+g+b) / 3
		stretch := func(v int) int {
			return int(avg + contrastFactor*(float64(v)-avg))
		}
		return rgb(stretch(r), stretch(g), stretch(b))

	case FilterSoftBlur:
		return rgb(r-softBlurReduction, g-softBlurReduction, b-softBlurReduction)

	case FilterEmboss:
		return rgb(r+embossAmount, g+embossAmount, b+embossAmount)
	}
	return c
}

// cutoff returns 255 when v is strictly above limit, otherwise 0.
func cutoff(v, limit int) int {
	if v > limit {
		return 255
	}
	return 0
}

func clamp(v int) uint8 {
	return uint8(max(0, min(255, v)))
}

func rgb(r, g, b int) RGB {
	return RGB{clamp(r), clamp(g), clamp(b)}
}
