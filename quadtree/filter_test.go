package quadtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterApply(t *testing.T) {
	in := RGB{100, 150, 200}

	tests := []struct {
		mode FilterMode
		want RGB
	}{
		{FilterNone, in},
		{FilterGrayscale, RGB{140, 140, 140}},
		{FilterBlackAndWhite, RGB{255, 255, 255}},
		{FilterSepia, RGB{192, 171, 133}},
		{FilterInverted, RGB{155, 105, 55}},
		{FilterThresholded, RGB{0, 255, 255}},
		{FilterBrightened, RGB{150, 200, 250}},
		{FilterHighContrast, RGB{0, 150, 255}},
		{FilterSoftBlur, RGB{0, 50, 100}},
		{FilterEmboss, RGB{150, 200, 250}},
	}

	for _, test := range tests {
		t.Run(test.mode.String(), func(t *testing.T) {
			require.Equal(t, test.want, test.mode.Apply(in))
		})
	}
}

func TestFilterClamps(t *testing.T) {
	require.Equal(t, RGB{255, 255, 238}, FilterSepia.Apply(white))
	require.Equal(t, RGB{255, 255, 255}, FilterBrightened.Apply(RGB{250, 205, 255}))
	require.Equal(t, RGB{0, 0, 0}, FilterSoftBlur.Apply(RGB{99, 100, 0}))
}

func TestFilterBlackAndWhitePoints(t *testing.T) {
	black := RGB{}

	require.Equal(t, black, FilterGrayscale.Apply(black))
	require.Equal(t, black, FilterBlackAndWhite.Apply(black))
	require.Equal(t, white, FilterBlackAndWhite.Apply(white))
	require.Equal(t, white, FilterInverted.Apply(black))
	require.Equal(t, black, FilterInverted.Apply(white))

	// The luma weights sum to 0.9999, so white truncates to 254.
	require.Equal(t, RGB{254, 254, 254}, FilterGrayscale.Apply(white))
}

func TestFilterBlackAndWhiteCutoff(t *testing.T) {
	require.Equal(t, RGB{}, FilterBlackAndWhite.Apply(RGB{127, 127, 127}))
	require.Equal(t, white, FilterBlackAndWhite.Apply(RGB{129, 129, 129}))
	require.Equal(t, RGB{0, 0, 255}, FilterThresholded.Apply(RGB{128, 0, 129}))
}

func TestParseFilterMode(t *testing.T) {
	for _, m := range FilterModes() {
		got, err := ParseFilterMode(m.String())
		require.NoError(t, err)
		require.Equal(t, m, got)
	}

	for name, want := range map[string]FilterMode{
		"High Contrast":   FilterHighContrast,
		"soft_blur":       FilterSoftBlur,
		"Black and White": FilterBlackAndWhite,
		"Gray Scale":      FilterGrayscale,
		"Emboss-like":     FilterEmboss,
		"Color":           FilterNone,
	} {
		got, err := ParseFilterMode(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}

	_, err := ParseFilterMode("watercolor")
	require.Error(t, err)
}

func TestFilterModeValid(t *testing.T) {
	require.True(t, FilterEmboss.Valid())
	require.False(t, FilterMode(-1).Valid())
	require.False(t, FilterMode(len(filterNames)).Valid())
	require.Equal(t, "FilterMode(99)", FilterMode(99).String())
}
