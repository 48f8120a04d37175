package quadtree

import "strings"

// Preset is a named pair of build parameters.
type Preset struct {
	Name            string
	MaxDepth        int
	DetailThreshold float64
}

var (
	Pixelated = Preset{Name: "pixelated", MaxDepth: 7, DetailThreshold: 10}
	Average   = Preset{Name: "average", MaxDepth: 8, DetailThreshold: 7}
	Refined   = Preset{Name: "refined", MaxDepth: 9, DetailThreshold: 3}
)

// Presets lists the built in presets from coarsest to finest.
var Presets = []Preset{Pixelated, Average, Refined}

// PresetByName looks up a preset, ignoring case.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// Config returns a Config using the preset's depth and threshold.
func (p Preset) Config(filter FilterMode) Config {
	return Config{
		MaxDepth:        p.MaxDepth,
		DetailThreshold: p.DetailThreshold,
		Filter:          filter,
	}
}
