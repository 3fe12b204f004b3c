package config

import (
	"strings"

	"github.com/theirongolddev/runway/internal/model"
)

// Preset names.
const (
	PresetCurrent = "current"
	PresetCapital = "capital"
)

// Reference holds the annual figures published alongside a preset.
type Reference struct {
	Revenue         float64
	RegisteredUsers int64
	ConvertedUsers  int64
}

// Preset is a named, fixed assignment of all eight coefficients.
type Preset struct {
	Name      string
	Label     string
	Params    model.Params
	Reference Reference
}

// Presets lists the built-in scenarios.
var Presets = []Preset{
	{
		Name:  PresetCurrent,
		Label: "Current trajectory",
		Params: model.Params{
			ExpA: 150000, ExpB: 1.20, ExpC: -1.1, ExpD: -30000,
			LogA: 3.0, LogB: 3.0, LogC: -0.5, LogD: -1.9,
		},
		Reference: Reference{Revenue: 265630.14, RegisteredUsers: 542853, ConvertedUsers: 22082},
	},
	{
		Name:  PresetCapital,
		Label: "With capital",
		Params: model.Params{
			ExpA: 190000, ExpB: 1.40, ExpC: 0.2, ExpD: -40000,
			LogA: 3.0, LogB: 2.7, LogC: -0.2, LogD: -0.4,
		},
		Reference: Reference{Revenue: 1771009.14, RegisteredUsers: 2298128, ConvertedUsers: 149036},
	},
}

// LookupPreset finds a preset by name, ignoring case.
func LookupPreset(name string) (Preset, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// MatchPreset returns the name of the preset whose coefficients equal p.
func MatchPreset(p model.Params) string {
	for _, preset := range Presets {
		if preset.Params == p {
			return preset.Name
		}
	}
	return ""
}
