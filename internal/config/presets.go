package config

import "sort"

// Presets are named starting configurations for the tower.
var Presets = map[string]*Tower{
	"default": Default(),
	"single": {
		Frames: 1, FrameSize: 1.5, Thickness: 0.04, ConnectorLength: 0.2,
		AngularDamping: 0.8, WeightReduction: 0.65, WeightScale: 0.64,
		FrameDensity: 1.0, WeightDensity: 7.8, PedestalHeight: 1.0,
		Gravity: 9.82, JointLimit: 0.6,
	},
	"slender": {
		Frames: 10, FrameSize: 1.0, Thickness: 0.03, ConnectorLength: 0.3,
		AngularDamping: 0.85, WeightReduction: 0.8, WeightScale: 0.5,
		FrameDensity: 1.0, WeightDensity: 7.8, PedestalHeight: 1.0,
		Gravity: 9.82, JointLimit: 0.4,
	},
	"topheavy": {
		Frames: 4, FrameSize: 1.8, Thickness: 0.05, ConnectorLength: 0.15,
		AngularDamping: 0.7, WeightReduction: 1.0, WeightScale: 0.9,
		FrameDensity: 0.5, WeightDensity: 11.3, PedestalHeight: 1.2,
		Gravity: 9.82, JointLimit: 0.8,
	},
	"floppy": {
		Frames: 8, FrameSize: 1.5, Thickness: 0.04, ConnectorLength: 0.25,
		AngularDamping: 0.3, WeightReduction: 0.7, WeightScale: 0.6,
		FrameDensity: 1.0, WeightDensity: 5.0, PedestalHeight: 1.0,
		Gravity: 9.82, JointLimit: 1.2,
	},
}

// Preset returns a copy of the named preset, or nil if unknown.
func Preset(name string) *Tower {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
