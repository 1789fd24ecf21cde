package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFrames          = 6
	DefaultFrameSize       = 1.5
	DefaultThickness       = 0.04
	DefaultConnectorLength = 0.2
	DefaultWeightReduction = 0.65
	DefaultWeightScale     = 0.64
	DefaultAngularDamping  = 0.8
	DefaultFrameDensity    = 1.0
	DefaultWeightDensity   = 7.8
	DefaultPedestalHeight  = 1.0
	DefaultGravity         = 9.82
	DefaultJointLimit      = 0.6

	// WeightMargin is the hard margin keeping a weight cube inside its
	// frame's inner span.
	WeightMargin = 0.05
)

// Tower holds the generation parameters of the hinged tower. Every
// edit to a generation parameter triggers a full rebuild.
type Tower struct {
	Frames          int     `yaml:"frames"`
	FrameSize       float64 `yaml:"frame_size"`
	Thickness       float64 `yaml:"thickness"`
	ConnectorLength float64 `yaml:"connector_length"`
	AngularDamping  float64 `yaml:"angular_damping"`
	WeightReduction float64 `yaml:"weight_reduction"`
	WeightScale     float64 `yaml:"weight_scale"`
	FrameDensity    float64 `yaml:"frame_density"`
	WeightDensity   float64 `yaml:"weight_density"`
	PedestalHeight  float64 `yaml:"pedestal_height"`
	Gravity         float64 `yaml:"gravity"`
	JointLimit      float64 `yaml:"joint_limit"`
}

func Default() *Tower {
	return &Tower{
		Frames:          DefaultFrames,
		FrameSize:       DefaultFrameSize,
		Thickness:       DefaultThickness,
		ConnectorLength: DefaultConnectorLength,
		AngularDamping:  DefaultAngularDamping,
		WeightReduction: DefaultWeightReduction,
		WeightScale:     DefaultWeightScale,
		FrameDensity:    DefaultFrameDensity,
		WeightDensity:   DefaultWeightDensity,
		PedestalHeight:  DefaultPedestalHeight,
		Gravity:         DefaultGravity,
		JointLimit:      DefaultJointLimit,
	}
}

func Load(path string) (*Tower, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Tower) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks parameter ranges before a rebuild. The geometry
// model only clamps the weight edge; everything else degenerates
// silently (NaN masses, inverted boxes) if fed garbage, so rebuild
// callers are expected to validate first.
func (c *Tower) Validate() error {
	if c.Frames < 1 {
		return fmt.Errorf("frames must be >= 1, got %d", c.Frames)
	}
	if c.FrameSize <= 0 {
		return fmt.Errorf("frame_size must be positive, got %f", c.FrameSize)
	}
	if c.Thickness <= 0 || c.Thickness >= c.FrameSize/2 {
		return fmt.Errorf("thickness must be in (0, frame_size/2), got %f", c.Thickness)
	}
	if c.ConnectorLength < 0 {
		return fmt.Errorf("connector_length must be non-negative, got %f", c.ConnectorLength)
	}
	if c.WeightReduction <= 0 || c.WeightReduction > 1 {
		return fmt.Errorf("weight_reduction must be in (0, 1], got %f", c.WeightReduction)
	}
	if c.WeightScale <= 0 || c.WeightScale > 1 {
		return fmt.Errorf("weight_scale must be in (0, 1], got %f", c.WeightScale)
	}
	if c.AngularDamping < 0 || c.AngularDamping >= 1 {
		return fmt.Errorf("angular_damping must be in [0, 1), got %f", c.AngularDamping)
	}
	if c.FrameDensity <= 0 || c.WeightDensity <= 0 {
		return fmt.Errorf("densities must be positive, got %f and %f", c.FrameDensity, c.WeightDensity)
	}
	if c.PedestalHeight <= 0 {
		return fmt.Errorf("pedestal_height must be positive, got %f", c.PedestalHeight)
	}
	if c.JointLimit <= 0 {
		return fmt.Errorf("joint_limit must be positive, got %f", c.JointLimit)
	}
	return nil
}

// Clone returns a copy, so a session can mutate its own config
// without aliasing the caller's.
func (c *Tower) Clone() *Tower {
	cp := *c
	return &cp
}
