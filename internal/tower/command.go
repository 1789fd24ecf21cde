package tower

import (
	"fmt"
	"math"

	"github.com/san-kum/towerlab/internal/config"
)

// SetParam asks the session to change one configuration parameter
// between ticks. Integer parameters round the value.
type SetParam struct {
	Name  string
	Value float64
}

// ParamNames lists the accepted SetParam names.
var ParamNames = []string{
	"frames",
	"frame_size",
	"thickness",
	"connector_length",
	"angular_damping",
	"weight_reduction",
	"weight_scale",
	"frame_density",
	"weight_density",
	"joint_limit",
	"gravity",
}

// liveParams can be applied to the running world without rebuilding
// the tower. Generation parameters are deliberately absent: every
// edit to one of them rebuilds the whole chain.
var liveParams = map[string]bool{
	"gravity": true,
}

// Queue schedules a parameter change. It is applied, validated and
// either adopted or rejected at the start of the next Tick.
func (s *Session) Queue(cmd SetParam) {
	s.pending = append(s.pending, cmd)
}

func (s *Session) drainCommands() {
	rebuild := false
	for _, cmd := range s.pending {
		next := s.cfg.Clone()
		if err := applyParam(next, cmd); err != nil {
			s.lastErr = err
			continue
		}
		if err := next.Validate(); err != nil {
			s.lastErr = fmt.Errorf("%s: %w", cmd.Name, err)
			continue
		}
		s.cfg = next
		s.lastErr = nil
		if liveParams[cmd.Name] {
			s.applyLive(cmd.Name)
		} else {
			rebuild = true
		}
	}
	s.pending = s.pending[:0]
	if rebuild {
		s.rebuild()
	}
}

func (s *Session) applyLive(name string) {
	switch name {
	case "gravity":
		s.world.Gravity.Y = -s.cfg.Gravity
	}
}

func applyParam(cfg *config.Tower, cmd SetParam) error {
	switch cmd.Name {
	case "frames":
		cfg.Frames = int(math.Round(cmd.Value))
	case "frame_size":
		cfg.FrameSize = cmd.Value
	case "thickness":
		cfg.Thickness = cmd.Value
	case "connector_length":
		cfg.ConnectorLength = cmd.Value
	case "angular_damping":
		cfg.AngularDamping = cmd.Value
	case "weight_reduction":
		cfg.WeightReduction = cmd.Value
	case "weight_scale":
		cfg.WeightScale = cmd.Value
	case "frame_density":
		cfg.FrameDensity = cmd.Value
	case "weight_density":
		cfg.WeightDensity = cmd.Value
	case "joint_limit":
		cfg.JointLimit = cmd.Value
	case "gravity":
		cfg.Gravity = cmd.Value
	default:
		return fmt.Errorf("unknown parameter %q", cmd.Name)
	}
	return nil
}
