package metrics

import (
	"math"

	"github.com/san-kum/towerlab/internal/tower"
)

// JointTravel accumulates the absolute hinge rotation across all
// joints over a run. A stiff, well-damped tower travels little; a
// floppy one rings.
type JointTravel struct {
	name  string
	prev  []float64
	total float64
}

func NewJointTravel() *JointTravel {
	return &JointTravel{name: "joint_travel"}
}

func (m *JointTravel) Name() string { return m.name }

func (m *JointTravel) Observe(s *tower.Session, t float64) {
	angles := s.JointAngles()
	// a rebuild mid-run changes the joint count; restart the baseline
	if len(m.prev) != len(angles) {
		m.prev = angles
		return
	}
	for i, a := range angles {
		m.total += math.Abs(a - m.prev[i])
	}
	m.prev = angles
}

func (m *JointTravel) Value() float64 { return m.total }

func (m *JointTravel) Reset() {
	m.prev = nil
	m.total = 0
}
