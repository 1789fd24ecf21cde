package metrics

import (
	"github.com/san-kum/towerlab/internal/tower"
)

// Energy averages the tower's mechanical energy over a run: linear
// kinetic plus gravitational potential of every dynamic segment.
// Rotational kinetic energy is not included.
type Energy struct {
	name    string
	total   float64
	samples int
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s *tower.Session, t float64) {
	g := s.Config().Gravity
	sum := 0.0
	for _, seg := range s.Segments() {
		if !seg.Draggable {
			continue
		}
		b := seg.Body
		v := b.Velocity()
		sum += 0.5*b.Mass()*v.LengthSq() + b.Mass()*g*b.Position().Y
	}
	e.total += sum
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}
