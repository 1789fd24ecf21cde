// Package metrics implements run metrics over a live tower session:
// tip sway, mechanical energy and joint travel.
package metrics

import (
	"math"

	"github.com/san-kum/towerlab/internal/tower"
)

// TipSway tracks the cap's horizontal excursion from the tower axis.
type TipSway struct {
	name    string
	current float64
	max     float64
}

func NewTipSway() *TipSway {
	return &TipSway{name: "tip_sway"}
}

func (m *TipSway) Name() string { return m.name }

func (m *TipSway) Observe(s *tower.Session, t float64) {
	p := s.Cap().Body.Position()
	m.current = math.Hypot(p.X, p.Z)
	m.max = math.Max(m.max, m.current)
}

// Value returns the largest sway seen so far.
func (m *TipSway) Value() float64 { return m.max }

// Current returns the sway at the latest observation.
func (m *TipSway) Current() float64 { return m.current }

func (m *TipSway) Reset() {
	m.current = 0
	m.max = 0
}
