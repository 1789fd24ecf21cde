// Package tower builds and simulates the hinged frame tower: a pure
// per-tier mass/geometry model, a segment builder composing rigid
// bodies and scene nodes, a chain assembler, and the session that owns
// the whole simulation.
package tower

import (
	"math"

	"github.com/san-kum/towerlab/internal/config"
)

// NoWeight is the tier index of the weightless base frame.
const NoWeight = -1

// TierGeometry is the resolved geometry and mass of one tier. It is a
// pure function of (tier, config): same inputs always yield identical
// values, which keeps rebuilds reproducible.
type TierGeometry struct {
	Tier      int
	InnerSpan float64

	// WeightEdge is the weight cube edge length, clamped so the cube
	// stays inside the frame's inner span. Zero for tier NoWeight.
	WeightEdge float64

	FrameVolume  float64
	FrameMass    float64
	WeightVolume float64
	WeightMass   float64
	Mass         float64

	// ComY is the signed vertical offset of the true center of mass
	// from the frame center. Negative when a weight hangs low.
	ComY float64
}

// Geometry computes the tier model. Tiers >= 0 carry a weight cube
// that shrinks geometrically with the tier index; the base frame
// (tier NoWeight) is bare.
func Geometry(tier int, cfg *config.Tower) TierGeometry {
	inner := cfg.FrameSize - 2*cfg.Thickness
	g := TierGeometry{Tier: tier, InnerSpan: inner}

	// four beams, each edge-length x thickness x thickness
	g.FrameVolume = 4 * cfg.FrameSize * cfg.Thickness * cfg.Thickness
	g.FrameMass = g.FrameVolume * cfg.FrameDensity

	if tier >= 0 {
		edge := inner * cfg.WeightScale * math.Pow(cfg.WeightReduction, float64(tier))
		if limit := inner - config.WeightMargin; edge > limit {
			edge = limit
		}
		g.WeightEdge = edge
		g.WeightVolume = edge * edge * edge
		g.WeightMass = g.WeightVolume * cfg.WeightDensity
	}

	g.Mass = g.FrameMass + g.WeightMass

	// mass-weighted average of the frame centroid (at the frame
	// center) and the weight centroid (half a frame edge below it)
	if g.WeightMass > 0 {
		g.ComY = g.WeightMass * (-cfg.FrameSize / 2) / g.Mass
	}
	return g
}

// TopPivotY is the local Y of a segment's upper hinge point, at the
// top of the connector stub, relative to the frame center.
func TopPivotY(cfg *config.Tower) float64 {
	return (cfg.FrameSize-cfg.Thickness)/2 + cfg.ConnectorLength
}

// BottomPivotY is the local Y of a segment's lower hinge point, at
// the bottom beam center, relative to the frame center.
func BottomPivotY(cfg *config.Tower) float64 {
	return -(cfg.FrameSize - cfg.Thickness) / 2
}

// Span is the engaged vertical distance between consecutive frame
// centers: the connector plus two half-frames minus two
// half-thicknesses.
func Span(cfg *config.Tower) float64 {
	return cfg.FrameSize - cfg.Thickness + cfg.ConnectorLength
}
