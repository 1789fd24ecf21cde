package pick

import (
	"math"

	"github.com/san-kum/towerlab/internal/phys"
	"github.com/san-kum/towerlab/internal/scene"
)

// Ray is a world-space half line. Dir is unit length.
type Ray struct {
	Origin, Dir phys.Vec3
}

func (r Ray) At(t float64) phys.Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// PlaneIntersect intersects the ray with the plane through point with
// the given normal. ok is false when the ray is parallel to the plane
// or the hit lies behind the origin.
func (r Ray) PlaneIntersect(point, normal phys.Vec3) (phys.Vec3, bool) {
	denom := r.Dir.Dot(normal)
	if math.Abs(denom) < 1e-9 {
		return phys.Vec3{}, false
	}
	t := point.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return phys.Vec3{}, false
	}
	return r.At(t), true
}

// Target pairs a rigid body with its visual node for hit testing.
// Order mirrors the session's segment records.
type Target struct {
	Body      *phys.Body
	Node      *scene.Node
	Draggable bool
}

// Hit describes the nearest ray intersection.
type Hit struct {
	Index int
	Point phys.Vec3
	T     float64
}

// Nearest finds the closest box of any target the ray passes through.
// A miss returns ok == false; it is not an error, it just means no
// interaction starts.
func Nearest(r Ray, targets []Target) (Hit, bool) {
	best := Hit{Index: -1, T: math.Inf(1)}
	for i, target := range targets {
		n := target.Node
		pos := n.Position()
		rot := n.Rotation()
		for _, box := range n.Boxes() {
			t, ok := rayBox(r, pos, rot, box)
			if ok && t < best.T {
				best = Hit{Index: i, Point: r.At(t), T: t}
			}
		}
	}
	return best, best.Index >= 0
}

// rayBox is a slab test against an oriented box: the ray is taken
// into the node's local frame, then clipped against the box extents.
func rayBox(r Ray, pos phys.Vec3, rot phys.Quat, box scene.Box) (float64, bool) {
	inv := rot.Conjugate()
	origin := inv.Rotate(r.Origin.Sub(pos)).Sub(box.Offset)
	dir := inv.Rotate(r.Dir)

	half := box.Size.Scale(0.5)
	tMin, tMax := 0.0, math.Inf(1)

	for _, axis := range [3]struct{ o, d, h float64 }{
		{origin.X, dir.X, half.X},
		{origin.Y, dir.Y, half.Y},
		{origin.Z, dir.Z, half.Z},
	} {
		if math.Abs(axis.d) < 1e-12 {
			if axis.o < -axis.h || axis.o > axis.h {
				return 0, false
			}
			continue
		}
		t1 := (-axis.h - axis.o) / axis.d
		t2 := (axis.h - axis.o) / axis.d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}
