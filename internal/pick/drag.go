package pick

import (
	"math"

	"github.com/san-kum/towerlab/internal/phys"
)

// dragMaxForce bounds the coupling impulse so a fast pointer yanks a
// segment instead of teleporting it.
const dragMaxForce = 50000

// Dragger is the constraint-drag bridge: on grab it spawns a
// zero-mass anchor body at the hit point and couples it to the target
// body with a point constraint; while dragging it only ever moves the
// anchor, and the solver pulls the body after it. Exactly one pointer
// may drag at a time; other pointers are ignored entirely.
type Dragger struct {
	world *phys.World
	cam   *Camera

	pointer    int
	anchor     *phys.Body
	constraint *phys.PointConstraint
	grabPoint  phys.Vec3
	planeN     phys.Vec3
}

func NewDragger(world *phys.World, cam *Camera) *Dragger {
	return &Dragger{world: world, cam: cam, pointer: -1}
}

// Dragging reports whether a drag is active. Camera orbit input
// should be suppressed while it is.
func (d *Dragger) Dragging() bool { return d.anchor != nil }

// AnchorPosition returns the drag anchor's world position while a
// drag is active.
func (d *Dragger) AnchorPosition() (phys.Vec3, bool) {
	if !d.Dragging() {
		return phys.Vec3{}, false
	}
	return d.anchor.Position(), true
}

// Start begins a drag for the given pointer if the ray hits a
// draggable target. A miss, a hit on a non-draggable target, or a
// second simultaneous pointer leaves the state untouched.
func (d *Dragger) Start(pointer int, ray Ray, targets []Target) bool {
	if d.Dragging() {
		return false
	}
	hit, ok := Nearest(ray, targets)
	if !ok || !targets[hit.Index].Draggable {
		return false
	}
	body := targets[hit.Index].Body

	// local grab offset ignores the body's current rotation; exact
	// only for an unrotated body, but it matches the established
	// interactive feel
	local := hit.Point.Sub(body.Position())

	anchor := phys.NewKinematicBody()
	anchor.SetPosition(hit.Point)
	anchor.SetCollisionFilter(0, 0)
	d.world.AddBody(anchor)

	c := phys.NewPointConstraint(anchor, body, phys.Vec3{}, local)
	c.SetMaxForce(dragMaxForce)
	c.SetErrorBias(math.Pow(1.0-0.15, 60.0))
	d.world.AddConstraint(c)

	d.pointer = pointer
	d.anchor = anchor
	d.constraint = c
	d.grabPoint = hit.Point
	d.planeN = d.cam.Forward()
	return true
}

// Move re-projects the pointer onto the camera-facing plane through
// the grab point and places the anchor there. This is the only
// mutation per move; the constraint does the pulling.
func (d *Dragger) Move(pointer int, ray Ray) {
	if !d.Dragging() || pointer != d.pointer {
		return
	}
	if p, ok := ray.PlaneIntersect(d.grabPoint, d.planeN); ok {
		d.anchor.SetPosition(p)
	}
}

// End releases the drag held by the given pointer.
func (d *Dragger) End(pointer int) {
	if !d.Dragging() || pointer != d.pointer {
		return
	}
	d.release()
}

// Cancel releases any active drag regardless of pointer, for teardown
// and rebuilds.
func (d *Dragger) Cancel() {
	if d.Dragging() {
		d.release()
	}
}

func (d *Dragger) release() {
	d.world.RemoveConstraint(d.constraint)
	d.world.RemoveBody(d.anchor)
	d.constraint = nil
	d.anchor = nil
	d.pointer = -1
}
