package phys

import "math"

// BodyType selects how a body is integrated.
type BodyType int

const (
	// Dynamic bodies respond to gravity, impulses and constraints.
	Dynamic BodyType = iota
	// Kinematic bodies are moved by setting position/velocity directly
	// and have infinite effective mass.
	Kinematic
	// Static bodies never move.
	Static
)

// Box is an axis-aligned box shape in body-local space. Offset is the
// box center relative to the body's center of mass.
type Box struct {
	HalfExtents Vec3
	Offset      Vec3
}

// Body is a rigid body composed of box shapes. Shapes are placed
// relative to the center of mass, so the body's position *is* its
// center of mass.
type Body struct {
	typ BodyType

	mass    float64
	invMass float64

	// diagonal inverse inertia in the body frame
	invInertia Vec3

	pos    Vec3
	rot    Quat
	vel    Vec3
	angVel Vec3

	linearDamping  float64
	angularDamping float64

	// collision filter, cannon-style group/mask
	group uint32
	mask  uint32

	boxes  []Box
	radius float64 // bounding sphere, for the broad phase

	world *World
}

// NewBody returns a dynamic body. Mass properties are resolved by
// SetMass once shapes have been added.
func NewBody(mass float64) *Body {
	b := &Body{
		typ:   Dynamic,
		rot:   QuatIdentity(),
		group: 1,
		mask:  ^uint32(0),
	}
	b.SetMass(mass)
	return b
}

// NewStaticBody returns a body with infinite effective mass that the
// solver never moves.
func NewStaticBody() *Body {
	b := NewBody(0)
	b.typ = Static
	return b
}

// NewKinematicBody returns a zero-mass body driven purely by
// SetPosition/SetVelocity. Constraints treat it as unmovable.
func NewKinematicBody() *Body {
	b := NewBody(0)
	b.typ = Kinematic
	return b
}

func (b *Body) Type() BodyType { return b.typ }
func (b *Body) Mass() float64  { return b.mass }

// SetMass assigns the body's mass and recomputes inertia from its
// shapes. Mass is distributed across boxes proportional to volume.
// A mass of zero makes the body unmovable by the solver.
func (b *Body) SetMass(mass float64) {
	b.mass = mass
	if mass <= 0 || b.typ != Dynamic {
		b.invMass = 0
		b.invInertia = Vec3{}
		return
	}
	b.invMass = 1 / mass
	b.computeInertia()
}

func (b *Body) computeInertia() {
	total := 0.0
	for _, box := range b.boxes {
		total += boxVolume(box)
	}
	if total == 0 || len(b.boxes) == 0 {
		// point mass fallback
		b.invInertia = Vec3{}
		return
	}
	var inertia Vec3
	for _, box := range b.boxes {
		m := b.mass * boxVolume(box) / total
		w, h, d := 2*box.HalfExtents.X, 2*box.HalfExtents.Y, 2*box.HalfExtents.Z
		// box inertia about its own center, then parallel axis
		ix := m/12*(h*h+d*d) + m*(box.Offset.Y*box.Offset.Y+box.Offset.Z*box.Offset.Z)
		iy := m/12*(w*w+d*d) + m*(box.Offset.X*box.Offset.X+box.Offset.Z*box.Offset.Z)
		iz := m/12*(w*w+h*h) + m*(box.Offset.X*box.Offset.X+box.Offset.Y*box.Offset.Y)
		inertia = inertia.Add(Vec3{ix, iy, iz})
	}
	b.invInertia = Vec3{safeInv(inertia.X), safeInv(inertia.Y), safeInv(inertia.Z)}
}

func boxVolume(b Box) float64 {
	return 8 * b.HalfExtents.X * b.HalfExtents.Y * b.HalfExtents.Z
}

func safeInv(x float64) float64 {
	if x == 0 {
		return 0
	}
	return 1 / x
}

// AddBox appends a box shape. halfExtents and offset are in the body
// frame, offset relative to the center of mass.
func (b *Body) AddBox(halfExtents, offset Vec3) {
	b.boxes = append(b.boxes, Box{HalfExtents: halfExtents, Offset: offset})
	r := offset.Length() + halfExtents.Length()
	if r > b.radius {
		b.radius = r
	}
	if b.invMass != 0 {
		b.computeInertia()
	}
}

func (b *Body) Boxes() []Box { return b.boxes }

// BoundingRadius returns the body's bounding sphere radius.
func (b *Body) BoundingRadius() float64 { return b.radius }

func (b *Body) Position() Vec3        { return b.pos }
func (b *Body) Rotation() Quat        { return b.rot }
func (b *Body) Velocity() Vec3        { return b.vel }
func (b *Body) AngularVelocity() Vec3 { return b.angVel }

func (b *Body) SetPosition(p Vec3)        { b.pos = p }
func (b *Body) SetRotation(q Quat)        { b.rot = q.Normalize() }
func (b *Body) SetVelocity(v Vec3)        { b.vel = v }
func (b *Body) SetAngularVelocity(w Vec3) { b.angVel = w }

// SetDamping sets the per-second linear and angular velocity decay
// fractions, both in [0, 1).
func (b *Body) SetDamping(linear, angular float64) {
	b.linearDamping = linear
	b.angularDamping = angular
}

// SetCollisionFilter sets the cannon-style group/mask pair. Two bodies
// collide only when each body's group intersects the other's mask.
func (b *Body) SetCollisionFilter(group, mask uint32) {
	b.group = group
	b.mask = mask
}

// WorldPoint transforms a body-local point to world space.
func (b *Body) WorldPoint(local Vec3) Vec3 {
	return b.pos.Add(b.rot.Rotate(local))
}

// LocalPoint transforms a world-space point into the body frame.
func (b *Body) LocalPoint(world Vec3) Vec3 {
	return b.rot.Conjugate().Rotate(world.Sub(b.pos))
}

// VelocityAt returns the velocity of a world-space point on the body.
func (b *Body) VelocityAt(worldPoint Vec3) Vec3 {
	return b.vel.Add(b.angVel.Cross(worldPoint.Sub(b.pos)))
}

// invInertiaWorld returns the world-frame inverse inertia tensor.
func (b *Body) invInertiaWorld() Mat3 {
	if b.invMass == 0 {
		return Mat3{}
	}
	r := Mat3FromQuat(b.rot)
	return r.Mul(Mat3Diag(b.invInertia)).Mul(r.Transpose())
}

// applyImpulse applies an impulse j at world point p.
func (b *Body) applyImpulse(j, p Vec3) {
	if b.invMass == 0 {
		return
	}
	b.vel = b.vel.Add(j.Scale(b.invMass))
	b.angVel = b.angVel.Add(b.invInertiaWorld().MulVec(p.Sub(b.pos).Cross(j)))
}

// applyAngularImpulse applies a pure torque impulse.
func (b *Body) applyAngularImpulse(j Vec3) {
	if b.invMass == 0 {
		return
	}
	b.angVel = b.angVel.Add(b.invInertiaWorld().MulVec(j))
}

func (b *Body) integrateVelocity(gravity Vec3, dt float64) {
	if b.typ != Dynamic || b.invMass == 0 {
		return
	}
	b.vel = b.vel.Add(gravity.Scale(dt))
	b.vel = b.vel.Scale(math.Pow(1-b.linearDamping, dt))
	b.angVel = b.angVel.Scale(math.Pow(1-b.angularDamping, dt))
}

func (b *Body) integratePosition(dt float64) {
	if b.invMass == 0 && b.typ != Kinematic {
		return
	}
	b.pos = b.pos.Add(b.vel.Scale(dt))
	b.rot = b.rot.Integrate(b.angVel, dt)
}
