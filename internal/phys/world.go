package phys

// World owns bodies and constraints and advances them in fixed
// substeps. The step order per substep mirrors the usual impulse
// solver: integrate velocities, resolve contacts, pre-step and warm
// start constraints, iterate impulses, integrate positions.
type World struct {
	Gravity Vec3

	// Iterations is the constraint-solver iteration count per substep.
	Iterations int
	// FixedDt is the substep length in seconds.
	FixedDt float64
	// MaxSubsteps bounds how many substeps a single Step may run.
	MaxSubsteps int

	bodies      []*Body
	constraints []Constraint

	accum float64
}

// NewWorld returns a world with gravity pointing down the Y axis and
// solver settings suited to a small, mostly-vertical body count.
func NewWorld() *World {
	return &World{
		Gravity:     Vec3{Y: -9.82},
		Iterations:  10,
		FixedDt:     1.0 / 120.0,
		MaxSubsteps: 8,
	}
}

func (w *World) AddBody(b *Body) {
	b.world = w
	w.bodies = append(w.bodies, b)
}

// RemoveBody detaches a body from the world. Constraints referencing
// it must be removed by the caller first.
func (w *World) RemoveBody(b *Body) {
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			b.world = nil
			return
		}
	}
}

func (w *World) AddConstraint(c Constraint) {
	w.constraints = append(w.constraints, c)
}

func (w *World) RemoveConstraint(c Constraint) {
	for i, other := range w.constraints {
		if other == c {
			w.constraints = append(w.constraints[:i], w.constraints[i+1:]...)
			return
		}
	}
}

func (w *World) Bodies() []*Body           { return w.bodies }
func (w *World) Constraints() []Constraint { return w.constraints }
func (w *World) NumBodies() int            { return len(w.bodies) }
func (w *World) NumConstraints() int       { return len(w.constraints) }

// Step advances the world by elapsed seconds, subdividing into fixed
// substeps. Leftover time is carried into the next call; the substep
// count per call is bounded, so a long stall slows the simulation
// down instead of spiraling.
func (w *World) Step(elapsed float64) {
	if elapsed < 0 {
		return
	}
	w.accum += elapsed
	for steps := 0; w.accum >= w.FixedDt && steps < w.MaxSubsteps; steps++ {
		w.substep(w.FixedDt)
		w.accum -= w.FixedDt
	}
	if w.accum >= w.FixedDt {
		// drop time we could not simulate this call
		w.accum = 0
	}
}

func (w *World) substep(dt float64) {
	for _, b := range w.bodies {
		b.integrateVelocity(w.Gravity, dt)
	}

	w.resolveContacts()

	for _, c := range w.constraints {
		c.preStep(dt)
	}
	for _, c := range w.constraints {
		c.warmStart()
	}
	for i := 0; i < w.Iterations; i++ {
		for _, c := range w.constraints {
			c.applyImpulse(dt)
		}
	}

	for _, b := range w.bodies {
		b.integratePosition(dt)
	}
}

// resolveContacts runs a bounding-sphere broad and narrow phase over
// all collidable pairs: overlapping spheres are separated in
// proportion to inverse mass and receive a normal impulse. Linked
// pairs with collision suppressed are skipped, which keeps hinge
// chains from self-locking on shape overlap at the joints.
func (w *World) resolveContacts() {
	for i := 0; i < len(w.bodies); i++ {
		for k := i + 1; k < len(w.bodies); k++ {
			a, b := w.bodies[i], w.bodies[k]
			if !w.shouldCollide(a, b) {
				continue
			}
			w.resolvePair(a, b)
		}
	}
}

func (w *World) shouldCollide(a, b *Body) bool {
	if a.invMass == 0 && b.invMass == 0 {
		return false
	}
	if a.group&b.mask == 0 || b.group&a.mask == 0 {
		return false
	}
	for _, c := range w.constraints {
		if c.CollideConnected() {
			continue
		}
		ca, cb := c.BodyA(), c.BodyB()
		if (ca == a && cb == b) || (ca == b && cb == a) {
			return false
		}
	}
	return true
}

func (w *World) resolvePair(a, b *Body) {
	delta := b.pos.Sub(a.pos)
	dist := delta.Length()
	minDist := a.radius + b.radius
	if dist >= minDist || dist == 0 {
		return
	}
	n := delta.Scale(1 / dist)

	invSum := a.invMass + b.invMass
	if invSum == 0 {
		return
	}

	// positional separation, split by inverse mass
	overlap := minDist - dist
	a.pos = a.pos.Sub(n.Scale(overlap * a.invMass / invSum))
	b.pos = b.pos.Add(n.Scale(overlap * b.invMass / invSum))

	// inelastic normal impulse on approaching pairs
	vn := b.vel.Sub(a.vel).Dot(n)
	if vn >= 0 {
		return
	}
	j := -vn / invSum
	a.vel = a.vel.Sub(n.Scale(j * a.invMass))
	b.vel = b.vel.Add(n.Scale(j * b.invMass))
}
