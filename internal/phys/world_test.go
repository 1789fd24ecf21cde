package phys

import (
	"math"
	"testing"
)

// stepFor advances the world in whole substeps for roughly the given
// duration.
func stepFor(w *World, seconds float64) {
	n := int(seconds / w.FixedDt)
	for i := 0; i < n; i++ {
		w.Step(w.FixedDt)
	}
}

func TestFreeFall(t *testing.T) {
	w := NewWorld()
	b := NewBody(1)
	b.AddBox(Vec3{0.1, 0.1, 0.1}, Vec3{})
	b.SetPosition(Vec3{0, 10, 0})
	w.AddBody(b)

	stepFor(w, 1.0)

	// y ≈ 10 - g/2 after one second
	want := 10 - 9.82/2
	if math.Abs(b.Position().Y-want) > 0.2 {
		t.Errorf("free fall y = %v, want ≈ %v", b.Position().Y, want)
	}
}

func TestStaticAndKinematicIgnoreGravity(t *testing.T) {
	w := NewWorld()
	s := NewStaticBody()
	s.AddBox(Vec3{1, 1, 1}, Vec3{})
	k := NewKinematicBody()
	k.SetPosition(Vec3{5, 5, 5})
	w.AddBody(s)
	w.AddBody(k)

	stepFor(w, 0.5)

	if s.Position() != (Vec3{}) {
		t.Errorf("static body moved to %v", s.Position())
	}
	if k.Position() != (Vec3{5, 5, 5}) {
		t.Errorf("kinematic body moved to %v", k.Position())
	}
}

func TestHingeHoldsAnchorsTogether(t *testing.T) {
	w := NewWorld()

	root := NewStaticBody()
	w.AddBody(root)

	bob := NewBody(1)
	bob.AddBox(Vec3{0.1, 0.1, 0.1}, Vec3{})
	bob.SetPosition(Vec3{0, -1, 0})
	w.AddBody(bob)

	j := NewHingeJoint(root, bob, Vec3{}, Vec3{0, 1, 0}, Vec3{0, 0, 1}, Vec3{0, 0, 1}, -math.Pi, math.Pi)
	j.SetCollideConnected(false)
	w.AddConstraint(j)

	stepFor(w, 2.0)

	if sep := j.Separation(); sep > 0.05 {
		t.Errorf("anchor separation %v after settling, want < 0.05", sep)
	}
	if !bob.Position().IsValid() {
		t.Fatal("body position diverged")
	}
}

func TestHingeLimitClampsAngle(t *testing.T) {
	w := NewWorld()

	root := NewStaticBody()
	w.AddBody(root)

	// start horizontal so gravity drives the hinge toward its limit
	arm := NewBody(1)
	arm.AddBox(Vec3{0.5, 0.05, 0.05}, Vec3{})
	arm.SetPosition(Vec3{1, 0, 0})
	arm.SetDamping(0, 0.8)
	w.AddBody(arm)

	limit := 0.3
	j := NewHingeJoint(root, arm, Vec3{}, Vec3{-1, 0, 0}, Vec3{0, 0, 1}, Vec3{0, 0, 1}, -limit, limit)
	j.SetCollideConnected(false)
	w.AddConstraint(j)

	stepFor(w, 3.0)

	if a := math.Abs(j.Angle()); a > limit+0.2 {
		t.Errorf("hinge angle %v exceeded limit %v by more than tolerance", a, limit)
	}
}

func TestPointConstraintPullsTowardAnchor(t *testing.T) {
	w := NewWorld()
	w.Gravity = Vec3{}

	anchor := NewKinematicBody()
	anchor.SetPosition(Vec3{0, 2, 0})
	w.AddBody(anchor)

	b := NewBody(1)
	b.AddBox(Vec3{0.2, 0.2, 0.2}, Vec3{})
	w.AddBody(b)

	c := NewPointConstraint(anchor, b, Vec3{}, Vec3{})
	c.SetMaxForce(1e5)
	w.AddConstraint(c)

	before := b.Position().Sub(anchor.Position()).Length()
	stepFor(w, 1.0)
	after := b.Position().Sub(anchor.Position()).Length()

	if after >= before {
		t.Errorf("distance to anchor did not shrink: %v -> %v", before, after)
	}
	if after > 0.5 {
		t.Errorf("body still %v from anchor after 1s", after)
	}
}

func TestContactSeparatesOverlap(t *testing.T) {
	w := NewWorld()
	w.Gravity = Vec3{}

	a := NewBody(1)
	a.AddBox(Vec3{0.5, 0.5, 0.5}, Vec3{})
	b := NewBody(1)
	b.AddBox(Vec3{0.5, 0.5, 0.5}, Vec3{})
	b.SetPosition(Vec3{0.2, 0, 0})
	w.AddBody(a)
	w.AddBody(b)

	stepFor(w, 0.1)

	dist := b.Position().Sub(a.Position()).Length()
	if dist <= 0.2 {
		t.Errorf("overlapping bodies were not separated, dist = %v", dist)
	}
}

func TestCollisionFilterSuppressesContact(t *testing.T) {
	w := NewWorld()
	w.Gravity = Vec3{}

	a := NewBody(1)
	a.AddBox(Vec3{0.5, 0.5, 0.5}, Vec3{})
	a.SetCollisionFilter(0, 0)
	b := NewBody(1)
	b.AddBox(Vec3{0.5, 0.5, 0.5}, Vec3{})
	b.SetPosition(Vec3{0.2, 0, 0})
	w.AddBody(a)
	w.AddBody(b)

	stepFor(w, 0.1)

	if got := b.Position(); got != (Vec3{0.2, 0, 0}) {
		t.Errorf("filtered pair still collided, b moved to %v", got)
	}
}

func TestLinkedPairContactSuppressed(t *testing.T) {
	w := NewWorld()
	w.Gravity = Vec3{}

	a := NewBody(1)
	a.AddBox(Vec3{0.5, 0.5, 0.5}, Vec3{})
	b := NewBody(1)
	b.AddBox(Vec3{0.5, 0.5, 0.5}, Vec3{})
	b.SetPosition(Vec3{0.4, 0, 0})
	w.AddBody(a)
	w.AddBody(b)

	j := NewHingeJoint(a, b, Vec3{0.2, 0, 0}, Vec3{-0.2, 0, 0}, Vec3{0, 0, 1}, Vec3{0, 0, 1}, -1, 1)
	j.SetCollideConnected(false)
	w.AddConstraint(j)

	if w.shouldCollide(a, b) {
		t.Error("linked pair with collision disabled should not collide")
	}
	j.SetCollideConnected(true)
	if !w.shouldCollide(a, b) {
		t.Error("linked pair with collision enabled should collide")
	}
}

func TestRemoveBodyAndConstraint(t *testing.T) {
	w := NewWorld()
	a := NewBody(1)
	a.AddBox(Vec3{0.1, 0.1, 0.1}, Vec3{})
	b := NewBody(1)
	b.AddBox(Vec3{0.1, 0.1, 0.1}, Vec3{})
	w.AddBody(a)
	w.AddBody(b)
	c := NewPointConstraint(a, b, Vec3{}, Vec3{})
	w.AddConstraint(c)

	w.RemoveConstraint(c)
	w.RemoveBody(a)
	w.RemoveBody(b)

	if w.NumBodies() != 0 || w.NumConstraints() != 0 {
		t.Errorf("world not empty: %d bodies, %d constraints", w.NumBodies(), w.NumConstraints())
	}

	// removing twice is a no-op
	w.RemoveConstraint(c)
	w.RemoveBody(a)
}

func TestStepAccumulatesPartialFrames(t *testing.T) {
	w := NewWorld()
	b := NewBody(1)
	b.AddBox(Vec3{0.1, 0.1, 0.1}, Vec3{})
	w.AddBody(b)

	// half a substep twice should run exactly one substep
	w.Step(w.FixedDt / 2)
	if b.Velocity().Y != 0 {
		t.Fatal("substep ran early")
	}
	w.Step(w.FixedDt / 2)
	if b.Velocity().Y == 0 {
		t.Fatal("accumulated substep did not run")
	}
}
