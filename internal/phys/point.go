package phys

// PointConstraint pins a local anchor on each body to the same world
// position. With a finite max force it behaves like a soft pick-up
// joint: the solver pulls the bodies together without teleporting
// them.
type PointConstraint struct {
	pointPart
}

// NewPointConstraint couples localA on a to localB on b.
func NewPointConstraint(a, b *Body, localA, localB Vec3) *PointConstraint {
	return &PointConstraint{pointPart{
		a: a, b: b,
		localA: localA, localB: localB,
		maxForce:  Infinity,
		errorBias: defaultErrorBias(),
	}}
}

func (c *PointConstraint) BodyA() *Body           { return c.a }
func (c *PointConstraint) BodyB() *Body           { return c.b }
func (c *PointConstraint) CollideConnected() bool { return false }

// SetMaxForce bounds the total impulse per second the constraint may
// apply.
func (c *PointConstraint) SetMaxForce(f float64) { c.maxForce = f }

// SetErrorBias sets the positional error retention factor per second;
// lower values correct error faster.
func (c *PointConstraint) SetErrorBias(bias float64) { c.errorBias = bias }

// Separation returns the world distance between the two anchors.
func (c *PointConstraint) Separation() float64 { return c.anchorSeparation() }
