package phys

import "math"

// Infinity is the default force limit for constraints.
var Infinity = math.Inf(1)

// Constraint couples two bodies. The solver drives the closed set of
// implementations in this package (HingeJoint, PointConstraint).
type Constraint interface {
	BodyA() *Body
	BodyB() *Body
	// CollideConnected reports whether the two bodies should still
	// generate contacts against each other.
	CollideConnected() bool

	preStep(dt float64)
	warmStart()
	applyImpulse(dt float64)
}

func defaultErrorBias() float64 { return math.Pow(1.0-0.1, 60.0) }

// biasCoef converts a per-frame error retention factor into the
// fraction of positional error corrected over dt.
func biasCoef(errorBias, dt float64) float64 {
	return 1.0 - math.Pow(errorBias, dt)
}

// pointPart is the ball-socket portion shared by HingeJoint and
// PointConstraint: it holds two local anchors coincident in world
// space using a 3x3 effective-mass impulse with velocity bias.
type pointPart struct {
	a, b           *Body
	localA, localB Vec3

	maxForce  float64
	errorBias float64

	rA, rB  Vec3
	effMass Mat3
	bias    Vec3
	jAcc    Vec3
}

func (p *pointPart) preStep(dt float64) {
	p.rA = p.a.rot.Rotate(p.localA)
	p.rB = p.b.rot.Rotate(p.localB)

	// K = (1/ma + 1/mb) I - skew(rA) Ia^-1 skew(rA) - skew(rB) Ib^-1 skew(rB)
	k := Mat3Identity().Scale(p.a.invMass + p.b.invMass)
	sa := Mat3Skew(p.rA)
	sb := Mat3Skew(p.rB)
	k = k.Add(sa.Mul(p.a.invInertiaWorld()).Mul(sa).Scale(-1))
	k = k.Add(sb.Mul(p.b.invInertiaWorld()).Mul(sb).Scale(-1))
	p.effMass = k.Inverse()

	delta := p.b.pos.Add(p.rB).Sub(p.a.pos.Add(p.rA))
	p.bias = delta.Scale(-biasCoef(p.errorBias, dt) / dt)
}

func (p *pointPart) warmStart() {
	p.a.applyImpulse(p.jAcc.Neg(), p.a.pos.Add(p.rA))
	p.b.applyImpulse(p.jAcc, p.b.pos.Add(p.rB))
}

func (p *pointPart) applyImpulse(dt float64) {
	vr := p.b.VelocityAt(p.b.pos.Add(p.rB)).Sub(p.a.VelocityAt(p.a.pos.Add(p.rA)))
	j := p.effMass.MulVec(p.bias.Sub(vr))

	jOld := p.jAcc
	p.jAcc = p.jAcc.Add(j).ClampLength(p.maxForce * dt)
	j = p.jAcc.Sub(jOld)

	p.a.applyImpulse(j.Neg(), p.a.pos.Add(p.rA))
	p.b.applyImpulse(j, p.b.pos.Add(p.rB))
}

// anchorSeparation returns the current world distance between the two
// anchors, useful for tests and diagnostics.
func (p *pointPart) anchorSeparation() float64 {
	return p.b.WorldPoint(p.localB).Sub(p.a.WorldPoint(p.localA)).Length()
}
