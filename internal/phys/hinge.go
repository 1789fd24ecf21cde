package phys

import "math"

// HingeJoint constrains two bodies to rotate relative to each other
// about a single shared axis, within a bounded angle range. It is
// solved as a ball-socket point coupling plus an axis-alignment
// correction plus a rotary limit, in the manner of a pivot joint
// stacked with a rotary limit joint.
type HingeJoint struct {
	pointPart

	axisA, axisB Vec3 // local hinge axis in each body frame
	min, max     float64

	collide bool

	// initial relative orientation, for twist measurement
	rest Quat

	// alignment solver state
	t1, t2       Vec3
	invK1, invK2 float64
	bias1, bias2 float64
	jAcc1, jAcc2 float64

	// limit solver state
	worldAxis Vec3
	iSum      float64
	limitBias float64
	jAccLimit float64
}

// NewHingeJoint builds a hinge between a and b. localA/localB are the
// anchor offsets relative to each body's center of mass, axisA/axisB
// the hinge axis in each body frame (unit length). min and max bound
// the relative rotation angle in radians.
func NewHingeJoint(a, b *Body, localA, localB, axisA, axisB Vec3, min, max float64) *HingeJoint {
	return &HingeJoint{
		pointPart: pointPart{
			a: a, b: b,
			localA: localA, localB: localB,
			maxForce:  Infinity,
			errorBias: defaultErrorBias(),
		},
		axisA:   axisA.Normalize(),
		axisB:   axisB.Normalize(),
		min:     min,
		max:     max,
		collide: true,
		rest:    a.rot.Conjugate().Mul(b.rot).Normalize(),
	}
}

func (j *HingeJoint) BodyA() *Body           { return j.a }
func (j *HingeJoint) BodyB() *Body           { return j.b }
func (j *HingeJoint) CollideConnected() bool { return j.collide }

// SetCollideConnected controls whether contacts are generated between
// the two linked bodies.
func (j *HingeJoint) SetCollideConnected(collide bool) { j.collide = collide }

// Angle returns the current relative rotation about the hinge axis.
func (j *HingeJoint) Angle() float64 {
	d := j.rest.Conjugate().Mul(j.a.rot.Conjugate().Mul(j.b.rot)).Normalize()
	if d.W < 0 {
		d = Quat{-d.W, -d.X, -d.Y, -d.Z}
	}
	proj := Vec3{d.X, d.Y, d.Z}.Dot(j.axisA)
	return 2 * math.Atan2(proj, d.W)
}

// Separation returns the world distance between the two anchors.
func (j *HingeJoint) Separation() float64 { return j.anchorSeparation() }

func (j *HingeJoint) preStep(dt float64) {
	j.pointPart.preStep(dt)

	kSum := j.a.invInertiaWorld().Add(j.b.invInertiaWorld())
	coef := biasCoef(j.errorBias, dt) / dt

	// alignment: kill relative rotation perpendicular to the axis
	j.worldAxis = j.a.rot.Rotate(j.axisA)
	wB := j.b.rot.Rotate(j.axisB)
	j.t1, j.t2 = perpBasis(j.worldAxis)
	j.invK1 = safeInv(j.t1.Dot(kSum.MulVec(j.t1)))
	j.invK2 = safeInv(j.t2.Dot(kSum.MulVec(j.t2)))
	j.bias1 = -coef * j.t1.Dot(wB)
	j.bias2 = -coef * j.t2.Dot(wB)

	// rotary limit
	angle := j.Angle()
	pdist := 0.0
	if angle > j.max {
		pdist = j.max - angle
	} else if angle < j.min {
		pdist = j.min - angle
	}
	j.iSum = safeInv(j.worldAxis.Dot(kSum.MulVec(j.worldAxis)))
	j.limitBias = -coef * pdist
	if j.limitBias == 0 {
		j.jAccLimit = 0
	}
}

func (j *HingeJoint) warmStart() {
	j.pointPart.warmStart()
	ang := j.t1.Scale(j.jAcc1).Add(j.t2.Scale(j.jAcc2)).Add(j.worldAxis.Scale(j.jAccLimit))
	j.a.applyAngularImpulse(ang.Neg())
	j.b.applyAngularImpulse(ang)
}

func (j *HingeJoint) applyImpulse(dt float64) {
	j.pointPart.applyImpulse(dt)

	wRel := j.b.angVel.Sub(j.a.angVel)

	// alignment impulses
	j1 := (j.bias1 - j.t1.Dot(wRel)) * j.invK1
	j2 := (j.bias2 - j.t2.Dot(wRel)) * j.invK2
	j.jAcc1 += j1
	j.jAcc2 += j2
	ang := j.t1.Scale(j1).Add(j.t2.Scale(j2))
	j.a.applyAngularImpulse(ang.Neg())
	j.b.applyAngularImpulse(ang)

	// limit impulse, one-sided
	if j.limitBias != 0 {
		wr := j.worldAxis.Dot(j.b.angVel.Sub(j.a.angVel))
		jMax := j.maxForce * dt
		jl := -(j.limitBias + wr) * j.iSum
		jOld := j.jAccLimit
		if j.limitBias < 0 {
			j.jAccLimit = Clamp(jOld+jl, 0, jMax)
		} else {
			j.jAccLimit = Clamp(jOld+jl, -jMax, 0)
		}
		jl = j.jAccLimit - jOld
		j.a.applyAngularImpulse(j.worldAxis.Scale(-jl))
		j.b.applyAngularImpulse(j.worldAxis.Scale(jl))
	}
}

// perpBasis returns two unit vectors orthogonal to n and each other.
func perpBasis(n Vec3) (Vec3, Vec3) {
	ref := Vec3{1, 0, 0}
	if math.Abs(n.X) > 0.9 {
		ref = Vec3{0, 1, 0}
	}
	t1 := n.Cross(ref).Normalize()
	return t1, n.Cross(t1)
}
