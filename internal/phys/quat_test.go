package phys

import (
	"math"
	"testing"
)

func vecNear(t *testing.T, got, want Vec3, tol float64) {
	t.Helper()
	if got.Sub(want).Length() > tol {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestQuatRotate(t *testing.T) {
	tests := []struct {
		name  string
		axis  Vec3
		angle float64
		in    Vec3
		want  Vec3
	}{
		{"quarter turn about Z", Vec3{0, 0, 1}, math.Pi / 2, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"half turn about Y", Vec3{0, 1, 0}, math.Pi, Vec3{1, 0, 0}, Vec3{-1, 0, 0}},
		{"identity", Vec3{0, 0, 1}, 0, Vec3{1, 2, 3}, Vec3{1, 2, 3}},
		{"axis-parallel unchanged", Vec3{0, 0, 1}, 1.3, Vec3{0, 0, 2}, Vec3{0, 0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatFromAxisAngle(tt.axis, tt.angle)
			vecNear(t, q.Rotate(tt.in), tt.want, 1e-12)
		})
	}
}

func TestQuatConjugateInverts(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}.Normalize(), 0.7)
	v := Vec3{0.3, -1.2, 2.5}
	back := q.Conjugate().Rotate(q.Rotate(v))
	vecNear(t, back, v, 1e-12)
}

func TestQuatIntegrate(t *testing.T) {
	// constant angular velocity about Z for one second should rotate
	// by that many radians
	q := QuatIdentity()
	w := Vec3{0, 0, 1.0}
	dt := 1.0 / 1000
	for i := 0; i < 1000; i++ {
		q = q.Integrate(w, dt)
	}
	got := q.Rotate(Vec3{1, 0, 0})
	want := Vec3{math.Cos(1.0), math.Sin(1.0), 0}
	vecNear(t, got, want, 1e-3)
}

func TestMat3Inverse(t *testing.T) {
	m := Mat3{M: [3][3]float64{
		{2, 0, 1},
		{1, 3, 0},
		{0, 1, 4},
	}}
	id := m.Mul(m.Inverse())
	want := Mat3Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(id.M[i][j]-want.M[i][j]) > 1e-12 {
				t.Fatalf("M*M^-1 not identity at (%d,%d): %v", i, j, id.M[i][j])
			}
		}
	}
}

func TestMat3InverseSingular(t *testing.T) {
	var zero Mat3
	if got := zero.Inverse(); got != (Mat3{}) {
		t.Errorf("singular inverse should be zero matrix, got %v", got)
	}
}

func TestMat3Skew(t *testing.T) {
	v := Vec3{1, 2, 3}
	u := Vec3{-4, 5, 0.5}
	vecNear(t, Mat3Skew(v).MulVec(u), v.Cross(u), 1e-12)
}
