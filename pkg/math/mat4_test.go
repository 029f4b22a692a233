package math

import (
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	if result != m {
		t.Errorf("M * I should equal M: got %v, want %v", result, m)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in the last column (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint([3]float32{1, 2, 3})

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestRotationDegrees(t *testing.T) {
	tests := []struct {
		name string
		deg  float32
		axis Vec3
		in   Vec3
		want Vec3
	}{
		{"y90", 90, Vec3{0, 1, 0}, Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"x90", 90, Vec3{1, 0, 0}, Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"z180", 180, Vec3{0, 0, 1}, Vec3{1, 0, 0}, Vec3{-1, 0, 0}},
		{"unnormalized axis", 90, Vec3{0, 5, 0}, Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"diagonal 120", 120, Vec3{1, 1, 1}, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rotation(tt.deg, tt.axis).TransformVec3(tt.in)
			if got.Distance(tt.want) > 1e-5 {
				t.Errorf("Rotation(%v, %v) * %v = %v, want %v", tt.deg, tt.axis, tt.in, got, tt.want)
			}
		})
	}
}

func TestRotationDegenerate(t *testing.T) {
	if Rotation(0, Vec3{1, 1, 1}) != Identity() {
		t.Error("zero angle should give exact identity")
	}
	if Rotation(45, Vec3{}) != Identity() {
		t.Error("zero axis should give identity")
	}
}

// Concat appends on the right, so the scale reaches the point first.
func TestRotateConcatScaleOrder(t *testing.T) {
	p := Vec3{1, 2, 3}
	m := Identity().Rotate(90, Vec3{0, 0, 1}).Concat(Scale(2, 3, 4))

	scaled := Vec3{p.X * 2, p.Y * 3, p.Z * 4}
	manual := Rotation(90, Vec3{0, 0, 1}).TransformVec3(scaled)

	got := m.TransformVec3(p)
	if got.Distance(manual) > 1e-5 {
		t.Errorf("rotate.concat(scale) = %v, want %v", got, manual)
	}
	if got.Distance(Vec3{-6, 2, 12}) > 1e-5 {
		t.Errorf("rotate.concat(scale) = %v, want (-6, 2, 12)", got)
	}
}

func TestIncrementalMethodsMatchConstructors(t *testing.T) {
	base := Translate(1, 2, 3)

	if got, want := base.Translate(4, 5, 6), base.Mul(Translate(4, 5, 6)); got != want {
		t.Errorf("Translate method = %v, want %v", got, want)
	}
	if got, want := base.Scaled(2, 2, 2), base.Mul(Scale(2, 2, 2)); got != want {
		t.Errorf("Scaled method = %v, want %v", got, want)
	}
	if got, want := base.Rotate(30, Vec3{0, 1, 0}), base.Mul(Rotation(30, Vec3{0, 1, 0})); got != want {
		t.Errorf("Rotate method = %v, want %v", got, want)
	}
}

func TestTranspose(t *testing.T) {
	m := Mat4{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	tr := m.Transpose()
	if tr[1] != 5 || tr[4] != 2 || tr[3] != 13 || tr[12] != 4 {
		t.Errorf("Transpose: got %v", tr)
	}
	if tr.Transpose() != m {
		t.Error("Transpose twice should return the original")
	}
}

func TestInverse(t *testing.T) {
	m := Translate(1, -2, 3).Rotate(37, Vec3{1, 2, 3}).Scaled(2, 0.5, 4)
	got := m.Mul(m.Inverse())

	if !got.ApproxEqual(Identity(), 1e-5) {
		t.Errorf("M * M^-1 should be identity, got %v", got)
	}
}

func TestInverseSingular(t *testing.T) {
	if Scale(0, 1, 1).Inverse() != Identity() {
		t.Error("singular matrix inverse should fall back to identity")
	}
}

func TestInverseTransposeNonUniformScale(t *testing.T) {
	// A normal of a plane stays perpendicular to the plane after a
	// non-uniform scale only when carried by the inverse-transpose.
	m := Scale(1, 4, 1).Rotate(45, Vec3{0, 0, 1})
	tangent := m.TransformDirection(Vec3{1, -1, 0})
	normal := m.InverseTranspose().TransformDirection(Vec3{1, 1, 0})

	if d := tangent.Dot(normal); abs(d) > 1e-5 {
		t.Errorf("transformed normal not perpendicular: dot = %v", d)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(70, 1, 1, 20)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}

	// Points on the near and far planes map to NDC depth -1 and 1.
	near := m.TransformPoint([3]float32{0, 0, -1})
	far := m.TransformPoint([3]float32{0, 0, -20})
	if abs(near[2]+1) > 1e-5 || abs(far[2]-1) > 1e-4 {
		t.Errorf("Perspective depth: near %v far %v", near[2], far[2])
	}
}

func TestOrtho(t *testing.T) {
	m := Ortho(-2, 2, -2, 2, 1, 20)

	p := m.TransformPoint([3]float32{2, -2, -1})
	if abs(p[0]-1) > 1e-6 || abs(p[1]+1) > 1e-6 || abs(p[2]+1) > 1e-6 {
		t.Errorf("Ortho corner: got %v, want (1, -1, -1)", p)
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	m := LookAt(eye, Vec3{0, 0, 0}, Vec3{0, 1, 0})

	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}
	// The eye sits at the view-space origin and the target straight ahead on -Z.
	if got := m.TransformVec3(eye); got.Length() > 1e-5 {
		t.Errorf("eye in view space = %v, want origin", got)
	}
	if got := m.TransformVec3(Vec3{0, 0, 0}); got.Distance(Vec3{0, 0, -5}) > 1e-5 {
		t.Errorf("target in view space = %v, want (0, 0, -5)", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
