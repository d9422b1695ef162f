package gamemath

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const vecTolerance = 1e-4

func assertVec(t *testing.T, want, got mgl32.Vec3, msgAndArgs ...any) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], vecTolerance, msgAndArgs...)
	}
}

func assertQuat(t *testing.T, want, got mgl32.Quat) {
	t.Helper()
	assert.InDelta(t, want.W, got.W, vecTolerance, "w")
	assertVec(t, want.V, got.V, "v")
}

func TestFacingTransform(t *testing.T) {
	tests := []struct {
		name        string
		facing      mgl32.Vec3
		wantForward mgl32.Vec3
	}{
		{"backward nozzle", mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, -1}},
		{"forward nozzle", mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 0, 1}},
		{"right nozzle", mgl32.Vec3{1, 0, 0}, mgl32.Vec3{-1, 0, 0}},
		{"down nozzle", mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 1, 0}},
		{"zero facing", mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := FacingTransform(mgl32.Vec3{}, tt.facing)
			assertVec(t, tt.wantForward, tr.Forward(), "forward = %v, want %v", tr.Forward(), tt.wantForward)
		})
	}
}

func TestTransform_MulAndInverse(t *testing.T) {
	parent := NewTransform(mgl32.Vec3{10, 0, -4}, mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}))
	child := NewTransform(mgl32.Vec3{0, 0, 1}, mgl32.QuatIdent())

	world := parent.Mul(child)
	assertVec(t, mgl32.Vec3{11, 0, -4}, world.Translation)

	back := parent.Inverse().Mul(world)
	assertVec(t, child.Translation, back.Translation)
	assertQuat(t, mgl32.QuatIdent(), back.Rot())
}

func TestTransform_Apply(t *testing.T) {
	tr := IdentityTransform()
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, tr.Apply(mgl32.Vec3{1, 2, 3}))
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, tr.Forward())
}
