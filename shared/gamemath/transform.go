package gamemath

import "github.com/go-gl/mathgl/mgl32"

// Transform is a rigid placement: a translation plus a rotation.
// The zero value is treated as the identity rotation.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
}

// IdentityTransform returns a transform that leaves points unchanged.
func IdentityTransform() Transform {
	return Transform{Rotation: mgl32.QuatIdent()}
}

// NewTransform builds a transform from a translation and rotation.
func NewTransform(translation mgl32.Vec3, rotation mgl32.Quat) Transform {
	return Transform{Translation: translation, Rotation: rotation}
}

// FacingTransform places an object at translation with its local +Z axis
// pointing along facing. A zero facing keeps the identity rotation.
func FacingTransform(translation, facing mgl32.Vec3) Transform {
	if facing.Len() == 0 {
		return Transform{Translation: translation, Rotation: mgl32.QuatIdent()}
	}
	rot := mgl32.QuatBetweenVectors(mgl32.Vec3{0, 0, 1}, facing.Normalize())
	return Transform{Translation: translation, Rotation: rot.Normalize()}
}

// Rot returns the rotation, substituting identity for the zero quaternion.
func (t Transform) Rot() mgl32.Quat {
	if t.Rotation.W == 0 && t.Rotation.V == (mgl32.Vec3{}) {
		return mgl32.QuatIdent()
	}
	return t.Rotation
}

// Forward is the local -Z axis expressed in the parent frame.
func (t Transform) Forward() mgl32.Vec3 {
	return t.Rot().Rotate(mgl32.Vec3{0, 0, -1})
}

// Apply maps a point from local space into the parent frame.
func (t Transform) Apply(p mgl32.Vec3) mgl32.Vec3 {
	return t.Translation.Add(t.Rot().Rotate(p))
}

// ApplyVector rotates a direction from local space into the parent frame.
func (t Transform) ApplyVector(v mgl32.Vec3) mgl32.Vec3 {
	return t.Rot().Rotate(v)
}

// Mul composes t with a child transform expressed in t's local space.
func (t Transform) Mul(child Transform) Transform {
	return Transform{
		Translation: t.Apply(child.Translation),
		Rotation:    t.Rot().Mul(child.Rot()).Normalize(),
	}
}

// Inverse returns the transform that undoes t.
func (t Transform) Inverse() Transform {
	inv := t.Rot().Inverse()
	return Transform{
		Translation: inv.Rotate(t.Translation.Mul(-1)),
		Rotation:    inv,
	}
}
