package gamemath

import "github.com/go-gl/mathgl/mgl32"

// Canonical ship axes in the ship's local frame. Linear axes project the
// force, angular axes project the torque.
var (
	AxisForward   = mgl32.Vec3{0, 0, -1}
	AxisRight     = mgl32.Vec3{1, 0, 0}
	AxisUpward    = mgl32.Vec3{0, 1, 0}
	AxisTurnRight = mgl32.Vec3{0, -1, 0}
	AxisTiltUp    = mgl32.Vec3{1, 0, 0}
	AxisRollRight = mgl32.Vec3{0, 0, 1}
)

// degenerateEpsilon is the magnitude below which a force or torque is
// treated as zero before normalizing. Quaternion round-off leaves residue
// around 1e-7 on vectors that should be exactly parallel.
const degenerateEpsilon = 1e-5

// ForceAtPoint applies force at point on a body whose centre of mass is com
// and returns the resulting linear force and torque.
func ForceAtPoint(force, point, com mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	return force, point.Sub(com).Cross(force)
}

// NormalizeOrZero returns v scaled to unit length, or the zero vector when v
// is too small to have a meaningful direction.
func NormalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < degenerateEpsilon {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// ComputeForceAxis derives the six-axis effectiveness of a thruster mounted
// at thruster (relative to the ship body) on a ship whose centre of mass is
// com. The thruster pushes along its Forward direction.
func ComputeForceAxis(thruster Transform, com mgl32.Vec3) ForceAxis {
	force, torque := ForceAtPoint(thruster.Forward(), thruster.Translation, com)
	f := NormalizeOrZero(force)
	t := NormalizeOrZero(torque)

	return ForceAxis{
		Forward:   f.Dot(AxisForward),
		Right:     f.Dot(AxisRight),
		Upward:    f.Dot(AxisUpward),
		TurnRight: t.Dot(AxisTurnRight),
		TiltUp:    t.Dot(AxisTiltUp),
		RollRight: t.Dot(AxisRollRight),
	}.Clamp(-1, 1)
}
