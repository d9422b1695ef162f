package gamemath

import "github.com/go-gl/mathgl/mgl32"

// HomingVelocity returns a velocity of the given speed pointing from pos
// toward target. It is zero when the two coincide.
func HomingVelocity(pos, target mgl32.Vec3, speed float32) mgl32.Vec3 {
	dir := target.Sub(pos)
	dist := dir.Len()
	if dist == 0 {
		return mgl32.Vec3{}
	}
	return dir.Mul(speed / dist)
}

// ArrivalSpeed scales maxSpeed down linearly once within slowRadius of the
// target so the approach settles instead of overshooting.
func ArrivalSpeed(distance, slowRadius, maxSpeed float32) float32 {
	if slowRadius <= 0 || distance >= slowRadius {
		return maxSpeed
	}
	return maxSpeed * distance / slowRadius
}
