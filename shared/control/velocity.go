// Package control turns pilot input and observed motion into thruster firing
// strengths. Everything here is a pure function of its arguments so that every
// peer computes the same result from the same replicated state.
package control

import (
	"github.com/automoto/thrustcraft-mp/shared/gamemath"
	"github.com/automoto/thrustcraft-mp/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
)

// Increments holds the per-tick step a held action adds to its axis.
type Increments = gamemath.Axes6

// DefaultIncrements adds one unit per held action on every axis.
func DefaultIncrements() Increments {
	return Increments{Forward: 1, Right: 1, Upward: 1, TurnRight: 1, TiltUp: 1, RollRight: 1}
}

// ExtractActual maps a body's world-space velocities onto the ship axes.
// Both vectors are rotated into ship-local space first.
func ExtractActual(rotation mgl32.Quat, linear, angular mgl32.Vec3) gamemath.ActualVelocity {
	inv := gamemath.Transform{Rotation: rotation}.Rot().Inverse()
	lin := inv.Rotate(linear)
	ang := inv.Rotate(angular)

	return gamemath.ActualVelocity{
		Forward:   -lin.Z(),
		Right:     lin.X(),
		Upward:    lin.Y(),
		TurnRight: ang.Y(),
		TiltUp:    -ang.X(),
		RollRight: ang.Z(),
	}
}

// BuildIntended sums the increments of every held action. It is rebuilt from
// scratch each tick; nothing carries over between ticks.
func BuildIntended(actions netconfig.ActionSet, steps Increments) gamemath.IntendedVelocity {
	var v gamemath.IntendedVelocity
	if actions.Has(netconfig.ActionThrustForward) {
		v.Forward += steps.Forward
	}
	if actions.Has(netconfig.ActionThrustBackward) {
		v.Forward -= steps.Forward
	}
	if actions.Has(netconfig.ActionStrafeRight) {
		v.Right += steps.Right
	}
	if actions.Has(netconfig.ActionStrafeLeft) {
		v.Right -= steps.Right
	}
	if actions.Has(netconfig.ActionRise) {
		v.Upward += steps.Upward
	}
	if actions.Has(netconfig.ActionSink) {
		v.Upward -= steps.Upward
	}
	if actions.Has(netconfig.ActionYawRight) {
		v.TurnRight += steps.TurnRight
	}
	if actions.Has(netconfig.ActionYawLeft) {
		v.TurnRight -= steps.TurnRight
	}
	if actions.Has(netconfig.ActionPitchUp) {
		v.TiltUp += steps.TiltUp
	}
	if actions.Has(netconfig.ActionPitchDown) {
		v.TiltUp -= steps.TiltUp
	}
	if actions.Has(netconfig.ActionRollRight) {
		v.RollRight += steps.RollRight
	}
	if actions.Has(netconfig.ActionRollLeft) {
		v.RollRight -= steps.RollRight
	}
	return v
}
