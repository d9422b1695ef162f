package control

import (
	"testing"

	"github.com/automoto/thrustcraft-mp/shared/gamemath"
	"github.com/automoto/thrustcraft-mp/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestExtractActual_IdentityRotation(t *testing.T) {
	got := ExtractActual(mgl32.QuatIdent(), mgl32.Vec3{1, 2, -3}, mgl32.Vec3{0.5, 0.25, -0.75})

	assert.Equal(t, gamemath.ActualVelocity{
		Forward:   3,
		Right:     1,
		Upward:    2,
		TurnRight: 0.25,
		TiltUp:    -0.5,
		RollRight: -0.75,
	}, got)
}

func TestExtractActual_RotatedShip(t *testing.T) {
	// Ship yawed 90 degrees left: its nose points along world -X.
	rot := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	nose := rot.Rotate(mgl32.Vec3{0, 0, -1})

	got := ExtractActual(rot, nose.Mul(5), mgl32.Vec3{})

	assert.InDelta(t, 5.0, got.Forward, 1e-4)
	assert.InDelta(t, 0.0, got.Right, 1e-4)
	assert.InDelta(t, 0.0, got.Upward, 1e-4)
}

func TestExtractActual_ZeroQuaternion(t *testing.T) {
	got := ExtractActual(mgl32.Quat{}, mgl32.Vec3{0, 0, -2}, mgl32.Vec3{})

	assert.InDelta(t, 2.0, got.Forward, 1e-6)
}

func TestBuildIntended(t *testing.T) {
	tests := []struct {
		name    string
		actions netconfig.ActionSet
		want    gamemath.IntendedVelocity
	}{
		{"idle", 0, gamemath.IntendedVelocity{}},
		{"forward", netconfig.NewActionSet(netconfig.ActionThrustForward), gamemath.IntendedVelocity{Forward: 1}},
		{"opposites cancel", netconfig.NewActionSet(netconfig.ActionYawLeft, netconfig.ActionYawRight), gamemath.IntendedVelocity{}},
		{
			"mixed",
			netconfig.NewActionSet(netconfig.ActionThrustBackward, netconfig.ActionStrafeLeft, netconfig.ActionRise,
				netconfig.ActionYawRight, netconfig.ActionPitchDown, netconfig.ActionRollLeft),
			gamemath.IntendedVelocity{Forward: -1, Right: -1, Upward: 1, TurnRight: 1, TiltUp: -1, RollRight: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildIntended(tt.actions, DefaultIncrements()))
		})
	}
}

func TestBuildIntended_UsesIncrements(t *testing.T) {
	steps := DefaultIncrements()
	steps.Forward = 2.5

	got := BuildIntended(netconfig.NewActionSet(netconfig.ActionThrustForward, netconfig.ActionSink), steps)

	assert.Equal(t, gamemath.IntendedVelocity{Forward: 2.5, Upward: -1}, got)
}
