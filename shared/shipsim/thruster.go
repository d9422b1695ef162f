package shipsim

import (
	"github.com/automoto/thrustcraft-mp/shared/control"
	"github.com/automoto/thrustcraft-mp/shared/gamemath"
)

// Thruster is a force-emitting child of a ship. Status is the last strength
// the allocator assigned; it is in [-1, 1] for reversible thrusters and
// [0, 1] otherwise.
type Thruster struct {
	BlockID control.ThrusterID
	// StrengthFactor is the force produced at full status.
	StrengthFactor float32
	Reversible     bool
	Status         float32
}

// ApplyStrength stores s, clamped to what the thruster can produce.
func (t *Thruster) ApplyStrength(s float32) {
	t.Status = control.ClampForCapability(s, t.Reversible)
}

// Active drives visual feedback only.
func (t *Thruster) Active() bool {
	return t.Status != 0
}

// Thrust is the force the thruster emits in its own frame.
func (t *Thruster) Thrust() InternalForce {
	return InternalForce{
		Force: gamemath.AxisForward.Mul(t.StrengthFactor * t.Status),
		Frame: FrameLocal,
	}
}

// ApplyThrusterForces turns each thruster's status into its InternalForce.
func ApplyThrusterForces(w *World) {
	w.Each(func(e *Entity) {
		if e.Thruster == nil {
			return
		}
		f := e.Thruster.Thrust()
		e.InternalForce = &f
	})
}
