package control

import (
	"github.com/automoto/thrustcraft-mp/shared/gamemath"
)

// ThrusterID is the stable block identifier of a thruster within its ship.
type ThrusterID uint32

// DefaultDeadzone is the similarity below which a thruster stays off, so
// thrusters do not flicker around equilibrium.
const DefaultDeadzone float32 = 0.1

// Allocator picks per-thruster firing strengths by comparing each thruster's
// force axis with the velocity error.
//
// The heuristic does not stop opposing thrusters from fighting each other and
// does not minimise total thrust; it only ranks thrusters by how well they
// point along the error.
type Allocator struct {
	Deadzone float32
}

// DefaultAllocator uses DefaultDeadzone.
var DefaultAllocator = Allocator{Deadzone: DefaultDeadzone}

// Compute returns a strength in [-1, 1] per thruster. Identical inputs always
// yield identical output.
func (a Allocator) Compute(axes map[ThrusterID]gamemath.ForceAxis, intended gamemath.IntendedVelocity, actual gamemath.ActualVelocity) map[ThrusterID]float32 {
	delta := intended.Sub(actual)
	out := make(map[ThrusterID]float32, len(axes))
	for id, axis := range axes {
		out[id] = gamemath.ApplyDeadzone(gamemath.Similarity(axis, delta), a.Deadzone)
	}
	return out
}

// ComputeStrengths runs DefaultAllocator.
func ComputeStrengths(axes map[ThrusterID]gamemath.ForceAxis, intended gamemath.IntendedVelocity, actual gamemath.ActualVelocity) map[ThrusterID]float32 {
	return DefaultAllocator.Compute(axes, intended, actual)
}

// ClampForCapability limits a strength to what the thruster can produce:
// reversible thrusters accept [-1, 1], one-way thrusters [0, 1].
func ClampForCapability(strength float32, reversible bool) float32 {
	if reversible {
		return gamemath.ClampUnit(strength)
	}
	return gamemath.ClampRange(strength, 0, 1)
}
