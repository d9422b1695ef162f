package shipsim

import (
	"github.com/automoto/thrustcraft-mp/shared/gamemath"
	"github.com/go-gl/mathgl/mgl32"
)

// Integrator advances rigid bodies by dt using their accumulated forces.
type Integrator interface {
	Integrate(w *World, dt float32)
}

// EulerIntegrator is a semi-implicit Euler step with linear damping and speed
// caps. It has no collision response. A zero cap disables it.
type EulerIntegrator struct {
	LinearDamping   float32
	AngularDamping  float32
	MaxLinearSpeed  float32
	MaxAngularSpeed float32
}

func (e EulerIntegrator) Integrate(w *World, dt float32) {
	w.Each(func(ent *Entity) {
		if ent.Body != nil {
			e.step(ent.Body, dt)
		}
	})
}

func (e EulerIntegrator) step(b *RigidBody, dt float32) {
	// Massless bodies are static.
	if b.Mass <= 0 {
		return
	}

	b.LinearVelocity = b.LinearVelocity.Add(b.External.Force.Mul(dt / b.Mass))
	if b.Inertia > 0 {
		b.AngularVelocity = b.AngularVelocity.Add(b.External.Torque.Mul(dt / b.Inertia))
	}

	b.LinearVelocity = damp(b.LinearVelocity, e.LinearDamping, dt)
	b.AngularVelocity = damp(b.AngularVelocity, e.AngularDamping, dt)
	b.LinearVelocity = capLength(b.LinearVelocity, e.MaxLinearSpeed)
	b.AngularVelocity = capLength(b.AngularVelocity, e.MaxAngularSpeed)

	// The centre of mass moves with the linear velocity and the body spins
	// about it.
	com := b.WorldCenterOfMass().Add(b.LinearVelocity.Mul(dt))
	rot := gamemath.Transform{Rotation: b.Rotation}.Rot()
	if w := b.AngularVelocity; w.Len() > 0 {
		spin := mgl32.Quat{V: w.Mul(0.5 * dt)}.Mul(rot)
		rot = rot.Add(spin).Normalize()
	}
	b.Rotation = rot
	b.Position = com.Sub(rot.Rotate(b.CenterOfMass))
}

func damp(v mgl32.Vec3, k, dt float32) mgl32.Vec3 {
	if k <= 0 {
		return v
	}
	return v.Mul(1 / (1 + k*dt))
}

func capLength(v mgl32.Vec3, max float32) mgl32.Vec3 {
	if max <= 0 {
		return v
	}
	if l := v.Len(); l > max {
		return v.Mul(max / l)
	}
	return v
}
