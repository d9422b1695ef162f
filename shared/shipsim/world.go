// Package shipsim holds the deterministic ship simulation: an arena of
// entities, the thruster control pass, the internal force aggregator and a
// simple integrator. It is shared by the authoritative server and the replay
// tool so both step ships identically.
package shipsim

import (
	"github.com/automoto/thrustcraft-mp/shared/gamemath"
	"github.com/go-gl/mathgl/mgl32"
)

// EntityID indexes the arena. IDs are never reused within a World.
type EntityID uint32

// NoEntity is the zero ID; an entity whose Parent is NoEntity is a root.
const NoEntity EntityID = 0

// Entity is one arena record. Optional parts are nil when absent.
type Entity struct {
	ID     EntityID
	Name   string
	Parent EntityID
	// Local is relative to the parent, or to the world for roots without a
	// body.
	Local gamemath.Transform
	// Mass contributed to the parent's centre of mass at assembly time.
	Mass float32

	Body          *RigidBody
	Thruster      *Thruster
	InternalForce *InternalForce
}

// IsShip reports whether e is a root rigid body.
func (e *Entity) IsShip() bool {
	return e.Parent == NoEntity && e.Body != nil
}

// World is the arena of entities. Iteration is always in ascending ID order.
type World struct {
	entities []*Entity
	alive    int
}

func NewWorld() *World {
	return &World{}
}

// Spawn stores a copy of e and returns its new ID.
func (w *World) Spawn(e Entity) EntityID {
	id := EntityID(len(w.entities) + 1)
	e.ID = id
	w.entities = append(w.entities, &e)
	w.alive++
	return id
}

// Get returns the live entity with the given ID.
func (w *World) Get(id EntityID) (*Entity, bool) {
	if id == NoEntity || int(id) > len(w.entities) {
		return nil, false
	}
	e := w.entities[id-1]
	return e, e != nil
}

// Valid reports whether id refers to a live entity.
func (w *World) Valid(id EntityID) bool {
	_, ok := w.Get(id)
	return ok
}

// Despawn removes a single entity. Its children keep pointing at the removed
// ID and are reported as dangling by the aggregator.
func (w *World) Despawn(id EntityID) bool {
	if !w.Valid(id) {
		return false
	}
	w.entities[id-1] = nil
	w.alive--
	return true
}

// DespawnTree removes id and all of its descendants.
func (w *World) DespawnTree(id EntityID) int {
	if !w.Valid(id) {
		return 0
	}
	n := 0
	for _, child := range w.Children(id) {
		n += w.DespawnTree(child)
	}
	w.Despawn(id)
	return n + 1
}

// Children returns the live direct children of id.
func (w *World) Children(id EntityID) []EntityID {
	var out []EntityID
	for _, e := range w.entities {
		if e != nil && e.Parent == id && id != NoEntity {
			out = append(out, e.ID)
		}
	}
	return out
}

// Each calls fn for every live entity.
func (w *World) Each(fn func(e *Entity)) {
	for _, e := range w.entities {
		if e != nil {
			fn(e)
		}
	}
}

// Ships returns the IDs of every root rigid body.
func (w *World) Ships() []EntityID {
	var out []EntityID
	w.Each(func(e *Entity) {
		if e.IsShip() {
			out = append(out, e.ID)
		}
	})
	return out
}

// Len is the number of live entities.
func (w *World) Len() int {
	return w.alive
}

// ClearForces zeroes every non-persistent external force accumulator.
func (w *World) ClearForces() {
	w.Each(func(e *Entity) {
		if e.Body != nil && !e.Body.External.Persistent {
			e.Body.External.Clear()
		}
	})
}

// WorldTransform resolves the world pose of e by walking its parents.
// Missing parents end the walk.
func (w *World) WorldTransform(e *Entity) gamemath.Transform {
	if e.Body != nil {
		return e.Body.Transform()
	}
	t := e.Local
	parent := e.Parent
	for depth := 0; parent != NoEntity && depth < len(w.entities); depth++ {
		p, ok := w.Get(parent)
		if !ok {
			break
		}
		if p.Body != nil {
			return p.Body.Transform().Mul(t)
		}
		t = p.Local.Mul(t)
		parent = p.Parent
	}
	return t
}

// RigidBody is the physics state of a ship.
type RigidBody struct {
	Position        mgl32.Vec3
	Rotation        mgl32.Quat
	LinearVelocity  mgl32.Vec3
	AngularVelocity mgl32.Vec3
	// CenterOfMass is a body-local offset.
	CenterOfMass mgl32.Vec3
	Mass         float32
	// Inertia is a scalar moment used for every axis.
	Inertia  float32
	External ExternalForce
}

// Transform is the body's world pose.
func (b *RigidBody) Transform() gamemath.Transform {
	return gamemath.NewTransform(b.Position, b.Rotation)
}

// WorldCenterOfMass is CenterOfMass in world space.
func (b *RigidBody) WorldCenterOfMass() mgl32.Vec3 {
	return b.Transform().Apply(b.CenterOfMass)
}

// ExternalForce is a body's world-space force and torque accumulator.
// Persistent accumulators are not cleared between steps.
type ExternalForce struct {
	Force      mgl32.Vec3
	Torque     mgl32.Vec3
	Persistent bool
}

func (f *ExternalForce) Clear() {
	f.Force = mgl32.Vec3{}
	f.Torque = mgl32.Vec3{}
}

// AddAtPoint accumulates force applied at a world point.
func (f *ExternalForce) AddAtPoint(force, point, com mgl32.Vec3) {
	lin, torque := gamemath.ForceAtPoint(force, point, com)
	f.Force = f.Force.Add(lin)
	f.Torque = f.Torque.Add(torque)
}

// ForceFrame says which space an InternalForce vector is expressed in.
type ForceFrame uint8

const (
	// FrameLocal vectors are in the emitting entity's own frame.
	FrameLocal ForceFrame = iota
	FrameWorld
)

// InternalForce is a force emitted by a non-rigid child. It is folded into
// the parent's accumulator by the Aggregator.
type InternalForce struct {
	Force mgl32.Vec3
	Frame ForceFrame
}

// ShipState is a copy of a ship's body taken between steps.
type ShipState struct {
	ID              EntityID
	Name            string
	Position        mgl32.Vec3
	Rotation        mgl32.Quat
	LinearVelocity  mgl32.Vec3
	AngularVelocity mgl32.Vec3
	CenterOfMass    mgl32.Vec3
	Force           mgl32.Vec3
	Torque          mgl32.Vec3
}

// ShipStates snapshots every ship in ID order.
func (w *World) ShipStates() []ShipState {
	var out []ShipState
	w.Each(func(e *Entity) {
		if !e.IsShip() {
			return
		}
		b := e.Body
		out = append(out, ShipState{
			ID:              e.ID,
			Name:            e.Name,
			Position:        b.Position,
			Rotation:        b.Rotation,
			LinearVelocity:  b.LinearVelocity,
			AngularVelocity: b.AngularVelocity,
			CenterOfMass:    b.CenterOfMass,
			Force:           b.External.Force,
			Torque:          b.External.Torque,
		})
	})
	return out
}
