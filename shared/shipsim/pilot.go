package shipsim

import (
	"github.com/automoto/thrustcraft-mp/shared/control"
	"github.com/automoto/thrustcraft-mp/shared/gamemath"
	"github.com/automoto/thrustcraft-mp/shared/netconfig"
)

// Inputs holds the held actions for each ship this tick. Ships without an
// entry hold nothing and the allocator works to bring them to rest.
type Inputs map[EntityID]netconfig.ActionSet

// Pilot runs velocity extraction and allocation for every ship.
type Pilot struct {
	Allocator  control.Allocator
	Increments control.Increments
}

func DefaultPilot() Pilot {
	return Pilot{Allocator: control.DefaultAllocator, Increments: control.DefaultIncrements()}
}

// Plan computes a status for every thruster of every ship and queues it on m.
// It only reads w.
func (p Pilot) Plan(w *World, inputs Inputs, m *Mutations) {
	for _, shipID := range w.Ships() {
		ship, _ := w.Get(shipID)
		p.planShip(w, ship, inputs[shipID], m)
	}
}

func (p Pilot) planShip(w *World, ship *Entity, actions netconfig.ActionSet, m *Mutations) {
	body := ship.Body
	axes := make(map[control.ThrusterID]gamemath.ForceAxis)

	for _, childID := range w.Children(ship.ID) {
		child, _ := w.Get(childID)
		if child.Thruster == nil {
			continue
		}
		// Block IDs are unique per ship; a duplicate shares the first axis.
		if _, dup := axes[child.Thruster.BlockID]; !dup {
			axes[child.Thruster.BlockID] = gamemath.ComputeForceAxis(child.Local, body.CenterOfMass)
		}
	}
	if len(axes) == 0 {
		return
	}

	actual := control.ExtractActual(body.Rotation, body.LinearVelocity, body.AngularVelocity)
	intended := control.BuildIntended(actions, p.Increments)
	strengths := p.Allocator.Compute(axes, intended, actual)

	// Queue in entity order so Apply is reproducible regardless of map order.
	for _, childID := range w.Children(ship.ID) {
		child, _ := w.Get(childID)
		if child.Thruster == nil {
			continue
		}
		m.SetStatus(childID, strengths[child.Thruster.BlockID])
	}
}
