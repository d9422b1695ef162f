package core

import (
	"fmt"

	"github.com/automoto/thrustcraft-mp/shared/netcomponents"
	"github.com/automoto/thrustcraft-mp/shared/shipsim"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
)

func (s *Server) createClock() error {
	s.clock = s.world.Create(netcomponents.NetSimClock)
	netcomponents.NetSimClock.Set(s.world.Entry(s.clock), &netcomponents.NetSimClockData{
		TickRate: s.opts.Sim.TickRate,
	})
	if err := srvsync.NetworkSync(s.world, &s.clock, netcomponents.NetSimClock); err != nil {
		return fmt.Errorf("sync clock: %w", err)
	}
	return nil
}

// createShipEntity mirrors p's ship into the replicated world.
func (s *Server) createShipEntity(p *pilot) error {
	entity := s.world.Create(
		netcomponents.NetShip,
		netcomponents.NetThrusterLayout,
		netcomponents.NetThrusterStatus,
	)
	entry := s.world.Entry(entity)

	netcomponents.NetShip.Set(entry, &netcomponents.NetShipData{
		Pilot:     p.name,
		Blueprint: p.blueprint.Name,
	})
	netcomponents.NetThrusterLayout.Set(entry, &netcomponents.NetThrusterLayoutData{
		Thrusters: thrusterLayout(s.sim.World, p.ship),
	})
	netcomponents.NetThrusterStatus.Set(entry, &netcomponents.NetThrusterStatusData{})

	// Mark entity for network sync with interpolation for the body
	err := srvsync.NetworkSync(s.world, &entity,
		srvsync.WithInterp(netcomponents.NetShip),
		netcomponents.NetThrusterLayout,
		netcomponents.NetThrusterStatus,
	)
	if err != nil {
		s.world.Remove(entity)
		return err
	}

	p.entity = entity
	if nid := esync.GetNetworkId(entry); nid != nil {
		p.networkID = *nid
	}
	s.syncShip(p)
	return nil
}

// writeBack copies simulation state into the replicated components. Called
// with s.mu held.
func (s *Server) writeBack() {
	if s.world.Valid(s.clock) {
		clock := netcomponents.NetSimClock.Get(s.world.Entry(s.clock))
		clock.Tick = s.sim.Tick
	}
	for _, p := range s.flying() {
		s.syncShip(p)
	}
}

func (s *Server) syncShip(p *pilot) {
	ship, ok := s.sim.World.Get(p.ship)
	if !ok || ship.Body == nil {
		return
	}
	s.sector.TrackShip(p.name, ship.Body.Position)

	if !s.world.Valid(p.entity) {
		return
	}
	entry := s.world.Entry(p.entity)

	body := ship.Body
	net := netcomponents.NetShip.Get(entry)
	net.Position = body.Position
	net.Rotation = body.Rotation
	net.LinearVelocity = body.LinearVelocity
	net.AngularVelocity = body.AngularVelocity
	net.CenterOfMass = body.CenterOfMass
	net.LastSequence = p.lastSeq

	status := netcomponents.NetThrusterStatus.Get(entry)
	status.Readings = status.Readings[:0]
	for _, id := range s.sim.World.Children(p.ship) {
		child, _ := s.sim.World.Get(id)
		if child.Thruster == nil {
			continue
		}
		status.Readings = append(status.Readings, netcomponents.ThrusterReading{
			Block:  uint32(child.Thruster.BlockID),
			Status: child.Thruster.Status,
			Active: child.Thruster.Active(),
		})
	}
}

func thrusterLayout(w *shipsim.World, ship shipsim.EntityID) []netcomponents.ThrusterMount {
	var out []netcomponents.ThrusterMount
	for _, id := range w.Children(ship) {
		child, _ := w.Get(id)
		if child.Thruster == nil {
			continue
		}
		out = append(out, netcomponents.ThrusterMount{
			Block:          uint32(child.Thruster.BlockID),
			Name:           child.Name,
			Translation:    child.Local.Translation,
			Rotation:       child.Local.Rot(),
			StrengthFactor: child.Thruster.StrengthFactor,
			Reversible:     child.Thruster.Reversible,
		})
	}
	return out
}
