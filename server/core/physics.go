package core

import (
	"time"

	"github.com/automoto/thrustcraft-mp/shared/blueprint"
	"github.com/automoto/thrustcraft-mp/shared/messages"
	"github.com/automoto/thrustcraft-mp/shared/replay"
	"github.com/automoto/thrustcraft-mp/shared/shipsim"
)

// tick advances the simulation by one network tick: queued joins are stamped,
// queued leaves despawned, latched inputs fed to the simulation, and the
// result written back to the replicated components. The simulation runs its
// own substeps inside Step.
func (s *Server) tick() {
	start := time.Now()

	s.mu.Lock()
	frame := replay.Frame{Tick: s.sim.Tick}
	spawned := s.spawnJoining(&frame)
	left := s.despawnLeaving(&frame)
	inputs := s.latchInputs(&frame)
	s.mu.Unlock()

	s.sim.Step(inputs, s.opts.Sim.TickDuration())

	s.mu.Lock()
	s.writeBack()
	s.mu.Unlock()

	s.record(frame)
	s.publish()

	for _, p := range spawned {
		s.announceSpawn(p)
	}
	for _, p := range left {
		s.broadcastEvent(messages.ShipDespawnEvent{NetworkID: uint(p.networkID), Pilot: p.name})
	}

	s.metrics.Tick(time.Since(start))
}

// spawnJoining stamps every queued ship in join order. Called with s.mu held.
func (s *Server) spawnJoining(frame *replay.Frame) []*pilot {
	spawned := s.joining
	s.joining = nil

	for _, p := range spawned {
		pose := s.sector.SpawnPose()
		ctx := blueprint.StampContext{World: s.sim.World, Pose: pose, Log: s.log}
		p.ship = p.blueprint.Stamp(&ctx)
		s.sector.TrackShip(p.name, pose.Translation)

		if err := s.createShipEntity(p); err != nil {
			s.log.Error().Err(err).Str("pilot", p.name).Msg("failed to set up network sync for ship")
		}

		frame.Spawns = append(frame.Spawns, replay.NewSpawn(p.name, p.blueprint, pose))
		s.log.Info().
			Str("pilot", p.name).
			Str("blueprint", p.blueprint.Name).
			Uint32("ship", uint32(p.ship)).
			Msg("ship spawned")
	}
	return spawned
}

// despawnLeaving queues removal of every departed pilot's ship. The ship
// disappears during this tick's step. Called with s.mu held.
func (s *Server) despawnLeaving(frame *replay.Frame) []*pilot {
	left := s.leaving
	s.leaving = nil

	for _, p := range left {
		s.sim.Queue().Despawn(p.ship)
		s.sector.ForgetShip(p.name)
		if s.world.Valid(p.entity) {
			s.world.Remove(p.entity)
		}
		frame.Despawns = append(frame.Despawns, p.name)
	}
	return left
}

// latchInputs collects the held actions of every flying pilot. Called with
// s.mu held.
func (s *Server) latchInputs(frame *replay.Frame) shipsim.Inputs {
	flying := s.flying()
	inputs := make(shipsim.Inputs, len(flying))
	for _, p := range flying {
		inputs[p.ship] = p.actions
		if p.actions != 0 {
			frame.Inputs = append(frame.Inputs, replay.PilotInput{Pilot: p.name, Actions: p.actions})
		}
	}
	return inputs
}

// record hands the frame to the recorder. The first failure disables
// recording for the rest of the session.
func (s *Server) record(frame replay.Frame) {
	if s.opts.Recorder == nil {
		return
	}
	if err := s.opts.Recorder.WriteFrame(frame); err != nil {
		s.log.Error().Err(err).Uint64("tick", frame.Tick).Msg("replay recording stopped")
		s.opts.Recorder = nil
	}
}

func (s *Server) publish() {
	if s.opts.Telemetry == nil {
		return
	}
	s.mu.Lock()
	names := make(map[shipsim.EntityID]string, len(s.byName))
	for _, p := range s.byName {
		names[p.ship] = p.name
	}
	s.mu.Unlock()

	s.opts.Telemetry.Publish(buildTelemetry(s.sim, names))
}

func (s *Server) announceSpawn(p *pilot) {
	accepted := messages.JoinAccepted{
		NetworkID:  p.networkID,
		ServerName: s.opts.Name,
		TickRate:   s.opts.Sim.TickRate,
		Blueprint:  p.blueprint.Name,
	}
	if err := p.peer.SendMessage(accepted); err != nil {
		s.log.Warn().Err(err).Str("pilot", p.name).Msg("send join accepted")
	}

	state, _ := s.shipState(p.ship)
	s.broadcastEvent(messages.ShipSpawnEvent{
		NetworkID: uint(p.networkID),
		Pilot:     p.name,
		Blueprint: p.blueprint.Name,
		X:         state.Position.X(),
		Y:         state.Position.Y(),
		Z:         state.Position.Z(),
	})
}

func (s *Server) shipState(id shipsim.EntityID) (shipsim.ShipState, bool) {
	for _, st := range s.sim.World.ShipStates() {
		if st.ID == id {
			return st, true
		}
	}
	return shipsim.ShipState{}, false
}
