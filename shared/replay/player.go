package replay

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"sort"

	"github.com/automoto/thrustcraft-mp/shared/blueprint"
	"github.com/automoto/thrustcraft-mp/shared/gamemath"
	"github.com/automoto/thrustcraft-mp/shared/shipsim"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// Player re-runs recorded frames. Spawns and despawns are applied before the
// step in the same order the server applied them, so entity IDs match.
type Player struct {
	Sim *shipsim.Simulation

	log    zerolog.Logger
	dt     float32
	pilots map[string]shipsim.EntityID
}

func NewPlayer(h Header, log zerolog.Logger) *Player {
	return &Player{
		Sim:    shipsim.New(h.Sim, shipsim.NewWorld(), log),
		log:    log,
		dt:     h.Sim.TickDuration(),
		pilots: make(map[string]shipsim.EntityID),
	}
}

// Pose converts a Spawn back into a transform.
func (s Spawn) Pose() gamemath.Transform {
	return gamemath.NewTransform(
		mgl32.Vec3{s.Position[0], s.Position[1], s.Position[2]},
		mgl32.Quat{W: s.Rotation[0], V: mgl32.Vec3{s.Rotation[1], s.Rotation[2], s.Rotation[3]}},
	)
}

// NewSpawn records a ship placement.
func NewSpawn(pilot string, bp blueprint.ShipBlueprint, pose gamemath.Transform) Spawn {
	rot := pose.Rot()
	return Spawn{
		Pilot:     pilot,
		Blueprint: bp,
		Position:  [3]float32{pose.Translation[0], pose.Translation[1], pose.Translation[2]},
		Rotation:  [4]float32{rot.W, rot.V[0], rot.V[1], rot.V[2]},
	}
}

// Apply feeds one frame and steps the simulation.
func (p *Player) Apply(f Frame) error {
	if f.Tick != p.Sim.Tick {
		return fmt.Errorf("%w: simulation at %d, frame %d", ErrTickGap, p.Sim.Tick, f.Tick)
	}

	for _, s := range f.Spawns {
		if _, dup := p.pilots[s.Pilot]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicatePilot, s.Pilot)
		}
		ctx := blueprint.StampContext{World: p.Sim.World, Pose: s.Pose(), Log: p.log}
		p.pilots[s.Pilot] = s.Blueprint.Stamp(&ctx)
	}
	for _, name := range f.Despawns {
		id, ok := p.pilots[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownPilot, name)
		}
		p.Sim.Queue().Despawn(id)
		delete(p.pilots, name)
	}

	inputs := make(shipsim.Inputs, len(f.Inputs))
	for _, in := range f.Inputs {
		id, ok := p.pilots[in.Pilot]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownPilot, in.Pilot)
		}
		inputs[id] = in.Actions
	}

	p.Sim.Step(inputs, p.dt)
	return nil
}

// Ship returns the current state of a pilot's ship.
func (p *Player) Ship(pilot string) (shipsim.ShipState, bool) {
	id, ok := p.pilots[pilot]
	if !ok {
		return shipsim.ShipState{}, false
	}
	for _, s := range p.Sim.World.ShipStates() {
		if s.ID == id {
			return s, true
		}
	}
	return shipsim.ShipState{}, false
}

// Pilots lists flying pilots alphabetically.
func (p *Player) Pilots() []string {
	names := make([]string, 0, len(p.pilots))
	for n := range p.pilots {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Digest hashes the exact bits of a ship's motion state. Two runs agree iff
// their digests agree.
func Digest(s shipsim.ShipState) uint64 {
	h := fnv.New64a()
	var buf [4]byte
	put := func(vs ...float32) {
		for _, v := range vs {
			binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
			_, _ = h.Write(buf[:])
		}
	}
	put(s.Position[:]...)
	put(s.Rotation.W)
	put(s.Rotation.V[:]...)
	put(s.LinearVelocity[:]...)
	put(s.AngularVelocity[:]...)
	return h.Sum64()
}
