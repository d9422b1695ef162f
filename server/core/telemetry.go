package core

import (
	"github.com/automoto/thrustcraft-mp/server/observer"
	"github.com/automoto/thrustcraft-mp/shared/shipsim"
	"github.com/go-gl/mathgl/mgl32"
)

func buildTelemetry(sim *shipsim.Simulation, pilots map[shipsim.EntityID]string) observer.Telemetry {
	states := sim.World.ShipStates()
	t := observer.Telemetry{
		Tick:  sim.Tick,
		Ships: make([]observer.ShipTelemetry, 0, len(states)),
	}
	for _, st := range states {
		active := 0
		for _, id := range sim.World.Children(st.ID) {
			if child, ok := sim.World.Get(id); ok && child.Thruster != nil && child.Thruster.Active() {
				active++
			}
		}
		t.Ships = append(t.Ships, observer.ShipTelemetry{
			Pilot:           pilots[st.ID],
			Blueprint:       st.Name,
			Position:        vec(st.Position),
			Rotation:        [4]float32{st.Rotation.W, st.Rotation.V[0], st.Rotation.V[1], st.Rotation.V[2]},
			LinearVelocity:  vec(st.LinearVelocity),
			AngularVelocity: vec(st.AngularVelocity),
			Force:           vec(st.Force),
			Torque:          vec(st.Torque),
			ActiveThrusters: active,
		})
	}
	return t
}

func vec(v mgl32.Vec3) [3]float32 {
	return [3]float32{v[0], v[1], v[2]}
}
