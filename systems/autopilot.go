package systems

import (
	"github.com/automoto/thrustcraft-mp/components"
	cfg "github.com/automoto/thrustcraft-mp/config"
	"github.com/automoto/thrustcraft-mp/shared/gamemath"
	"github.com/automoto/thrustcraft-mp/shared/netcomponents"
	"github.com/automoto/thrustcraft-mp/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

var autopilotQuery = donburi.NewQuery(filter.Contains(components.Autopilot, netcomponents.NetShip))

// SteerActions picks translation actions that move a ship at pos with the
// given rotation toward target. Rotation actions are never used; the ship
// keeps its attitude and strafes.
func SteerActions(pos mgl32.Vec3, rot mgl32.Quat, target mgl32.Vec3, d cfg.BotDifficultyConfig) netconfig.ActionSet {
	dist := target.Sub(pos).Len()
	if dist <= d.ArriveRadius {
		return 0
	}

	speed := gamemath.ArrivalSpeed(dist, d.SlowRadius, d.CruiseSpeed)
	desired := gamemath.HomingVelocity(pos, target, speed)
	local := gamemath.Transform{Rotation: rot}.Rot().Inverse().Rotate(desired)

	var s netconfig.ActionSet
	switch {
	case -local.Z() > d.Tolerance:
		s = s.With(netconfig.ActionThrustForward)
	case -local.Z() < -d.Tolerance:
		s = s.With(netconfig.ActionThrustBackward)
	}
	switch {
	case local.X() > d.Tolerance:
		s = s.With(netconfig.ActionStrafeRight)
	case local.X() < -d.Tolerance:
		s = s.With(netconfig.ActionStrafeLeft)
	}
	switch {
	case local.Y() > d.Tolerance:
		s = s.With(netconfig.ActionRise)
	case local.Y() < -d.Tolerance:
		s = s.With(netconfig.ActionSink)
	}
	return s
}

// NewAutopilotSystem returns a system that steers the local ship through its
// waypoints and sends the resulting actions whenever they change.
func NewAutopilotSystem(send func(netconfig.ActionSet) error) func(world donburi.World) {
	return func(world donburi.World) {
		autopilotQuery.Each(world, func(entry *donburi.Entry) {
			ap := components.Autopilot.Get(entry)
			if ap.DecisionTimer > 0 {
				ap.DecisionTimer--
				return
			}
			d := cfg.Bot.Difficulties[ap.Difficulty]
			ap.DecisionTimer = d.ReactionDelay

			ship := netcomponents.NetShip.Get(entry)
			actions := netconfig.ActionSet(0)
			if target, ok := ap.Waypoint(); ok {
				if target.Sub(ship.Position).Len() <= d.ArriveRadius {
					ap.Advance()
				}
				if target, ok = ap.Waypoint(); ok {
					actions = SteerActions(ship.Position, ship.Rotation, target, d)
				}
			}

			if actions == ap.Held {
				return
			}
			if err := send(actions); err != nil {
				return // retried on the next decision
			}
			ap.Held = actions
		})
	}
}
