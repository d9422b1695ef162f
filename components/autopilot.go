package components

import (
	"github.com/automoto/thrustcraft-mp/config"
	"github.com/automoto/thrustcraft-mp/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"
)

// AutopilotData flies the local ship through a list of waypoints.
type AutopilotData struct {
	Waypoints  []mgl32.Vec3
	Current    int
	Loop       bool
	Difficulty config.BotDifficulty

	DecisionTimer int
	Held          netconfig.ActionSet
	Done          bool
}

// Waypoint returns the active waypoint.
func (a *AutopilotData) Waypoint() (mgl32.Vec3, bool) {
	if a.Done || a.Current >= len(a.Waypoints) {
		return mgl32.Vec3{}, false
	}
	return a.Waypoints[a.Current], true
}

// Advance moves to the next waypoint, wrapping when Loop is set.
func (a *AutopilotData) Advance() {
	a.Current++
	if a.Current < len(a.Waypoints) {
		return
	}
	if a.Loop && len(a.Waypoints) > 0 {
		a.Current = 0
		return
	}
	a.Done = true
}

var Autopilot = donburi.NewComponentType[AutopilotData]()
