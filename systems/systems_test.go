package systems

import (
	"errors"
	"testing"

	"github.com/automoto/thrustcraft-mp/archetypes"
	"github.com/automoto/thrustcraft-mp/components"
	cfg "github.com/automoto/thrustcraft-mp/config"
	"github.com/automoto/thrustcraft-mp/shared/netcomponents"
	"github.com/automoto/thrustcraft-mp/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func TestSteerActions(t *testing.T) {
	d := cfg.Bot.Difficulties[cfg.BotDifficultyNormal]
	ident := mgl32.QuatIdent()
	// Yawed 90 degrees left: the nose points along -X.
	yawedLeft := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})

	tests := []struct {
		name   string
		rot    mgl32.Quat
		target mgl32.Vec3
		want   []netconfig.ActionID
	}{
		{"ahead", ident, mgl32.Vec3{0, 0, -100}, []netconfig.ActionID{netconfig.ActionThrustForward}},
		{"behind", ident, mgl32.Vec3{0, 0, 100}, []netconfig.ActionID{netconfig.ActionThrustBackward}},
		{"right and up", ident, mgl32.Vec3{100, 100, 0}, []netconfig.ActionID{netconfig.ActionStrafeRight, netconfig.ActionRise}},
		{"below left", ident, mgl32.Vec3{-100, -100, 0}, []netconfig.ActionID{netconfig.ActionStrafeLeft, netconfig.ActionSink}},
		{"ahead of a turned ship", yawedLeft, mgl32.Vec3{-100, 0, 0}, []netconfig.ActionID{netconfig.ActionThrustForward}},
		{"arrived", ident, mgl32.Vec3{0, 0, -d.ArriveRadius / 2}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SteerActions(mgl32.Vec3{}, tt.rot, tt.target, d)
			assert.Equal(t, netconfig.NewActionSet(tt.want...), got, got.String())
		})
	}
}

func newAutopilotShip(world donburi.World, pos mgl32.Vec3, waypoints ...mgl32.Vec3) *donburi.Entry {
	entry := archetypes.LocalShip.Spawn(world, netcomponents.NetShip, components.Autopilot)
	netcomponents.NetShip.SetValue(entry, netcomponents.NetShipData{Position: pos, Rotation: mgl32.QuatIdent()})
	components.Autopilot.SetValue(entry, components.AutopilotData{
		Waypoints:  waypoints,
		Difficulty: cfg.BotDifficultyHard,
	})
	return entry
}

func TestAutopilot_SendsOnChange(t *testing.T) {
	world := donburi.NewWorld()
	entry := newAutopilotShip(world, mgl32.Vec3{}, mgl32.Vec3{0, 0, -200})

	var sent []netconfig.ActionSet
	system := NewAutopilotSystem(func(a netconfig.ActionSet) error {
		sent = append(sent, a)
		return nil
	})

	for i := 0; i < 6; i++ {
		system(world)
	}

	require.Len(t, sent, 1, "unchanged actions are not resent")
	assert.True(t, sent[0].Has(netconfig.ActionThrustForward))
	assert.Equal(t, sent[0], components.Autopilot.Get(entry).Held)
}

func TestAutopilot_AdvancesAndStops(t *testing.T) {
	world := donburi.NewWorld()
	entry := newAutopilotShip(world, mgl32.Vec3{}, mgl32.Vec3{0, 0, -200}, mgl32.Vec3{0, 0, -400})

	var sent []netconfig.ActionSet
	system := NewAutopilotSystem(func(a netconfig.ActionSet) error {
		sent = append(sent, a)
		return nil
	})
	system(world)

	ship := netcomponents.NetShip.Get(entry)
	ap := components.Autopilot.Get(entry)

	ship.Position = mgl32.Vec3{0, 0, -199}
	ap.DecisionTimer = 0
	system(world)
	assert.Equal(t, 1, ap.Current)

	ship.Position = mgl32.Vec3{0, 0, -400}
	ap.DecisionTimer = 0
	system(world)
	assert.True(t, ap.Done)
	assert.Equal(t, netconfig.ActionSet(0), sent[len(sent)-1], "brakes at the last waypoint")
}

func TestAutopilot_RetriesFailedSend(t *testing.T) {
	world := donburi.NewWorld()
	entry := newAutopilotShip(world, mgl32.Vec3{}, mgl32.Vec3{0, 0, -200})

	calls := 0
	system := NewAutopilotSystem(func(netconfig.ActionSet) error {
		calls++
		return errors.New("not connected")
	})
	system(world)
	ap := components.Autopilot.Get(entry)
	ap.DecisionTimer = 0
	system(world)

	assert.Equal(t, 2, calls)
	assert.Equal(t, netconfig.ActionSet(0), ap.Held)
}

func TestUpdateFlames_EasesToStatus(t *testing.T) {
	world := donburi.NewWorld()
	entry := archetypes.RemoteShip.Spawn(world, netcomponents.NetThrusterStatus)
	netcomponents.NetThrusterStatus.SetValue(entry, netcomponents.NetThrusterStatusData{
		Readings: []netcomponents.ThrusterReading{
			{Block: 1, Status: 1, Active: true},
			{Block: 2, Status: -0.5, Active: true},
			{Block: 3},
		},
	})

	UpdateFlames(world, 0.05)
	flames := components.Flames.Get(entry)
	f := flames.Flame(1)
	assert.Greater(t, f.Intensity, float32(0))
	assert.Less(t, f.Intensity, float32(1))

	for i := 0; i < 5; i++ {
		UpdateFlames(world, 0.05)
	}
	assert.Equal(t, float32(1), flames.Flame(1).Intensity)
	assert.Equal(t, float32(0.5), flames.Flame(2).Intensity)
	assert.Equal(t, float32(0), flames.Flame(3).Intensity)
	assert.Nil(t, flames.Flame(1).Tween)
}

func TestRemoteShipInterpolation(t *testing.T) {
	world := donburi.NewWorld()
	entry := archetypes.RemoteShip.Spawn(world)

	applyRemoteShip(entry, netcomponents.NetShipData{Pilot: "bob", Rotation: mgl32.QuatIdent()})
	assert.Equal(t, "bob", netcomponents.NetShip.Get(entry).Pilot, "first snapshot is placed directly")

	applyRemoteShip(entry, netcomponents.NetShipData{
		Pilot:    "bob",
		Position: mgl32.Vec3{10, 0, 0},
		Rotation: mgl32.QuatIdent(),
	})
	assert.Equal(t, mgl32.Vec3{}, netcomponents.NetShip.Get(entry).Position)

	system := NewNetInterpSystem(func() int { return 20 })
	system(world, 0.025) // half a tick
	assert.InDelta(t, 5, netcomponents.NetShip.Get(entry).Position.X(), 1e-4)

	system(world, 0.1)
	assert.InDelta(t, 10, netcomponents.NetShip.Get(entry).Position.X(), 1e-4)
	assert.Equal(t, 1.0, components.NetInterp.Get(entry).T)
}

func TestComponentTypesFromInstances(t *testing.T) {
	ctypes := componentTypesFromInstances([]any{
		netcomponents.NetShipData{},
		netcomponents.NetThrusterStatusData{},
		"ignored",
	})
	assert.Equal(t, []donburi.IComponentType{netcomponents.NetShip, netcomponents.NetThrusterStatus}, ctypes)
	assert.True(t, hasShip([]any{netcomponents.NetShipData{}}))
	assert.False(t, hasShip([]any{netcomponents.NetSimClockData{}}))
}
