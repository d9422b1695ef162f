package blueprint

import (
	"testing"

	"github.com/automoto/thrustcraft-mp/shared/gamemath"
	"github.com/automoto/thrustcraft-mp/shared/netconfig"
	"github.com/automoto/thrustcraft-mp/shared/shipsim"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultShip_Valid(t *testing.T) {
	b := DefaultShip()

	require.NoError(t, b.Validate())
	assert.Len(t, b.Thrusters(), 14)
	assert.Equal(t, mgl32.Vec3{}, b.CenterOfMass())
	assert.InDelta(t, 15.5, b.TotalMass(), 1e-6)
	assert.Greater(t, b.MomentOfInertia(), float32(1))
}

func TestDefaultShip_FreshValue(t *testing.T) {
	a := DefaultShip()
	a.Parts[0].Position[0] = 99
	a.Parts[5].Position[2] = 99

	b := DefaultShip()
	assert.Equal(t, float32(0), b.Parts[0].Position[0])
	assert.Equal(t, float32(2), b.Parts[5].Position[2])
	assert.Equal(t, float32(2), a.Parts[2].Position[2], "parts do not share position slices")
}

func TestDefaultShip_CoversEveryAxisBothWays(t *testing.T) {
	b := DefaultShip()
	com := b.CenterOfMass()

	var best, worst [6]float32
	for _, p := range b.Thrusters() {
		axis := gamemath.ComputeForceAxis(p.Transform(), com).Array()
		for i, v := range axis {
			best[i] = max(best[i], v)
			worst[i] = min(worst[i], v)
		}
	}

	for i := range best {
		assert.Greater(t, best[i], float32(0.5), "axis %d positive", i)
		assert.Less(t, worst[i], float32(-0.5), "axis %d negative", i)
	}
}

func TestShipBlueprint_Stamp(t *testing.T) {
	w := shipsim.NewWorld()
	b := DefaultShip()
	ctx := StampContext{
		World: w,
		Pose:  gamemath.NewTransform(mgl32.Vec3{10, 0, 0}, mgl32.QuatIdent()),
		Log:   zerolog.Nop(),
	}

	ship := b.Stamp(&ctx)

	e, ok := w.Get(ship)
	require.True(t, ok)
	require.NotNil(t, e.Body)
	assert.True(t, e.IsShip())
	assert.Equal(t, "skiff", e.Name)
	assert.Equal(t, mgl32.Vec3{10, 0, 0}, e.Body.Position)
	assert.InDelta(t, 15.5, e.Body.Mass, 1e-6)
	assert.Len(t, w.Children(ship), len(b.Parts))

	blocks := map[uint32]bool{}
	for _, id := range w.Children(ship) {
		c, _ := w.Get(id)
		if c.Thruster != nil {
			blocks[uint32(c.Thruster.BlockID)] = true
		}
	}
	assert.Len(t, blocks, 14)
}

func TestShipBlueprint_ForwardInputFiresMainOnly(t *testing.T) {
	w := shipsim.NewWorld()
	ship := DefaultShip().Stamp(&StampContext{World: w, Pose: gamemath.IdentityTransform(), Log: zerolog.Nop()})
	sim := shipsim.NewSimulation(w, zerolog.Nop())

	sim.Step(shipsim.Inputs{ship: netconfig.NewActionSet(netconfig.ActionThrustForward)}, 0.05)

	for _, id := range w.Children(ship) {
		c, _ := w.Get(id)
		if c.Thruster == nil {
			continue
		}
		if c.Name == "main" {
			assert.InDelta(t, 1.0, c.Thruster.Status, 0.01)
		} else {
			assert.Equal(t, float32(0), c.Thruster.Status, c.Name)
		}
	}
	s, _ := w.Get(ship)
	assert.Less(t, s.Body.LinearVelocity.Z(), float32(0))
	assert.InDelta(t, 0, s.Body.AngularVelocity.Len(), 1e-6)
}

func TestShipBlueprint_YawRightTurnsShip(t *testing.T) {
	w := shipsim.NewWorld()
	ship := DefaultShip().Stamp(&StampContext{World: w, Pose: gamemath.IdentityTransform(), Log: zerolog.Nop()})
	sim := shipsim.NewSimulation(w, zerolog.Nop())

	for i := 0; i < 5; i++ {
		sim.Step(shipsim.Inputs{ship: netconfig.NewActionSet(netconfig.ActionYawRight)}, 0.05)
	}

	s, _ := w.Get(ship)
	nose := s.Body.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
	assert.Greater(t, nose.X(), float32(0), "nose swings to the right")
	assert.InDelta(t, 0, s.Body.LinearVelocity.Len(), 1e-4)
}

func TestShipBlueprint_Validate(t *testing.T) {
	valid := func() ShipBlueprint {
		return ShipBlueprint{Name: "t", Parts: []Part{
			{Kind: PartThruster, Name: "a", Block: 1, Position: []float32{0, 0, 1}, Facing: []float32{0, 0, 1}, Mass: 1, Strength: 1},
		}}
	}

	tests := []struct {
		name   string
		mutate func(b *ShipBlueprint)
		want   error
	}{
		{"valid", func(b *ShipBlueprint) {}, nil},
		{"no name", func(b *ShipBlueprint) { b.Name = "" }, ErrInvalidPart},
		{"no thrusters", func(b *ShipBlueprint) { b.Parts[0].Kind = PartHull }, ErrNoThrusters},
		{"duplicate block", func(b *ShipBlueprint) { b.Parts = append(b.Parts, b.Parts[0]) }, ErrDuplicateBlock},
		{"short position", func(b *ShipBlueprint) { b.Parts[0].Position = []float32{1} }, ErrInvalidPart},
		{"zero facing", func(b *ShipBlueprint) { b.Parts[0].Facing = []float32{0, 0, 0} }, ErrInvalidPart},
		{"no strength", func(b *ShipBlueprint) { b.Parts[0].Strength = 0 }, ErrInvalidPart},
		{"negative mass", func(b *ShipBlueprint) { b.Parts[0].Mass = -1 }, ErrInvalidPart},
		{"massless", func(b *ShipBlueprint) { b.Parts[0].Mass = 0 }, ErrInvalidPart},
		{"unknown kind", func(b *ShipBlueprint) { b.Parts[0].Kind = "wing" }, ErrInvalidPart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid()
			tt.mutate(&b)
			err := b.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestShipBlueprint_CenterOfMassWeighted(t *testing.T) {
	b := ShipBlueprint{Parts: []Part{
		{Kind: PartHull, Position: []float32{0, 0, 0}, Mass: 3},
		{Kind: PartHull, Position: []float32{4, 0, 0}, Mass: 1},
	}}

	assert.Equal(t, mgl32.Vec3{1, 0, 0}, b.CenterOfMass())
	assert.InDelta(t, 12, b.MomentOfInertia(), 1e-5)

	b.Inertia = 2
	assert.Equal(t, float32(2), b.MomentOfInertia())
}
