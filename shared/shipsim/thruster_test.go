package shipsim

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestThruster_ApplyStrength(t *testing.T) {
	tests := []struct {
		name       string
		reversible bool
		in, want   float32
	}{
		{"one-way keeps positive", false, 0.7, 0.7},
		{"one-way drops negative", false, -0.7, 0},
		{"one-way caps", false, 1.5, 1},
		{"reversible keeps negative", true, -0.7, -0.7},
		{"reversible caps", true, -3, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := Thruster{Reversible: tt.reversible}
			th.ApplyStrength(tt.in)
			assert.Equal(t, tt.want, th.Status)
			assert.Equal(t, tt.want != 0, th.Active())
		})
	}
}

func TestApplyThrusterForces(t *testing.T) {
	w := NewWorld()
	ship := w.Spawn(Entity{Body: &RigidBody{Mass: 1}})
	id := w.Spawn(Entity{Parent: ship, Thruster: &Thruster{StrengthFactor: 20, Status: 0.5}})
	plain := w.Spawn(Entity{Parent: ship})

	ApplyThrusterForces(w)

	e, _ := w.Get(id)
	if assert.NotNil(t, e.InternalForce) {
		assert.Equal(t, FrameLocal, e.InternalForce.Frame)
		assertVec(t, mgl32.Vec3{0, 0, -10}, e.InternalForce.Force)
	}
	p, _ := w.Get(plain)
	assert.Nil(t, p.InternalForce)
}

func TestMutations_Apply(t *testing.T) {
	w := NewWorld()
	ship := w.Spawn(Entity{Body: &RigidBody{Mass: 1}})
	oneWay := w.Spawn(Entity{Parent: ship, Thruster: &Thruster{}})
	hull := w.Spawn(Entity{Parent: ship})
	other := w.Spawn(Entity{Body: &RigidBody{Mass: 1}})
	otherThruster := w.Spawn(Entity{Parent: other, Thruster: &Thruster{Reversible: true}})

	var m Mutations
	m.SetStatus(oneWay, -0.4)
	m.SetStatus(hull, 1)
	m.SetStatus(999, 1)
	m.Despawn(other)
	m.SetStatus(otherThruster, 1)
	assert.Equal(t, 5, m.Len())

	assert.NotPanics(t, func() { m.Apply(w) })

	e, _ := w.Get(oneWay)
	assert.Equal(t, float32(0), e.Thruster.Status)
	assert.False(t, w.Valid(other))
	assert.False(t, w.Valid(otherThruster))
	assert.Zero(t, m.Len())
}
