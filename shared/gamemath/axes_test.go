package gamemath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAxes6_Arithmetic(t *testing.T) {
	a := Axes6{Forward: 1, Right: 2, Upward: 3, TurnRight: 4, TiltUp: 5, RollRight: 6}
	b := Axes6{Forward: 1, Right: 1, Upward: 1, TurnRight: 1, TiltUp: 1, RollRight: 1}

	assert.Equal(t, Axes6{2, 3, 4, 5, 6, 7}, a.Add(b))
	assert.Equal(t, Axes6{0, 1, 2, 3, 4, 5}, a.Sub(b))
	assert.Equal(t, Axes6{2, 4, 6, 8, 10, 12}, a.Scale(2))
	assert.Equal(t, float32(21), a.Dot(b))
	assert.Equal(t, a, FromArray(a.Array()))
}

func TestAxes6_NormalizeZero(t *testing.T) {
	assert.Equal(t, Axes6{}, Axes6{}.Normalize())
	assert.True(t, Axes6{}.IsZero())
}

func TestAxes6_Normalize(t *testing.T) {
	n := Axes6{Forward: 3, Right: 4}.Normalize()
	assert.InDelta(t, 0.6, n.Forward, 1e-6)
	assert.InDelta(t, 0.8, n.Right, 1e-6)
	assert.InDelta(t, 1.0, n.Len(), 1e-6)
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b Axes6
		want float32
	}{
		{"parallel", Axes6{Forward: 2}, Axes6{Forward: 5}, 1},
		{"opposite", Axes6{Forward: 2}, Axes6{Forward: -0.5}, -1},
		{"orthogonal", Axes6{Forward: 1}, Axes6{TurnRight: 1}, 0},
		{"zero left", Axes6{}, Axes6{Forward: 1}, 0},
		{"zero right", Axes6{Upward: 1}, Axes6{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-6)
		})
	}
}

func TestApplyDeadzone(t *testing.T) {
	assert.Equal(t, float32(0), ApplyDeadzone(0.099, 0.1))
	assert.Equal(t, float32(0), ApplyDeadzone(-0.05, 0.1))
	assert.Equal(t, float32(0.1), ApplyDeadzone(0.1, 0.1))
	assert.Equal(t, float32(-0.5), ApplyDeadzone(-0.5, 0.1))
}

func TestClampUnit(t *testing.T) {
	assert.Equal(t, float32(1), ClampUnit(1.0000001))
	assert.Equal(t, float32(-1), ClampUnit(-3))
	assert.Equal(t, float32(0.25), ClampUnit(0.25))
}
