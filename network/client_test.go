package network

import (
	"errors"
	"testing"

	"github.com/automoto/thrustcraft-mp/shared/messages"
	"github.com/automoto/thrustcraft-mp/shared/netconfig"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SendInputWithoutConnection(t *testing.T) {
	c := NewClient(zerolog.Nop())

	in, err := c.SendInput(netconfig.NewActionSet(netconfig.ActionThrustForward))
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Equal(t, uint32(1), in.Sequence)

	// Kept for resend once connected.
	pending := c.history.Unacknowledged(0)
	require.Len(t, pending, 1)
	assert.True(t, pending[0].Actions.Has(netconfig.ActionThrustForward))
}

func TestClient_Acknowledge(t *testing.T) {
	c := NewClient(zerolog.Nop())
	for i := 0; i < 3; i++ {
		_, _ = c.SendInput(0)
	}

	c.Acknowledge(2)
	assert.Len(t, c.history.Unacknowledged(c.lastAcked), 1)

	c.Acknowledge(1) // stale
	assert.Equal(t, uint32(2), c.lastAcked)
	assert.GreaterOrEqual(t, c.Session().RoundTrip.Nanoseconds(), int64(0))
}

func TestClient_InitialState(t *testing.T) {
	c := NewClient(zerolog.Nop())
	assert.Equal(t, StateDisconnected, c.State())
	assert.Equal(t, "disconnected", c.State().String())
	assert.Nil(t, c.LatestSnapshot())
	assert.NoError(t, c.ResendUnacknowledged(), "nothing to resend")

	_, _ = c.SendInput(0)
	assert.ErrorIs(t, c.ResendUnacknowledged(), ErrNotConnected)
}

func TestClient_Fail(t *testing.T) {
	c := NewClient(zerolog.Nop())
	c.fail(errors.New("join rejected: server full"))

	s := c.Session()
	assert.Equal(t, StateError, s.State)
	assert.EqualError(t, s.Err, "join rejected: server full")
}

func TestOffer_DropsWhenFull(t *testing.T) {
	ch := make(chan int, 1)
	offer(ch, 1)
	offer(ch, 2)
	assert.Equal(t, []int{1}, drain(ch))
}

func TestDrain(t *testing.T) {
	ch := make(chan messages.ShipSpawnEvent, 4)
	ch <- messages.ShipSpawnEvent{Pilot: "a"}
	ch <- messages.ShipSpawnEvent{Pilot: "b"}

	got := drain(ch)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1].Pilot)
	assert.Empty(t, drain(ch))
}
