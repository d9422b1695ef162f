package netconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionSet(t *testing.T) {
	s := NewActionSet(ActionThrustForward, ActionYawLeft)

	assert.True(t, s.Has(ActionThrustForward))
	assert.True(t, s.Has(ActionYawLeft))
	assert.False(t, s.Has(ActionYawRight))

	s = s.Without(ActionYawLeft)
	assert.False(t, s.Has(ActionYawLeft))
	assert.Equal(t, []string{"forward"}, s.Names())
}

func TestActionSet_IgnoresOutOfRange(t *testing.T) {
	var s ActionSet
	assert.Equal(t, s, s.With(ActionNone))
	assert.Equal(t, s, s.With(ActionCount))
	assert.False(t, s.Has(ActionCount))
}

func TestActionByName(t *testing.T) {
	id, err := ActionByName(" Roll_Right ")
	require.NoError(t, err)
	assert.Equal(t, ActionRollRight, id)

	_, err = ActionByName("jump")
	assert.Error(t, err)
}

func TestActionSet_String(t *testing.T) {
	assert.Equal(t, "[forward rise]", NewActionSet(ActionRise, ActionThrustForward).String())
	assert.Equal(t, "[]", ActionSet(0).String())
}
