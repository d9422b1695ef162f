package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWaypoints(t *testing.T) {
	got, err := parseWaypoints(" 0,0,-200; 10.5, 2 ,-3 ;")
	require.NoError(t, err)
	assert.Equal(t, []mgl32.Vec3{{0, 0, -200}, {10.5, 2, -3}}, got)
}

func TestParseWaypoints_Errors(t *testing.T) {
	for _, in := range []string{"", ";", "1,2", "1,2,x"} {
		_, err := parseWaypoints(in)
		assert.Error(t, err, in)
	}
}
