package core

import (
	"testing"

	"github.com/automoto/thrustcraft-mp/shared/leveldata"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func driftSector() *Sector {
	return NewSector(&leveldata.SectorData{
		Name:      "drift",
		Width:     512,
		Depth:     512,
		Obstacles: []leveldata.Obstacle{{X: 100, Z: 120, W: 40, D: 30, Kind: "asteroid"}},
		SpawnPoints: []leveldata.SpawnPoint{
			{X: 50, Z: 200, Heading: 90, Index: 0},
			{X: 300, Z: 200, Altitude: 10, Index: 1},
			{X: 110, Z: 130, Index: 2}, // inside the asteroid
		},
	}, zerolog.Nop())
}

func TestSector_SpawnPoseUsesFirstClearPoint(t *testing.T) {
	s := driftSector()

	pose := s.SpawnPose()
	assert.Equal(t, mgl32.Vec3{50, 0, 200}, pose.Translation)

	// Heading 90 turns the nose from -Z to +X.
	fwd := pose.Forward()
	assert.InDelta(t, 1, fwd.X(), 1e-5)
	assert.InDelta(t, 0, fwd.Z(), 1e-5)
}

func TestSector_OccupiedPointSkipped(t *testing.T) {
	s := driftSector()
	s.TrackShip("ada", mgl32.Vec3{50, 0, 200})

	pose := s.SpawnPose()
	assert.Equal(t, mgl32.Vec3{300, 10, 200}, pose.Translation)
	assert.True(t, pose.Rot().ApproxEqual(mgl32.QuatIdent()))
}

func TestSector_FallbackOffset(t *testing.T) {
	s := driftSector()
	s.TrackShip("ada", mgl32.Vec3{50, 0, 200})
	s.TrackShip("bob", mgl32.Vec3{300, 10, 200})

	pose := s.SpawnPose()
	assert.Equal(t, mgl32.Vec3{50 + 2*shipFootprint, 0, 200}, pose.Translation)
}

func TestSector_ForgetShipFreesPoint(t *testing.T) {
	s := driftSector()
	s.TrackShip("ada", mgl32.Vec3{50, 0, 200})
	s.ForgetShip("ada")

	assert.Equal(t, mgl32.Vec3{50, 0, 200}, s.SpawnPose().Translation)
}

func TestSector_TrackShipMoves(t *testing.T) {
	s := driftSector()
	s.TrackShip("ada", mgl32.Vec3{300, 10, 200})
	s.TrackShip("ada", mgl32.Vec3{50, 0, 200})

	assert.Equal(t, mgl32.Vec3{300, 10, 200}, s.SpawnPose().Translation)
}

func TestLoadSectors(t *testing.T) {
	sectors, names, err := LoadSectors("../../assets", "sectors", zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, []string{"drift"}, names)
	require.Contains(t, sectors, "drift")
	assert.Len(t, sectors["drift"].SpawnPoints, 3)
}

func TestLoadSectors_Builtin(t *testing.T) {
	_, names, err := LoadSectors("", "sectors", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{"drift"}, names)
}

func TestEmptySector(t *testing.T) {
	s := EmptySector()
	assert.Equal(t, mgl32.Vec3{}, s.SpawnPose().Translation)
}
