package core

import (
	"fmt"

	"github.com/automoto/thrustcraft-mp/assets"
	"github.com/automoto/thrustcraft-mp/shared/gamemath"
	"github.com/automoto/thrustcraft-mp/shared/leveldata"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/solarlune/resolv"
)

const (
	tagObstacle = "obstacle"
	tagShip     = "ship"
	tagProbe    = "probe"

	// shipFootprint is the side of the square a ship occupies on the sector
	// plane.
	shipFootprint = 12.0
	// maxFallbackTries bounds the offset search when every spawn point is
	// blocked.
	maxFallbackTries = 64
)

// Sector is the server's top-down view of a sector map. Ships and obstacles
// live in a resolv space on the XZ plane; it is only used to keep new ships
// from spawning on top of something.
type Sector struct {
	Name        string
	Space       *resolv.Space
	SpawnPoints []leveldata.SpawnPoint
	Width       int
	Depth       int

	ships map[string]*resolv.Object
}

// NewSector builds a resolv.Space from parsed sector data.
func NewSector(data *leveldata.SectorData, log zerolog.Logger) *Sector {
	space := resolv.NewSpace(data.Width, data.Depth, 16, 16)

	for _, o := range data.Obstacles {
		obj := resolv.NewObject(o.X, o.Z, o.W, o.D, tagObstacle, o.Kind)
		obj.SetShape(resolv.NewRectangle(0, 0, o.W, o.D))
		space.Add(obj)
	}

	log.Info().
		Str("sector", data.Name).
		Int("obstacles", len(data.Obstacles)).
		Int("spawnPoints", len(data.SpawnPoints)).
		Msgf("loaded sector %dx%d", data.Width, data.Depth)

	return &Sector{
		Name:        data.Name,
		Space:       space,
		SpawnPoints: data.SpawnPoints,
		Width:       data.Width,
		Depth:       data.Depth,
		ships:       make(map[string]*resolv.Object),
	}
}

// EmptySector is an unbounded sector with a single spawn at the origin.
func EmptySector() *Sector {
	return &Sector{
		Name:        "void",
		Space:       resolv.NewSpace(4096, 4096, 16, 16),
		SpawnPoints: []leveldata.SpawnPoint{{}},
		Width:       4096,
		Depth:       4096,
		ships:       make(map[string]*resolv.Object),
	}
}

// LoadSectors loads every .tmx sector under assetsDir/dir, keyed by stem name
// plus a sorted name list. An empty assetsDir reads the built-in sectors.
func LoadSectors(assetsDir, dir string, log zerolog.Logger) (map[string]*Sector, []string, error) {
	data, names, err := leveldata.LoadAllSectors(assets.FS(assetsDir), dir)
	if err != nil {
		return nil, nil, fmt.Errorf("load all sectors: %w", err)
	}

	sectors := make(map[string]*Sector, len(names))
	for _, name := range names {
		sectors[name] = NewSector(data[name], log)
	}
	return sectors, names, nil
}

// SpawnPose picks the first spawn point whose footprint is clear of obstacles
// and other ships. When all are blocked it steps along +X from the first
// spawn point until it finds room.
func (s *Sector) SpawnPose() gamemath.Transform {
	for _, sp := range s.SpawnPoints {
		if s.clear(sp.X, sp.Z) {
			return spawnTransform(sp, 0)
		}
	}

	var base leveldata.SpawnPoint
	if len(s.SpawnPoints) > 0 {
		base = s.SpawnPoints[0]
	}
	offset := 0.0
	for i := 1; i <= maxFallbackTries; i++ {
		offset = float64(i) * shipFootprint * 2
		if s.clear(base.X+offset, base.Z) {
			break
		}
	}
	return spawnTransform(base, offset)
}

func spawnTransform(sp leveldata.SpawnPoint, offsetX float64) gamemath.Transform {
	pos := mgl32.Vec3{float32(sp.X + offsetX), float32(sp.Altitude), float32(sp.Z)}
	// Headings turn clockwise seen from above, which is a negative turn about +Y.
	rot := mgl32.QuatRotate(-mgl32.DegToRad(float32(sp.Heading)), mgl32.Vec3{0, 1, 0})
	return gamemath.NewTransform(pos, rot)
}

func (s *Sector) clear(x, z float64) bool {
	half := shipFootprint / 2
	probe := resolv.NewObject(x-half, z-half, shipFootprint, shipFootprint, tagProbe)
	probe.SetShape(resolv.NewRectangle(0, 0, shipFootprint, shipFootprint))
	s.Space.Add(probe)
	defer s.Space.Remove(probe)

	return probe.Check(0, 0, tagObstacle, tagShip) == nil
}

// TrackShip moves (or adds) pilot's footprint to the ship's position.
func (s *Sector) TrackShip(pilot string, pos mgl32.Vec3) {
	half := shipFootprint / 2
	x, z := float64(pos.X())-half, float64(pos.Z())-half

	obj, ok := s.ships[pilot]
	if !ok {
		obj = resolv.NewObject(x, z, shipFootprint, shipFootprint, tagShip)
		obj.SetShape(resolv.NewRectangle(0, 0, shipFootprint, shipFootprint))
		s.Space.Add(obj)
		s.ships[pilot] = obj
		return
	}
	obj.X, obj.Y = x, z
	obj.Update()
}

// ForgetShip removes pilot's footprint.
func (s *Sector) ForgetShip(pilot string) {
	if obj, ok := s.ships[pilot]; ok {
		s.Space.Remove(obj)
		delete(s.ships, pilot)
	}
}
