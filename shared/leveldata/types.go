// Package leveldata provides TMX sector parsing shared between server and
// tools. It has no dependencies on donburi or resolv, pure data only.
//
// Sector maps are drawn top-down: the map's X axis is world X and the map's Y
// axis is world Z. Altitude comes from an object property.
package leveldata

// SectorData holds everything the server needs from a sector map.
type SectorData struct {
	Name        string
	Obstacles   []Obstacle
	SpawnPoints []SpawnPoint
	Width       int // world units along X
	Depth       int // world units along Z
}

// Obstacle is an axis-aligned footprint that ships must not spawn inside.
type Obstacle struct {
	X, Z, W, D float64
	Kind       string // "asteroid", "station", ...
}

// SpawnPoint is a ship spawn location.
type SpawnPoint struct {
	X, Z     float64
	Altitude float64
	Heading  int // degrees, clockwise from -Z seen from above
	Index    int
}
