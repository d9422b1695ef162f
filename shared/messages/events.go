package messages

// ShipSpawnEvent is broadcast when a pilot's ship enters the sector
type ShipSpawnEvent struct {
	NetworkID uint
	Pilot     string
	Blueprint string
	X, Y, Z   float32
}

// ShipDespawnEvent is broadcast when a ship is removed
type ShipDespawnEvent struct {
	NetworkID uint
	Pilot     string
}
