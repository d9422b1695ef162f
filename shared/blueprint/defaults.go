package blueprint

// DefaultShipName is the blueprint a pilot gets when none is requested.
const DefaultShipName = "skiff"

const (
	mainStrength     = 40
	retroStrength    = 20
	attitudeStrength = 8
	thrusterMass     = 0.25
)

func thruster(block uint32, name string, pos, facing []float32, strength float32) Part {
	return Part{
		Kind:     PartThruster,
		Name:     name,
		Block:    block,
		Position: clone(pos),
		Facing:   clone(facing),
		Mass:     thrusterMass,
		Strength: strength,
	}
}

func hull(name string, pos []float32, mass float32) Part {
	return Part{Kind: PartHull, Name: name, Position: clone(pos), Mass: mass}
}

func clone(v []float32) []float32 {
	return append([]float32(nil), v...)
}

// DefaultShip builds the stock ship: a symmetric cross-shaped hull with a main
// engine, a retro engine and twelve attitude thrusters, enough to drive all
// six axes in both directions. Each call returns a fresh value.
func DefaultShip() ShipBlueprint {
	nose := []float32{0, 0, -2}
	tail := []float32{0, 0, 2}
	port := []float32{-2, 0, 0}
	starboard := []float32{2, 0, 0}

	px, nx := []float32{1, 0, 0}, []float32{-1, 0, 0}
	py, ny := []float32{0, 1, 0}, []float32{0, -1, 0}

	return ShipBlueprint{
		Name: DefaultShipName,
		Parts: []Part{
			hull("core", []float32{0, 0, 0}, 6),
			hull("bow", nose, 2),
			hull("stern", tail, 2),
			hull("port_wing", port, 1),
			hull("starboard_wing", starboard, 1),

			thruster(1, "main", tail, []float32{0, 0, 1}, mainStrength),
			thruster(2, "retro", nose, []float32{0, 0, -1}, retroStrength),

			thruster(3, "bow_port", nose, px, attitudeStrength),
			thruster(4, "bow_starboard", nose, nx, attitudeStrength),
			thruster(5, "stern_port", tail, px, attitudeStrength),
			thruster(6, "stern_starboard", tail, nx, attitudeStrength),

			thruster(7, "bow_dorsal", nose, py, attitudeStrength),
			thruster(8, "bow_ventral", nose, ny, attitudeStrength),
			thruster(9, "stern_dorsal", tail, py, attitudeStrength),
			thruster(10, "stern_ventral", tail, ny, attitudeStrength),

			thruster(11, "port_dorsal", port, py, attitudeStrength),
			thruster(12, "port_ventral", port, ny, attitudeStrength),
			thruster(13, "starboard_dorsal", starboard, py, attitudeStrength),
			thruster(14, "starboard_ventral", starboard, ny, attitudeStrength),
		},
	}
}
