package netcomponents

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"
)

// ThrusterMount is one thruster of the replicated layout.
type ThrusterMount struct {
	Block          uint32
	Name           string
	Translation    mgl32.Vec3
	Rotation       mgl32.Quat
	StrengthFactor float32
	Reversible     bool
}

// NetThrusterLayoutData is fixed for the life of a ship.
type NetThrusterLayoutData struct {
	Thrusters []ThrusterMount
}

var NetThrusterLayout = donburi.NewComponentType[NetThrusterLayoutData]()

// ThrusterReading is the last strength assigned to a thruster.
type ThrusterReading struct {
	Block  uint32
	Status float32
	Active bool
}

// NetThrusterStatusData is visual feedback only; peers can re-derive it from
// inputs and velocity.
type NetThrusterStatusData struct {
	Readings []ThrusterReading
}

var NetThrusterStatus = donburi.NewComponentType[NetThrusterStatusData]()

// Reading returns the reading for a block.
func (d *NetThrusterStatusData) Reading(block uint32) (ThrusterReading, bool) {
	for _, r := range d.Readings {
		if r.Block == block {
			return r, true
		}
	}
	return ThrusterReading{}, false
}
