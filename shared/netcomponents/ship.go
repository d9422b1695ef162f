package netcomponents

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"
)

// NetShipData is the replicated rigid body of one ship.
type NetShipData struct {
	Position        mgl32.Vec3
	Rotation        mgl32.Quat
	LinearVelocity  mgl32.Vec3
	AngularVelocity mgl32.Vec3
	CenterOfMass    mgl32.Vec3 // body-local

	Pilot        string
	Blueprint    string
	LastSequence uint32 // Last input sequence the server applied
	IsLocal      bool   // Client-side only, not synced
}

var NetShip = donburi.NewComponentType[NetShipData]()

// LerpNetShip interpolates position linearly and rotation along the shorter
// arc. Everything else snaps to the newer state.
func LerpNetShip(from, to NetShipData, t float64) *NetShipData {
	out := to
	out.Position = from.Position.Add(to.Position.Sub(from.Position).Mul(float32(t)))
	out.Rotation = mgl32.QuatNlerp(from.Rotation, to.Rotation, float32(t))
	return &out
}
