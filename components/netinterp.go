package components

import (
	"github.com/automoto/thrustcraft-mp/shared/netcomponents"
	"github.com/yohamta/donburi"
)

// NetInterpData stores interpolation state for smooth display of remote
// ships between server snapshots.
type NetInterpData struct {
	Prev, Target netcomponents.NetShipData
	T            float64
	Initialized  bool
}

var NetInterp = donburi.NewComponentType[NetInterpData]()
