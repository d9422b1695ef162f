package systems

import (
	"github.com/automoto/thrustcraft-mp/components"
	"github.com/automoto/thrustcraft-mp/shared/netcomponents"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

var interpQuery = donburi.NewQuery(filter.Contains(components.NetInterp, netcomponents.NetShip))

// NewNetInterpSystem returns a system that moves remote ships along their
// current interpolation leg. A leg lasts one server tick.
func NewNetInterpSystem(tickRate func() int) func(world donburi.World, dt float64) {
	return func(world donburi.World, dt float64) {
		rate := tickRate()
		if rate <= 0 {
			return
		}
		interpQuery.Each(world, func(entry *donburi.Entry) {
			interp := components.NetInterp.Get(entry)
			if !interp.Initialized || interp.T >= 1 {
				return
			}
			interp.T += dt * float64(rate)
			if interp.T > 1 {
				interp.T = 1
			}
			netcomponents.NetShip.SetValue(entry, *netcomponents.LerpNetShip(interp.Prev, interp.Target, interp.T))
		})
	}
}
