package systems

import (
	"github.com/automoto/thrustcraft-mp/components"
	"github.com/automoto/thrustcraft-mp/shared/netcomponents"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// flameEaseTime is how long a flame takes to reach a new intensity, in
// seconds.
const flameEaseTime = 0.15

var flameQuery = donburi.NewQuery(filter.Contains(components.Flames, netcomponents.NetThrusterStatus))

// UpdateFlames eases every flame toward the magnitude of its thruster's
// replicated status.
func UpdateFlames(world donburi.World, dt float64) {
	flameQuery.Each(world, func(entry *donburi.Entry) {
		flames := components.Flames.Get(entry)
		status := netcomponents.NetThrusterStatus.Get(entry)

		for _, r := range status.Readings {
			f := flames.Flame(r.Block)
			target := r.Status
			if target < 0 {
				target = -target
			}
			if !r.Active {
				target = 0
			}
			if target != f.Target {
				f.Target = target
				f.Tween = gween.New(f.Intensity, target, flameEaseTime, ease.OutQuad)
			}
		}

		for i := range flames.Flames {
			f := &flames.Flames[i]
			if f.Tween == nil {
				continue
			}
			v, done := f.Tween.Update(float32(dt))
			f.Intensity = v
			if done {
				f.Intensity = f.Target
				f.Tween = nil
			}
		}
	})
}
