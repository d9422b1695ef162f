package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// Flame is the displayed exhaust of one thruster. Intensity eases toward the
// magnitude of the replicated status.
type Flame struct {
	Block     uint32
	Intensity float32
	Target    float32
	Tween     *gween.Tween
}

type FlamesData struct {
	Flames []Flame
}

// Flame returns the flame for block, adding one at zero intensity if needed.
func (d *FlamesData) Flame(block uint32) *Flame {
	for i := range d.Flames {
		if d.Flames[i].Block == block {
			return &d.Flames[i]
		}
	}
	d.Flames = append(d.Flames, Flame{Block: block})
	return &d.Flames[len(d.Flames)-1]
}

var Flames = donburi.NewComponentType[FlamesData]()
