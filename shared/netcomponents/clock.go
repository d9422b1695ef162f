package netcomponents

import "github.com/yohamta/donburi"

// NetSimClockData is the authoritative tick counter, one increment per fixed
// step.
type NetSimClockData struct {
	Tick     uint64
	TickRate int
}

var NetSimClock = donburi.NewComponentType[NetSimClockData]()
