package tags

import "github.com/yohamta/donburi"

var (
	Ship      = donburi.NewTag().SetName("Ship")
	LocalShip = donburi.NewTag().SetName("LocalShip")
)
