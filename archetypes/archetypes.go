package archetypes

import (
	"github.com/automoto/thrustcraft-mp/components"
	"github.com/automoto/thrustcraft-mp/tags"
	"github.com/yohamta/donburi"
)

var (
	RemoteShip = newArchetype(
		tags.Ship,
		components.NetInterp,
		components.Flames,
	)
	LocalShip = newArchetype(
		tags.Ship,
		tags.LocalShip,
		components.Flames,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

// Spawn creates an entity with the archetype's components plus cs.
func (a *archetype) Spawn(world donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return world.Entry(world.Create(all...))
}
