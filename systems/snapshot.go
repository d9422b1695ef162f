package systems

import (
	"github.com/automoto/thrustcraft-mp/archetypes"
	"github.com/automoto/thrustcraft-mp/components"
	"github.com/automoto/thrustcraft-mp/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
)

// SnapshotResult reports what ApplySnapshot saw of the local ship.
type SnapshotResult struct {
	LocalFound   bool
	LastSequence uint32 // last input the server applied to the local ship
	Ships        int
}

// ApplySnapshot mirrors a server snapshot into world. Entities missing from
// the snapshot are removed. The local ship snaps to the server state; remote
// ships start a new interpolation leg.
func ApplySnapshot(world donburi.World, snapshot esync.WorldSnapshot, localID esync.NetworkId) SnapshotResult {
	var res SnapshotResult
	present := make(map[esync.NetworkId]bool, len(snapshot))

	for _, ent := range snapshot {
		present[ent.Id] = true

		var compData []any
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			compData = append(compData, instance)
		}

		local := ent.Id == localID
		entity := esync.FindByNetworkId(world, ent.Id)
		if !world.Valid(entity) {
			ctypes := componentTypesFromInstances(compData)
			var entry *donburi.Entry
			switch {
			case !hasShip(compData):
				entry = world.Entry(world.Create(ctypes...))
			case local:
				entry = archetypes.LocalShip.Spawn(world, ctypes...)
			default:
				entry = archetypes.RemoteShip.Spawn(world, ctypes...)
			}
			entry.AddComponent(esync.NetworkIdComponent)
			esync.NetworkIdComponent.SetValue(entry, ent.Id)
			entity = entry.Entity()
		}
		entry := world.Entry(entity)

		for _, data := range compData {
			ship, isShip := data.(netcomponents.NetShipData)
			if !isShip {
				applyComponentToEntry(entry, data)
				continue
			}
			res.Ships++
			if local {
				ship.IsLocal = true
				applyComponentToEntry(entry, ship)
				res.LocalFound = true
				res.LastSequence = ship.LastSequence
				continue
			}
			applyRemoteShip(entry, ship)
		}
	}

	var stale []*donburi.Entry
	esync.NetworkEntityQuery.Each(world, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id != nil && !present[*id] {
			stale = append(stale, entry)
		}
	})
	for _, entry := range stale {
		entry.Remove()
	}

	return res
}

func applyRemoteShip(entry *donburi.Entry, ship netcomponents.NetShipData) {
	if !entry.HasComponent(components.NetInterp) {
		applyComponentToEntry(entry, ship)
		return
	}
	interp := components.NetInterp.Get(entry)
	if !interp.Initialized || !entry.HasComponent(netcomponents.NetShip) {
		// First snapshot: place directly, no interpolation
		applyComponentToEntry(entry, ship)
		interp.Prev = ship
		interp.Target = ship
		interp.T = 1
		interp.Initialized = true
		return
	}
	// Start the next leg from wherever the ship is displayed now
	interp.Prev = *netcomponents.NetShip.Get(entry)
	interp.Target = ship
	interp.T = 0
}

func hasShip(components []any) bool {
	for _, data := range components {
		if _, ok := data.(netcomponents.NetShipData); ok {
			return true
		}
	}
	return false
}

func componentTypesFromInstances(components []any) []donburi.IComponentType {
	var ctypes []donburi.IComponentType
	for _, data := range components {
		switch data.(type) {
		case netcomponents.NetShipData:
			ctypes = append(ctypes, netcomponents.NetShip)
		case netcomponents.NetThrusterLayoutData:
			ctypes = append(ctypes, netcomponents.NetThrusterLayout)
		case netcomponents.NetThrusterStatusData:
			ctypes = append(ctypes, netcomponents.NetThrusterStatus)
		case netcomponents.NetSimClockData:
			ctypes = append(ctypes, netcomponents.NetSimClock)
		}
	}
	return ctypes
}

func applyComponentToEntry(entry *donburi.Entry, data any) {
	switch v := data.(type) {
	case netcomponents.NetShipData:
		if !entry.HasComponent(netcomponents.NetShip) {
			entry.AddComponent(netcomponents.NetShip)
		}
		netcomponents.NetShip.SetValue(entry, v)
	case netcomponents.NetThrusterLayoutData:
		if !entry.HasComponent(netcomponents.NetThrusterLayout) {
			entry.AddComponent(netcomponents.NetThrusterLayout)
		}
		netcomponents.NetThrusterLayout.SetValue(entry, v)
	case netcomponents.NetThrusterStatusData:
		if !entry.HasComponent(netcomponents.NetThrusterStatus) {
			entry.AddComponent(netcomponents.NetThrusterStatus)
		}
		netcomponents.NetThrusterStatus.SetValue(entry, v)
	case netcomponents.NetSimClockData:
		if !entry.HasComponent(netcomponents.NetSimClock) {
			entry.AddComponent(netcomponents.NetSimClock)
		}
		netcomponents.NetSimClock.SetValue(entry, v)
	}
}
