package protocol

import (
	"github.com/automoto/thrustcraft-mp/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetShip           uint = 10
	SyncIDNetThrusterLayout uint = 11
	SyncIDNetThrusterStatus uint = 12
	SyncIDNetSimClock       uint = 13
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetShip uint8 = 10
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetShip,
		netcomponents.NetShipData{},
		netcomponents.NetShip,
		esync.WithInterpFn(InterpIDNetShip, netcomponents.LerpNetShip),
	); err != nil {
		return err
	}

	// Layout never changes after spawn
	if err := esync.RegisterComponent(
		SyncIDNetThrusterLayout,
		netcomponents.NetThrusterLayoutData{},
		netcomponents.NetThrusterLayout,
	); err != nil {
		return err
	}

	// Status: discrete per tick, no interpolation
	if err := esync.RegisterComponent(
		SyncIDNetThrusterStatus,
		netcomponents.NetThrusterStatusData{},
		netcomponents.NetThrusterStatus,
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetSimClock,
		netcomponents.NetSimClockData{},
		netcomponents.NetSimClock,
	); err != nil {
		return err
	}

	return nil
}
