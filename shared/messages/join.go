package messages

import "github.com/leap-fish/necs/esync"

// JoinRequest is sent by a client after connecting to request a ship.
type JoinRequest struct {
	Version   string
	PilotName string
	Blueprint string // empty selects the server default
}

// JoinAccepted is sent by the server when a client's join request is accepted.
type JoinAccepted struct {
	NetworkID  esync.NetworkId // of the pilot's ship
	ServerName string
	TickRate   int
	Blueprint  string
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}
