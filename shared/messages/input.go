package messages

import "github.com/automoto/thrustcraft-mp/shared/netconfig"

// PlayerInput is sent from client to server each tick with the pilot's held
// actions. Input is boolean flags only.
type PlayerInput struct {
	Sequence  uint32              // Incrementing ID, echoed back in NetShip.LastSequence
	Actions   netconfig.ActionSet // Which actions are currently held
	Timestamp int64               // Client timestamp (Unix ms)
}

// NewPlayerInput creates a PlayerInput holding the given actions.
func NewPlayerInput(seq uint32, actions ...netconfig.ActionID) PlayerInput {
	return PlayerInput{
		Sequence: seq,
		Actions:  netconfig.NewActionSet(actions...),
	}
}
