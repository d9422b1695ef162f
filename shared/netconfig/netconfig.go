// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on any graphics
// library so the dedicated server binary stays headless.
package netconfig

import (
	"fmt"
	"strings"
)

// ActionID identifies one boolean pilot control.
type ActionID int

const (
	ActionNone ActionID = iota
	ActionThrustForward
	ActionThrustBackward
	ActionStrafeLeft
	ActionStrafeRight
	ActionRise
	ActionSink
	ActionYawLeft
	ActionYawRight
	ActionPitchUp
	ActionPitchDown
	ActionRollLeft
	ActionRollRight
	ActionCount // Must be last - used for array sizing
)

var actionNames = map[ActionID]string{
	ActionThrustForward:  "forward",
	ActionThrustBackward: "backward",
	ActionStrafeLeft:     "strafe_left",
	ActionStrafeRight:    "strafe_right",
	ActionRise:           "rise",
	ActionSink:           "sink",
	ActionYawLeft:        "yaw_left",
	ActionYawRight:       "yaw_right",
	ActionPitchUp:        "pitch_up",
	ActionPitchDown:      "pitch_down",
	ActionRollLeft:       "roll_left",
	ActionRollRight:      "roll_right",
}

func (a ActionID) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionByName resolves a config/script name such as "yaw_left".
func ActionByName(name string) (ActionID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for id, n := range actionNames {
		if n == name {
			return id, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", name)
}

// ActionSet is a bitset of held actions. It is what travels on the wire, so
// the same input always encodes to the same bytes.
type ActionSet uint32

// NewActionSet returns a set holding the given actions.
func NewActionSet(actions ...ActionID) ActionSet {
	var s ActionSet
	for _, a := range actions {
		s = s.With(a)
	}
	return s
}

// With returns the set with a added.
func (s ActionSet) With(a ActionID) ActionSet {
	if a <= ActionNone || a >= ActionCount {
		return s
	}
	return s | 1<<uint(a)
}

// Without returns the set with a removed.
func (s ActionSet) Without(a ActionID) ActionSet {
	if a <= ActionNone || a >= ActionCount {
		return s
	}
	return s &^ (1 << uint(a))
}

// Has reports whether a is held.
func (s ActionSet) Has(a ActionID) bool {
	if a <= ActionNone || a >= ActionCount {
		return false
	}
	return s&(1<<uint(a)) != 0
}

// Names lists held actions in ActionID order.
func (s ActionSet) Names() []string {
	var out []string
	for a := ActionNone + 1; a < ActionCount; a++ {
		if s.Has(a) {
			out = append(out, a.String())
		}
	}
	return out
}

func (s ActionSet) String() string {
	return "[" + strings.Join(s.Names(), " ") + "]"
}
