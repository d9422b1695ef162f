package network

import (
	"time"

	"github.com/automoto/thrustcraft-mp/shared/messages"
)

const historySize = 64

// InputHistory is a ring buffer of recently sent inputs, used to resend
// inputs the server has not acknowledged and to measure round trip time.
type InputHistory struct {
	history [historySize]messages.PlayerInput
	nextSeq uint32
}

// Next stamps actions with the next sequence number and the current time,
// and stores the result.
func (h *InputHistory) Next(in messages.PlayerInput, now time.Time) messages.PlayerInput {
	if h.nextSeq == 0 {
		h.nextSeq = 1 // the server treats 0 as "nothing applied yet"
	}
	in.Sequence = h.nextSeq
	in.Timestamp = now.UnixMilli()
	h.Store(in)
	return in
}

// Store saves an input under its sequence number.
func (h *InputHistory) Store(in messages.PlayerInput) {
	h.history[in.Sequence%historySize] = in
	h.nextSeq = in.Sequence + 1
}

// Get retrieves a stored input. Returns false if not found or if the slot has
// been overwritten.
func (h *InputHistory) Get(seq uint32) (messages.PlayerInput, bool) {
	in := h.history[seq%historySize]
	if in.Sequence != seq || seq == 0 {
		return messages.PlayerInput{}, false
	}
	return in, true
}

// NextSeq returns the sequence number the next input will get.
func (h *InputHistory) NextSeq() uint32 {
	return h.nextSeq
}

// Unacknowledged returns stored inputs with sequence numbers greater than
// lastAcked, oldest first.
func (h *InputHistory) Unacknowledged(lastAcked uint32) []messages.PlayerInput {
	var out []messages.PlayerInput
	for seq := lastAcked + 1; seq < h.nextSeq; seq++ {
		if in, ok := h.Get(seq); ok {
			out = append(out, in)
		}
	}
	return out
}

// RoundTrip is the time since the acknowledged input was sent.
func (h *InputHistory) RoundTrip(acked uint32, now time.Time) (time.Duration, bool) {
	in, ok := h.Get(acked)
	if !ok {
		return 0, false
	}
	return now.Sub(time.UnixMilli(in.Timestamp)), true
}
