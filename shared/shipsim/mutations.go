package shipsim

type mutationKind uint8

const (
	mutSetStatus mutationKind = iota
	mutDespawn
)

type mutation struct {
	kind   mutationKind
	target EntityID
	value  float32
}

// Mutations buffers writes computed during a read-only pass. Apply replays
// them in the order they were queued.
type Mutations struct {
	pending []mutation
}

// SetStatus queues a thruster status write.
func (m *Mutations) SetStatus(id EntityID, status float32) {
	m.pending = append(m.pending, mutation{kind: mutSetStatus, target: id, value: status})
}

// Despawn queues removal of id and its descendants.
func (m *Mutations) Despawn(id EntityID) {
	m.pending = append(m.pending, mutation{kind: mutDespawn, target: id})
}

func (m *Mutations) Len() int {
	return len(m.pending)
}

// Apply performs the queued writes and empties the buffer. Writes aimed at
// entities that are gone, or that lack the needed part, are dropped.
func (m *Mutations) Apply(w *World) {
	for _, op := range m.pending {
		switch op.kind {
		case mutSetStatus:
			if e, ok := w.Get(op.target); ok && e.Thruster != nil {
				e.Thruster.ApplyStrength(op.value)
			}
		case mutDespawn:
			w.DespawnTree(op.target)
		}
	}
	m.pending = m.pending[:0]
}
