package shipsim

import (
	"github.com/rs/zerolog"
)

// Diagnostic identifies why the aggregator skipped a child.
type Diagnostic uint8

const (
	// DiagPersistentConflict: the parent's accumulator is persistent and
	// cannot take per-step contributions.
	DiagPersistentConflict Diagnostic = iota + 1
	// DiagMissingParent: the parent ID does not resolve to a live entity.
	DiagMissingParent
	// DiagParentNotRigid: the parent exists but has no rigid body.
	DiagParentNotRigid
)

func (d Diagnostic) String() string {
	switch d {
	case DiagPersistentConflict:
		return "persistent_conflict"
	case DiagMissingParent:
		return "missing_parent"
	case DiagParentNotRigid:
		return "parent_not_rigid"
	}
	return "unknown"
}

type diagKey struct {
	kind  Diagnostic
	child EntityID
}

// Aggregator folds InternalForce contributions of child entities into the
// external force accumulator of their rigid body parent. Sync is not
// idempotent: calling it twice without a ClearForces in between adds every
// contribution twice.
//
// Each offending child is reported once per occurrence. The report re-arms
// once a pass runs in which the condition no longer holds.
type Aggregator struct {
	log zerolog.Logger

	// OnDiagnostic, if set, is called alongside every logged report.
	OnDiagnostic func(kind Diagnostic, child, parent EntityID)

	reported map[diagKey]struct{}
	seen     map[diagKey]struct{}
}

func NewAggregator(log zerolog.Logger) *Aggregator {
	return &Aggregator{
		log:      log,
		reported: make(map[diagKey]struct{}),
		seen:     make(map[diagKey]struct{}),
	}
}

// Sync runs one aggregation pass over w.
func (a *Aggregator) Sync(w *World) {
	clear(a.seen)

	w.Each(func(child *Entity) {
		if child.InternalForce == nil || child.Parent == NoEntity {
			return
		}

		parent, ok := w.Get(child.Parent)
		if !ok {
			a.report(DiagMissingParent, child.ID, child.Parent)
			return
		}
		if parent.Body == nil {
			a.report(DiagParentNotRigid, child.ID, parent.ID)
			return
		}

		body := parent.Body
		if body.External.Persistent {
			a.report(DiagPersistentConflict, child.ID, parent.ID)
			return
		}

		pose := body.Transform()
		point := pose.Apply(child.Local.Translation)
		force := child.InternalForce.Force
		if child.InternalForce.Frame == FrameLocal {
			force = pose.Mul(child.Local).ApplyVector(force)
		}
		body.External.AddAtPoint(force, point, body.WorldCenterOfMass())
	})

	for k := range a.reported {
		if _, still := a.seen[k]; !still {
			delete(a.reported, k)
		}
	}
}

func (a *Aggregator) report(kind Diagnostic, child, parent EntityID) {
	k := diagKey{kind: kind, child: child}
	a.seen[k] = struct{}{}
	if _, done := a.reported[k]; done {
		return
	}
	a.reported[k] = struct{}{}

	a.log.Warn().Str("diagnostic", kind.String()).
		Uint32("child", uint32(child)).
		Uint32("parent", uint32(parent)).
		Msg("internal force skipped")

	if a.OnDiagnostic != nil {
		a.OnDiagnostic(kind, child, parent)
	}
}
