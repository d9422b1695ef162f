// Package blueprint describes ship assemblies declaratively and stamps them
// into a shipsim.World.
package blueprint

import (
	"errors"
	"fmt"

	"github.com/automoto/thrustcraft-mp/shared/control"
	"github.com/automoto/thrustcraft-mp/shared/gamemath"
	"github.com/automoto/thrustcraft-mp/shared/shipsim"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

var (
	ErrNoThrusters    = errors.New("blueprint has no thrusters")
	ErrDuplicateBlock = errors.New("duplicate thruster block id")
	ErrInvalidPart    = errors.New("invalid part")
)

// Blueprint turns a declarative descriptor into spawned state using the
// handles bundled in Ctx.
type Blueprint[Ctx any, Output any] interface {
	Stamp(ctx *Ctx) Output
}

// StampContext is what a ship needs to be stamped.
type StampContext struct {
	World *shipsim.World
	// Pose is the world placement of the ship body.
	Pose gamemath.Transform
	Log  zerolog.Logger
}

// PartContext is what a single part needs: the world and the ship it
// attaches to.
type PartContext struct {
	World  *shipsim.World
	Parent shipsim.EntityID
}

type PartKind string

const (
	PartHull     PartKind = "hull"
	PartThruster PartKind = "thruster"
)

// Part is one block of a ship. Position is relative to the ship origin;
// Facing is the direction the nozzle points, so a thruster pushes the ship
// the opposite way.
type Part struct {
	Kind       PartKind  `yaml:"kind"`
	Name       string    `yaml:"name,omitempty"`
	Block      uint32    `yaml:"block,omitempty"`
	Position   []float32 `yaml:"position"`
	Facing     []float32 `yaml:"facing,omitempty"`
	Mass       float32   `yaml:"mass"`
	Strength   float32   `yaml:"strength,omitempty"`
	Reversible bool      `yaml:"reversible,omitempty"`
}

func (p Part) position() mgl32.Vec3 {
	return toVec(p.Position)
}

// Transform is the part's placement within the ship.
func (p Part) Transform() gamemath.Transform {
	return gamemath.FacingTransform(p.position(), toVec(p.Facing))
}

func (p Part) validate() error {
	if len(p.Position) != 3 {
		return fmt.Errorf("%w: %q position needs 3 components, got %d", ErrInvalidPart, p.Name, len(p.Position))
	}
	if p.Mass < 0 {
		return fmt.Errorf("%w: %q has negative mass", ErrInvalidPart, p.Name)
	}
	switch p.Kind {
	case PartHull:
		return nil
	case PartThruster:
		if len(p.Facing) != 3 || toVec(p.Facing).Len() == 0 {
			return fmt.Errorf("%w: thruster %q needs a non-zero facing", ErrInvalidPart, p.Name)
		}
		if p.Strength <= 0 {
			return fmt.Errorf("%w: thruster %q needs a positive strength", ErrInvalidPart, p.Name)
		}
		return nil
	}
	return fmt.Errorf("%w: %q has unknown kind %q", ErrInvalidPart, p.Name, p.Kind)
}

// Stamp spawns the part as a child of ctx.Parent.
func (p Part) Stamp(ctx *PartContext) shipsim.EntityID {
	e := shipsim.Entity{
		Name:   p.Name,
		Parent: ctx.Parent,
		Local:  p.Transform(),
		Mass:   p.Mass,
	}
	if p.Kind == PartThruster {
		e.Thruster = &shipsim.Thruster{
			BlockID:        control.ThrusterID(p.Block),
			StrengthFactor: p.Strength,
			Reversible:     p.Reversible,
		}
	}
	return ctx.World.Spawn(e)
}

// ShipBlueprint is a complete ship. Inertia is derived from the parts when
// left at zero.
type ShipBlueprint struct {
	Name    string  `yaml:"name"`
	Inertia float32 `yaml:"inertia,omitempty"`
	Parts   []Part  `yaml:"parts"`
}

var (
	_ Blueprint[StampContext, shipsim.EntityID] = ShipBlueprint{}
	_ Blueprint[PartContext, shipsim.EntityID]  = Part{}
)

// Validate checks the blueprint can be stamped into a flyable ship.
func (b ShipBlueprint) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("%w: blueprint has no name", ErrInvalidPart)
	}
	seen := make(map[uint32]string)
	thrusters := 0
	for _, p := range b.Parts {
		if err := p.validate(); err != nil {
			return fmt.Errorf("blueprint %q: %w", b.Name, err)
		}
		if p.Kind != PartThruster {
			continue
		}
		thrusters++
		if other, dup := seen[p.Block]; dup {
			return fmt.Errorf("blueprint %q: %w: %d used by %q and %q", b.Name, ErrDuplicateBlock, p.Block, other, p.Name)
		}
		seen[p.Block] = p.Name
	}
	if thrusters == 0 {
		return fmt.Errorf("blueprint %q: %w", b.Name, ErrNoThrusters)
	}
	if b.TotalMass() <= 0 {
		return fmt.Errorf("blueprint %q: %w: ship is massless", b.Name, ErrInvalidPart)
	}
	return nil
}

// TotalMass sums every part.
func (b ShipBlueprint) TotalMass() float32 {
	var m float32
	for _, p := range b.Parts {
		m += p.Mass
	}
	return m
}

// CenterOfMass is the mass-weighted mean of the part positions.
func (b ShipBlueprint) CenterOfMass() mgl32.Vec3 {
	total := b.TotalMass()
	if total <= 0 {
		return mgl32.Vec3{}
	}
	var sum mgl32.Vec3
	for _, p := range b.Parts {
		sum = sum.Add(p.position().Mul(p.Mass))
	}
	return sum.Mul(1 / total)
}

// MomentOfInertia is Inertia, or the point-mass sum about the centre of
// mass, never below 1.
func (b ShipBlueprint) MomentOfInertia() float32 {
	if b.Inertia > 0 {
		return b.Inertia
	}
	com := b.CenterOfMass()
	var i float32
	for _, p := range b.Parts {
		r := p.position().Sub(com)
		i += p.Mass * r.Dot(r)
	}
	if i < 1 {
		return 1
	}
	return i
}

// Thrusters returns the thruster parts in declaration order.
func (b ShipBlueprint) Thrusters() []Part {
	var out []Part
	for _, p := range b.Parts {
		if p.Kind == PartThruster {
			out = append(out, p)
		}
	}
	return out
}

// Stamp spawns the ship body and every part. The blueprint is assumed valid.
func (b ShipBlueprint) Stamp(ctx *StampContext) shipsim.EntityID {
	pose := ctx.Pose
	ship := ctx.World.Spawn(shipsim.Entity{
		Name: b.Name,
		Body: &shipsim.RigidBody{
			Position:     pose.Translation,
			Rotation:     pose.Rot(),
			CenterOfMass: b.CenterOfMass(),
			Mass:         b.TotalMass(),
			Inertia:      b.MomentOfInertia(),
		},
	})

	pc := PartContext{World: ctx.World, Parent: ship}
	for _, p := range b.Parts {
		p.Stamp(&pc)
	}

	ctx.Log.Debug().
		Str("blueprint", b.Name).
		Uint32("ship", uint32(ship)).
		Int("parts", len(b.Parts)).
		Msg("ship stamped")
	return ship
}

func toVec(v []float32) mgl32.Vec3 {
	if len(v) != 3 {
		return mgl32.Vec3{}
	}
	return mgl32.Vec3{v[0], v[1], v[2]}
}
