package shipsim

import (
	"github.com/automoto/thrustcraft-mp/shared/control"
	"github.com/rs/zerolog"
)

// Simulation steps a World at a fixed rate. One Step is one network tick and
// contains Substeps physics substeps.
type Simulation struct {
	World      *World
	Pilot      Pilot
	Aggregator *Aggregator
	Integrator Integrator
	Substeps   int
	// Tick counts completed steps.
	Tick uint64

	pending Mutations
}

// NewSimulation wires w with the default pilot and an undamped integrator.
func NewSimulation(w *World, log zerolog.Logger) *Simulation {
	return &Simulation{
		World:      w,
		Pilot:      DefaultPilot(),
		Aggregator: NewAggregator(log),
		Integrator: EulerIntegrator{},
		Substeps:   1,
	}
}

// Queue exposes the mutation buffer so callers can schedule despawns that
// take effect in the next Step.
func (s *Simulation) Queue() *Mutations {
	return &s.pending
}

// Step advances one tick of length dt. Within each substep the order is:
// clear transient forces, (first substep only) compute and apply thruster
// strengths, turn strengths into internal forces, aggregate them into the
// parent bodies, integrate.
func (s *Simulation) Step(inputs Inputs, dt float32) {
	substeps := s.Substeps
	if substeps < 1 {
		substeps = 1
	}
	sub := dt / float32(substeps)

	for i := 0; i < substeps; i++ {
		s.World.ClearForces()
		if i == 0 {
			s.Pilot.Plan(s.World, inputs, &s.pending)
			s.pending.Apply(s.World)
		}
		ApplyThrusterForces(s.World)
		s.Aggregator.Sync(s.World)
		if s.Integrator != nil {
			s.Integrator.Integrate(s.World, sub)
		}
	}
	s.Tick++
}

// Config is everything two simulations must share to step identically.
type Config struct {
	TickRate   int                `json:"tickRate"`
	Substeps   int                `json:"substeps"`
	Deadzone   float32            `json:"deadzone"`
	Increments control.Increments `json:"increments"`
	Physics    EulerIntegrator    `json:"physics"`
}

// DefaultConfig is 20 ticks per second with three substeps each.
func DefaultConfig() Config {
	return Config{
		TickRate:   20,
		Substeps:   3,
		Deadzone:   control.DefaultDeadzone,
		Increments: control.DefaultIncrements(),
		Physics: EulerIntegrator{
			LinearDamping:   0.05,
			AngularDamping:  0.5,
			MaxLinearSpeed:  120,
			MaxAngularSpeed: 4,
		},
	}
}

// TickDuration is the simulated time covered by one Step.
func (c Config) TickDuration() float32 {
	if c.TickRate <= 0 {
		return 0
	}
	return 1 / float32(c.TickRate)
}

// New builds a Simulation over w configured by c.
func New(c Config, w *World, log zerolog.Logger) *Simulation {
	s := NewSimulation(w, log)
	s.Substeps = c.Substeps
	s.Pilot = Pilot{Allocator: control.Allocator{Deadzone: c.Deadzone}, Increments: c.Increments}
	s.Integrator = c.Physics
	return s
}
