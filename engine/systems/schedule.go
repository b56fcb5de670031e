package systems

import (
	"github.com/raoe/engine/engine/core"
	"github.com/raoe/engine/engine/ecs"
)

// SystemFn is one system: a function run over the world when its phase
// executes.
type SystemFn func(world *ecs.World, delta float64)

// Schedule owns one phase chain and the systems attached to it. Phases
// execute in topological order; within a phase, systems execute in
// registration order, stable from tick to tick.
type Schedule struct {
	world   *ecs.World
	order   []Phase
	systems map[Phase][]SystemFn
}

// NewSchedule registers the chain's phase entities on the world and
// resolves their execution order.
func NewSchedule(world *ecs.World, chain []Phase) *Schedule {
	registerPhases(world, chain)
	return &Schedule{
		world:   world,
		order:   sortPhases(world, chain),
		systems: make(map[Phase][]SystemFn),
	}
}

// Attach appends a system to a phase.
func (s *Schedule) Attach(phase Phase, fn SystemFn) {
	known := false
	for _, p := range s.order {
		if p == phase {
			known = true
			break
		}
	}
	if !known {
		core.Panicf("cannot attach system to unknown phase %q", phase)
	}
	s.systems[phase] = append(s.systems[phase], fn)
}

// Run executes one full pass over the chain.
func (s *Schedule) Run(delta float64) {
	for _, phase := range s.order {
		for _, fn := range s.systems[phase] {
			fn(s.world, delta)
		}
	}
}

// Order exposes the resolved phase order.
func (s *Schedule) Order() []Phase {
	return s.order
}
