package sim

import "github.com/san-kum/orbitlab/internal/forces"

// World holds the bodies and the contributor sources attached to each.
// Step drives the per-tick stage order the force layer relies on:
// every contributor writes, then aggregation publishes, then the
// integrator consumes. Sources attached to different bodies never
// touch each other's ledgers.
type World struct {
	Bodies []*Body

	sources  map[*Body][]Source
	appliers []forces.Applier
}

func NewWorld() *World {
	return &World{sources: make(map[*Body][]Source)}
}

func (w *World) AddBody(b *Body) {
	w.Bodies = append(w.Bodies, b)
	w.appliers = append(w.appliers, b)
}

// Attach registers a contributor source for a body. Attaching two
// sources with the same key to one body makes the later write win,
// exactly as two set calls under one key would.
func (w *World) Attach(b *Body, s Source) {
	w.sources[b] = append(w.sources[b], s)
}

// Find returns the body with the given name, or nil.
func (w *World) Find(name string) *Body {
	for _, b := range w.Bodies {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// Step advances the world one tick of length dt starting at time t.
func (w *World) Step(t, dt float64) {
	// Stage 1: contributor writes.
	for _, b := range w.Bodies {
		for _, s := range w.sources[b] {
			s.Apply(t, dt, b)
		}
	}

	// Stage 2: aggregation, once per tick.
	forces.Aggregate(w.appliers)

	// Stage 3: integration.
	for _, b := range w.Bodies {
		b.integrate(dt)
	}
}
