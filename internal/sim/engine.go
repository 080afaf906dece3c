// Package sim runs the fixed-tick update loop: contributor sources
// write force proposals, the aggregation step combines them, a
// semi-implicit Euler integrator consumes the result, and the orbit
// solver is consulted each tick for the tracked body's elements.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/orbitlab/internal/orbit"
)

// Config holds the engine's run parameters.
type Config struct {
	Dt       float64
	Duration float64
}

// Observer is notified after every completed tick.
type Observer interface {
	OnTick(t float64, w *World)
}

// Sample is one tick's reading of the tracked body. Valid is false
// when the solver reported a degenerate state for that tick; the
// display layer skips such readings instead of failing.
type Sample struct {
	Time     float64
	Radius   float64
	X, Y     float64
	VX, VY   float64
	Elements orbit.Elements
	Valid    bool
}

// Result collects a run's track for the display and export layers.
type Result struct {
	Samples         []Sample
	StepsTaken      int
	DegenerateTicks int
}

// Engine drives a world and solves the tracked body's orbit relative
// to a central body every tick.
type Engine struct {
	world     *World
	solver    orbit.Solver
	observers []Observer
}

func NewEngine(w *World, solver orbit.Solver) *Engine {
	return &Engine{world: w, solver: solver}
}

func (e *Engine) AddObserver(o Observer) {
	e.observers = append(e.observers, o)
}

func (e *Engine) World() *World {
	return e.world
}

// Run advances the world for cfg.Duration in fixed ticks of cfg.Dt,
// sampling tracked's state relative to central after every tick. On
// cancellation the partial result is returned alongside the context
// error.
func (e *Engine) Run(ctx context.Context, tracked, central *Body, cfg Config) (*Result, error) {
	if err := e.validate(tracked, central, cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{Samples: make([]Sample, 0, steps)}

	t := 0.0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		e.world.Step(t, cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++

		result.Samples = append(result.Samples, e.sample(t, tracked, central, result))

		for _, o := range e.observers {
			o.OnTick(t, e.world)
		}
	}

	return result, nil
}

func (e *Engine) sample(t float64, tracked, central *Body, result *Result) Sample {
	rel := tracked.Position.Sub(central.Position)
	relV := tracked.Velocity.Sub(central.Velocity)

	s := Sample{
		Time:   t,
		Radius: rel.Length(),
		X:      rel.X,
		Y:      rel.Y,
		VX:     relV.X,
		VY:     relV.Y,
	}

	el, err := e.solver.Solve(central.Mass, rel, relV)
	if err != nil {
		result.DegenerateTicks++
		return s
	}

	s.Elements = el
	s.Valid = true
	return s
}

func (e *Engine) validate(tracked, central *Body, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if tracked == nil || central == nil {
		return fmt.Errorf("tracked and central bodies are required")
	}
	if tracked == central {
		return fmt.Errorf("tracked body cannot orbit itself")
	}
	return nil
}
