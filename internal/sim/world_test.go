package sim

import (
	"math"
	"testing"

	"github.com/san-kum/orbitlab/internal/forces"
	"github.com/san-kum/orbitlab/internal/vec"
)

type constantSource struct {
	key forces.Key
	c   forces.Contribution
}

func (s *constantSource) Key() forces.Key { return s.key }
func (s *constantSource) Apply(t, dt float64, b *Body) {
	b.ForceLedger().Set(s.key, s.c)
}

func TestStepStageOrdering(t *testing.T) {
	w := NewWorld()
	b := NewBody("probe", 1.0)
	w.AddBody(b)

	w.Attach(b, &constantSource{key: forces.CustomKey("a"), c: forces.Contribution{Force: vec.Vec3{X: 1}}})
	w.Attach(b, &constantSource{key: forces.CustomKey("b"), c: forces.Contribution{Force: vec.Vec3{X: 2}}})

	w.Step(0, 1.0)

	// Aggregation ran after both writes: the integrator saw the sum.
	if got := b.Applied().Force.X; got != 3 {
		t.Errorf("expected applied force 3, got %f", got)
	}

	// Semi-implicit step with m=1, F=3, dt=1: v=3 then x=3.
	if b.Velocity.X != 3 {
		t.Errorf("expected velocity 3, got %f", b.Velocity.X)
	}
	if b.Position.X != 3 {
		t.Errorf("expected position 3, got %f", b.Position.X)
	}
}

func TestGravityCircularOrbitHoldsRadius(t *testing.T) {
	w := NewWorld()
	planet := NewBody("planet", 1000.0)
	ship := NewBody("ship", 1.0)
	ship.Position = vec.Vec2{X: 100}
	ship.Velocity = vec.Vec2{Y: math.Sqrt(10)} // circular speed for G=1

	w.AddBody(planet)
	w.AddBody(ship)
	w.Attach(ship, NewGravitySource(forces.PrimaryGravity, 1.0, planet))

	dt := 0.01
	period := 2 * math.Pi * 100 / math.Sqrt(10)
	steps := int(period / dt)

	t0 := 0.0
	for i := 0; i < steps; i++ {
		w.Step(t0, dt)
		t0 += dt

		r := ship.Position.Length()
		if math.Abs(r-100) > 1.0 {
			t.Fatalf("radius drifted to %f at step %d", r, i)
		}
	}

	// The planet has no sources attached and must not have moved.
	if planet.Position != (vec.Vec2{}) {
		t.Errorf("planet moved to %v", planet.Position)
	}
}

func TestGravityCoincidentBodiesContributeNothing(t *testing.T) {
	w := NewWorld()
	planet := NewBody("planet", 1000.0)
	probe := NewBody("probe", 1.0) // same position as the planet

	w.AddBody(planet)
	w.AddBody(probe)
	w.Attach(probe, NewGravitySource(forces.PrimaryGravity, 1.0, planet))

	w.Step(0, 0.1)

	if !probe.Applied().IsZero() {
		t.Errorf("coincident gravity should apply zero, got %+v", probe.Applied())
	}
	if !probe.Applied().Force.IsFinite() {
		t.Error("applied force must stay finite")
	}
}

func TestThrusterBurnWindows(t *testing.T) {
	ship := NewBody("ship", 1.0)
	ship.Velocity = vec.Vec2{Y: 1}

	th := NewThruster([]Burn{{Start: 1, End: 2, Thrust: 5, Mode: Prograde}}, nil)

	th.Apply(0.5, 0.1, ship)
	if got := ship.ForceLedger().Get(forces.Thrusters); !got.IsZero() {
		t.Errorf("before the window the entry should be zero, got %+v", got)
	}
	if ship.ForceLedger().Len() != 1 {
		t.Error("inactive thruster must still hold its ledger slot")
	}

	th.Apply(1.5, 0.1, ship)
	got := ship.ForceLedger().Get(forces.Thrusters)
	if math.Abs(got.Force.Y-5) > 1e-12 || math.Abs(got.Force.X) > 1e-12 {
		t.Errorf("expected prograde force (0,5), got %+v", got.Force)
	}

	th.Apply(2.0, 0.1, ship)
	if got := ship.ForceLedger().Get(forces.Thrusters); !got.IsZero() {
		t.Errorf("after the window the entry should be zero again, got %+v", got)
	}
}

func TestThrusterDirections(t *testing.T) {
	planet := NewBody("planet", 1000.0)
	ship := NewBody("ship", 1.0)
	ship.Position = vec.Vec2{X: 10}
	ship.Velocity = vec.Vec2{Y: 2}

	tests := []struct {
		name string
		burn Burn
		want vec.Vec2
	}{
		{"prograde", Burn{End: 1, Thrust: 4, Mode: Prograde}, vec.Vec2{Y: 4}},
		{"retrograde", Burn{End: 1, Thrust: 4, Mode: Retrograde}, vec.Vec2{Y: -4}},
		{"radial", Burn{End: 1, Thrust: 4, Mode: Radial}, vec.Vec2{X: 4}},
		{"fixed", Burn{End: 1, Thrust: 4, Mode: Fixed, Direction: vec.Vec2{X: -1}}, vec.Vec2{X: -4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := NewThruster([]Burn{tt.burn}, planet)
			th.Apply(0.5, 0.1, ship)

			got := ship.ForceLedger().Get(forces.Thrusters).Force.Planar()
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTorqueSpinsBody(t *testing.T) {
	w := NewWorld()
	ship := NewBody("ship", 1.0)
	ship.Inertia = 2.0
	w.AddBody(ship)

	w.Attach(ship, NewThruster([]Burn{{End: 10, Torque: 4}}, nil))

	w.Step(0, 0.5)

	// spin = torque/inertia * dt = 1; heading = spin * dt = 0.5
	if math.Abs(ship.Spin-1.0) > 1e-12 {
		t.Errorf("expected spin 1.0, got %f", ship.Spin)
	}
	if math.Abs(ship.Heading-0.5) > 1e-12 {
		t.Errorf("expected heading 0.5, got %f", ship.Heading)
	}
}

func TestLedgersAreBodyExclusive(t *testing.T) {
	w := NewWorld()
	a := NewBody("a", 1.0)
	b := NewBody("b", 1.0)
	w.AddBody(a)
	w.AddBody(b)

	w.Attach(a, &constantSource{key: forces.CustomKey("x"), c: forces.Contribution{Force: vec.Vec3{X: 1}}})

	w.Step(0, 1.0)

	if b.ForceLedger().Len() != 0 {
		t.Error("source attached to a wrote into b's ledger")
	}
	if !b.Applied().IsZero() {
		t.Errorf("body b should see zero combined force, got %+v", b.Applied())
	}
}
