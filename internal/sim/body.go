package sim

import (
	"github.com/san-kum/orbitlab/internal/forces"
	"github.com/san-kum/orbitlab/internal/vec"
)

// Body is one force-bearing object in the world. Position and velocity
// live in the orbital plane; heading and spin carry the planar attitude
// the torque channel drives. Each body owns exactly one force ledger,
// created empty with the body.
type Body struct {
	Name     string
	Mass     float64
	Position vec.Vec2
	Velocity vec.Vec2

	Heading float64
	Spin    float64
	Inertia float64

	ledger  *forces.Ledger
	applied forces.Contribution
}

// NewBody creates a body with an empty ledger and unit moment of
// inertia.
func NewBody(name string, mass float64) *Body {
	return &Body{
		Name:    name,
		Mass:    mass,
		Inertia: 1.0,
		ledger:  forces.NewLedger(),
	}
}

// ForceLedger is where contributor subsystems write their proposals.
func (b *Body) ForceLedger() *forces.Ledger {
	return b.ledger
}

// SetApplied publishes the combined force for this tick. Called by the
// aggregation step only.
func (b *Body) SetApplied(c forces.Contribution) {
	b.applied = c
}

// Applied is the combined force/torque the integrator consumes. It is
// recomputed every tick and never persisted.
func (b *Body) Applied() forces.Contribution {
	return b.applied
}

// integrate advances the body by one semi-implicit Euler step: the
// applied force updates velocity before position, the z torque updates
// spin before heading. Out-of-plane force components do not move a
// planar body.
func (b *Body) integrate(dt float64) {
	if b.Mass > 0 {
		accel := b.applied.Force.Planar().Scale(1 / b.Mass)
		b.Velocity = b.Velocity.Add(accel.Scale(dt))
	}
	b.Position = b.Position.Add(b.Velocity.Scale(dt))

	if b.Inertia > 0 {
		b.Spin += b.applied.Torque.Z / b.Inertia * dt
	}
	b.Heading += b.Spin * dt
}
