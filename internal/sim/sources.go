package sim

import (
	"github.com/san-kum/orbitlab/internal/forces"
	"github.com/san-kum/orbitlab/internal/vec"
)

// Source is a contributor subsystem: every tick it writes exactly one
// entry, under its own key, into the ledger of the body it is attached
// to. An inactive source writes the zero contribution rather than
// skipping the write, so stale proposals never linger.
type Source interface {
	Key() forces.Key
	Apply(t, dt float64, b *Body)
}

// GravitySource pulls a body toward a central body with an
// inverse-square force. One instance per gravity body; each gets its
// own ledger key, so any number of sources coexist without collisions.
type GravitySource struct {
	key     forces.Key
	g       float64
	central *Body
}

func NewGravitySource(key forces.Key, g float64, central *Body) *GravitySource {
	return &GravitySource{key: key, g: g, central: central}
}

func (gs *GravitySource) Key() forces.Key { return gs.key }

func (gs *GravitySource) Apply(t, dt float64, b *Body) {
	rel := b.Position.Sub(gs.central.Position)
	r2 := rel.LengthSquared()
	if r2 == 0 {
		// Coincident bodies have no defined direction; contribute nothing.
		b.ForceLedger().Set(gs.key, forces.Contribution{})
		return
	}

	mag := gs.g * gs.central.Mass * b.Mass / r2
	pull := rel.Normalize().Scale(-mag)

	b.ForceLedger().Set(gs.key, forces.Contribution{Force: vec.FromPlanar(pull)})
}

// BurnMode selects how a burn's thrust direction is resolved each tick.
type BurnMode int

const (
	// Prograde thrusts along the body's velocity relative to the
	// reference body.
	Prograde BurnMode = iota
	// Retrograde thrusts against it.
	Retrograde
	// Radial thrusts outward along the position relative to the
	// reference body.
	Radial
	// Fixed thrusts along a constant plane direction.
	Fixed
)

// Burn is one window of an open-loop thrust program.
type Burn struct {
	Start     float64
	End       float64
	Thrust    float64
	Mode      BurnMode
	Direction vec.Vec2 // used by Fixed
	Torque    float64  // spin torque about the plane normal
}

func (bn Burn) active(t float64) bool {
	return t >= bn.Start && t < bn.End
}

// Thruster executes a burn schedule. Directions are resolved against
// ref when set, the world origin otherwise. Outside every burn window
// the thruster stays registered in the ledger with a zero entry.
type Thruster struct {
	key   forces.Key
	burns []Burn
	ref   *Body
}

func NewThruster(burns []Burn, ref *Body) *Thruster {
	return &Thruster{key: forces.Thrusters, burns: burns, ref: ref}
}

func (th *Thruster) Key() forces.Key { return th.key }

func (th *Thruster) Apply(t, dt float64, b *Body) {
	var c forces.Contribution
	for _, bn := range th.burns {
		if !bn.active(t) {
			continue
		}

		dir := th.direction(bn, b)
		c.Force = c.Force.Add(vec.FromPlanar(dir.Scale(bn.Thrust)))
		c.Torque = c.Torque.Add(vec.Vec3{Z: bn.Torque})
	}
	b.ForceLedger().Set(th.key, c)
}

func (th *Thruster) direction(bn Burn, b *Body) vec.Vec2 {
	switch bn.Mode {
	case Prograde, Retrograde:
		v := b.Velocity
		if th.ref != nil {
			v = v.Sub(th.ref.Velocity)
		}
		dir := v.Normalize()
		if dir == (vec.Vec2{}) {
			// No velocity to align with; fall back to the heading.
			dir = vec.FromPolar(1, b.Heading)
		}
		if bn.Mode == Retrograde {
			dir = dir.Scale(-1)
		}
		return dir
	case Radial:
		p := b.Position
		if th.ref != nil {
			p = p.Sub(th.ref.Position)
		}
		return p.Normalize()
	default:
		return bn.Direction.Normalize()
	}
}
