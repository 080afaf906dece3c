// Package forces lets independent subsystems each propose a force and
// torque on a body without clobbering one another. Every contributor
// owns one keyed slot in a per-body ledger; once per tick the
// aggregation step folds all slots into the single value the physics
// integrator consumes.
package forces

import "github.com/san-kum/orbitlab/internal/vec"

// Key identifies one force-contributing subsystem. Keys form a closed,
// enumerated set rather than relying on call-site identity: two
// contributors collide only if they deliberately share a key.
type Key string

// Well-known contributors.
const (
	Thrusters      Key = "thrusters"
	PrimaryGravity Key = "primary-gravity"
)

// GravityKey derives the key for a configured gravity source, so N
// gravity bodies get N distinct slots.
func GravityKey(name string) Key {
	return Key("gravity/" + name)
}

// CustomKey derives a key for an application-defined contributor.
func CustomKey(name string) Key {
	return Key("custom/" + name)
}

// Contribution is one subsystem's proposed force and torque for the
// current tick. Both vectors are expected finite.
type Contribution struct {
	Force  vec.Vec3
	Torque vec.Vec3
}

// Add combines two contributions componentwise.
func (c Contribution) Add(o Contribution) Contribution {
	return Contribution{
		Force:  c.Force.Add(o.Force),
		Torque: c.Torque.Add(o.Torque),
	}
}

func (c Contribution) IsZero() bool {
	return c.Force.IsZero() && c.Torque.IsZero()
}
