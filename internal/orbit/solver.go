// Package orbit converts an instantaneous position and velocity
// relative to a central mass into classical two-body orbit elements.
//
// The solver is pure and reentrant: no internal state, one state
// vector in, one classified element set out. It may be called
// concurrently from any number of bodies without coordination.
package orbit

import (
	"math"

	"github.com/san-kum/orbitlab/internal/vec"
)

// Class tags the conic an element set describes.
type Class int

const (
	Elliptical Class = iota
	Hyperbolic
	Parabolic
	Degenerate
)

func (c Class) String() string {
	switch c {
	case Elliptical:
		return "elliptical"
	case Hyperbolic:
		return "hyperbolic"
	case Parabolic:
		return "parabolic"
	default:
		return "degenerate"
	}
}

// Elements are the classical two-body orbit elements matching an
// instantaneous state. Apoapsis and periapsis are populated on the
// elliptical branch; a hyperbolic result carries semi-major axis,
// eccentricity, and periapsis only, since its apoapsis is undefined.
type Elements struct {
	SemiMajorAxis float64
	Eccentricity  float64
	Apoapsis      float64
	Periapsis     float64
	Class         Class
}

// Solver computes orbit elements under idealized, non-perturbed
// two-body dynamics. G is an explicit parameter rather than a package
// constant so tests and toy scenarios can pick convenient values.
type Solver struct {
	G float64
}

func NewSolver(g float64) Solver {
	return Solver{G: g}
}

// Solve returns the orbit instantaneously matching the given state:
// central mass m, relative position pos and relative velocity vel,
// both already projected into the orbital plane.
//
// The branch is selected by the sign of the semi-major axis before the
// eccentricity is computed; applying the elliptical relation
// unconditionally drives the radicand negative for valid hyperbolic
// states. Degenerate inputs come back as a typed error, never as NaN.
func (s Solver) Solve(m float64, pos, vel vec.Vec2) (Elements, error) {
	if !(m > 0) || math.IsInf(m, 0) || !(s.G > 0) || math.IsInf(s.G, 0) ||
		!pos.IsFinite() || !vel.IsFinite() {
		return Elements{Class: Degenerate}, ErrDegenerateGeometry
	}

	r, theta := vec.Polar(pos)
	v, psi := vec.Polar(vel)

	if r == 0 {
		return Elements{Class: Degenerate}, ErrDegenerateGeometry
	}

	gm := s.G * m

	// Vis-viva: a = GMr / (2GM - v²r). A vanishing denominator means a
	// parabolic trajectory, reported as its own case rather than ±Inf.
	denom := 2*gm - v*v*r
	if denom == 0 {
		return Elements{Class: Parabolic}, ErrParabolicTrajectory
	}
	a := gm * r / denom

	// rv·sin(ψ−θ) squared equals GMa(1-e²).
	rvsin := r * v * math.Sin(psi-theta)
	gma := gm * a
	radicand := 1 - rvsin*rvsin/gma

	if a > 0 {
		if radicand < 0 {
			return Elements{Class: Degenerate}, ErrNegativeRadicand
		}
		e := math.Sqrt(radicand)
		return Elements{
			SemiMajorAxis: a,
			Eccentricity:  e,
			Apoapsis:      a * (1 + e),
			Periapsis:     a * (1 - e),
			Class:         Elliptical,
		}, nil
	}

	// Hyperbolic branch: gma < 0, so the radicand is >= 1 and e >= 1.
	// Periapsis a(1-e) stays positive; apoapsis has no meaning here.
	e := math.Sqrt(radicand)
	return Elements{
		SemiMajorAxis: a,
		Eccentricity:  e,
		Periapsis:     a * (1 - e),
		Class:         Hyperbolic,
	}, nil
}
