package orbit

import "errors"

// Degenerate-state markers. Every failure is local and recoverable:
// the caller skips that tick's reading instead of crashing, and no
// NaN or Inf ever leaves the solver.
var (
	// ErrParabolicTrajectory indicates v²r == 2GM exactly, where the
	// vis-viva denominator vanishes and the semi-major axis is undefined.
	ErrParabolicTrajectory = errors.New("orbit: parabolic trajectory (vis-viva denominator is zero)")

	// ErrNegativeRadicand indicates the eccentricity radicand went
	// negative on the elliptical branch.
	ErrNegativeRadicand = errors.New("orbit: negative eccentricity radicand for elliptical state")

	// ErrDegenerateGeometry indicates an input the two-body model cannot
	// describe: zero radius, non-positive central mass, or a non-finite
	// state vector.
	ErrDegenerateGeometry = errors.New("orbit: degenerate geometry")
)
