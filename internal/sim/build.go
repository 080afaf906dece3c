package sim

import (
	"fmt"

	"github.com/san-kum/orbitlab/internal/config"
	"github.com/san-kum/orbitlab/internal/forces"
	"github.com/san-kum/orbitlab/internal/vec"
)

// Build assembles a world from a validated config and returns it with
// the tracked and central bodies resolved. Every gravity-source body
// pulls on every other body under its own ledger key; the configured
// central body writes under the well-known PrimaryGravity key.
func Build(cfg *config.Config) (*World, *Body, *Body, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	w := NewWorld()
	byName := make(map[string]*Body, len(cfg.Bodies))

	for _, bc := range cfg.Bodies {
		b := NewBody(bc.Name, bc.Mass)
		b.Position = vec.Vec2{X: bc.X, Y: bc.Y}
		b.Velocity = vec.Vec2{X: bc.VX, Y: bc.VY}
		if bc.Inertia > 0 {
			b.Inertia = bc.Inertia
		}
		w.AddBody(b)
		byName[bc.Name] = b
	}

	tracked := byName[cfg.Track]
	central := byName[cfg.Central]

	for _, bc := range cfg.Bodies {
		if !bc.GravitySource {
			continue
		}
		source := byName[bc.Name]

		key := forces.GravityKey(bc.Name)
		if bc.Name == cfg.Central {
			key = forces.PrimaryGravity
		}

		for _, other := range w.Bodies {
			if other == source {
				continue
			}
			w.Attach(other, NewGravitySource(key, cfg.G, source))
		}
	}

	for _, bc := range cfg.Bodies {
		if len(bc.Burns) == 0 {
			continue
		}
		burns, err := buildBurns(bc.Burns)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("body %q: %w", bc.Name, err)
		}
		w.Attach(byName[bc.Name], NewThruster(burns, central))
	}

	return w, tracked, central, nil
}

func buildBurns(bcs []config.BurnConfig) ([]Burn, error) {
	burns := make([]Burn, 0, len(bcs))
	for _, bc := range bcs {
		mode, err := parseBurnMode(bc.Direction)
		if err != nil {
			return nil, err
		}
		burns = append(burns, Burn{
			Start:     bc.Start,
			End:       bc.End,
			Thrust:    bc.Thrust,
			Mode:      mode,
			Direction: vec.Vec2{X: bc.FX, Y: bc.FY},
			Torque:    bc.Torque,
		})
	}
	return burns, nil
}

func parseBurnMode(s string) (BurnMode, error) {
	switch s {
	case "", "prograde":
		return Prograde, nil
	case "retrograde":
		return Retrograde, nil
	case "radial":
		return Radial, nil
	case "fixed":
		return Fixed, nil
	default:
		return 0, fmt.Errorf("unknown burn direction %q", s)
	}
}
