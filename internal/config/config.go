package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultG is the physical gravitational constant the original
	// scenarios used. Toy presets override it; nothing hard-codes it.
	DefaultG        = 6.6e-11
	DefaultDt       = 1.0
	DefaultDuration = 5600.0
)

// Config describes one scenario: the gravitational constant, the tick
// parameters, the bodies with their initial states and thrust
// programs, and which body/central pair the element readout tracks.
type Config struct {
	G        float64      `yaml:"g"`
	Dt       float64      `yaml:"dt"`
	Duration float64      `yaml:"duration"`
	Track    string       `yaml:"track"`
	Central  string       `yaml:"central"`
	Bodies   []BodyConfig `yaml:"bodies"`
}

type BodyConfig struct {
	Name          string       `yaml:"name"`
	Mass          float64      `yaml:"mass"`
	X             float64      `yaml:"x"`
	Y             float64      `yaml:"y"`
	VX            float64      `yaml:"vx"`
	VY            float64      `yaml:"vy"`
	Inertia       float64      `yaml:"inertia"`
	GravitySource bool         `yaml:"gravity_source"`
	Burns         []BurnConfig `yaml:"burns"`
}

type BurnConfig struct {
	Start     float64 `yaml:"start"`
	End       float64 `yaml:"end"`
	Thrust    float64 `yaml:"thrust"`
	Direction string  `yaml:"direction"` // prograde, retrograde, radial, fixed
	FX        float64 `yaml:"fx"`
	FY        float64 `yaml:"fy"`
	Torque    float64 `yaml:"torque"`
}

// DefaultConfig is a ship on a low circular orbit around Earth.
func DefaultConfig() *Config {
	return &Config{
		G:        DefaultG,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Track:    "ship",
		Central:  "earth",
		Bodies: []BodyConfig{
			{Name: "earth", Mass: 5.972e24, GravitySource: true},
			{Name: "ship", Mass: 1000, X: 6.771e6, VY: 7629.7},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects scenarios the engine cannot run.
func (c *Config) Validate() error {
	if c.G <= 0 {
		return fmt.Errorf("g must be positive, got %g", c.G)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if len(c.Bodies) == 0 {
		return fmt.Errorf("at least one body is required")
	}

	seen := make(map[string]bool)
	for _, b := range c.Bodies {
		if b.Name == "" {
			return fmt.Errorf("every body needs a name")
		}
		if seen[b.Name] {
			return fmt.Errorf("duplicate body name %q", b.Name)
		}
		seen[b.Name] = true

		if b.Mass <= 0 {
			return fmt.Errorf("body %q: mass must be positive, got %g", b.Name, b.Mass)
		}
		for i, bn := range b.Burns {
			if bn.End <= bn.Start {
				return fmt.Errorf("body %q burn %d: end must be after start", b.Name, i)
			}
			if bn.Thrust < 0 {
				return fmt.Errorf("body %q burn %d: thrust must be non-negative", b.Name, i)
			}
			switch bn.Direction {
			case "", "prograde", "retrograde", "radial", "fixed":
			default:
				return fmt.Errorf("body %q burn %d: unknown direction %q", b.Name, i, bn.Direction)
			}
		}
	}

	if c.Track == "" || !seen[c.Track] {
		return fmt.Errorf("track must name a configured body, got %q", c.Track)
	}
	if c.Central == "" || !seen[c.Central] {
		return fmt.Errorf("central must name a configured body, got %q", c.Central)
	}
	if c.Track == c.Central {
		return fmt.Errorf("track and central must differ")
	}

	return nil
}
