package config

import "sort"

// Presets are ready-made scenarios. The physical ones use the original
// G; "toy" and "binary-pair" run at G = 1 so the numbers stay readable.
var Presets = map[string]*Config{
	"leo": {
		G: DefaultG, Dt: 1.0, Duration: 5600, Track: "ship", Central: "earth",
		Bodies: []BodyConfig{
			{Name: "earth", Mass: 5.972e24, GravitySource: true},
			{Name: "ship", Mass: 1000, X: 6.771e6, VY: 7629.7},
		},
	},
	"geo-transfer": {
		G: DefaultG, Dt: 1.0, Duration: 20000, Track: "ship", Central: "earth",
		Bodies: []BodyConfig{
			{Name: "earth", Mass: 5.972e24, GravitySource: true},
			{Name: "ship", Mass: 1000, X: 6.771e6, VY: 7629.7,
				Burns: []BurnConfig{
					{Start: 10, End: 70, Thrust: 3.9e4, Direction: "prograde"},
				}},
		},
	},
	"escape": {
		G: DefaultG, Dt: 1.0, Duration: 3600, Track: "ship", Central: "earth",
		Bodies: []BodyConfig{
			{Name: "earth", Mass: 5.972e24, GravitySource: true},
			{Name: "ship", Mass: 1000, X: 6.771e6, VY: 11330},
		},
	},
	"radial-fall": {
		G: DefaultG, Dt: 0.5, Duration: 1200, Track: "ship", Central: "earth",
		Bodies: []BodyConfig{
			{Name: "earth", Mass: 5.972e24, GravitySource: true},
			{Name: "ship", Mass: 1000, X: 8.0e6},
		},
	},
	"binary-pair": {
		G: 1.0, Dt: 0.05, Duration: 400, Track: "alpha", Central: "beta",
		Bodies: []BodyConfig{
			{Name: "alpha", Mass: 500, X: -50, VY: -1.58114, GravitySource: true},
			{Name: "beta", Mass: 500, X: 50, VY: 1.58114, GravitySource: true},
		},
	},
	"toy": {
		G: 1.0, Dt: 0.01, Duration: 400, Track: "ship", Central: "planet",
		Bodies: []BodyConfig{
			{Name: "planet", Mass: 1000, GravitySource: true},
			{Name: "ship", Mass: 1, X: 100, VY: 3.16228},
		},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
