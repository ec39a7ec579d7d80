package config

import "sort"

// Presets are complete configurations in reduced Lennard-Jones units.
var Presets = map[string]*Config{
	"liquid": {
		Box: Cube(10), Cutoff: 2.5, Sigma: 1, Epsilon: 1,
		Particles: 800, Mass: 1, Temperature: 1.0,
		Dt: 0.002, Steps: 2000, SampleEvery: 20, Workers: 1, Lattice: LatticeCubic,
	},
	"gas": {
		Box: Cube(20), Cutoff: 2.5, Sigma: 1, Epsilon: 1,
		Particles: 400, Mass: 1, Temperature: 2.0,
		Dt: 0.005, Steps: 2000, SampleEvery: 20, Workers: 1, Lattice: LatticeCubic,
	},
	"tiny": {
		Box: Cube(6), Cutoff: 2.5, Sigma: 1, Epsilon: 1,
		Particles: 64, Mass: 1, Temperature: 1.0,
		Dt: 0.002, Steps: 1000, SampleEvery: 10, Workers: 1, Lattice: LatticeCubic,
		AllPairsFallback: true,
	},
	"large": {
		Box: Cube(30), Cutoff: 2.5, Sigma: 1, Epsilon: 1,
		Particles: 21600, Mass: 1, Temperature: 1.0,
		Dt: 0.002, Steps: 200, SampleEvery: 10, Workers: 0, Lattice: LatticeCubic,
		Sort: true,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
