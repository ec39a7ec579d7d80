package config

import (
	"math"
	"os"
	"runtime"

	"github.com/san-kum/ljcell/internal/force"
	"github.com/san-kum/ljcell/internal/md"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBox         = 10.0
	DefaultCutoff      = 2.5
	DefaultSigma       = 1.0
	DefaultEpsilon     = 1.0
	DefaultParticles   = 500
	DefaultMass        = 1.0
	DefaultTemperature = 1.0
	DefaultDt          = 0.002
	DefaultSteps       = 1000
	DefaultSampleEvery = 10
	DefaultWorkers     = 1
	DefaultLattice     = LatticeCubic
)

const (
	LatticeCubic  = "cubic"
	LatticeRandom = "random"
)

type Config struct {
	Box              BoxConfig `yaml:"box"`
	Cutoff           float64   `yaml:"cutoff"`
	Sigma            float64   `yaml:"sigma"`
	Epsilon          float64   `yaml:"epsilon"`
	Particles        int       `yaml:"particles"`
	Mass             float64   `yaml:"mass"`
	Temperature      float64   `yaml:"temperature"`
	Dt               float64   `yaml:"dt"`
	Steps            int       `yaml:"steps"`
	SampleEvery      int       `yaml:"sample_every"`
	Seed             int64     `yaml:"seed"`
	Workers          int       `yaml:"workers"`
	AllPairsFallback bool      `yaml:"all_pairs_fallback"`
	Lattice          string    `yaml:"lattice"`
	Sort             bool      `yaml:"sort"`
}

type BoxConfig struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

func Cube(l float64) BoxConfig { return BoxConfig{X: l, Y: l, Z: l} }

func DefaultConfig() *Config {
	return &Config{
		Box:         Cube(DefaultBox),
		Cutoff:      DefaultCutoff,
		Sigma:       DefaultSigma,
		Epsilon:     DefaultEpsilon,
		Particles:   DefaultParticles,
		Mass:        DefaultMass,
		Temperature: DefaultTemperature,
		Dt:          DefaultDt,
		Steps:       DefaultSteps,
		SampleEvery: DefaultSampleEvery,
		Workers:     DefaultWorkers,
		Lattice:     DefaultLattice,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

func (c *Config) Params() md.Params {
	return md.Params{
		Box:     [3]float64{c.Box.X, c.Box.Y, c.Box.Z},
		Cutoff:  c.Cutoff,
		Sigma:   c.Sigma,
		Epsilon: c.Epsilon,
	}
}

// Options maps the evaluator settings. Workers <= 0 means one worker per CPU.
func (c *Config) Options() force.Options {
	w := c.Workers
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	return force.Options{AllPairsFallback: c.AllPairsFallback, Workers: w}
}

// Validate checks the run parameters and then the physical ones.
func (c *Config) Validate() error {
	bad := func(field string, v float64, reason string) error {
		return &md.ConfigurationError{Field: field, Value: v, Reason: reason}
	}
	switch {
	case c.Particles < 0:
		return bad("particles", float64(c.Particles), "must not be negative")
	case !(c.Mass > 0) || math.IsInf(c.Mass, 0):
		return bad("mass", c.Mass, "must be positive and finite")
	case !(c.Temperature >= 0):
		return bad("temperature", c.Temperature, "must not be negative")
	case !(c.Dt > 0):
		return bad("dt", c.Dt, "must be positive")
	case c.Steps <= 0:
		return bad("steps", float64(c.Steps), "must be positive")
	case c.SampleEvery < 1:
		return bad("sample_every", float64(c.SampleEvery), "must be at least 1")
	case c.Lattice != LatticeCubic && c.Lattice != LatticeRandom:
		return bad("lattice", 0, "must be "+LatticeCubic+" or "+LatticeRandom+", got "+c.Lattice)
	}
	return c.Params().Validate()
}
