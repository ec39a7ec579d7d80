package experiment

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/san-kum/ljcell/internal/config"
	"github.com/san-kum/ljcell/internal/system"
)

var positioners = map[string]func(*system.System, *rand.Rand){
	config.LatticeCubic: func(s *system.System, rng *rand.Rand) {
		s.InitCubicLattice(rng, latticeJitter)
	},
	config.LatticeRandom: func(s *system.System, rng *rand.Rand) {
		s.InitRandom(rng)
	},
}

// Positioner returns the initial placement for a lattice name.
func Positioner(name string) (func(*system.System, *rand.Rand), error) {
	fn, ok := positioners[name]
	if !ok {
		return nil, fmt.Errorf("unknown lattice: %s (available: %v)", name, ListLattices())
	}
	return fn, nil
}

func ListLattices() []string {
	names := make([]string, 0, len(positioners))
	for name := range positioners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
