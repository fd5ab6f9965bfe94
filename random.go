package sweepfsm

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Randomizer supplies the values Rotate draws when it is constructed.
type Randomizer interface {
	// TurnDirection returns -1 or +1.
	TurnDirection() float64
	// TargetAngle returns an angle in [-π, π] radians.
	TargetAngle() float64
}

// NewRandomizer returns a seeded Randomizer: a fair coin for the direction
// and a uniform draw over [-π, π] for the angle. Equal seeds give equal
// sequences.
func NewRandomizer(seed uint64) Randomizer {
	src := rand.NewSource(seed)
	return &distRandomizer{
		seed: seed,
		coin: distuv.Bernoulli{P: 0.5, Src: src},
		angle: distuv.Uniform{
			Min: -math.Pi,
			Max: math.Pi,
			Src: src,
		},
	}
}

type distRandomizer struct {
	seed  uint64
	coin  distuv.Bernoulli
	angle distuv.Uniform
}

func (r *distRandomizer) TurnDirection() float64 {
	if r.coin.Rand() == 1 {
		return 1
	}
	return -1
}

func (r *distRandomizer) TargetAngle() float64 {
	return r.angle.Rand()
}

// Seed returns the seed the randomizer was built with.
func (r *distRandomizer) Seed() uint64 {
	return r.seed
}

// Seeded is implemented by randomizers that can be rebuilt from a seed.
type Seeded interface {
	Seed() uint64
}
