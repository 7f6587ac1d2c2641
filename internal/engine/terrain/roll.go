package terrain

import "math/rand"

// Roll returns base with a freshly randomized landform: seed, noise scale,
// max height and plateau volume are drawn from rng, everything else is kept.
func Roll(base Parameters, rng *rand.Rand) Parameters {
	p := base
	p.Seed = float64(rng.Intn(1000))
	p.NoiseScale = 20 + rng.Float64()*100
	p.MaxHeight = 20 + rng.Float64()*40
	p.PlateauVolume = rng.Float64() * 0.6
	return p
}
