package depot

import "math/rand/v2"

var _ RandomStream = &pcgStream{}

// pcgStream is the default RandomStream. One stream is shared by everything
// in a space, so results depend on the order of draws, never on wall time.
type pcgStream struct {
	rng *rand.Rand
}

// NewRandomStream returns a deterministic stream for seed
func NewRandomStream(seed uint64) RandomStream {
	return &pcgStream{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *pcgStream) Float(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.rng.Float64()*(max-min)
}
