package engine

import "oncolattice/pkg/core"

// percentRNG is the subset of the PRNG Service the per-cell decision
// pipeline and the Neighborhood Arbiter draw from. Each worker owns one
// instance, derived at construction time from the run's root seed, so a
// fixed seed and worker count always reproduce the same draws regardless of
// scheduling order.
type percentRNG struct {
	rng *core.RNG
}

// newWorkerRNGs derives n independent substreams from the root seed. Stream
// id 0 is reserved for the scheduler's own shuffle; workers get ids 1..n.
func newWorkerRNGs(seed int64, n int) []*percentRNG {
	root := core.NewRNG(seed)
	out := make([]*percentRNG, n)
	for i := 0; i < n; i++ {
		out[i] = &percentRNG{rng: root.Sub(seed, uint64(i+1))}
	}
	return out
}

func newShuffleRNG(seed int64) *core.RNG {
	return core.NewRNG(seed).Sub(seed, 0)
}

// Percent draws a uniform integer in [0,100).
func (p *percentRNG) Percent() int { return p.rng.Percent() }

// IntN draws a uniform integer in [0,n).
func (p *percentRNG) IntN(n int) int { return p.rng.IntN(n) }
