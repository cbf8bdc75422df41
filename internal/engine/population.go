package engine

// population is the ordered sequence of live-cell coordinates. It is
// read-only to workers during a step; only the scheduler mutates it, and
// only between steps.
type population struct {
	coords []Coord
}

func newPopulation(capacity int) *population {
	return &population{coords: make([]Coord, 0, capacity)}
}

func (p *population) len() int { return len(p.coords) }

func (p *population) append(c Coord) { p.coords = append(p.coords, c) }

// snapshot returns a read-only copy of the current coordinates for workers
// to traverse. The copy means a worker can never observe a coordinate the
// scheduler appends or rewrites mid-step.
func (p *population) snapshot() []Coord {
	out := make([]Coord, len(p.coords))
	copy(out, p.coords)
	return out
}

// shuffle randomizes traversal order in place. Single-threaded: called only
// by the scheduler, before a step's parallel phase begins.
func (p *population) shuffle(rng shuffler) {
	rng.ShuffleN(len(p.coords), func(i, j int) {
		p.coords[i], p.coords[j] = p.coords[j], p.coords[i]
	})
}

// compact drops every entry whose site is no longer occupied, as reported by
// isLive. Order among surviving entries is preserved.
func (p *population) compact(isLive func(Coord) bool) {
	kept := p.coords[:0]
	for _, c := range p.coords {
		if isLive(c) {
			kept = append(kept, c)
		}
	}
	p.coords = kept
}

type shuffler interface {
	ShuffleN(n int, swap func(i, j int))
}
