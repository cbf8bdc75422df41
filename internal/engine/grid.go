package engine

import (
	"fmt"
	"sync/atomic"
)

// Site tag values. Values 1..P_max encode an RTC's remaining proliferation
// potential; P_max+1 encodes an immortal STC. siteReserved is transient and
// must never be observed outside an active step.
const (
	siteEmpty    int32 = 0
	siteReserved int32 = -1
)

// Coord is a lattice position. Population Index entries and worker journals
// are built from these, never from pointers into the grid.
type Coord struct {
	X, Y int32
}

// Grid stores site states in row-major order, length S*S. Workers may only
// mutate a site via CompareAndSet on an empty neighbor (reservation) or via
// Set on a site they already own (their cell's current site, or a site they
// have just reserved). All other access is Get.
type Grid struct {
	s    int32
	data []int32
}

// NewGrid allocates an empty S*S grid.
func NewGrid(s int32) *Grid {
	if s <= 0 {
		panic("engine: grid size must be positive")
	}
	return &Grid{s: s, data: make([]int32, int(s)*int(s))}
}

// Size returns the grid's side length.
func (g *Grid) Size() int32 { return g.s }

// InBounds reports whether (x, y) addresses a site on the grid.
func (g *Grid) InBounds(x, y int32) bool {
	return x >= 0 && x < g.s && y >= 0 && y < g.s
}

func (g *Grid) index(x, y int32) int {
	return int(y)*int(g.s) + int(x)
}

// Get atomically reads the site at (x, y). It returns ErrBounds if the
// coordinate is outside the grid.
func (g *Grid) Get(x, y int32) (int32, error) {
	if !g.InBounds(x, y) {
		return 0, fmt.Errorf("%w: get(%d,%d) outside grid of size %d", ErrBounds, x, y, g.s)
	}
	return atomic.LoadInt32(&g.data[g.index(x, y)]), nil
}

// Set atomically writes the site at (x, y). Callers must only call Set on a
// site they own: their own cell's current coordinate, or a coordinate they
// have just reserved via CompareAndSet.
func (g *Grid) Set(x, y, v int32) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: set(%d,%d) outside grid of size %d", ErrBounds, x, y, g.s)
	}
	atomic.StoreInt32(&g.data[g.index(x, y)], v)
	return nil
}

// CompareAndSet atomically transitions the site at (x, y) from old to new,
// returning whether the swap succeeded. This is the only mutator workers may
// use to claim a site that is not already theirs.
func (g *Grid) CompareAndSet(x, y, old, new int32) (bool, error) {
	if !g.InBounds(x, y) {
		return false, fmt.Errorf("%w: cas(%d,%d) outside grid of size %d", ErrBounds, x, y, g.s)
	}
	return atomic.CompareAndSwapInt32(&g.data[g.index(x, y)], old, new), nil
}

// extended returns a new grid of side s+2*pad with all sites empty, and the
// offset at which the receiver's contents should be copied into it.
func (g *Grid) extended(pad int32) (*Grid, int32) {
	ng := NewGrid(g.s + 2*pad)
	for y := int32(0); y < g.s; y++ {
		for x := int32(0); x < g.s; x++ {
			v := atomic.LoadInt32(&g.data[g.index(x, y)])
			if v == siteEmpty {
				continue
			}
			ng.data[ng.index(x+pad, y+pad)] = v
		}
	}
	return ng, pad
}
