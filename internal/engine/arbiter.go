package engine

// direction indexes the four compass neighbors of a site.
type direction int

const (
	dirEast direction = iota
	dirWest
	dirNorth
	dirSouth
)

// deltas. North decreases Y, South increases Y, matching the grid's
// row-major storage where row index grows downward.
var deltas = [4][2]int32{
	dirEast:  {1, 0},
	dirWest:  {-1, 0},
	dirNorth: {0, -1},
	dirSouth: {0, 1},
}

// probeOrders gives, for each starting direction, the order in which the
// four neighbors are inspected. This mirrors the source's per-direction
// preference table (§4.4).
var probeOrders = [4][4]direction{
	dirEast:  {dirEast, dirWest, dirNorth, dirSouth},
	dirWest:  {dirWest, dirEast, dirSouth, dirNorth},
	dirNorth: {dirNorth, dirSouth, dirEast, dirWest},
	dirSouth: {dirSouth, dirNorth, dirWest, dirEast},
}

// reserveFreeNeighbor picks a starting direction uniformly at random, then
// probes neighbors in that direction's preference order, atomically
// transitioning the first empty one found from siteEmpty to siteReserved.
// It reports ok=false if every neighbor is out of range, occupied, or lost
// to a concurrent reservation.
func reserveFreeNeighbor(g *Grid, x, y int32, rng *percentRNG) (Coord, bool, error) {
	start := direction(rng.IntN(4))
	order := probeOrders[start]
	for _, d := range order {
		delta := deltas[d]
		nx, ny := x+delta[0], y+delta[1]
		if !g.InBounds(nx, ny) {
			continue
		}
		ok, err := g.CompareAndSet(nx, ny, siteEmpty, siteReserved)
		if err != nil {
			return Coord{}, false, err
		}
		if ok {
			return Coord{X: nx, Y: ny}, true, nil
		}
	}
	return Coord{}, false, nil
}

// release returns a reserved site to empty. It is a programming error to
// call release on a site that is not currently reserved; that indicates a
// worker has lost track of its own reservation.
func release(g *Grid, c Coord) error {
	ok, err := g.CompareAndSet(c.X, c.Y, siteReserved, siteEmpty)
	if err != nil {
		return err
	}
	if !ok {
		return invariantf("release(%d,%d): site was not reserved", c.X, c.Y)
	}
	return nil
}

// commit writes a committed value into a site the caller has reserved.
func commit(g *Grid, c Coord, v int32) error {
	ok, err := g.CompareAndSet(c.X, c.Y, siteReserved, v)
	if err != nil {
		return err
	}
	if !ok {
		return invariantf("commit(%d,%d): site was not reserved", c.X, c.Y)
	}
	return nil
}
