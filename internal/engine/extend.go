package engine

// borderMargin is the distance from the edge that triggers a domain
// extension, and extendPad is the padding added on each side when it fires
// (§4.7). Both are fixed by the specification, not configurable.
const (
	borderMargin int32 = 5
	extendPad    int32 = 2
)

// BorderMargin returns the distance from the edge that triggers a domain
// extension, for callers (such as a debug overlay) that want to visualize
// the same region maybeExtend watches.
func BorderMargin() int32 { return borderMargin }

// nearBorder reports whether c sits within borderMargin sites of the grid's
// edge.
func nearBorder(c Coord, s int32) bool {
	return c.X <= borderMargin || c.X >= s-borderMargin-1 ||
		c.Y <= borderMargin || c.Y >= s-borderMargin-1
}

// maybeExtend grows the grid by extendPad on every side, repeatedly, until
// no live cell is near the border. It runs single-threaded, between steps,
// never during the parallel phase.
func (e *Engine) maybeExtend() {
	for {
		s := e.grid.Size()
		anyNear := false
		for _, c := range e.pop.coords {
			if nearBorder(c, s) {
				anyNear = true
				break
			}
		}
		if !anyNear {
			return
		}

		ng, offset := e.grid.extended(extendPad)
		for i, c := range e.pop.coords {
			e.pop.coords[i] = Coord{X: c.X + offset, Y: c.Y + offset}
		}
		e.grid = ng
		e.extensions++
	}
}
