package engine

import "testing"

func TestProbeOrderTable(t *testing.T) {
	cases := []struct {
		start direction
		want  [4]direction
	}{
		{dirEast, [4]direction{dirEast, dirWest, dirNorth, dirSouth}},
		{dirWest, [4]direction{dirWest, dirEast, dirSouth, dirNorth}},
		{dirNorth, [4]direction{dirNorth, dirSouth, dirEast, dirWest}},
		{dirSouth, [4]direction{dirSouth, dirNorth, dirWest, dirEast}},
	}
	for _, c := range cases {
		got := probeOrders[c.start]
		if got != c.want {
			t.Fatalf("probeOrders[%d] = %v, want %v", c.start, got, c.want)
		}
	}
}

func TestReserveFreeNeighborSkipsOccupiedSites(t *testing.T) {
	g := NewGrid(10)
	// Occupy the east neighbor so a start direction of East must fall
	// through to the next entry in its probe order (West).
	if err := g.Set(6, 5, 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	// reserveFreeNeighbor needs a *percentRNG; build one with a root seed
	// and pull whichever direction it draws, then assert the reservation
	// always lands on an in-bounds, previously-empty site.
	root := newWorkerRNGs(1, 1)[0]
	c, ok, err := reserveFreeNeighbor(g, 5, 5, root)
	if err != nil {
		t.Fatalf("reserveFreeNeighbor: %v", err)
	}
	if !ok {
		t.Fatalf("expected a free neighbor to be found")
	}
	if c.X == 6 && c.Y == 5 {
		t.Fatalf("reserved the already-occupied east neighbor")
	}
	v, err := g.Get(c.X, c.Y)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != siteReserved {
		t.Fatalf("reserved site holds %d, want siteReserved", v)
	}
}

func TestReserveFreeNeighborFailsWhenSurrounded(t *testing.T) {
	g := NewGrid(10)
	for _, d := range deltas {
		if err := g.Set(5+d[0], 5+d[1], 1); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	root := newWorkerRNGs(1, 1)[0]
	_, ok, err := reserveFreeNeighbor(g, 5, 5, root)
	if err != nil {
		t.Fatalf("reserveFreeNeighbor: %v", err)
	}
	if ok {
		t.Fatalf("expected no free neighbor when fully surrounded")
	}
}

func TestReleaseAndCommitRequireReservation(t *testing.T) {
	g := NewGrid(10)
	if err := release(g, Coord{X: 1, Y: 1}); err == nil {
		t.Fatalf("expected error releasing a site that was never reserved")
	}
	if err := commit(g, Coord{X: 1, Y: 1}, 4); err == nil {
		t.Fatalf("expected error committing a site that was never reserved")
	}

	ok, err := g.CompareAndSet(1, 1, siteEmpty, siteReserved)
	if err != nil || !ok {
		t.Fatalf("setup CAS failed: ok=%v err=%v", ok, err)
	}
	if err := commit(g, Coord{X: 1, Y: 1}, 4); err != nil {
		t.Fatalf("commit: %v", err)
	}
	v, err := g.Get(1, 1)
	if err != nil || v != 4 {
		t.Fatalf("Get(1,1) = %d, %v; want 4, nil", v, err)
	}
}
