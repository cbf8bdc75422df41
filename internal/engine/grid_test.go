package engine

import "testing"

func TestGridGetSetRoundTrip(t *testing.T) {
	g := NewGrid(10)
	if err := g.Set(3, 4, 7); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := g.Get(3, 4)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != 7 {
		t.Fatalf("Get(3,4) = %d, want 7", v)
	}
}

func TestGridGetOutOfBounds(t *testing.T) {
	g := NewGrid(5)
	if _, err := g.Get(5, 0); err == nil {
		t.Fatalf("expected ErrBounds for x == size")
	}
	if _, err := g.Get(0, -1); err == nil {
		t.Fatalf("expected ErrBounds for negative y")
	}
}

func TestGridCompareAndSet(t *testing.T) {
	g := NewGrid(5)
	ok, err := g.CompareAndSet(1, 1, siteEmpty, siteReserved)
	if err != nil {
		t.Fatalf("CompareAndSet: %v", err)
	}
	if !ok {
		t.Fatalf("expected first CAS from empty to reserved to succeed")
	}
	ok, err = g.CompareAndSet(1, 1, siteEmpty, siteReserved)
	if err != nil {
		t.Fatalf("CompareAndSet: %v", err)
	}
	if ok {
		t.Fatalf("expected second CAS to fail, site is no longer empty")
	}
}

func TestGridExtendedPreservesContents(t *testing.T) {
	g := NewGrid(10)
	if err := g.Set(0, 0, 3); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := g.Set(9, 9, 5); err != nil {
		t.Fatalf("Set: %v", err)
	}

	ng, offset := g.extended(2)
	if ng.Size() != 14 {
		t.Fatalf("extended size = %d, want 14", ng.Size())
	}
	if offset != 2 {
		t.Fatalf("offset = %d, want 2", offset)
	}
	v, err := ng.Get(0+offset, 0+offset)
	if err != nil || v != 3 {
		t.Fatalf("translated (0,0) = %d, %v; want 3, nil", v, err)
	}
	v, err = ng.Get(9+offset, 9+offset)
	if err != nil || v != 5 {
		t.Fatalf("translated (9,9) = %d, %v; want 5, nil", v, err)
	}
}
