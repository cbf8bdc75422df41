package tumor

import (
	"testing"

	"oncolattice/internal/core"
	"oncolattice/internal/engine"
)

func TestNewRegistersAndSteps(t *testing.T) {
	factory, ok := core.Sims()["tumor"]
	if !ok {
		t.Fatalf("tumor sim was not registered")
	}
	sim := factory(map[string]string{"last_step": "5", "initial_size": "30"})
	sim.Reset(1)
	before := sim.Size()
	sim.Step()
	if sim.Size().W < before.W {
		t.Fatalf("grid shrank from %d to %d", before.W, sim.Size().W)
	}
	if len(sim.Cells()) != sim.Size().W*sim.Size().H {
		t.Fatalf("Cells() length %d does not match Size() %v", len(sim.Cells()), sim.Size())
	}
}

func TestCellsAreWithinPalette(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.InitialSize = 20
	sim, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sim.Reset(3)
	for i := 0; i < 5; i++ {
		sim.Step()
	}
	last := uint8(cfg.PMax + 1)
	for _, v := range sim.Cells() {
		if v > last {
			t.Fatalf("cell value %d exceeds palette bound %d", v, last)
		}
	}
}

func TestParametersReportsRatesAndCounts(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.InitialSize = 20
	sim, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sim.SetCounting(true)
	sim.Reset(4)
	sim.Step()

	snap := sim.Parameters()
	found := map[string]bool{}
	for _, g := range snap.Groups {
		for _, p := range g.Params {
			found[p.Key] = true
		}
	}
	for _, key := range []string{"stc", "rtc", "size", "p_death", "p_prolif"} {
		if !found[key] {
			t.Fatalf("Parameters() snapshot is missing key %q", key)
		}
	}
}

func TestSetIntParameterValidatesBeforeApplying(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.InitialSize = 20
	sim, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sim.Reset(5)

	if !sim.SetIntParameter("p_prolif", 50) {
		t.Fatalf("expected a valid p_prolif update to succeed")
	}
	if sim.Engine().Config().PProlif != 50 {
		t.Fatalf("PProlif = %d, want 50", sim.Engine().Config().PProlif)
	}
	if sim.SetIntParameter("p_prolif", 500) {
		t.Fatalf("expected an out-of-range p_prolif update to be rejected")
	}
	if sim.SetIntParameter("not_a_key", 1) {
		t.Fatalf("expected an unknown key to be rejected")
	}
}
