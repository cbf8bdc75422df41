// Package tumor adapts the headless engine to the teacher's core.Sim
// registry so the existing ebiten front end, HUD and renderer can drive it
// without any changes to that scaffolding.
package tumor

import (
	"image/color"
	"strconv"

	"oncolattice/internal/core"
	"oncolattice/internal/engine"
)

// Sim wraps an *engine.Engine behind the core.Sim interface and maintains a
// palette-mapped display buffer rebuilt after every step.
type Sim struct {
	eng *engine.Engine
	cfg engine.Config

	display *core.ByteGrid
	palette []color.RGBA

	counting bool
}

// New constructs a tumor Sim from the provided configuration.
func New(cfg engine.Config) (*Sim, error) {
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	s := &Sim{eng: eng, cfg: cfg}
	s.rebuildPalette()
	s.rebuildDisplay()
	return s, nil
}

// DefaultConfig returns the engine's default configuration.
func DefaultConfig() engine.Config { return engine.DefaultConfig() }

// FromMap overlays flag-style overrides onto DefaultConfig. The "count" key
// toggles counter collection on Step.
func FromMap(cfg map[string]string) (engine.Config, bool) {
	c := engine.FromMap(cfg)
	counting := false
	if v, ok := cfg["count"]; ok {
		counting = v == "true" || v == "1"
	}
	return c, counting
}

// Name returns the simulation identifier under which it registers.
func (s *Sim) Name() string { return "tumor" }

// Size returns the current grid dimensions.
func (s *Sim) Size() core.Size {
	side := int(s.eng.GridSize())
	return core.Size{W: side, H: side}
}

// Reset reseeds the run from scratch with the given seed.
func (s *Sim) Reset(seed int64) {
	s.eng.Reset(seed)
	s.rebuildDisplay()
}

// Step advances the simulation by one tick and rebuilds the display buffer.
// Invariant violations are not recoverable; Step panics rather than leaving
// the HUD driving a corrupted engine, matching §4.9's "fatal" contract.
func (s *Sim) Step() {
	if err := s.eng.Step(s.counting); err != nil {
		panic(err)
	}
	s.rebuildDisplay()
}

// Cells exposes the palette-indexed display buffer.
func (s *Sim) Cells() []uint8 { return s.display.Cells() }

// Engine exposes the underlying headless engine for callers that need the
// full facade (SeedCell, Run, Snapshot, Counters) beyond core.Sim.
func (s *Sim) Engine() *engine.Engine { return s.eng }

// SetCounting toggles STC/RTC counter collection for subsequent steps.
func (s *Sim) SetCounting(counting bool) { s.counting = counting }

func (s *Sim) rebuildDisplay() {
	side := int(s.eng.GridSize())
	if s.display == nil || s.display.W != side {
		s.display = core.NewByteGrid(side, side)
	}
	snap := s.eng.Snapshot()
	buf := s.display.Cells()
	last := uint8(len(s.palette) - 1)
	for i, v := range snap.Grid {
		idx := uint8(v)
		if v < 0 {
			idx = 0
		} else if v > int32(last) {
			idx = last
		}
		buf[i] = idx
	}
}

func (s *Sim) rebuildPalette() {
	pMax := s.cfg.PMax
	palette := make([]color.RGBA, pMax+2)
	palette[0] = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for v := 1; v <= pMax; v++ {
		intensity := uint8((255*v + pMax/2) / pMax)
		palette[v] = color.RGBA{R: intensity, A: 255}
	}
	palette[pMax+1] = color.RGBA{R: 255, G: 255, A: 255}
	s.palette = palette
}

// Palette exposes the STC/RTC/empty color mapping for renderers that want
// more than a binary on/off blit.
func (s *Sim) Palette() []color.RGBA { return s.palette }

// ExtensionMargin reports how close to the grid edge a live cell must get
// before the engine grows the domain (§4.7), for overlays that visualize it.
func (s *Sim) ExtensionMargin() int { return int(engine.BorderMargin()) }

// Parameters reports the run's live configuration and counters for the HUD,
// discovered by internal/ui through the same optional-interface mechanism
// the ecology sim used.
func (s *Sim) Parameters() core.ParameterSnapshot {
	c := s.eng.Config()
	snap := s.eng.Snapshot()
	stc, rtc := s.liveCounts()
	return core.ParameterSnapshot{
		Groups: []core.ParameterGroup{
			{
				Name: "population",
				Params: []core.Parameter{
					{Key: "step", Label: "Step", Type: core.ParamTypeInt, Value: strconv.Itoa(snap.Step)},
					{Key: "stc", Label: "STC", Type: core.ParamTypeInt, Value: strconv.Itoa(stc)},
					{Key: "rtc", Label: "RTC", Type: core.ParamTypeInt, Value: strconv.Itoa(rtc)},
					{Key: "size", Label: "Grid size", Type: core.ParamTypeInt, Value: strconv.Itoa(int(s.eng.GridSize()))},
					{Key: "extensions", Label: "Extensions", Type: core.ParamTypeInt, Value: strconv.Itoa(s.eng.Extensions())},
				},
			},
			{
				Name: "rates",
				Params: []core.Parameter{
					{Key: "p_death", Label: "Death %", Type: core.ParamTypeFloat, Value: strconv.FormatFloat(c.PDeath, 'f', 2, 64)},
					{Key: "p_prolif", Label: "Proliferation %", Type: core.ParamTypeInt, Value: strconv.Itoa(c.PProlif)},
					{Key: "p_migrate", Label: "Migration %", Type: core.ParamTypeInt, Value: strconv.Itoa(c.PMigrate)},
					{Key: "p_stc_child", Label: "STC child %", Type: core.ParamTypeInt, Value: strconv.Itoa(c.PStcChild)},
				},
			},
		},
	}
}

func (s *Sim) liveCounts() (stc, rtc int) {
	counters := s.eng.Counters()
	if n := len(counters.STC); n > 0 {
		return counters.STC[n-1], counters.RTC[n-1]
	}
	return 0, 0
}

// ParameterControls exposes the death/proliferation/migration/STC-child
// rates as HUD-adjustable controls.
func (s *Sim) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "p_death", Label: "Death %", Type: core.ParamTypeFloat, Step: 1, Min: 0, Max: 100, HasMin: true, HasMax: true},
		{Key: "p_prolif", Label: "Proliferation %", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 100, HasMin: true, HasMax: true},
		{Key: "p_migrate", Label: "Migration %", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 100, HasMin: true, HasMax: true},
		{Key: "p_stc_child", Label: "STC child %", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 100, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates one of the integer-valued rates. It takes effect
// on the next Step; it cannot retroactively change the run seeded so far.
func (s *Sim) SetIntParameter(key string, value int) bool {
	cfg := s.eng.Config()
	switch key {
	case "p_prolif":
		cfg.PProlif = value
	case "p_migrate":
		cfg.PMigrate = value
	case "p_stc_child":
		cfg.PStcChild = value
	default:
		return false
	}
	return s.applyConfig(cfg)
}

// SetFloatParameter updates the death rate, the only float-valued control.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	if key != "p_death" {
		return false
	}
	cfg := s.eng.Config()
	cfg.PDeath = value
	return s.applyConfig(cfg)
}

func (s *Sim) applyConfig(cfg engine.Config) bool {
	if err := s.eng.SetRates(cfg); err != nil {
		return false
	}
	s.cfg = cfg
	return true
}

func init() {
	core.Register("tumor", func(cfg map[string]string) core.Sim {
		c, counting := FromMap(cfg)
		sim, err := New(c)
		if err != nil {
			panic(err)
		}
		sim.SetCounting(counting)
		return sim
	})
}
