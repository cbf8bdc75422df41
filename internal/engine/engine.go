// Package engine implements the headless tumor-growth lattice simulator:
// the PRNG service, grid, population index, neighborhood arbiter, cell
// update rules, step scheduler, domain extender and counters described by
// the specification. It has no knowledge of rendering, CLI flags, or preset
// files — those are external collaborators that consume Engine's facade.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"oncolattice/pkg/core"
)

// Engine owns the entire mutable simulation state: the grid, the population
// index, and the counters. All state is encapsulated in the value rather
// than a process-wide singleton, so independent runs (e.g. in parallel
// tests or a parameter sweep) never interfere with each other.
type Engine struct {
	cfg  Config
	seed int64

	grid *Grid
	pop  *population

	shuffleRNG  *core.RNG
	workers     []*percentRNG
	maxWorkers  int
	lastWorkers int

	step       int
	extensions int
	counters   Counters

	log *slog.Logger
}

// EngineOption configures optional, non-simulation-affecting behavior.
type EngineOption func(*Engine)

// WithLogger injects a structured logger for step-boundary events. Without
// this option the engine logs nothing, so library use is silent by default.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) { e.log = l }
}

// WithMaxWorkers caps the number of goroutines a step may use, overriding
// the runtime.GOMAXPROCS(0) default. Mainly useful for tests that need
// W=1 determinism or for benchmarking a specific worker count.
func WithMaxWorkers(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxWorkers = n
		}
	}
}

// NewEngine validates cfg and constructs an Engine that is already Reset
// with a wall-clock seed, so the starter cell is in place. Call Reset with an
// explicit seed for a reproducible run.
func NewEngine(cfg Config, opts ...EngineOption) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:        cfg,
		maxWorkers: runtime.GOMAXPROCS(0),
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Reset(time.Now().UnixNano())
	return e, nil
}

// Reset reinitializes the run with a fresh grid of the configured initial
// size and seeds the starter cell at the center, per §6's initial
// condition. A seed of 0 is treated as "derive one from the wall clock".
func (e *Engine) Reset(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e.seed = seed
	e.step = 0
	e.extensions = 0
	e.counters = Counters{}
	e.grid = NewGrid(int32(e.cfg.InitialSize))
	e.pop = newPopulation(64)
	e.shuffleRNG = newShuffleRNG(seed)
	e.workers = newWorkerRNGs(seed, e.maxWorkers)
	e.lastWorkers = 0

	center := int32(e.cfg.InitialSize) / 2
	starter := int32(e.cfg.PMax)
	if e.cfg.StarterSTC {
		starter = int32(e.cfg.PMax) + 1
	}
	if err := e.grid.Set(center, center, starter); err != nil {
		panic(fmt.Errorf("engine: seeding starter cell: %w", err))
	}
	e.pop.append(Coord{X: center, Y: center})
}

// SeedCell places an additional live cell at (x, y). It returns ErrBounds
// if the coordinate is outside the grid or already occupied.
func (e *Engine) SeedCell(x, y int32) error {
	v, err := e.grid.Get(x, y)
	if err != nil {
		return err
	}
	if v != siteEmpty {
		return fmt.Errorf("%w: seed_cell(%d,%d): site already occupied", ErrBounds, x, y)
	}
	starter := int32(e.cfg.PMax)
	if e.cfg.StarterSTC {
		starter = int32(e.cfg.PMax) + 1
	}
	if err := e.grid.Set(x, y, starter); err != nil {
		return err
	}
	e.pop.append(Coord{X: x, Y: y})
	return nil
}

// Step advances the simulation by one time step: shuffle, partition,
// parallel cell updates under a barrier, then single-threaded maintenance.
// If counting is true, the current STC/RTC totals are appended to Counters
// after maintenance. Step returns the first invariant violation observed by
// any worker, if any; the run should not continue after such an error.
func (e *Engine) Step(counting bool) error {
	e.pop.shuffle(e.shuffleRNG)
	snapshot := e.pop.snapshot()

	w := e.maxWorkers
	if w > len(snapshot) {
		w = len(snapshot)
	}
	if w < 1 {
		w = 1
	}
	e.lastWorkers = w

	outputs := make([]workerOutput, w)
	if len(snapshot) > 0 {
		var grp errgroup.Group
		for wi := 0; wi < w; wi++ {
			wi := wi
			grp.Go(func() error {
				rng := e.workers[wi]
				out := &outputs[wi]
				for i := wi; i < len(snapshot); i += w {
					if err := applyCell(e.grid, snapshot, i, e.cfg, rng, out); err != nil {
						return err
					}
				}
				return nil
			})
		}
		if err := grp.Wait(); err != nil {
			return err
		}
	}

	e.applyMaintenance(outputs)
	e.maybeExtend()
	e.step++

	if counting {
		stc, rtc := e.count()
		e.counters.STC = append(e.counters.STC, stc)
		e.counters.RTC = append(e.counters.RTC, rtc)
	}

	e.log.Info("step", "t", e.step, "population", e.pop.len(), "size", e.grid.Size(), "workers", w)
	return nil
}

// applyMaintenance folds every worker's migration journal and birth buffer
// into the Population Index, in that order, then compacts dead and duplicate
// entries.
func (e *Engine) applyMaintenance(outputs []workerOutput) {
	// e.pop.coords is still in the same order as snapshot: workers only
	// read it during the parallel phase, so migrations can be applied
	// directly by snapshot index.
	for _, out := range outputs {
		for _, m := range out.Moves {
			e.pop.coords[m.Index] = m.To
		}
	}
	for _, out := range outputs {
		for _, b := range out.Births {
			e.pop.append(b)
		}
	}
	// A site vacated this step (death or exhausted potential) can be refilled
	// by a migrant or a daughter, leaving two entries on one site; keep one.
	seen := make(map[Coord]bool, e.pop.len())
	e.pop.compact(func(c Coord) bool {
		v, err := e.grid.Get(c.X, c.Y)
		if err != nil || v == siteEmpty || seen[c] {
			return false
		}
		seen[c] = true
		return true
	})
}

// Run advances the simulation until LastStep steps have elapsed or ctx is
// canceled, whichever comes first. There is no per-step timeout inside the
// engine; cancellation is checked between steps so a caller can abort a
// long run promptly.
func (e *Engine) Run(ctx context.Context, counting bool) error {
	for e.step < e.cfg.LastStep {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Step(counting); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot returns a read-only copy of the engine's current state.
func (e *Engine) Snapshot() Snapshot {
	grid := make([]int32, len(e.grid.data))
	copy(grid, e.grid.data)
	stc := make([]int, len(e.counters.STC))
	copy(stc, e.counters.STC)
	rtc := make([]int, len(e.counters.RTC))
	copy(rtc, e.counters.RTC)
	return Snapshot{
		Grid: grid,
		Size: e.grid.Size(),
		Step: e.step,
		STC:  stc,
		RTC:  rtc,
	}
}

// Counters returns a read-only copy of the accumulated STC/RTC totals.
func (e *Engine) Counters() Counters {
	stc := make([]int, len(e.counters.STC))
	copy(stc, e.counters.STC)
	rtc := make([]int, len(e.counters.RTC))
	copy(rtc, e.counters.RTC)
	return Counters{STC: stc, RTC: rtc}
}

// PopulationSize returns the number of live cells.
func (e *Engine) PopulationSize() int { return e.pop.len() }

// GridSize returns the current side length of the grid.
func (e *Engine) GridSize() int32 { return e.grid.Size() }

// Extensions returns how many times the domain has grown so far this run.
func (e *Engine) Extensions() int { return e.extensions }

// Config returns the run's configuration.
func (e *Engine) Config() Config { return e.cfg }

// SetRates swaps in a new configuration for subsequent steps without
// touching the grid, population or counters accumulated so far. It is meant
// for live HUD edits of the probability knobs, not for changing structural
// fields like InitialSize mid-run.
func (e *Engine) SetRates(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.cfg = cfg
	return nil
}

// LastStepWorkerCount returns how many workers the most recent Step used.
// Exposed for tests asserting the W=min(hardware_threads,len(C)) rule.
func (e *Engine) LastStepWorkerCount() int { return e.lastWorkers }
