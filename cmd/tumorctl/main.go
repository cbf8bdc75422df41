// Command tumorctl is the headless counterpart to cmd/ca: it drives the
// engine directly, without any rendering dependency, for scripted runs and
// preset-driven benchmarking.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"oncolattice/internal/engine"
	"oncolattice/internal/preset"
)

func main() {
	presetPath := flag.String("preset", "", "path to a seven-line preset file (see internal/preset)")
	workers := flag.Int("workers", 0, "override worker count (0 = runtime.GOMAXPROCS)")
	seed := flag.Int64("seed", 0, "PRNG root seed (0 = derive from wall clock)")
	counting := flag.Bool("count", false, "collect per-step STC/RTC counters")
	bench := flag.Bool("bench", false, "print a benchmark-format summary instead of the final population summary")
	steps := flag.Int("steps", 0, "override the preset's last_step (0 = use preset value)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg := engine.DefaultConfig()
	if *presetPath != "" {
		f, err := os.Open(*presetPath)
		if err != nil {
			logger.Error("opening preset", "err", err)
			os.Exit(1)
		}
		loaded, err := preset.Load(f)
		f.Close()
		if err != nil {
			logger.Error("loading preset", "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *steps > 0 {
		cfg.LastStep = *steps
	}

	opts := []engine.EngineOption{engine.WithLogger(logger)}
	if *workers > 0 {
		opts = append(opts, engine.WithMaxWorkers(*workers))
	}

	eng, err := engine.NewEngine(cfg, opts...)
	if err != nil {
		logger.Error("constructing engine", "err", err)
		os.Exit(1)
	}
	eng.Reset(*seed)

	if err := eng.Run(context.Background(), *counting || *bench); err != nil {
		logger.Error("run aborted", "err", err, "step", eng.Snapshot().Step)
		os.Exit(1)
	}

	if *bench {
		printBenchSummary(eng)
		return
	}

	snap := eng.Snapshot()
	fmt.Printf("steps=%d population=%d size=%d extensions=%d\n", snap.Step, eng.PopulationSize(), snap.Size, eng.Extensions())
	if len(snap.STC) > 0 {
		fmt.Printf("final STC=%d RTC=%d\n", snap.STC[len(snap.STC)-1], snap.RTC[len(snap.RTC)-1])
	}
}

func printBenchSummary(eng *engine.Engine) {
	snap := eng.Snapshot()
	fmt.Printf("BenchmarkRun workers=%d size=%d steps=%d population=%d\n",
		eng.LastStepWorkerCount(), snap.Size, snap.Step, eng.PopulationSize())
}
