// Command bench sweeps worker count and initial grid size, timing a fixed
// number of engine steps for each combination and reporting results both as
// a human-readable ranked table and as a benchmark-format record stream
// suitable for benchstat.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/perf/benchfmt"

	"oncolattice/internal/engine"
)

type scenario struct {
	workers int
	size    int
}

func (s scenario) name() string {
	return fmt.Sprintf("BenchmarkStep/workers=%d/size=%d", s.workers, s.size)
}

type scenarioResult struct {
	scenario
	nsPerStep float64
	steps     int
}

func main() {
	steps := flag.Int("steps", 50, "steps to simulate per scenario")
	maxWorkers := flag.Int("max-workers", runtime.NumCPU(), "largest worker count to sweep")
	benchOut := flag.String("benchout", "", "path to write benchfmt records (default: stdout)")
	flag.Parse()

	sizes := []int{100, 200, 400}
	var workerCounts []int
	for w := 1; w <= *maxWorkers; w *= 2 {
		workerCounts = append(workerCounts, w)
	}
	if workerCounts[len(workerCounts)-1] != *maxWorkers {
		workerCounts = append(workerCounts, *maxWorkers)
	}

	var scenarios []scenario
	for _, size := range sizes {
		for _, w := range workerCounts {
			scenarios = append(scenarios, scenario{workers: w, size: size})
		}
	}

	fmt.Printf("Sweeping %d scenarios (sizes=%v, workers=%v, %d steps each)\n", len(scenarios), sizes, workerCounts, *steps)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	runners := runtime.NumCPU()
	for i := 0; i < runners; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(sc, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range scenarios {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}
	elapsed := time.Since(start)

	sort.Slice(all, func(i, j int) bool { return all[i].nsPerStep < all[j].nsPerStep })

	if err := writeBenchfmt(*benchOut, all); err != nil {
		fmt.Fprintln(os.Stderr, "bench: writing benchfmt output:", err)
		os.Exit(1)
	}

	fmt.Printf("\nFastest 5 scenarios (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		r := all[i]
		fmt.Printf("%2d) workers=%-3d size=%-4d %10.1f ns/step\n", i+1, r.workers, r.size, r.nsPerStep)
	}
}

func runScenario(sc scenario, steps int) scenarioResult {
	cfg := engine.DefaultConfig()
	cfg.InitialSize = sc.size
	cfg.LastStep = steps

	eng, err := engine.NewEngine(cfg, engine.WithMaxWorkers(sc.workers))
	if err != nil {
		return scenarioResult{scenario: sc}
	}
	eng.Reset(1337)

	start := time.Now()
	for i := 0; i < steps; i++ {
		if err := eng.Step(false); err != nil {
			break
		}
	}
	elapsed := time.Since(start)

	return scenarioResult{
		scenario:  sc,
		nsPerStep: float64(elapsed.Nanoseconds()) / float64(steps),
		steps:     steps,
	}
}

func writeBenchfmt(path string, results []scenarioResult) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	w := benchfmt.NewWriter(out)
	for _, r := range results {
		res := &benchfmt.Result{
			Config: []benchfmt.Config{
				{Key: "goos", Value: []byte(runtime.GOOS)},
				{Key: "goarch", Value: []byte(runtime.GOARCH)},
			},
			Name:  []byte(r.name()),
			Iters: r.steps,
			Values: []benchfmt.Value{
				{Value: r.nsPerStep, Unit: "ns/op"},
			},
		}
		if err := w.Write(res); err != nil {
			return err
		}
	}
	return nil
}
