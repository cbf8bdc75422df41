package engine

import (
	"bytes"
	"testing"

	"golang.org/x/perf/benchfmt"
)

func benchmarkStep(b *testing.B, workers int) {
	cfg := DefaultConfig()
	eng, err := NewEngine(cfg, WithMaxWorkers(workers))
	if err != nil {
		b.Fatalf("NewEngine: %v", err)
	}
	eng.Reset(7)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := eng.Step(false); err != nil {
			b.Fatalf("Step: %v", err)
		}
	}
}

func BenchmarkStepWorkers1(b *testing.B) { benchmarkStep(b, 1) }
func BenchmarkStepWorkers4(b *testing.B) { benchmarkStep(b, 4) }
func BenchmarkStepWorkers8(b *testing.B) { benchmarkStep(b, 8) }

// TestBenchfmtRecordRoundTrips exercises the same benchfmt.Writer path the
// cmd/bench harness uses, so a malformed Result shape fails here rather than
// only at sweep time.
func TestBenchfmtRecordRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	w := benchfmt.NewWriter(&buf)
	res := &benchfmt.Result{
		Config: []benchfmt.Config{
			{Key: "goos", Value: []byte("linux")},
		},
		Name:  []byte("BenchmarkStep/workers=4"),
		Iters: 50,
		Values: []benchfmt.Value{
			{Value: 1234.5, Unit: "ns/op"},
		},
	}
	if err := w.Write(res); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected the writer to produce output")
	}
}
