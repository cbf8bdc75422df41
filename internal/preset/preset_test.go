package preset

import (
	"strings"
	"testing"
)

const validPreset = `100
20
0
90
90
90
true
`

func TestLoadValidPreset(t *testing.T) {
	cfg, err := Load(strings.NewReader(validPreset))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LastStep != 100 || cfg.PMax != 20 || cfg.PProlif != 90 || cfg.PMigrate != 90 || cfg.PStcChild != 90 || !cfg.StarterSTC {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadScalesDailyDeathRate(t *testing.T) {
	cfg, err := Load(strings.NewReader("100\n20\n24\n90\n90\n90\ntrue\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PDeath != 1 {
		t.Fatalf("PDeath = %v, want 1 (24/24)", cfg.PDeath)
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	spaced := "100\n\n20\n\n0\n90\n90\n90\ntrue\n"
	cfg, err := Load(strings.NewReader(spaced))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LastStep != 100 || cfg.PMax != 20 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsTruncatedFile(t *testing.T) {
	if _, err := Load(strings.NewReader("100\n20\n0\n")); err == nil {
		t.Fatalf("expected error for a file with fewer than 7 lines")
	}
}

func TestLoadRejectsInvalidField(t *testing.T) {
	if _, err := Load(strings.NewReader("not-a-number\n20\n0\n90\n90\n90\ntrue\n")); err == nil {
		t.Fatalf("expected error for a non-numeric last_step")
	}
}

func TestLoadRunsValidateOnResult(t *testing.T) {
	// p_max of 0 fails Validate even though it parses fine.
	if _, err := Load(strings.NewReader("100\n0\n0\n90\n90\n90\ntrue\n")); err == nil {
		t.Fatalf("expected Validate to reject P_max=0")
	}
}
