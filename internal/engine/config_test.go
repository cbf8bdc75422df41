package engine

import (
	"errors"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig should validate, got %v", err)
	}
}

func TestValidateRejectsBadFields(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"negative last_step", func(c *Config) { c.LastStep = -1 }},
		{"p_max zero", func(c *Config) { c.PMax = 0 }},
		{"p_death out of range", func(c *Config) { c.PDeath = 101 }},
		{"p_prolif negative", func(c *Config) { c.PProlif = -1 }},
		{"p_migrate over 100", func(c *Config) { c.PMigrate = 200 }},
		{"p_stc_child negative", func(c *Config) { c.PStcChild = -5 }},
		{"initial_size too small", func(c *Config) { c.InitialSize = 5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mut(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected Validate to reject %s", tc.name)
			}
			if !errors.Is(err, ErrConfig) {
				t.Fatalf("error %v does not wrap ErrConfig", err)
			}
		})
	}
}

func TestFromMapOverridesDefaults(t *testing.T) {
	cfg := FromMap(map[string]string{
		"last_step":      "5",
		"p_max":          "3",
		"p_death":        "12.5",
		"p_prolif":       "10",
		"p_migrate":      "20",
		"p_stc_child":    "30",
		"starter_is_stc": "true",
		"initial_size":   "40",
	})
	want := Config{
		LastStep:    5,
		PMax:        3,
		PDeath:      12.5,
		PProlif:     10,
		PMigrate:    20,
		PStcChild:   30,
		StarterSTC:  true,
		InitialSize: 40,
	}
	if cfg != want {
		t.Fatalf("FromMap = %+v, want %+v", cfg, want)
	}
}

func TestFromMapIgnoresMalformedValues(t *testing.T) {
	cfg := FromMap(map[string]string{"p_max": "not-a-number"})
	if cfg.PMax != DefaultConfig().PMax {
		t.Fatalf("malformed p_max should be ignored, got %d", cfg.PMax)
	}
}
