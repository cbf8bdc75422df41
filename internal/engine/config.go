package engine

import (
	"fmt"
	"strconv"
)

// Config is the immutable configuration for one run. See DESIGN.md for the
// rationale behind InitialSize, which the distilled rule set does not name.
type Config struct {
	LastStep int // total number of steps to simulate

	PMax int // max RTC potential; STC tag is PMax+1

	PDeath     float64 // per-step spontaneous RTC death probability, percent
	PProlif    int     // per-step proliferation probability, percent
	PMigrate   int     // per-step migration probability, percent
	PStcChild  int     // given STC proliferates, probability daughter is STC, percent
	StarterSTC bool    // seed cell type

	InitialSize int // side length of the initial grid; default 100
}

// DefaultConfig returns the configuration used by the reference scenarios:
// high proliferation/migration/STC-child odds, no death, STC starter.
func DefaultConfig() Config {
	return Config{
		LastStep:    100,
		PMax:        20,
		PDeath:      0,
		PProlif:     90,
		PMigrate:    90,
		PStcChild:   90,
		StarterSTC:  true,
		InitialSize: 100,
	}
}

// Validate checks every bound named in the specification's parameter
// validation rules. It is called by NewEngine and by SetRates (Reset keeps
// the already-validated configuration); nothing downstream re-checks these
// bounds.
func (c Config) Validate() error {
	if c.LastStep < 0 {
		return fmt.Errorf("%w: last_step must be >= 0, got %d", ErrConfig, c.LastStep)
	}
	if c.PMax < 1 {
		return fmt.Errorf("%w: P_max must be >= 1, got %d", ErrConfig, c.PMax)
	}
	if c.PMax > 1<<30 {
		return fmt.Errorf("%w: P_max must leave room for the STC tag, got %d", ErrConfig, c.PMax)
	}
	if c.PDeath < 0 || c.PDeath > 100 {
		return fmt.Errorf("%w: p_death must be in [0,100], got %v", ErrConfig, c.PDeath)
	}
	if c.PProlif < 0 || c.PProlif > 100 {
		return fmt.Errorf("%w: p_prolif must be in [0,100], got %d", ErrConfig, c.PProlif)
	}
	if c.PMigrate < 0 || c.PMigrate > 100 {
		return fmt.Errorf("%w: p_migrate must be in [0,100], got %d", ErrConfig, c.PMigrate)
	}
	if c.PStcChild < 0 || c.PStcChild > 100 {
		return fmt.Errorf("%w: p_stc_child must be in [0,100], got %d", ErrConfig, c.PStcChild)
	}
	if c.InitialSize < 12 {
		return fmt.Errorf("%w: initial_size must be >= 12, got %d", ErrConfig, c.InitialSize)
	}
	return nil
}

// FromMap overlays flag-style key/value overrides onto DefaultConfig, in the
// same shape as the reference simulations' FromMap helpers. Unrecognized
// keys are ignored; malformed values are ignored rather than rejected,
// leaving Validate as the single source of truth for acceptance.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["last_step"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.LastStep = parsed
		}
	}
	if v, ok := cfg["p_max"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.PMax = parsed
		}
	}
	if v, ok := cfg["p_death"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.PDeath = parsed
		}
	}
	if v, ok := cfg["p_prolif"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.PProlif = parsed
		}
	}
	if v, ok := cfg["p_migrate"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.PMigrate = parsed
		}
	}
	if v, ok := cfg["p_stc_child"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.PStcChild = parsed
		}
	}
	if v, ok := cfg["starter_is_stc"]; ok {
		c.StarterSTC = v == "true"
	}
	if v, ok := cfg["initial_size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.InitialSize = parsed
		}
	}
	return c
}
