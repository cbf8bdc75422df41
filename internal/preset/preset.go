// Package preset parses the seven-line settings-file format the original
// benchmark harness consumes. It is an external-collaborator concern: the
// engine package never reads a preset file itself.
package preset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"oncolattice/internal/engine"
)

// Load reads the seven whitespace-separated-value lines, in order:
// last_step, P_max, p_death_daily, p_prolif, p_migrate, p_stc_child, then a
// final line holding the literal "true" or "false" for starter_is_STC.
//
// p_death_daily is divided by 24 before being stored, since the engine
// contract requires an already-scaled per-step probability and that
// conversion is documented as a UI concern, not an engine one.
func Load(r io.Reader) (engine.Config, error) {
	cfg := engine.DefaultConfig()
	lines, err := readLines(r, 7)
	if err != nil {
		return engine.Config{}, err
	}

	lastStep, err := strconv.Atoi(lines[0])
	if err != nil {
		return engine.Config{}, fmt.Errorf("preset: last_step: %w", err)
	}
	pMax, err := strconv.Atoi(lines[1])
	if err != nil {
		return engine.Config{}, fmt.Errorf("preset: P_max: %w", err)
	}
	pDeathDaily, err := strconv.ParseFloat(lines[2], 64)
	if err != nil {
		return engine.Config{}, fmt.Errorf("preset: p_death_daily: %w", err)
	}
	pProlif, err := strconv.Atoi(lines[3])
	if err != nil {
		return engine.Config{}, fmt.Errorf("preset: p_prolif: %w", err)
	}
	pMigrate, err := strconv.Atoi(lines[4])
	if err != nil {
		return engine.Config{}, fmt.Errorf("preset: p_migrate: %w", err)
	}
	pStcChild, err := strconv.Atoi(lines[5])
	if err != nil {
		return engine.Config{}, fmt.Errorf("preset: p_stc_child: %w", err)
	}

	cfg.LastStep = lastStep
	cfg.PMax = pMax
	cfg.PDeath = pDeathDaily / 24
	cfg.PProlif = pProlif
	cfg.PMigrate = pMigrate
	cfg.PStcChild = pStcChild
	cfg.StarterSTC = strings.TrimSpace(lines[6]) == "true"

	if err := cfg.Validate(); err != nil {
		return engine.Config{}, err
	}
	return cfg, nil
}

func readLines(r io.Reader, n int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	lines := make([]string, 0, n)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == n {
			return lines, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}
	return nil, fmt.Errorf("preset: expected %d lines, found %d", n, len(lines))
}
