package engine

// moveRecord is a deferred Population Index rewrite: the cell at
// snapshot[Index] migrated to To. Workers cannot write the shared index
// themselves; the scheduler applies these after the barrier.
type moveRecord struct {
	Index int
	To    Coord
}

// workerOutput is a worker-private accumulator drained by the scheduler at
// the end of a step. Move records are applied first, by snapshot index, and
// births are appended after them, so a newly born daughter never shifts the
// position of a pre-existing index entry.
type workerOutput struct {
	Births []Coord
	Moves  []moveRecord
}

// isSTC reports whether a site value is the STC tag for the given P_max.
func isSTC(v int32, pMax int32) bool { return v == pMax+1 }

// isRTC reports whether a site value is a live RTC for the given P_max.
func isRTC(v int32, pMax int32) bool { return v >= 1 && v <= pMax }

// applyCell runs the decision pipeline of §4.5 for the cell at snapshot[idx].
// It mutates the grid directly for sites the cell owns (its own coordinate,
// or a site it has just reserved) and records births/migrations in out for
// the scheduler to fold into the Population Index after the barrier.
func applyCell(g *Grid, snapshot []Coord, idx int, cfg Config, rng *percentRNG, out *workerOutput) error {
	c := snapshot[idx]
	pMax := int32(cfg.PMax)

	v, err := g.Get(c.X, c.Y)
	if err != nil {
		return err
	}
	if v == siteEmpty {
		// Already vacated earlier this step; nothing to do.
		return nil
	}
	if v < 0 {
		return invariantf("cell (%d,%d) observed reserved tag %d outside a reservation it owns", c.X, c.Y, v)
	}

	// 1. Spontaneous death. STCs are exempt.
	if isRTC(v, pMax) {
		if float64(rng.Percent()) < cfg.PDeath {
			return g.Set(c.X, c.Y, siteEmpty)
		}
	} else if !isSTC(v, pMax) {
		return invariantf("cell (%d,%d) holds unrecognized tag %d for P_max=%d", c.X, c.Y, v, pMax)
	}

	// 2. Attempt a reservation; idle if none is available.
	site, ok, err := reserveFreeNeighbor(g, c.X, c.Y, rng)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	// 3. Proliferation vs. migration.
	if rng.Percent() < cfg.PProlif {
		return applyProliferation(g, c, v, site, pMax, cfg, rng, out)
	}
	return applyMigration(g, c, v, site, cfg, rng, out, idx)
}

func applyProliferation(g *Grid, c Coord, v int32, site Coord, pMax int32, cfg Config, rng *percentRNG, out *workerOutput) error {
	if isSTC(v, pMax) {
		daughter := pMax // fresh RTC daughter at full potential
		if rng.Percent() < cfg.PStcChild {
			daughter = pMax + 1 // STC daughter
		}
		if err := commit(g, site, daughter); err != nil {
			return err
		}
		out.Births = append(out.Births, site)
		return nil
	}

	// RTC: decrement the parent, then write the same post-decrement value to
	// both the parent's own site and the daughter. A daughter is not placed
	// if the decremented potential is 0; the parent's site simply becomes
	// empty via the same write.
	newPotential := v - 1
	if err := g.Set(c.X, c.Y, newPotential); err != nil {
		return err
	}
	if newPotential <= 0 {
		return release(g, site)
	}
	if err := commit(g, site, newPotential); err != nil {
		return err
	}
	out.Births = append(out.Births, site)
	return nil
}

func applyMigration(g *Grid, c Coord, v int32, site Coord, cfg Config, rng *percentRNG, out *workerOutput, idx int) error {
	if rng.Percent() >= cfg.PMigrate {
		return release(g, site)
	}
	if err := commit(g, site, v); err != nil {
		return err
	}
	if err := g.Set(c.X, c.Y, siteEmpty); err != nil {
		return err
	}
	out.Moves = append(out.Moves, moveRecord{Index: idx, To: site})
	return nil
}
