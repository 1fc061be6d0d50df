package problemgen

import "slices"

// maxDistractorDraws bounds the random search before falling back to
// consecutive values above the answer.
const maxDistractorDraws = 1000

// options returns the answer plus OptionCount-1 distinct positive
// distractors, shuffled.
func (g *Generator) options(answer int, lim limits) []int {
	opts := make([]int, 1, g.cfg.OptionCount)
	opts[0] = answer

	for draw := 0; len(opts) < g.cfg.OptionCount && draw < maxDistractorDraws; draw++ {
		delta := g.floorRand(lim.deltaRange) + 1
		sign := 1
		if g.rng.Float64() >= 0.5 {
			sign = -1
		}

		var c int
		if g.rng.Float64() < g.cfg.NearMissProbability {
			c = answer + sign*delta
		} else {
			c = g.floorRand(max(10, float64(answer)+lim.spread)) + 1
		}
		if c <= 0 {
			c = answer + delta
		}
		if slices.Contains(opts, c) {
			continue
		}
		opts = append(opts, c)
	}

	for next := answer + 1; len(opts) < g.cfg.OptionCount; next++ {
		if !slices.Contains(opts, next) {
			opts = append(opts, next)
		}
	}

	g.rng.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
	return opts
}
