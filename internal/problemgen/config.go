package problemgen

import "log"

// Config controls the behavior of the Generator.
type Config struct {
	// MaxAttempts is how many candidates are drawn for one problem slot
	// before the slot is skipped.
	MaxAttempts int

	// OptionCount is the number of answer options per problem, the correct
	// one included.
	OptionCount int

	// NearMissProbability is the chance a distractor is drawn close to the
	// answer rather than uniformly from the wider range.
	NearMissProbability float64

	// Logger receives generator warnings. Nil means log.Default().
	Logger *log.Logger
}

// DefaultConfig returns the tuning used by the stage catalog.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:         100,
		OptionCount:         4,
		NearMissProbability: 0.7,
	}
}

// limits holds the numeric ranges derived from a difficulty multiplier.
type limits struct {
	baseRange     float64
	maxResult     float64
	factorRange   float64
	divisorRange  float64
	quotientRange float64
	deltaRange    float64
	spread        float64
}

func limitsFor(m float64) limits {
	if m <= 0 {
		m = 1
	}
	l := limits{
		baseRange: 20 * m,
		maxResult: 100 * m,
		spread:    20 * m,
	}
	if m > 1.5 {
		l.maxResult = 150 * m
	}
	if m > 2.5 {
		l.maxResult = 200 * m
	}
	step := float64(int(5 * m))
	l.factorRange = 10 + step
	l.divisorRange = 10 + step
	l.quotientRange = 12 + step
	l.deltaRange = float64(int(10 + 5*m))
	return l
}
