package problemgen

import (
	"fmt"
	"log"
	"math"
	"math/rand/v2"
)

// Generator produces unique, difficulty-scaled arithmetic problems. It owns
// its random source; inject a seeded *rand.Rand for reproducible output.
type Generator struct {
	rng    *rand.Rand
	cfg    Config
	logger *log.Logger
}

// New creates a Generator drawing from rng.
func New(rng *rand.Rand, cfg Config) *Generator {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	if cfg.OptionCount < 2 {
		cfg.OptionCount = DefaultConfig().OptionCount
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{rng: rng, cfg: cfg, logger: logger}
}

// Generate returns up to count problems for one stage. A candidate is kept
// only if its signature is absent from both the stage-local set and global;
// accepted signatures are added to both. A slot that exhausts its attempt
// budget is skipped with a warning, so the result may be shorter than count.
func (g *Generator) Generate(stagePrefix string, mode Mode, count int, global *SignatureSet, multiplier float64) []Problem {
	if !mode.Valid() {
		g.logger.Printf("warning: stage %s: unknown operation mode %q", stagePrefix, mode)
		return nil
	}
	if global == nil {
		global = NewSignatureSet()
	}
	lim := limitsFor(multiplier)
	local := NewSignatureSet()

	problems := make([]Problem, 0, max(count, 0))
	for slot := 0; slot < count; slot++ {
		p, ok := g.uniqueProblem(mode, lim, local, global)
		if !ok {
			g.logger.Printf("warning: stage %s: no unique problem for slot %d after %d attempts",
				stagePrefix, slot, g.cfg.MaxAttempts)
			continue
		}
		sig := p.Signature()
		local.Add(sig)
		global.Add(sig)

		p.ID = fmt.Sprintf("%s-q%d", stagePrefix, slot)
		p.Options = g.options(p.CorrectAnswer, lim)
		problems = append(problems, p)
	}
	return problems
}

func (g *Generator) uniqueProblem(mode Mode, lim limits, local, global *SignatureSet) (Problem, bool) {
	for attempt := 0; attempt < g.cfg.MaxAttempts; attempt++ {
		op, ok := mode.Operation()
		if !ok {
			op = Operations[g.rng.IntN(len(Operations))]
		}
		p := g.candidate(op, lim)
		sig := p.Signature()
		if local.Has(sig) || global.Has(sig) {
			continue
		}
		return p, true
	}
	return Problem{}, false
}

func (g *Generator) candidate(op Operation, lim limits) Problem {
	var a, b, answer int
	switch op {
	case OpAdd:
		a = g.floorRand(lim.baseRange*2) + 1
		b = g.floorRand(lim.baseRange*2) + 1
		if float64(a+b) > lim.maxResult {
			b = max(1, g.floorRand(lim.maxResult-float64(a)))
		}
		answer = a + b

	case OpSubtract:
		a = g.floorRand(lim.maxResult) + int(math.Floor(lim.baseRange/2)) + 1
		if a < 2 {
			a = 2
		}
		b = g.floorRand(float64(a-1)) + 1
		if b >= a {
			b = max(1, a-(g.rng.IntN(5)+1))
		}
		answer = a - b

	case OpMultiply:
		a = g.floorRand(lim.factorRange) + 1
		b = g.floorRand(lim.factorRange) + 1
		if float64(a*b) > lim.maxResult {
			b = max(1, int(math.Floor(lim.maxResult/float64(a))))
		}
		answer = a * b

	case OpDivide:
		divisor := g.floorRand(lim.divisorRange) + 2
		quotient := g.floorRand(lim.quotientRange) + 1
		if float64(divisor*quotient) > lim.maxResult {
			quotient = max(1, int(math.Floor(lim.maxResult/float64(divisor))))
		}
		a, b, answer = divisor*quotient, divisor, quotient
	}

	return Problem{
		Text:          formatText(op, a, b),
		Operand1:      a,
		Operand2:      b,
		Operation:     op,
		CorrectAnswer: answer,
	}
}

// floorRand returns floor(U·x) for U uniform in [0, 1).
func (g *Generator) floorRand(x float64) int {
	return int(math.Floor(g.rng.Float64() * x))
}
