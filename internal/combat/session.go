// Package combat resolves one stage's battle: answers, timer, damage,
// items and the win, lose or retreat outcome.
package combat

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/stages"
)

// ErrNoProblems is returned when a stage has nothing to fight with.
var ErrNoProblems = errors.New("stage has no problems")

// Session is the state of one combat. It is driven by a single goroutine;
// the driver calls Tick once a second and Continue after showing a
// resolution.
type Session struct {
	id    string
	stage *stages.Stage
	rules Rules
	rng   *rand.Rand

	stats      PlayerStats
	startScore int
	enemyHP    int

	index     int
	timeLeft  int
	phase     Phase
	armed     bool
	hintShown bool

	last *Resolution
}

// New starts combat in stage with the player's current stats. The stats
// are copied; the caller's value is untouched until it reads Result.
func New(stage *stages.Stage, stats PlayerStats, rules Rules, rng *rand.Rand) (*Session, error) {
	if stage == nil || len(stage.Problems) == 0 {
		return nil, ErrNoProblems
	}
	stats = stats.Normalize()
	return &Session{
		id:         uuid.NewString(),
		stage:      stage,
		rules:      rules,
		rng:        rng,
		stats:      stats,
		startScore: stats.Score,
		enemyHP:    stage.EnemyMaxHP,
		timeLeft:   rules.TimerSeconds,
		phase:      PhaseAwaitingAnswer,
	}, nil
}

// ID uniquely identifies this combat attempt.
func (s *Session) ID() string { return s.id }

// Stage returns the stage being fought.
func (s *Session) Stage() *stages.Stage { return s.stage }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Stats returns the working copy of the player's stats.
func (s *Session) Stats() PlayerStats { return s.stats }

// EnemyHP returns the enemy's remaining HP.
func (s *Session) EnemyHP() int { return s.enemyHP }

// Index returns the zero-based index of the current problem.
func (s *Session) Index() int { return s.index }

// TimeLeft returns the seconds remaining on the current problem.
func (s *Session) TimeLeft() int { return s.timeLeft }

// Armed reports whether a power strike is armed.
func (s *Session) Armed() bool { return s.armed }

// HintShown reports whether the correct option is revealed.
func (s *Session) HintShown() bool { return s.hintShown }

// Last returns the most recent resolution, or nil.
func (s *Session) Last() *Resolution { return s.last }

// Problem returns the current problem.
func (s *Session) Problem() problemgen.Problem {
	return s.stage.Problems[s.index]
}

// Token identifies the current problem of this session. Timer and delay
// messages carry it so stale ones can be dropped.
func (s *Session) Token() string {
	return fmt.Sprintf("%s/%d", s.id, s.index)
}

// Outcome returns the final outcome, or OutcomeNone while combat runs.
func (s *Session) Outcome() Outcome {
	switch s.phase {
	case PhaseWon:
		return OutcomeWin
	case PhaseLost:
		return OutcomeLose
	case PhaseRetreated:
		return OutcomeRetreat
	}
	return OutcomeNone
}

// Result returns the end-of-combat result. ScoreDelta is zero on retreat.
func (s *Session) Result() Result {
	r := Result{Outcome: s.Outcome(), Stats: s.stats}
	if r.Outcome != OutcomeRetreat {
		r.ScoreDelta = s.stats.Score - s.startScore
	}
	return r
}

func (s *Session) accepting() bool {
	return s.phase == PhaseAwaitingAnswer
}

// Submit answers the current problem with value. It is ignored unless the
// session is awaiting an answer.
func (s *Session) Submit(value int) (Resolution, bool) {
	if !s.accepting() {
		return Resolution{}, false
	}
	if problemgen.CheckAnswer(s.Problem(), value) {
		return s.resolveCorrect(value), true
	}
	return s.resolveIncorrect(value), true
}

func (s *Session) resolveCorrect(value int) Resolution {
	r := Resolution{Kind: KindCorrect, Answer: value}
	name := s.stage.EnemyName

	dmg := s.rules.PlayerAttack + s.rng.IntN(s.rules.MaxRandomBonus+1)
	if s.armed {
		dmg = int(math.Floor(float64(dmg) * s.rules.PowerStrikeMultiplier))
		s.armed = false
		s.stats.Focus = 0
		r.PowerStrike = true
		r.Messages = append(r.Messages, "Power Strike released! 🔥")
	} else {
		s.stats.Focus = min(s.stats.MaxFocus, s.stats.Focus+s.rules.FocusGain)
	}

	if s.stage.SpecialAbility == stages.AbilityDamageResist && s.stage.AbilityValue > 0 {
		r.Resisted = min(dmg-1, s.stage.AbilityValue)
		dmg = max(1, dmg-r.Resisted)
		r.Messages = append(r.Messages, fmt.Sprintf("%s resisted %d damage! 🛡️", name, r.Resisted))
	}

	r.EnemyDamage = dmg
	s.enemyHP = max(0, s.enemyHP-dmg)
	r.Messages = append(r.Messages, fmt.Sprintf("Excellent! %s takes %d damage! ✅", name, dmg))

	gain := s.rules.CorrectScore + s.rules.MilestoneBonus[s.stage.ID]
	if s.rules.TimerSeconds-s.timeLeft <= s.rules.QuickThresholdSeconds {
		gain += s.rules.QuickBonus
		r.QuickBonus = true
		r.Messages = append(r.Messages, fmt.Sprintf("Quick answer! +%d points! ⚡", s.rules.QuickBonus))
	}
	s.stats.Score += gain
	r.ScoreChange = gain

	if s.enemyHP == 0 {
		r.Outcome = OutcomeWin
		r.Messages = append(r.Messages, fmt.Sprintf("%s is defeated! 🎉", name))
		if s.stage.SpecialAbility == stages.AbilityOnDefeatDamage && s.stage.AbilityValue > 0 {
			r.LastStand = s.stage.AbilityValue
			s.stats.HP = max(0, s.stats.HP-r.LastStand)
			r.Messages = append(r.Messages, fmt.Sprintf("%s unleashes a final blast! You lose %d HP! 💥", name, r.LastStand))
			if s.stats.HP == 0 {
				r.Outcome = OutcomeLose
				r.Messages = append(r.Messages, "...and you fall at last. 💔")
			}
		}
	} else {
		r.Outcome = s.advanceOutcome()
	}
	return s.settle(r)
}

func (s *Session) resolveIncorrect(value int) Resolution {
	r := Resolution{Kind: KindIncorrect, Answer: value}

	dmg := s.rules.EnemyAttack + s.rng.IntN(s.rules.MaxRandomBonus+1)
	r.PlayerDamage = dmg
	s.stats.HP = max(0, s.stats.HP-dmg)
	r.ScoreChange = s.penalize(s.rules.WrongPenalty)
	r.Messages = append(r.Messages, fmt.Sprintf("Oops, wrong answer ❌ %s attacks! You lose %d HP.", s.stage.EnemyName, dmg))
	if s.dropStrike() {
		r.PowerStrike = true
		r.Messages = append(r.Messages, "Your Power Strike fizzles out... 💨")
	}
	r.Outcome = s.advanceOutcome()
	return s.settle(r)
}

// Tick counts the timer down one second. When it reaches zero the timeout
// is resolved and returned.
func (s *Session) Tick() (Resolution, bool) {
	if !s.accepting() {
		return Resolution{}, false
	}
	s.timeLeft--
	if s.timeLeft > 0 {
		return Resolution{}, false
	}
	s.timeLeft = 0
	return s.Timeout()
}

// Timeout resolves the current problem as unanswered. It fires at most once
// per problem.
func (s *Session) Timeout() (Resolution, bool) {
	if !s.accepting() {
		return Resolution{}, false
	}
	s.timeLeft = 0

	r := Resolution{Kind: KindTimeout, PlayerDamage: s.rules.TimeoutDamage}
	s.stats.HP = max(0, s.stats.HP-s.rules.TimeoutDamage)
	r.ScoreChange = s.penalize(s.rules.TimeoutPenalty)
	r.Messages = append(r.Messages, fmt.Sprintf("Time's up! %s attacks! You lose %d HP.", s.stage.EnemyName, s.rules.TimeoutDamage))
	if s.dropStrike() {
		r.PowerStrike = true
		r.Messages = append(r.Messages, "Your Power Strike fizzles out... 💨")
	}
	r.Outcome = s.advanceOutcome()
	return s.settle(r), true
}

// advanceOutcome decides what follows a resolved problem that did not
// defeat the enemy.
func (s *Session) advanceOutcome() Outcome {
	if s.stats.HP == 0 {
		return OutcomeLose
	}
	if s.index >= len(s.stage.Problems)-1 {
		return OutcomeLose
	}
	return OutcomeNone
}

func (s *Session) settle(r Resolution) Resolution {
	if r.Outcome == OutcomeLose && s.stats.HP == 0 && r.LastStand == 0 {
		r.Messages = append(r.Messages, "Your HP is gone! You have been defeated...")
	} else if r.Outcome == OutcomeLose && r.LastStand == 0 {
		r.Messages = append(r.Messages, fmt.Sprintf("%s still stands! You ran out of problems...", s.stage.EnemyName))
	}
	s.phase = PhaseProcessing
	s.hintShown = false
	s.last = &r
	return r
}

func (s *Session) penalize(points int) int {
	before := s.stats.Score
	s.stats.Score = max(0, s.stats.Score-points)
	return s.stats.Score - before
}

func (s *Session) dropStrike() bool {
	if !s.armed {
		return false
	}
	s.armed = false
	s.stats.Focus = 0
	return true
}

// Continue leaves the processing phase: it either finalizes the outcome of
// the last resolution or moves to the next problem with a fresh timer.
func (s *Session) Continue() bool {
	if s.phase != PhaseProcessing || s.last == nil {
		return false
	}
	switch s.last.Outcome {
	case OutcomeWin:
		s.phase = PhaseWon
	case OutcomeLose:
		s.phase = PhaseLost
	default:
		s.index++
		s.timeLeft = s.rules.TimerSeconds
		s.hintShown = false
		s.phase = PhaseAwaitingAnswer
		s.last = nil
	}
	return true
}

// usable reports whether item and strike inputs are accepted now.
func (s *Session) usable() bool {
	return s.accepting() && !s.armed
}

// CanUseHint reports whether UseHint would take effect.
func (s *Session) CanUseHint() bool {
	return s.usable() && s.stats.Hints > 0 && !s.hintShown
}

// UseHint spends a hint to reveal the correct option.
func (s *Session) UseHint() (Resolution, bool) {
	if !s.CanUseHint() {
		return Resolution{}, false
	}
	s.stats.Hints--
	r := Resolution{Kind: KindHint}
	r.ScoreChange = s.penalize(s.rules.HintPenalty)
	r.Messages = []string{"Hint used! The correct option is revealed 💡"}
	s.hintShown = true
	s.last = &r
	return r, true
}

// CanUsePotion reports whether UsePotion would take effect.
func (s *Session) CanUsePotion() bool {
	return s.usable() && s.stats.Potions > 0 && s.stats.HP < s.stats.MaxHP
}

// UsePotion spends a potion to restore HP.
func (s *Session) UsePotion() (Resolution, bool) {
	if !s.CanUsePotion() {
		return Resolution{}, false
	}
	healed := min(s.rules.PotionHeal, s.stats.MaxHP-s.stats.HP)
	s.stats.Potions--
	s.stats.HP += healed
	r := Resolution{Kind: KindPotion, Healed: healed}
	r.Messages = []string{fmt.Sprintf("You drink a potion and recover %d HP! ❤️", healed)}
	s.last = &r
	return r, true
}

// CanArmPowerStrike reports whether ArmPowerStrike would take effect.
func (s *Session) CanArmPowerStrike() bool {
	return s.usable() && s.stats.Focus >= s.stats.MaxFocus
}

// ArmPowerStrike readies a power strike for the next correct answer. It
// does not consume the turn or stop the timer.
func (s *Session) ArmPowerStrike() (Resolution, bool) {
	if !s.CanArmPowerStrike() {
		return Resolution{}, false
	}
	s.armed = true
	r := Resolution{Kind: KindPowerStrikeArmed}
	r.Messages = []string{"Power Strike ready! Answer the next problem correctly for massive damage! ✨"}
	s.last = &r
	return r, true
}

// CanRetreat reports whether Retreat would take effect.
func (s *Session) CanRetreat() bool {
	return s.accepting()
}

// Retreat abandons the stage. The working stats are kept but the score
// delta is reported as zero.
func (s *Session) Retreat() (Resolution, bool) {
	if !s.CanRetreat() {
		return Resolution{}, false
	}
	s.phase = PhaseRetreated
	s.armed = false
	r := Resolution{Kind: KindRetreat, Outcome: OutcomeRetreat}
	r.Messages = []string{"You retreat to the map."}
	s.last = &r
	return r, true
}
