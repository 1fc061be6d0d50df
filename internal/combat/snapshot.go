package combat

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathquest/internal/problemgen"
)

// Animation is a transient visual cue for one combatant.
type Animation string

const (
	AnimIdle   Animation = ""
	AnimAttack Animation = "attack"
	AnimShake  Animation = "shake"
	AnimHeal   Animation = "heal"
)

// EffectKind is the floating number shown over a combatant.
type EffectKind string

const (
	EffectDamage EffectKind = "damage"
	EffectHeal   EffectKind = "heal"
)

// Effect is a floating "-12" or "+30" over the player or enemy.
type Effect struct {
	OnPlayer bool
	Kind     EffectKind
	Amount   int
}

// Snapshot is everything the combat screen draws. It is computed from the
// session on every call and never stored.
type Snapshot struct {
	StageID     string
	StageName   string
	EnemyName   string
	EnemySprite string
	EnemyHP     int
	EnemyMaxHP  int

	Stats PlayerStats

	Problem      problemgen.Problem
	ProblemIndex int
	ProblemCount int

	TimeLeft     int
	TimerSeconds int

	Phase Phase
	Armed bool

	// RevealedOption is the index of the correct option while a hint is
	// active, else -1.
	RevealedOption int

	// SelectedOption is the index of the submitted option while its
	// resolution is on screen, else -1.
	SelectedOption int
	// CorrectOption is the index of the correct option once answered, else -1.
	CorrectOption int

	CanUseHint     bool
	CanUsePotion   bool
	CanPowerStrike bool
	CanRetreat     bool

	Message   string
	Companion string

	PlayerAnim Animation
	EnemyAnim  Animation
	Effects    []Effect
}

// Snapshot derives the display state of s.
func (s *Session) Snapshot() Snapshot {
	p := s.Problem()
	snap := Snapshot{
		StageID:        s.stage.ID,
		StageName:      s.stage.Name,
		EnemyName:      s.stage.EnemyName,
		EnemySprite:    s.stage.EnemySprite,
		EnemyHP:        s.enemyHP,
		EnemyMaxHP:     s.stage.EnemyMaxHP,
		Stats:          s.stats,
		Problem:        p,
		ProblemIndex:   s.index,
		ProblemCount:   len(s.stage.Problems),
		TimeLeft:       s.timeLeft,
		TimerSeconds:   s.rules.TimerSeconds,
		Phase:          s.phase,
		Armed:          s.armed,
		RevealedOption: -1,
		SelectedOption: -1,
		CorrectOption:  -1,
		CanUseHint:     s.CanUseHint(),
		CanUsePotion:   s.CanUsePotion(),
		CanPowerStrike: s.CanArmPowerStrike(),
		CanRetreat:     s.CanRetreat(),
	}
	if c := s.stage.Companion; c.Advice != "" {
		snap.Companion = fmt.Sprintf("%s %s: \"%s\"", c.Sprite, c.Name, c.Advice)
	}
	if s.hintShown {
		snap.RevealedOption = problemgen.CorrectIndex(p)
	}

	r := s.last
	if r == nil {
		snap.Message = fmt.Sprintf("Problem %d/%d: %s is getting ready...",
			s.index+1, len(s.stage.Problems), s.stage.EnemyName)
		return snap
	}
	snap.Message = strings.Join(r.Messages, " ")

	switch r.Kind {
	case KindCorrect:
		snap.SelectedOption = problemgen.OptionIndex(p, r.Answer)
		snap.CorrectOption = problemgen.CorrectIndex(p)
		snap.PlayerAnim, snap.EnemyAnim = AnimAttack, AnimShake
		snap.Effects = append(snap.Effects, Effect{Kind: EffectDamage, Amount: r.EnemyDamage})
		if r.LastStand > 0 {
			snap.Effects = append(snap.Effects, Effect{OnPlayer: true, Kind: EffectDamage, Amount: r.LastStand})
		}
	case KindIncorrect, KindTimeout:
		if r.Kind == KindIncorrect {
			snap.SelectedOption = problemgen.OptionIndex(p, r.Answer)
		}
		snap.CorrectOption = problemgen.CorrectIndex(p)
		snap.PlayerAnim, snap.EnemyAnim = AnimShake, AnimAttack
		snap.Effects = append(snap.Effects, Effect{OnPlayer: true, Kind: EffectDamage, Amount: r.PlayerDamage})
	case KindPotion:
		snap.PlayerAnim = AnimHeal
		snap.Effects = append(snap.Effects, Effect{OnPlayer: true, Kind: EffectHeal, Amount: r.Healed})
	}
	return snap
}

