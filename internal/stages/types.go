package stages

import (
	"time"

	"github.com/abhisek/mathquest/internal/problemgen"
)

// Ability is an enemy's special ability.
type Ability string

const (
	AbilityNone Ability = ""

	// AbilityOnDefeatDamage deals AbilityValue damage to the player when the
	// enemy is defeated.
	AbilityOnDefeatDamage Ability = "onDefeatDamage"

	// AbilityDamageResist subtracts AbilityValue from every player hit,
	// never below 1 damage.
	AbilityDamageResist Ability = "damageResist"

	// AbilityAttackUpOnHit and AbilityHPDrain are flavor only; combat does
	// not act on them.
	AbilityAttackUpOnHit Ability = "attackUpOnHit"
	AbilityHPDrain       Ability = "hpDrain"
)

// Valid reports whether a is a known ability or none.
func (a Ability) Valid() bool {
	switch a {
	case AbilityNone, AbilityOnDefeatDamage, AbilityDamageResist, AbilityAttackUpOnHit, AbilityHPDrain:
		return true
	}
	return false
}

// DialogueLine is one line of a conversation shown in the dialogue modal.
type DialogueLine struct {
	SpeakerSprite string `yaml:"speakerSprite"`
	SpeakerName   string `yaml:"speakerName"`
	Text          string `yaml:"text"`
}

// Companion is the helper character whose advice is shown during combat.
type Companion struct {
	Name   string `yaml:"name"`
	Advice string `yaml:"advice"`
	Sprite string `yaml:"sprite"`
}

// Template is the static description of a stage, before problems exist.
type Template struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	WorldName   string          `yaml:"worldName"`
	Description string          `yaml:"description"`
	Mode        problemgen.Mode `yaml:"operation"`
	NumProblems int             `yaml:"numProblems"`

	// Difficulty scales operand ranges. Zero means 1.
	Difficulty float64 `yaml:"difficulty"`

	EnemyName      string  `yaml:"enemyName"`
	EnemySprite    string  `yaml:"enemySprite"`
	EnemyMaxHP     int     `yaml:"enemyMaxHp"`
	SpecialAbility Ability `yaml:"specialAbility"`
	AbilityValue   int     `yaml:"abilityValue"`

	Companion Companion `yaml:"companion"`
	MapIcon   string    `yaml:"mapIcon"`

	IntroDialogue     []DialogueLine `yaml:"introDialogue"`
	OutroDialogueWin  []DialogueLine `yaml:"outroDialogueWin"`
	OutroDialogueLose []DialogueLine `yaml:"outroDialogueLose"`
}

// Multiplier returns the generator difficulty multiplier for t.
func (t Template) Multiplier() float64 {
	if t.Difficulty <= 0 {
		return 1
	}
	return t.Difficulty
}

// Stage is a playable stage: its template plus the generated problems.
// len(Problems) may be less than NumProblems when generation ran out of
// unique candidates.
type Stage struct {
	Template
	Problems []problemgen.Problem
}

// ElementKind distinguishes cutscene elements.
type ElementKind string

const (
	ElementCharacter ElementKind = "character"
	ElementText      ElementKind = "text"
)

// Element is one item drawn in a cutscene frame.
type Element struct {
	Kind   ElementKind `yaml:"kind"`
	Sprite string      `yaml:"sprite"`
	Name   string      `yaml:"name"`
	Text   string      `yaml:"text"`
}

// Frame is one cutscene frame.
type Frame struct {
	ID            string    `yaml:"id"`
	Elements      []Element `yaml:"elements"`
	AutoAdvanceMs int       `yaml:"autoAdvanceMs"`
}

// AutoAdvance returns how long the frame stays up before advancing on its
// own. Zero means the player must advance manually.
func (f Frame) AutoAdvance() time.Duration {
	return time.Duration(f.AutoAdvanceMs) * time.Millisecond
}

// Cutscene is an ordered list of frames.
type Cutscene []Frame
