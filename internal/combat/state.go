package combat

// Phase is the current phase of a combat session.
type Phase int

const (
	PhaseAwaitingAnswer Phase = iota // Timer running, inputs accepted
	PhaseProcessing                  // Showing the outcome of an answer
	PhaseWon
	PhaseLost
	PhaseRetreated
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingAnswer:
		return "awaiting"
	case PhaseProcessing:
		return "processing"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	case PhaseRetreated:
		return "retreated"
	}
	return "unknown"
}

// Terminal reports whether combat is over.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost || p == PhaseRetreated
}

// Outcome is how a combat session ended.
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeWin     Outcome = "win"
	OutcomeLose    Outcome = "lose"
	OutcomeRetreat Outcome = "retreat"
)

// Kind identifies what a Resolution resolved.
type Kind int

const (
	KindNone Kind = iota
	KindCorrect
	KindIncorrect
	KindTimeout
	KindHint
	KindPotion
	KindPowerStrikeArmed
	KindRetreat
)

// Resolution describes the effect of one accepted input. Fields that do
// not apply to Kind are zero.
type Resolution struct {
	Kind Kind

	// Answer is the submitted value for KindCorrect and KindIncorrect.
	Answer int

	EnemyDamage  int
	PlayerDamage int
	Resisted     int
	Healed       int

	// PowerStrike is set when a correct answer released an armed strike,
	// or when the strike was lost to a miss or timeout.
	PowerStrike bool
	QuickBonus  bool

	// LastStand is the onDefeatDamage dealt as the enemy fell.
	LastStand int

	// ScoreChange is the score delta actually applied after flooring.
	ScoreChange int

	// Outcome is the result this resolution leads to once the driver calls
	// Continue. OutcomeNone means combat moves to the next problem.
	Outcome Outcome

	// Messages is the combat log for this resolution.
	Messages []string
}

// Result is handed to the progression layer when combat ends.
type Result struct {
	Outcome    Outcome
	Stats      PlayerStats
	ScoreDelta int
}
