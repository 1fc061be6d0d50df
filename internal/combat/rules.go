package combat

// Rules are the tunable numbers of combat.
type Rules struct {
	PlayerAttack   int
	EnemyAttack    int
	MaxRandomBonus int

	// TimerSeconds is the countdown per problem.
	TimerSeconds int

	TimeoutDamage  int
	TimeoutPenalty int
	WrongPenalty   int
	CorrectScore   int

	// MilestoneBonus is extra score per correct answer in specific stages.
	MilestoneBonus map[string]int

	QuickThresholdSeconds int
	QuickBonus            int

	FocusGain             int
	PowerStrikeMultiplier float64

	PotionHeal  int
	HintPenalty int
}

// DefaultRules returns the standard balance.
func DefaultRules() Rules {
	return Rules{
		PlayerAttack:          15,
		EnemyAttack:           12,
		MaxRandomBonus:        5,
		TimerSeconds:          25,
		TimeoutDamage:         10,
		TimeoutPenalty:        2,
		WrongPenalty:          5,
		CorrectScore:          10,
		MilestoneBonus:        map[string]int{"s5": 10, "s10": 10, "s15": 20},
		QuickThresholdSeconds: 7,
		QuickBonus:            5,
		FocusGain:             20,
		PowerStrikeMultiplier: 1.6,
		PotionHeal:            30,
		HintPenalty:           2,
	}
}
