package combat

// PlayerStats is the player's persistent resources. JSON tags match the
// saved-game format.
type PlayerStats struct {
	HP       int `json:"hp"`
	MaxHP    int `json:"maxHp"`
	Score    int `json:"score"`
	Hints    int `json:"hints"`
	Potions  int `json:"potions"`
	Focus    int `json:"focus"`
	MaxFocus int `json:"maxFocus"`
}

// DefaultPlayerStats returns the stats of a fresh game.
func DefaultPlayerStats() PlayerStats {
	return PlayerStats{
		HP:       100,
		MaxHP:    100,
		Score:    0,
		Hints:    3,
		Potions:  2,
		Focus:    0,
		MaxFocus: 100,
	}
}

// Normalize clamps every field into its valid range.
func (s PlayerStats) Normalize() PlayerStats {
	if s.MaxHP <= 0 {
		s.MaxHP = DefaultPlayerStats().MaxHP
	}
	if s.MaxFocus <= 0 {
		s.MaxFocus = DefaultPlayerStats().MaxFocus
	}
	s.HP = clamp(s.HP, 0, s.MaxHP)
	s.Focus = clamp(s.Focus, 0, s.MaxFocus)
	s.Score = max(s.Score, 0)
	s.Hints = max(s.Hints, 0)
	s.Potions = max(s.Potions, 0)
	return s
}

// RetryHP is the HP granted when retrying after a defeat.
func (s PlayerStats) RetryHP() int {
	return min(s.MaxHP, s.MaxHP*3/4)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
