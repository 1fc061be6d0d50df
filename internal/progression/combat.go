package progression

import (
	"context"

	"github.com/abhisek/mathquest/internal/combat"
	"github.com/abhisek/mathquest/internal/store"
)

// activeSession returns the session accepting input, or nil while no
// combat runs or a dialogue covers it.
func (c *Controller) activeSession() *combat.Session {
	if c.screen != ScreenCombat || c.modalOpen() {
		return nil
	}
	return c.session
}

// CombatToken identifies the current problem of the active combat. It is
// empty outside combat.
func (c *Controller) CombatToken() string {
	if c.session == nil {
		return ""
	}
	return c.session.Token()
}

// SubmitAnswer answers the current problem.
func (c *Controller) SubmitAnswer(value int) (combat.Resolution, bool) {
	s := c.activeSession()
	if s == nil {
		return combat.Resolution{}, false
	}
	return s.Submit(value)
}

// UseHint spends a hint in combat.
func (c *Controller) UseHint() (combat.Resolution, bool) {
	s := c.activeSession()
	if s == nil {
		return combat.Resolution{}, false
	}
	return s.UseHint()
}

// UsePotion drinks a potion in combat.
func (c *Controller) UsePotion() (combat.Resolution, bool) {
	s := c.activeSession()
	if s == nil {
		return combat.Resolution{}, false
	}
	return s.UsePotion()
}

// ArmPowerStrike readies a power strike in combat.
func (c *Controller) ArmPowerStrike() (combat.Resolution, bool) {
	s := c.activeSession()
	if s == nil {
		return combat.Resolution{}, false
	}
	return s.ArmPowerStrike()
}

// Retreat leaves combat for the map.
func (c *Controller) Retreat(ctx context.Context) bool {
	s := c.activeSession()
	if s == nil {
		return false
	}
	if _, ok := s.Retreat(); !ok {
		return false
	}
	c.finishCombat(ctx)
	return true
}

// Tick advances the combat timer if token still names the current
// problem. A timeout resolution is returned when the timer runs out.
func (c *Controller) Tick(token string) (combat.Resolution, bool) {
	s := c.activeSession()
	if s == nil || s.Token() != token {
		return combat.Resolution{}, false
	}
	return s.Tick()
}

// ContinueCombat leaves the feedback phase of the problem named by token.
// When combat is over the result is applied and the game moves on.
func (c *Controller) ContinueCombat(ctx context.Context, token string) bool {
	s := c.activeSession()
	if s == nil || s.Token() != token {
		return false
	}
	if !s.Continue() {
		return false
	}
	if s.Phase().Terminal() {
		c.finishCombat(ctx)
	}
	return true
}

func (c *Controller) recordCombat(ctx context.Context, res combat.Result) {
	if c.history == nil {
		return
	}
	rec := store.CombatRecord{
		ID:         c.session.ID(),
		StageID:    c.current.ID,
		StageName:  c.current.Name,
		Outcome:    string(res.Outcome),
		ScoreDelta: res.ScoreDelta,
		TotalScore: res.Stats.Score,
		HPAfter:    res.Stats.HP,
	}
	if err := c.history.AppendCombat(ctx, rec); err != nil {
		c.logger.Printf("warning: record combat: %v", err)
	}
}
