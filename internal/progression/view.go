package progression

import (
	"github.com/abhisek/mathquest/internal/combat"
	"github.com/abhisek/mathquest/internal/stages"
)

// View is everything the screens draw. It is rebuilt on every render.
type View struct {
	Screen Screen

	Stages        []stages.Stage
	UnlockedID    string
	UnlockedIndex int
	Stats         combat.PlayerStats
	CanContinue   bool

	// Stage is the stage being played or just finished.
	Stage *stages.Stage

	// Combat is set while a session exists.
	Combat      *combat.Snapshot
	CombatToken string

	Dialogue      *stages.DialogueLine
	DialogueIndex int
	DialogueCount int

	Cutscene      *stages.Frame
	CutsceneIndex int
	CutsceneCount int

	Tutorial []string

	ScoreEarned int
}

// View derives the display state.
func (c *Controller) View() View {
	_, u := stages.Find(c.stages, c.unlockedID)
	v := View{
		Screen:        c.screen,
		Stages:        c.stages,
		UnlockedID:    c.unlockedID,
		UnlockedIndex: u,
		Stats:         c.stats,
		CanContinue:   c.CanContinue(),
		Stage:         c.current,
		ScoreEarned:   c.ScoreEarned(),
	}
	if c.session != nil {
		snap := c.session.Snapshot()
		v.Combat = &snap
		v.CombatToken = c.session.Token()
		v.Stats = snap.Stats
	}
	if line, ok := c.DialogueLine(); ok {
		v.Dialogue = &line
		v.DialogueIndex = c.dialogueIdx
		v.DialogueCount = len(c.dialogue)
	}
	if f, i, ok := c.CutsceneFrame(); ok {
		v.Cutscene = &f
		v.CutsceneIndex = i
		v.CutsceneCount = len(c.cutscene)
	}
	if c.tutorialOpen {
		v.Tutorial = c.TutorialLines()
	}
	return v
}
