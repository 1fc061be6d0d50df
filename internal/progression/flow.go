package progression

import (
	"context"

	"github.com/abhisek/mathquest/internal/combat"
	"github.com/abhisek/mathquest/internal/stages"
)

// NewGame wipes the save, rebuilds the catalog and starts from the first
// stage, playing the intro cutscene when there is one.
func (c *Controller) NewGame(ctx context.Context) {
	c.clearSave(ctx)
	c.stages = c.data.Build(c.gen)

	c.stats = combat.DefaultPlayerStats()
	c.unlockedID = c.firstStageID()
	c.current = nil
	c.session = nil
	c.dialogue, c.dialogueIdx = nil, 0
	c.cutscene, c.cutsceneIdx = nil, 0
	c.pending = Continuation{}
	c.scoreEarned = 0
	c.tutorialOpen = false

	c.saveStats(ctx)
	c.saveUnlocked(ctx)

	if !c.skipIntro {
		if frames, err := c.data.Cutscene(stages.GameIntroCutscene); err == nil {
			c.startCutscene(ctx, frames, Continuation{Kind: ContinueToMap})
			return
		}
	}
	c.setScreen(ctx, ScreenAdventureMap)
}

// CanContinue reports whether the main menu can resume a saved game.
func (c *Controller) CanContinue() bool {
	return c.screen == ScreenMainMenu && c.hasSave
}

// Continue resumes a saved game on the map.
func (c *Controller) Continue(ctx context.Context) bool {
	if !c.CanContinue() {
		return false
	}
	c.setScreen(ctx, ScreenAdventureMap)
	return true
}

// ToMainMenu saves and returns to the main menu from the map or an end
// screen.
func (c *Controller) ToMainMenu(ctx context.Context) bool {
	if c.modalOpen() {
		return false
	}
	switch c.screen {
	case ScreenAdventureMap, ScreenStageClear, ScreenGameOver, ScreenGameVictory:
	default:
		return false
	}
	c.current = nil
	c.setScreen(ctx, ScreenMainMenu)
	return true
}

// OpenTutorial shows the how-to-play overlay.
func (c *Controller) OpenTutorial() { c.tutorialOpen = true }

// CloseTutorial hides the how-to-play overlay.
func (c *Controller) CloseTutorial() { c.tutorialOpen = false }

// TutorialOpen reports whether the overlay is shown.
func (c *Controller) TutorialOpen() bool { return c.tutorialOpen }

// TutorialLines returns the how-to-play text.
func (c *Controller) TutorialLines() []string {
	return c.data.TutorialLines(stages.TutorialVars{
		QuickSeconds: c.rules.QuickThresholdSeconds,
		QuickBonus:   c.rules.QuickBonus,
	})
}

func (c *Controller) modalOpen() bool {
	return len(c.dialogue) > 0
}

// SelectStage starts stage id from the map. Locked or unknown stages are
// ignored.
func (c *Controller) SelectStage(ctx context.Context, id string) bool {
	if c.screen != ScreenAdventureMap || c.modalOpen() || !c.IsUnlocked(id) {
		return false
	}
	c.current, _ = stages.Find(c.stages, id)
	c.scoreEarned = 0
	c.beginStage(ctx)
	return true
}

// beginStage plays the intro dialogue of the current stage, if any, before
// combat.
func (c *Controller) beginStage(ctx context.Context) {
	if len(c.current.IntroDialogue) > 0 {
		c.openDialogue(c.current.IntroDialogue, Continuation{Kind: ContinueToCombat})
		return
	}
	c.enterCombat(ctx)
}

// enterCombat starts a session for the current stage, or falls back to
// the map when there is nothing to fight.
func (c *Controller) enterCombat(ctx context.Context) {
	if c.current == nil {
		c.logger.Printf("warning: no active stage, returning to map")
		c.setScreen(ctx, ScreenAdventureMap)
		return
	}
	sess, err := combat.New(c.current, c.stats, c.rules, c.rng)
	if err != nil {
		c.logger.Printf("warning: stage %s: %v, returning to map", c.current.ID, err)
		c.current = nil
		c.setScreen(ctx, ScreenAdventureMap)
		return
	}
	c.setScreen(ctx, ScreenCombat)
	c.session = sess
}

// finishCombat hands the result of a terminal session to the end screens.
func (c *Controller) finishCombat(ctx context.Context) {
	res := c.session.Result()
	c.stats = res.Stats
	c.scoreEarned = res.ScoreDelta
	c.saveStats(ctx)
	c.recordCombat(ctx, res)

	if res.Outcome == combat.OutcomeRetreat {
		c.current = nil
		c.setScreen(ctx, ScreenAdventureMap)
		return
	}

	end := EndLose
	if res.Outcome == combat.OutcomeWin {
		end = EndWin
		if _, i := stages.Find(c.stages, c.current.ID); i == len(c.stages)-1 {
			end = EndVictory
		}
	}

	outro := c.current.OutroDialogueLose
	if end != EndLose {
		outro = c.current.OutroDialogueWin
	}
	if len(outro) > 0 {
		c.openDialogue(outro, Continuation{Kind: ContinueToStageEnd, Result: end})
		return
	}
	c.showStageEnd(ctx, end)
}

func (c *Controller) showStageEnd(ctx context.Context, end EndResult) {
	switch end {
	case EndVictory:
		c.setScreen(ctx, ScreenGameVictory)
	case EndWin:
		_, i := stages.Find(c.stages, c.current.ID)
		_, u := stages.Find(c.stages, c.unlockedID)
		if next := i + 1; next < len(c.stages) && next > u {
			c.unlockedID = c.stages[next].ID
			c.saveUnlocked(ctx)
		}
		c.setScreen(ctx, ScreenStageClear)
	default:
		c.setScreen(ctx, ScreenGameOver)
	}
}

// StageEndNext is the primary action of an end screen: retry the stage
// after a defeat, or go back to the map after a clear.
func (c *Controller) StageEndNext(ctx context.Context) bool {
	if c.modalOpen() {
		return false
	}
	switch c.screen {
	case ScreenGameOver:
		if c.current == nil {
			c.setScreen(ctx, ScreenAdventureMap)
			return true
		}
		c.stats.HP = c.stats.RetryHP()
		c.saveStats(ctx)
		c.scoreEarned = 0
		c.beginStage(ctx)
		return true
	case ScreenStageClear:
		c.current = nil
		c.setScreen(ctx, ScreenAdventureMap)
		return true
	}
	return false
}

// ScoreEarned is the score gained in the stage just finished. It is zero
// after a defeat.
func (c *Controller) ScoreEarned() int {
	if c.screen == ScreenGameOver {
		return 0
	}
	return c.scoreEarned
}

func (c *Controller) resolve(ctx context.Context, next Continuation) {
	switch next.Kind {
	case ContinueToMap:
		c.setScreen(ctx, ScreenAdventureMap)
	case ContinueToCombat:
		c.enterCombat(ctx)
	case ContinueToStageEnd:
		c.showStageEnd(ctx, next.Result)
	}
}
