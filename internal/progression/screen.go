package progression

// Screen is a top-level game screen. The string values are what the save
// file stores under the currentScreen key.
type Screen string

const (
	ScreenMainMenu     Screen = "MAIN_MENU"
	ScreenCutscene     Screen = "CUTSCENE"
	ScreenAdventureMap Screen = "ADVENTURE_MAP"
	ScreenCombat       Screen = "COMBAT"
	ScreenStageClear   Screen = "STAGE_CLEAR"
	ScreenGameOver     Screen = "GAME_OVER"
	ScreenGameVictory  Screen = "GAME_VICTORY"

	// ScreenTutorial is never current; the tutorial is an overlay. It is
	// recognized only so older saves that stored it load cleanly.
	ScreenTutorial Screen = "TUTORIAL"
)

// Valid reports whether s names a known screen.
func (s Screen) Valid() bool {
	switch s {
	case ScreenMainMenu, ScreenCutscene, ScreenAdventureMap, ScreenCombat,
		ScreenStageClear, ScreenGameOver, ScreenGameVictory, ScreenTutorial:
		return true
	}
	return false
}

// Resumable reports whether the game may be resumed on s after a restart.
func (s Screen) Resumable() bool {
	return s == ScreenMainMenu || s == ScreenAdventureMap
}

// EndResult is the stage end screen a finished combat leads to.
type EndResult string

const (
	EndWin     EndResult = "win"
	EndLose    EndResult = "lose"
	EndVictory EndResult = "victory"
)

// ContinuationKind names the step taken when a dialogue or cutscene closes.
type ContinuationKind int

const (
	ContinueNone ContinuationKind = iota
	ContinueToMap
	ContinueToCombat
	ContinueToStageEnd
)

func (k ContinuationKind) String() string {
	switch k {
	case ContinueToMap:
		return "to map"
	case ContinueToCombat:
		return "to combat"
	case ContinueToStageEnd:
		return "to stage end"
	}
	return "none"
}

// Continuation is the pending step after the active modal closes. Result
// is set only for ContinueToStageEnd.
type Continuation struct {
	Kind   ContinuationKind
	Result EndResult
}
