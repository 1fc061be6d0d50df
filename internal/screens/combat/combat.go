package combat

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	fight "github.com/abhisek/mathquest/internal/combat"
	"github.com/abhisek/mathquest/internal/progression"
	"github.com/abhisek/mathquest/internal/screen"
	"github.com/abhisek/mathquest/internal/ui/components"
	"github.com/abhisek/mathquest/internal/ui/keys"
	"github.com/abhisek/mathquest/internal/ui/layout"
)

// DefaultFeedbackDelay is how long a resolved answer stays on screen.
const DefaultFeedbackDelay = 1800 * time.Millisecond

// CombatScreen drives a combat session: the countdown, answer input, items
// and the pause after each answer.
type CombatScreen struct {
	ctx   context.Context
	game  *progression.Controller
	delay time.Duration

	choice components.MultiChoice
	token  string // problem the cursor belongs to
}

var _ screen.Screen = (*CombatScreen)(nil)
var _ screen.KeyHintProvider = (*CombatScreen)(nil)

// New creates the combat screen. A negative delay uses
// DefaultFeedbackDelay.
func New(ctx context.Context, game *progression.Controller, delay time.Duration) *CombatScreen {
	if delay < 0 {
		delay = DefaultFeedbackDelay
	}
	return &CombatScreen{
		ctx:    ctx,
		game:   game,
		delay:  delay,
		choice: components.NewMultiChoice(nil),
	}
}

func (s *CombatScreen) Init() tea.Cmd {
	s.token = ""
	snap, ok := s.snapshot()
	if !ok {
		return nil
	}
	s.syncChoice(snap)
	if snap.Phase == fight.PhaseAwaitingAnswer {
		return tickCmd(s.game.CombatToken())
	}
	return nil
}

func (s *CombatScreen) Title() string {
	if snap, ok := s.snapshot(); ok {
		return snap.StageName
	}
	return "Combat"
}

func (s *CombatScreen) KeyHints() []layout.KeyHint {
	snap, ok := s.snapshot()
	if !ok || snap.Phase != fight.PhaseAwaitingAnswer {
		return nil
	}
	hint, potion, strike := keys.Hint, keys.Potion, keys.PowerStrike
	hint.SetEnabled(snap.CanUseHint)
	potion.SetEnabled(snap.CanUsePotion)
	strike.SetEnabled(snap.CanPowerStrike)
	return keys.Hints(keys.Answer, keys.Up, hint, potion, strike, keys.Retreat)
}

// snapshot returns the session state while one exists.
func (s *CombatScreen) snapshot() (fight.Snapshot, bool) {
	v := s.game.View()
	if v.Combat == nil {
		return fight.Snapshot{}, false
	}
	return *v.Combat, true
}

// syncChoice rebuilds the option list from the snapshot, resetting the
// cursor when a new problem is up.
func (s *CombatScreen) syncChoice(snap fight.Snapshot) {
	if token := s.game.CombatToken(); token != s.token {
		s.token = token
		s.choice = components.NewMultiChoice(nil)
	}
	opts := make([]string, len(snap.Problem.Options))
	for i, o := range snap.Problem.Options {
		opts[i] = fmt.Sprint(o)
	}
	s.choice.Options = opts
	s.choice.Locked = snap.Phase != fight.PhaseAwaitingAnswer
	s.choice.RevealedIndex = snap.RevealedOption
	s.choice.ChosenIndex = snap.SelectedOption
	s.choice.CorrectIndex = snap.CorrectOption
}

func (s *CombatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s, s.handleTick(msg)
	case feedbackDoneMsg:
		return s, s.handleFeedbackDone(msg)
	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *CombatScreen) handleTick(msg tickMsg) tea.Cmd {
	if msg.token != s.game.CombatToken() {
		return nil
	}
	if _, timedOut := s.game.Tick(msg.token); timedOut {
		return s.feedbackCmd(msg.token)
	}
	if snap, ok := s.snapshot(); ok && snap.Phase == fight.PhaseAwaitingAnswer {
		return tickCmd(msg.token)
	}
	return nil
}

func (s *CombatScreen) handleFeedbackDone(msg feedbackDoneMsg) tea.Cmd {
	if !s.game.ContinueCombat(s.ctx, msg.token) {
		return nil
	}
	snap, ok := s.snapshot()
	if !ok || s.game.Screen() != progression.ScreenCombat || snap.Phase != fight.PhaseAwaitingAnswer {
		return nil
	}
	s.syncChoice(snap)
	return tickCmd(s.game.CombatToken())
}

func (s *CombatScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	snap, ok := s.snapshot()
	if !ok {
		return nil
	}
	s.syncChoice(snap)

	if i, ok := keys.OptionIndex(msg); ok {
		return s.submit(snap, i)
	}

	switch {
	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
		s.choice, _ = s.choice.Update(msg)
	case key.Matches(msg, keys.Select):
		return s.submit(snap, s.choice.Selected)
	case key.Matches(msg, keys.Hint):
		s.game.UseHint()
	case key.Matches(msg, keys.Potion):
		s.game.UsePotion()
	case key.Matches(msg, keys.PowerStrike):
		s.game.ArmPowerStrike()
	case key.Matches(msg, keys.Retreat):
		s.game.Retreat(s.ctx)
	}
	return nil
}

// submit answers with option i and schedules the end of the feedback
// pause.
func (s *CombatScreen) submit(snap fight.Snapshot, i int) tea.Cmd {
	if i < 0 || i >= len(snap.Problem.Options) {
		return nil
	}
	token := s.game.CombatToken()
	if _, ok := s.game.SubmitAnswer(snap.Problem.Options[i]); !ok {
		return nil
	}
	s.choice.Selected = i
	return s.feedbackCmd(token)
}

func (s *CombatScreen) feedbackCmd(token string) tea.Cmd {
	return tea.Tick(s.delay, func(time.Time) tea.Msg {
		return feedbackDoneMsg{token: token}
	})
}

func tickCmd(token string) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{token: token}
	})
}
