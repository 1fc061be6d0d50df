package stageend

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/progression"
	"github.com/abhisek/mathquest/internal/screen"
	"github.com/abhisek/mathquest/internal/stages"
	"github.com/abhisek/mathquest/internal/ui/components"
	"github.com/abhisek/mathquest/internal/ui/keys"
	"github.com/abhisek/mathquest/internal/ui/layout"
	"github.com/abhisek/mathquest/internal/ui/theme"
)

// StageEndScreen is shown after a combat is decided: a stage clear, a
// defeat, or the final victory. One instance serves all three.
type StageEndScreen struct {
	ctx  context.Context
	game *progression.Controller
}

var _ screen.Screen = (*StageEndScreen)(nil)
var _ screen.KeyHintProvider = (*StageEndScreen)(nil)

// New creates the stage end screen.
func New(ctx context.Context, game *progression.Controller) *StageEndScreen {
	return &StageEndScreen{ctx: ctx, game: game}
}

func (s *StageEndScreen) Init() tea.Cmd {
	return nil
}

func (s *StageEndScreen) Title() string {
	switch s.game.Screen() {
	case progression.ScreenGameOver:
		return "Defeat"
	case progression.ScreenGameVictory:
		return "Victory"
	}
	return "Stage Clear"
}

// next returns the binding for the primary action of the current screen.
func (s *StageEndScreen) next() key.Binding {
	b := keys.Select
	switch s.game.Screen() {
	case progression.ScreenGameOver:
		b.SetHelp("Enter", "Retry")
	case progression.ScreenGameVictory:
		b.SetHelp("Enter", "Main menu")
	default:
		b.SetHelp("Enter", "Back to map")
	}
	return b
}

func (s *StageEndScreen) KeyHints() []layout.KeyHint {
	if s.game.Screen() == progression.ScreenGameVictory {
		return keys.Hints(s.next())
	}
	return keys.Hints(s.next(), keys.MainMenu)
}

func (s *StageEndScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(kmsg, keys.Select):
		if s.game.Screen() == progression.ScreenGameVictory {
			s.game.ToMainMenu(s.ctx)
			return s, nil
		}
		s.game.StageEndNext(s.ctx)
	case key.Matches(kmsg, keys.MainMenu):
		s.game.ToMainMenu(s.ctx)
	}
	return s, nil
}

func (s *StageEndScreen) View(width, height int) string {
	v := s.game.View()
	cw := components.ContentWidth(width)

	var b strings.Builder

	title, sub, accent := banner(v)
	b.WriteString(lipgloss.NewStyle().
		Foreground(accent).
		Bold(true).
		Render(title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(cw-6).
		Align(lipgloss.Center).
		Render(sub))
	b.WriteString("\n\n")

	if v.Screen != progression.ScreenGameOver {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.ArcadeYellow).
			Bold(true).
			Render(fmt.Sprintf("Score earned: %+d", v.ScoreEarned)))
		b.WriteString("\n")
	}

	st := v.Stats
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("♥ %d/%d   ★ %d   💡 %d   🧪 %d", st.HP, st.MaxHP, st.Score, st.Hints, st.Potions)))

	if next, ok := unlockedNext(v); ok {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(
			fmt.Sprintf("Next up: %s %s", next.MapIcon, next.Name)))
	}
	if v.Screen == progression.ScreenGameOver {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("You will retry with %d HP.", st.RetryHP())))
	}

	card := components.ArcadeCard(b.String(), cw)
	button := components.ArcadeButton(s.next().Help().Desc, true, false)

	content := lipgloss.JoinVertical(lipgloss.Center, card, "", button)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// banner returns the headline, the line under it and the headline color.
func banner(v progression.View) (string, string, color.Color) {
	enemy := "the enemy"
	if v.Stage != nil {
		enemy = v.Stage.EnemyName
	}
	switch v.Screen {
	case progression.ScreenGameOver:
		return "DEFEATED", fmt.Sprintf("%s was too strong this time...", enemy), theme.Error
	case progression.ScreenGameVictory:
		return "🏆 VICTORY 🏆", fmt.Sprintf("You defeated %s and saved Numeria!", enemy), theme.ArcadeYellow
	}
	return "STAGE CLEAR!", fmt.Sprintf("You defeated %s!", enemy), theme.Success
}

// unlockedNext returns the stage a clear just unlocked.
func unlockedNext(v progression.View) (*stages.Stage, bool) {
	if v.Screen != progression.ScreenStageClear || v.Stage == nil {
		return nil, false
	}
	_, i := stages.Find(v.Stages, v.Stage.ID)
	if i < 0 || i+1 >= len(v.Stages) || i+1 != v.UnlockedIndex {
		return nil, false
	}
	return &v.Stages[i+1], true
}
