package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/progression"
	"github.com/abhisek/mathquest/internal/router"
	"github.com/abhisek/mathquest/internal/screen"
	"github.com/abhisek/mathquest/internal/screens/adventure"
	"github.com/abhisek/mathquest/internal/screens/combat"
	"github.com/abhisek/mathquest/internal/screens/cutscene"
	"github.com/abhisek/mathquest/internal/screens/home"
	"github.com/abhisek/mathquest/internal/screens/stageend"
	"github.com/abhisek/mathquest/internal/store"
	"github.com/abhisek/mathquest/internal/ui/components"
	"github.com/abhisek/mathquest/internal/ui/keys"
	"github.com/abhisek/mathquest/internal/ui/layout"
	"github.com/abhisek/mathquest/internal/ui/theme"
)

// Options configures the TUI.
type Options struct {
	Game    *progression.Controller
	History store.HistoryRepo

	// FeedbackDelay is how long a combat resolution stays on screen.
	// Negative uses the combat screen default.
	FeedbackDelay time.Duration

	// Logger is redirected to LogOutput while the program owns the
	// terminal. A nil LogOutput discards.
	Logger    *log.Logger
	LogOutput io.Writer
}

// AppModel is the root Bubble Tea model. It follows the controller's
// current screen and draws the dialogue and tutorial modals over it.
type AppModel struct {
	ctx    context.Context
	game   *progression.Controller
	router *router.Router
	width  int
	height int
}

// New creates the root model with every game screen registered.
func New(ctx context.Context, opts Options) AppModel {
	end := stageend.New(ctx, opts.Game)
	screens := map[progression.Screen]screen.Screen{
		progression.ScreenMainMenu:     home.New(ctx, opts.Game, opts.History),
		progression.ScreenCutscene:     cutscene.New(ctx, opts.Game),
		progression.ScreenAdventureMap: adventure.New(ctx, opts.Game),
		progression.ScreenCombat:       combat.New(ctx, opts.Game, opts.FeedbackDelay),
		progression.ScreenStageClear:   end,
		progression.ScreenGameOver:     end,
		progression.ScreenGameVictory:  end,
	}
	return AppModel{
		ctx:    ctx,
		game:   opts.Game,
		router: router.New(screens),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Sync(m.game.Screen())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		if m.handleModalKey(msg) {
			return m, m.router.Sync(m.game.Screen())
		}
		if key.Matches(msg, keys.Back) && m.router.Depth() > 1 {
			return m, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	cmd := m.router.Update(msg)
	return m, tea.Batch(cmd, m.router.Sync(m.game.Screen()))
}

// handleModalKey routes keys to the dialogue or tutorial while one is
// open. Keys that do nothing in the modal are swallowed.
func (m AppModel) handleModalKey(msg tea.KeyMsg) bool {
	switch {
	case m.dialogueOpen():
		switch {
		case key.Matches(msg, keys.Advance):
			m.game.AdvanceDialogue(m.ctx)
		case key.Matches(msg, keys.Skip):
			m.game.SkipDialogue(m.ctx)
		}
		return true
	case m.game.TutorialOpen():
		if key.Matches(msg, keys.Close) {
			m.game.CloseTutorial()
		}
		return true
	}
	return false
}

func (m AppModel) dialogueOpen() bool {
	_, ok := m.game.DialogueLine()
	return ok
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the whole frame: header, the active screen or modal, and
// the footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	gv := m.game.View()
	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var stats *layout.HeaderStats
	if gv.Screen != progression.ScreenMainMenu && gv.Screen != progression.ScreenCutscene {
		stats = &layout.HeaderStats{HP: gv.Stats.HP, MaxHP: gv.Stats.MaxHP, Score: gv.Stats.Score}
	}
	header := layout.RenderHeader(title, stats, m.width)
	footer := layout.RenderFooter(m.footerHints(gv), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	var content string
	switch {
	case gv.Dialogue != nil:
		box := components.DialogueBox{
			Sprite:  gv.Dialogue.SpeakerSprite,
			Speaker: gv.Dialogue.SpeakerName,
			Text:    gv.Dialogue.Text,
			Index:   gv.DialogueIndex,
			Count:   gv.DialogueCount,
		}
		content = lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center,
			box.View(components.ContentWidth(m.width)))
	case gv.Tutorial != nil:
		content = lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center,
			renderTutorial(gv.Tutorial, components.ContentWidth(m.width)))
	default:
		content = m.router.View(m.width, contentHeight)
	}

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(gv progression.View) []layout.KeyHint {
	switch {
	case gv.Dialogue != nil:
		return keys.Hints(keys.Advance, keys.Skip, keys.Quit)
	case gv.Tutorial != nil:
		return keys.Hints(keys.Close, keys.Quit)
	}

	var hints []layout.KeyHint
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	}
	if m.router.Depth() > 1 {
		hints = append(hints, keys.Hints(keys.Back)...)
	}
	quit := keys.Quit.Help()
	for _, h := range hints {
		if h.Key == quit.Key {
			return hints
		}
	}
	return append(hints, layout.KeyHint{Key: quit.Key, Description: quit.Desc})
}

func renderTutorial(lines []string, cw int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render("HOW TO PLAY"))
	b.WriteString("\n\n")
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6)
	for _, l := range lines {
		b.WriteString(body.Render("• " + l))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Esc to close"))
	return theme.Modal.Width(cw).Render(b.String())
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options, progOpts ...tea.ProgramOption) error {
	if opts.Logger != nil {
		prev := opts.Logger.Writer()
		out := opts.LogOutput
		if out == nil {
			out = io.Discard
		}
		opts.Logger.SetOutput(out)
		defer opts.Logger.SetOutput(prev)
	}

	progOpts = append([]tea.ProgramOption{tea.WithContext(ctx)}, progOpts...)
	p := tea.NewProgram(New(ctx, opts), progOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
