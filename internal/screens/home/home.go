package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathquest/internal/progression"
	"github.com/abhisek/mathquest/internal/router"
	"github.com/abhisek/mathquest/internal/screen"
	"github.com/abhisek/mathquest/internal/screens/history"
	"github.com/abhisek/mathquest/internal/store"
	"github.com/abhisek/mathquest/internal/ui/components"
	"github.com/abhisek/mathquest/internal/ui/keys"
	"github.com/abhisek/mathquest/internal/ui/layout"
)

// Menu labels.
const (
	LabelContinue = "CONTINUE"
	LabelNewGame  = "NEW GAME"
	LabelHowTo    = "HOW TO PLAY"
	LabelHistory  = "HISTORY"
	LabelQuit     = "QUIT"
)

// Content area thresholds for the menu layout.
const (
	compactHeight   = 24
	compactWidth    = 100
	fullTitleHeight = 46
)

// HomeScreen is the main menu.
type HomeScreen struct {
	ctx     context.Context
	game    *progression.Controller
	history store.HistoryRepo

	menu  components.Menu
	stats statsBar
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the main menu. history may be nil, which disables the
// history item.
func New(ctx context.Context, game *progression.Controller, history store.HistoryRepo) *HomeScreen {
	h := &HomeScreen{ctx: ctx, game: game, history: history}
	h.refresh()
	return h
}

// refresh rebuilds the menu and stats from the controller. The saved game
// can change between visits.
func (h *HomeScreen) refresh() {
	v := h.game.View()
	h.stats = statsBar{
		hp:         v.Stats.HP,
		maxHP:      v.Stats.MaxHP,
		score:      v.Stats.Score,
		stage:      v.UnlockedIndex + 1,
		stageCount: len(v.Stages),
		hasSave:    h.game.HasSave(),
	}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: LabelContinue, Disabled: !v.CanContinue, Action: func() tea.Cmd {
			h.game.Continue(h.ctx)
			return nil
		}},
		{Label: LabelNewGame, Action: func() tea.Cmd {
			h.game.NewGame(h.ctx)
			return nil
		}},
		{Label: LabelHowTo, Action: func() tea.Cmd {
			h.game.OpenTutorial()
			return nil
		}},
		{Label: LabelHistory, Disabled: h.history == nil, Action: func() tea.Cmd {
			scr := history.New(h.ctx, h.history)
			return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
		}},
		{Label: LabelQuit, Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
}

func (h *HomeScreen) Init() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Title() string {
	return "Main Menu"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return keys.Hints(keys.Up, keys.Select, keys.Quit)
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// Selected returns the label under the cursor.
func (h *HomeScreen) Selected() string {
	return h.menu.Items[h.menu.Selected].Label
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < compactHeight || width < compactWidth
	fullTitle := !compact && height >= fullTitleHeight

	cw := components.ContentWidth(width)
	labels := h.menu.Labels()
	disabled := h.menu.DisabledSet()

	var sections []string
	sections = append(sections, renderTitle(cw, fullTitle))
	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(h.stats), cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if compact {
		sections = append(sections, components.ArcadeMenuCompact(labels, h.menu.Selected, disabled, cw))
	} else {
		sections = append(sections, components.ArcadeMenu(labels, h.menu.Selected, disabled, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
