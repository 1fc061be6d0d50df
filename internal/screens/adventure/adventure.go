package adventure

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/progression"
	"github.com/abhisek/mathquest/internal/router"
	"github.com/abhisek/mathquest/internal/screen"
	"github.com/abhisek/mathquest/internal/stages"
	"github.com/abhisek/mathquest/internal/ui/keys"
	"github.com/abhisek/mathquest/internal/ui/layout"
	"github.com/abhisek/mathquest/internal/ui/theme"
)

type rowKind int

const (
	rowWorldHeader rowKind = iota
	rowStage
)

type row struct {
	kind  rowKind
	world string
	index int // into the stage list, for rowStage
}

// StageState is how a stage appears on the map.
type StageState int

const (
	StateLocked StageState = iota
	StateCurrent
	StateCleared
)

// Icon returns the map marker for the state.
func (s StageState) Icon() string {
	switch s {
	case StateCleared:
		return "✔"
	case StateCurrent:
		return "⚔"
	}
	return "🔒"
}

// Label returns the short state name.
func (s StageState) Label() string {
	switch s {
	case StateCleared:
		return "Cleared"
	case StateCurrent:
		return "Next"
	}
	return "Locked"
}

// stateOf places stage i relative to the furthest unlocked stage.
func stateOf(i, unlocked int) StageState {
	switch {
	case i < unlocked:
		return StateCleared
	case i == unlocked:
		return StateCurrent
	}
	return StateLocked
}

// MapScreen is the adventure map: the stages grouped by world, with the
// cursor on the furthest unlocked stage.
type MapScreen struct {
	ctx  context.Context
	game *progression.Controller

	rows         []row
	cursor       int
	scrollOffset int
	message      string
}

var _ screen.Screen = (*MapScreen)(nil)
var _ screen.KeyHintProvider = (*MapScreen)(nil)

// New creates the map screen.
func New(ctx context.Context, game *progression.Controller) *MapScreen {
	return &MapScreen{ctx: ctx, game: game}
}

// Init rebuilds the rows, since a new game regenerates the catalog and
// clearing a stage moves the unlock marker.
func (s *MapScreen) Init() tea.Cmd {
	v := s.game.View()
	s.rows = buildRows(v.Stages)
	s.message = ""
	s.scrollOffset = 0
	s.cursor = 0
	for i, r := range s.rows {
		if r.kind == rowStage && r.index == v.UnlockedIndex {
			s.cursor = i
			break
		}
	}
	if s.rows != nil && s.rows[s.cursor].kind != rowStage {
		s.moveCursor(1)
	}
	return nil
}

func buildRows(list []stages.Stage) []row {
	var rows []row
	world := ""
	for i, st := range list {
		if i == 0 || st.WorldName != world {
			world = st.WorldName
			rows = append(rows, row{kind: rowWorldHeader, world: world})
		}
		rows = append(rows, row{kind: rowStage, world: world, index: i})
	}
	return rows
}

func (s *MapScreen) Title() string {
	return "Adventure Map"
}

func (s *MapScreen) KeyHints() []layout.KeyHint {
	return keys.Hints(keys.Up, keys.Select, keys.Details, keys.Help, keys.MainMenu)
}

func (s *MapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(km, keys.Up):
		s.moveCursor(-1)
	case key.Matches(km, keys.Down):
		s.moveCursor(1)
	case key.Matches(km, keys.Select):
		s.enterStage()
	case key.Matches(km, keys.Details):
		if st, i, ok := s.selected(); ok {
			detail := newStageDetail(*st, stateOf(i, s.game.View().UnlockedIndex))
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
		}
	case key.Matches(km, keys.Help):
		s.game.OpenTutorial()
	case key.Matches(km, keys.MainMenu):
		s.game.ToMainMenu(s.ctx)
	}
	return s, nil
}

// selected returns the stage under the cursor.
func (s *MapScreen) selected() (*stages.Stage, int, bool) {
	if s.cursor < 0 || s.cursor >= len(s.rows) || s.rows[s.cursor].kind != rowStage {
		return nil, 0, false
	}
	list := s.game.Stages()
	i := s.rows[s.cursor].index
	if i >= len(list) {
		return nil, 0, false
	}
	return &list[i], i, true
}

func (s *MapScreen) enterStage() {
	st, _, ok := s.selected()
	if !ok {
		return
	}
	if !s.game.SelectStage(s.ctx, st.ID) {
		s.message = fmt.Sprintf("%s is locked. Clear the stages before it first.", st.Name)
		return
	}
	s.message = ""
}

// moveCursor moves the cursor by delta, skipping world headers.
func (s *MapScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowStage {
			s.cursor = next
			s.message = ""
			return
		}
		next += delta
	}
}

// adjustScroll keeps the cursor, and the world header above it, in view.
func (s *MapScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowWorldHeader {
		headerRow--
	}
	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *MapScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\nNo stages to explore.")
	}

	v := s.game.View()
	list := v.Stages

	listHeight := height - 2
	s.adjustScroll(listHeight)

	var lines []string
	for i, r := range s.rows {
		if i < s.scrollOffset {
			continue
		}
		if len(lines) >= listHeight {
			break
		}
		switch r.kind {
		case rowWorldHeader:
			lines = append(lines, renderWorldHeader(r.world, width))
		case rowStage:
			if r.index < len(list) {
				lines = append(lines, renderStageRow(list[r.index], r.index,
					stateOf(r.index, v.UnlockedIndex), i == s.cursor, width))
			}
		}
	}

	footer := theme.Hint.Render(fmt.Sprintf("  Progress: %d/%d stages cleared",
		min(v.UnlockedIndex, len(list)), len(list)))
	if s.message != "" {
		footer = lipgloss.NewStyle().Foreground(theme.Error).Render("  " + s.message)
	}
	return strings.Join(lines, "\n") + "\n\n" + footer
}

func renderWorldHeader(world string, width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(0, 0, 0, 2).
		Render(strings.ToUpper(world))
}

func renderStageRow(st stages.Stage, i int, state StageState, selected bool, width int) string {
	nameWidth := max(width-40, 12)
	name := fmt.Sprintf("%d. %s", i+1, st.Name)
	if len([]rune(name)) > nameWidth {
		name = string([]rune(name)[:nameWidth-1]) + "…"
	}

	var nameStyle, modeStyle, labelStyle lipgloss.Style
	switch {
	case selected:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		modeStyle = lipgloss.NewStyle().Foreground(theme.Primary)
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	case state == StateCleared:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Success)
		modeStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
		labelStyle = lipgloss.NewStyle().Foreground(theme.Success)
	case state == StateCurrent:
		nameStyle = lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
		modeStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
		labelStyle = lipgloss.NewStyle().Foreground(theme.ArcadeYellow)
	default:
		nameStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
		modeStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
		labelStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}
	icon := st.MapIcon
	if icon == "" {
		icon = "•"
	}

	return fmt.Sprintf("  %s%s %s  %s  %s %s",
		cursor,
		icon,
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		modeStyle.Render(fmt.Sprintf("%-8s", strings.ToLower(string(st.Mode)))),
		state.Icon(),
		labelStyle.Render(fmt.Sprintf("%-7s", state.Label())),
	)
}
