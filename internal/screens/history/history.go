package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/combat"
	"github.com/abhisek/mathquest/internal/screen"
	"github.com/abhisek/mathquest/internal/store"
	"github.com/abhisek/mathquest/internal/ui/keys"
	"github.com/abhisek/mathquest/internal/ui/layout"
	"github.com/abhisek/mathquest/internal/ui/theme"
)

// Limit is how many combats the screen loads.
const Limit = 50

type historyLoadedMsg struct {
	Records []store.CombatRecord
	Err     error
}

// HistoryScreen lists recent combats, newest first.
type HistoryScreen struct {
	ctx      context.Context
	repo     store.HistoryRepo
	records  []store.CombatRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(ctx context.Context, repo store.HistoryRepo) *HistoryScreen {
	return &HistoryScreen{
		ctx:      ctx,
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		recs, err := s.repo.RecentCombats(s.ctx, store.QueryOpts{Limit: Limit})
		return historyLoadedMsg{Records: recs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, keys.Down):
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		case key.Matches(msg, keys.Select):
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No battles yet. Start an adventure!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.records {
		dateStr := rec.Timestamp.Local().Format("Jan 02 15:04")

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-28s %-8s %+5d",
			prefix, dateStr, rec.StageName, outcomeLabel(rec.Outcome), rec.ScoreDelta)

		style := lipgloss.NewStyle().Foreground(outcomeColor(rec.Outcome))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    stage %s  ·  HP after %d  ·  total score %d",
				rec.StageID, rec.HPAfter, rec.TotalScore)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				theme.Hint.Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func outcomeLabel(o string) string {
	switch combat.Outcome(o) {
	case combat.OutcomeWin:
		return "WIN"
	case combat.OutcomeLose:
		return "DEFEAT"
	case combat.OutcomeRetreat:
		return "RETREAT"
	}
	return strings.ToUpper(o)
}

func outcomeColor(o string) color.Color {
	switch combat.Outcome(o) {
	case combat.OutcomeWin:
		return theme.Success
	case combat.OutcomeLose:
		return theme.Error
	case combat.OutcomeRetreat:
		return theme.TextDim
	default:
		return theme.Text
	}
}
