package components

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/ui/keys"
	"github.com/abhisek/mathquest/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D"}

// MultiChoice is a multiple-choice selector component. It only moves the
// cursor; submitting is up to the owner.
type MultiChoice struct {
	Options  []string
	Selected int

	// Locked hides the cursor while an answer is being shown.
	Locked bool

	// RevealedIndex, ChosenIndex and CorrectIndex are -1 when unset.
	RevealedIndex int
	ChosenIndex   int
	CorrectIndex  int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options:       options,
		RevealedIndex: -1,
		ChosenIndex:   -1,
		CorrectIndex:  -1,
	}
}

// Update handles keyboard navigation.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Locked {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, keys.Up):
		if m.Selected > 0 {
			m.Selected--
		}
	case key.Matches(kmsg, keys.Down):
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	}

	return m, nil
}

// View renders the options, one per line.
func (m MultiChoice) View() string {
	var s string
	for i, opt := range m.Options {
		label := fmt.Sprint(i + 1)
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == m.Selected && !m.Locked {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d) %s)  %s", prefix, i+1, label, opt)

		switch {
		case i == m.CorrectIndex:
			s += theme.Correct.Render(line+"  ✓") + "\n"
		case i == m.ChosenIndex:
			s += theme.Incorrect.Render(line+"  ✗") + "\n"
		case m.Locked:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == m.RevealedIndex:
			s += theme.Revealed.Render(line+"  💡") + "\n"
		case i == m.Selected:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
