package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/ui/theme"
)

// DialogueBox renders one line of a conversation as a modal card.
type DialogueBox struct {
	Sprite  string
	Speaker string
	Text    string
	Index   int
	Count   int
}

// View renders the box at content width cw.
func (d DialogueBox) View(cw int) string {
	var b strings.Builder

	speaker := strings.TrimSpace(d.Sprite + " " + d.Speaker)
	if speaker != "" {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.ArcadeYellow).
			Bold(true).
			Render(speaker))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(cw - 6).
		Render(d.Text))
	b.WriteString("\n\n")

	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d/%d  Enter to continue, S to skip", d.Index+1, d.Count)))

	return theme.Modal.
		Width(cw).
		Render(b.String())
}
