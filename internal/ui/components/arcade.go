package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/ui/theme"
)

// ButtonWidth is the fixed width of arcade buttons.
const ButtonWidth = 22

// ContentWidth returns the uniform inner width used for all arcade sections
// so stacked boxes line up.
func ContentWidth(frameWidth int) int {
	// cabinet border (2) + inner padding (4)
	return min(60, max(20, frameWidth-6))
}

// CabinetFrame wraps content in a double-border cabinet frame,
// centering vertically and horizontally within the given dimensions.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeCard wraps content in a rounded-border card at the given content width.
func ArcadeCard(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// ArcadeButton renders one bordered button. Disabled buttons are dimmed and
// never shown as selected.
func ArcadeButton(label string, selected, disabled bool) string {
	style := lipgloss.NewStyle().
		Width(ButtonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	switch {
	case disabled:
		return style.Foreground(theme.TextDim).Render(label)
	case selected:
		return style.
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			BorderForeground(theme.ArcadeYellow).
			Render("▸ " + label)
	}
	return style.Foreground(theme.Text).Render(label)
}

// ArcadeMenu stacks buttons for labels, centered in cw.
func ArcadeMenu(labels []string, selected int, disabled map[int]bool, cw int) string {
	buttons := make([]string, len(labels))
	for i, label := range labels {
		buttons[i] = ArcadeButton(label, i == selected && !disabled[i], disabled[i])
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// ArcadeMenuCompact renders the menu as text lines without borders for
// terminals where bordered buttons would overflow.
func ArcadeMenuCompact(labels []string, selected int, disabled map[int]bool, cw int) string {
	lines := make([]string, len(labels))
	for i, label := range labels {
		switch {
		case disabled[i]:
			lines[i] = theme.Disabled.Render("   " + label)
		case i == selected:
			lines[i] = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			lines[i] = theme.Unselected.Render("   " + label)
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// Centered renders s centered in width.
func Centered(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
