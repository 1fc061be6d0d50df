// Package layout draws the frame around every screen: the title bar with
// the player's HP and score, the key hint footer and the size guard.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/ui/theme"
)

// The combat screen needs this much room for both combatants, the timer
// and four options.
const (
	MinWidth  = 80
	MinHeight = 24
)

const hintGap = "   "

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the player to grow the terminal.
func RenderMinSizeMessage(width, height int) string {
	title := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("Terminal too small!")
	body := lipgloss.NewStyle().Foreground(theme.Text).Render(
		fmt.Sprintf("The adventure needs at least %d x %d.", MinWidth, MinHeight))
	cur := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Current: %d x %d", width, height))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, title, "", body, cur))
}

// HeaderStats is the player status shown on the right of the header.
type HeaderStats struct {
	HP, MaxHP int
	Score     int
}

// RenderHeader renders the title bar. A nil stats hides the player status.
func RenderHeader(title string, stats *HeaderStats, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  Math Quest")

	center := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(title)

	right := ""
	if stats != nil {
		right = lipgloss.NewStyle().
			Foreground(theme.HPColor(stats.HP, stats.MaxHP)).
			Render(fmt.Sprintf("♥ %d/%d", stats.HP, stats.MaxHP)) +
			hintGap +
			lipgloss.NewStyle().
				Foreground(theme.ArcadeYellow).
				Render(fmt.Sprintf("★ %d", stats.Score))
	}

	// 4 = border plus one column of padding each side.
	return bar(spread(left, center, right, max(width-4, 0)), width)
}

// spread centers center in inner columns with left and right flush to the
// edges. Every gap is at least one space.
func spread(left, center, right string, inner int) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)
	return left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
}

// RenderFooter renders the key hints. Hints that do not fit are dropped
// from the middle so the first ones and the last one (usually Quit) stay.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)+
			" "+
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}
	return bar("  "+strings.Join(fitHints(parts, max(width-6, 0)), hintGap), width)
}

func fitHints(parts []string, room int) []string {
	fits := func(p []string) bool {
		return lipgloss.Width(strings.Join(p, hintGap)) <= room
	}
	for len(parts) > 1 && !fits(parts) {
		parts = append(parts[:len(parts)-2:len(parts)-2], parts[len(parts)-1])
	}
	return parts
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	styledContent := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return header + "\n" + styledContent + "\n" + footer
}
