package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/ui/theme"
)

const arcadeTitleFull = ` ███╗   ███╗ █████╗ ████████╗██╗  ██╗
 ████╗ ████║██╔══██╗╚══██╔══╝██║  ██║
 ██╔████╔██║███████║   ██║   ███████║
 ██║╚██╔╝██║██╔══██║   ██║   ██╔══██║
 ██║ ╚═╝ ██║██║  ██║   ██║   ██║  ██║
 ╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝
  ██████╗ ██╗   ██╗███████╗███████╗████████╗
 ██╔═══██╗██║   ██║██╔════╝██╔════╝╚══██╔══╝
 ██║   ██║██║   ██║█████╗  ███████╗   ██║
 ██║▄▄ ██║██║   ██║██╔══╝  ╚════██║   ██║
 ╚██████╔╝╚██████╔╝███████╗███████║   ██║
  ╚══▀▀═╝  ╚═════╝ ╚══════╝╚══════╝   ╚═╝`

const arcadeTitleCompact = "M · A · T · H   Q · U · E · S · T"

const tagline = "An arithmetic adventure"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, full bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	art := arcadeTitleCompact
	if full {
		art = arcadeTitleFull
	}
	title := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
	sub := theme.Subtitle.Width(cw).Render(tagline)
	return title + "\n" + sub
}

// statsBar is the saved-game summary shown above the menu.
type statsBar struct {
	hp, maxHP  int
	score      int
	stage      int // 1-based unlocked stage
	stageCount int
	hasSave    bool
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(s statsBar, cw int, compact bool) string {
	hpStyle := lipgloss.NewStyle().Foreground(theme.HPColor(s.hp, s.maxHP)).Bold(true)
	scoreStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	stageStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	switch {
	case !s.hasSave:
		stats = dimStyle.Render("NO SAVED GAME")
	case compact:
		stats = fmt.Sprintf("%s %s %s",
			hpStyle.Render(fmt.Sprintf("♥%d", s.hp)),
			scoreStyle.Render(fmt.Sprintf("★%d", s.score)),
			stageStyle.Render(fmt.Sprintf("⚑%d/%d", s.stage, s.stageCount)),
		)
	default:
		stats = fmt.Sprintf("%s  %s  %s",
			hpStyle.Render(fmt.Sprintf("♥ %d/%d HP", s.hp, s.maxHP)),
			scoreStyle.Render(fmt.Sprintf("★ %d SCORE", s.score)),
			stageStyle.Render(fmt.Sprintf("⚑ STAGE %d/%d", s.stage, s.stageCount)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
