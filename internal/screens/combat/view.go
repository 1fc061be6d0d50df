package combat

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	fight "github.com/abhisek/mathquest/internal/combat"
	"github.com/abhisek/mathquest/internal/ui/components"
	"github.com/abhisek/mathquest/internal/ui/theme"
)

const playerSprite = "🧙"

func (s *CombatScreen) View(width, height int) string {
	snap, ok := s.snapshot()
	if !ok {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Returning to the map...")
	}
	s.syncChoice(snap)

	barWidth := min(width-8, 60)

	// Short terminals drop the blank spacer lines and the companion.
	compact := height < 26
	gap := "\n\n"
	if compact {
		gap = "\n"
	}

	var b strings.Builder

	// Stage info line.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + snap.StageName)
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Problem %d/%d", min(snap.ProblemIndex+1, snap.ProblemCount), snap.ProblemCount))
	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")

	b.WriteString(components.Centered(renderCombatant(
		snap.EnemySprite, snap.EnemyName, snap.EnemyAnim, effectsFor(snap.Effects, false)), width))
	b.WriteString("\n")
	b.WriteString(components.Centered(
		components.NewProgressBar("HP", snap.EnemyHP, snap.EnemyMaxHP, barWidth,
			theme.HPColor(snap.EnemyHP, snap.EnemyMaxHP)).View(), width))
	b.WriteString(gap)

	b.WriteString(s.renderProblem(snap, width, gap))
	b.WriteString("\n")

	st := snap.Stats
	b.WriteString(components.Centered(renderCombatant(
		playerSprite, "You", snap.PlayerAnim, effectsFor(snap.Effects, true)), width))
	b.WriteString("\n")
	b.WriteString(components.Centered(
		components.NewProgressBar("HP   ", st.HP, st.MaxHP, barWidth, theme.HPColor(st.HP, st.MaxHP)).View(), width))
	b.WriteString("\n")
	b.WriteString(components.Centered(
		components.NewProgressBar("Focus", st.Focus, st.MaxFocus, barWidth, theme.FocusBar).View(), width))
	b.WriteString("\n")
	b.WriteString(components.Centered(renderInventory(snap), width))
	b.WriteString(gap)

	if snap.Message != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(messageColor(snap)).
			Bold(true).
			Render(snap.Message))
		b.WriteString("\n")
	}
	if snap.Companion != "" && !compact {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render(snap.Companion))
	}

	return b.String()
}

// renderProblem draws the timer, the question and the options.
func (s *CombatScreen) renderProblem(snap fight.Snapshot, width int, gap string) string {
	var b strings.Builder

	timer := components.NewProgressBar("⏱", snap.TimeLeft, snap.TimerSeconds, min(width-8, 60), theme.TimerBar)
	b.WriteString(components.Centered(timer.View(), width))
	b.WriteString(gap)

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(snap.Problem.Text))
	b.WriteString(gap)

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
	return b.String()
}

// renderCombatant draws a sprite and name, offset or decorated by the
// current animation, with any floating numbers beside it.
func renderCombatant(sprite, name string, anim fight.Animation, effects string) string {
	nameStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	line := sprite + " " + nameStyle.Render(name)
	switch anim {
	case fight.AnimAttack:
		line = "⚔ " + line
	case fight.AnimShake:
		line = "  " + line + " 💥"
	case fight.AnimHeal:
		line = line + " ✚"
	}
	if effects != "" {
		line += "  " + effects
	}
	return line
}

// effectsFor renders the floating numbers over one side.
func effectsFor(effects []fight.Effect, onPlayer bool) string {
	var parts []string
	for _, e := range effects {
		if e.OnPlayer != onPlayer || e.Amount == 0 {
			continue
		}
		switch e.Kind {
		case fight.EffectHeal:
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
				Render(fmt.Sprintf("+%d", e.Amount)))
		default:
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
				Render(fmt.Sprintf("-%d", e.Amount)))
		}
	}
	return strings.Join(parts, " ")
}

func renderInventory(snap fight.Snapshot) string {
	st := snap.Stats
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	line := dim.Render(fmt.Sprintf("💡 Hints %d   🧪 Potions %d   ★ %d", st.Hints, st.Potions, st.Score))
	switch {
	case snap.Armed:
		line += "   " + lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render("✨ POWER STRIKE ARMED")
	case snap.CanPowerStrike:
		line += "   " + lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render("✨ Power Strike ready [F]")
	}
	return line
}

// messageColor colors the combat log by how the last answer went.
func messageColor(snap fight.Snapshot) color.Color {
	switch {
	case snap.CorrectOption < 0:
		return theme.Text
	case snap.SelectedOption == snap.CorrectOption:
		return theme.Success
	default:
		return theme.Error
	}
}
