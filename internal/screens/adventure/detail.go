package adventure

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/screen"
	"github.com/abhisek/mathquest/internal/stages"
	"github.com/abhisek/mathquest/internal/ui/keys"
	"github.com/abhisek/mathquest/internal/ui/layout"
	"github.com/abhisek/mathquest/internal/ui/theme"
)

// StageDetailScreen shows what waits in a stage. It is pushed over the map.
type StageDetailScreen struct {
	stage stages.Stage
	state StageState
}

var _ screen.Screen = (*StageDetailScreen)(nil)
var _ screen.KeyHintProvider = (*StageDetailScreen)(nil)

func newStageDetail(stage stages.Stage, state StageState) *StageDetailScreen {
	return &StageDetailScreen{stage: stage, state: state}
}

func (d *StageDetailScreen) Init() tea.Cmd { return nil }
func (d *StageDetailScreen) Title() string { return d.stage.Name }

func (d *StageDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return d, nil
}

func (d *StageDetailScreen) KeyHints() []layout.KeyHint {
	return keys.Hints(keys.Back)
}

func (d *StageDetailScreen) View(width, height int) string {
	st := d.stage
	contentWidth := min(width-8, 70)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  %s  %s", st.MapIcon, st.Name)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %s %s  ·  %s", d.state.Icon(), d.state.Label(), st.WorldName)))
	b.WriteString("\n\n")

	if st.Description != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(contentWidth).
			Foreground(theme.Text).
			PaddingLeft(2).
			Render(st.Description))
		b.WriteString("\n\n")
	}

	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)

	b.WriteString(dimStyle.Render("  Operation: ") + valStyle.Render(modeName(st)) + "\n")
	b.WriteString(dimStyle.Render("  Problems:  ") + valStyle.Render(fmt.Sprintf("%d", len(st.Problems))) + "\n")
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  Enemy"))
	b.WriteString("\n")
	if d.state == StateLocked {
		b.WriteString(dimStyle.Render("  ??? hides in the shadows"))
		b.WriteString("\n")
	} else {
		b.WriteString(valStyle.Render(fmt.Sprintf("  %s %s  ·  %d HP", st.EnemySprite, st.EnemyName, st.EnemyMaxHP)))
		b.WriteString("\n")
		if desc := abilityText(st); desc != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("  " + desc))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	if c := st.Companion; c.Name != "" {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true).
			Render("  Companion"))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %s %s: %q", c.Sprite, c.Name, c.Advice)))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top,
		"\n"+b.String())
}

func modeName(st stages.Stage) string {
	switch st.Mode {
	case problemgen.ModeAdd:
		return "Addition"
	case problemgen.ModeSubtract:
		return "Subtraction"
	case problemgen.ModeMultiply:
		return "Multiplication"
	case problemgen.ModeDivide:
		return "Division"
	case problemgen.ModeMixed:
		return "Mixed"
	}
	return string(st.Mode)
}

func abilityText(st stages.Stage) string {
	switch st.SpecialAbility {
	case stages.AbilityOnDefeatDamage:
		return fmt.Sprintf("Last stand: deals %d damage as it falls", st.AbilityValue)
	case stages.AbilityDamageResist:
		return fmt.Sprintf("Tough hide: resists %d damage per hit", st.AbilityValue)
	case stages.AbilityAttackUpOnHit:
		return "Grows angrier with every hit"
	case stages.AbilityHPDrain:
		return "Drains the life around it"
	}
	return ""
}
