package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/ui/theme"
)

// ProgressBar displays a horizontal bar with a label and a value readout.
type ProgressBar struct {
	Label string
	Value int
	Max   int
	Width int
	Fill  color.Color
}

// NewProgressBar creates a new progress bar filled with fill.
func NewProgressBar(label string, value, max, width int, fill color.Color) ProgressBar {
	return ProgressBar{
		Label: label,
		Value: value,
		Max:   max,
		Width: width,
		Fill:  fill,
	}
}

// Percent returns the filled fraction in [0, 1].
func (p ProgressBar) Percent() float64 {
	if p.Max <= 0 {
		return 0
	}
	return min(1, max(0, float64(p.Value)/float64(p.Max)))
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	readout := fmt.Sprintf("  %d/%d", p.Value, p.Max)
	barWidth := p.Width - lipgloss.Width(result) - len(readout)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent())
	empty := barWidth - filled

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat(" ", empty))
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(readout)

	return result
}
