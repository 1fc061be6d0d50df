package cutscene

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/progression"
	"github.com/abhisek/mathquest/internal/screen"
	"github.com/abhisek/mathquest/internal/stages"
	"github.com/abhisek/mathquest/internal/ui/keys"
	"github.com/abhisek/mathquest/internal/ui/layout"
	"github.com/abhisek/mathquest/internal/ui/theme"
)

const sparkleInterval = 300 * time.Millisecond

// sparkle frames cycle around the characters
var sparkleFrames = []string{"★", "✦"}

// Both messages carry the generation of the cutscene that scheduled them so
// a timer from an earlier cutscene is ignored.
type sparkleTickMsg struct{ gen int }

type autoAdvanceMsg struct {
	gen   int
	frame int
}

// CutsceneScreen plays the frames of the controller's current cutscene.
type CutsceneScreen struct {
	ctx  context.Context
	game *progression.Controller

	gen       int
	tickCount int
}

var _ screen.Screen = (*CutsceneScreen)(nil)
var _ screen.KeyHintProvider = (*CutsceneScreen)(nil)

// New creates the cutscene screen.
func New(ctx context.Context, game *progression.Controller) *CutsceneScreen {
	return &CutsceneScreen{ctx: ctx, game: game}
}

func (c *CutsceneScreen) Title() string {
	return ""
}

func (c *CutsceneScreen) KeyHints() []layout.KeyHint {
	return keys.Hints(keys.Advance, keys.Skip, keys.Quit)
}

func (c *CutsceneScreen) Init() tea.Cmd {
	c.gen++
	c.tickCount = 0
	return tea.Batch(c.sparkle(), c.scheduleAdvance())
}

func (c *CutsceneScreen) sparkle() tea.Cmd {
	gen := c.gen
	return tea.Tick(sparkleInterval, func(time.Time) tea.Msg {
		return sparkleTickMsg{gen: gen}
	})
}

// scheduleAdvance arms the auto-advance timer of the frame on screen, if
// it has one.
func (c *CutsceneScreen) scheduleAdvance() tea.Cmd {
	f, i, ok := c.game.CutsceneFrame()
	if !ok || f.AutoAdvance() <= 0 {
		return nil
	}
	gen := c.gen
	return tea.Tick(f.AutoAdvance(), func(time.Time) tea.Msg {
		return autoAdvanceMsg{gen: gen, frame: i}
	})
}

func (c *CutsceneScreen) playing() bool {
	return c.game.Screen() == progression.ScreenCutscene
}

func (c *CutsceneScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sparkleTickMsg:
		if msg.gen != c.gen || !c.playing() {
			return c, nil
		}
		c.tickCount++
		return c, c.sparkle()

	case autoAdvanceMsg:
		if msg.gen != c.gen {
			return c, nil
		}
		if c.game.AdvanceCutsceneFrom(c.ctx, msg.frame) && c.playing() {
			return c, c.scheduleAdvance()
		}
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Advance):
			if c.game.AdvanceCutscene(c.ctx) && c.playing() {
				return c, c.scheduleAdvance()
			}
		case key.Matches(msg, keys.Skip):
			c.game.SkipCutscene(c.ctx)
		}
	}

	return c, nil
}

func (c *CutsceneScreen) View(width, height int) string {
	f, i, ok := c.game.CutsceneFrame()
	if !ok {
		return ""
	}
	var sections []string

	if chars := renderCharacters(f, c.sparkleAt(0), c.sparkleAt(1)); chars != "" {
		sections = append(sections, chars, "")
	}

	textStyle := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Align(lipgloss.Center).
		Width(min(width-8, 64))
	for _, el := range f.Elements {
		if el.Kind == stages.ElementText {
			sections = append(sections, textStyle.Render(el.Text), "")
		}
	}

	count := c.game.View().CutsceneCount
	hint := "press Enter to continue, S to skip"
	if f.AutoAdvance() > 0 {
		hint = "Enter to continue, S to skip, or wait..."
	}
	sections = append(sections,
		theme.Hint.Render(fmt.Sprintf("%d/%d  %s", i+1, count, hint)))

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// sparkleAt returns the sparkle glyph for slot, alternating each tick.
func (c *CutsceneScreen) sparkleAt(slot int) string {
	return sparkleFrames[(c.tickCount+slot)%len(sparkleFrames)]
}

// renderCharacters draws the character elements side by side with their
// names underneath.
func renderCharacters(f stages.Frame, s1, s2 string) string {
	var cards []string
	for _, el := range f.Elements {
		if el.Kind != stages.ElementCharacter {
			continue
		}
		card := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 2).
			Align(lipgloss.Center).
			Render(el.Sprite + "\n" + lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(el.Name))
		cards = append(cards, card)
	}
	if len(cards) == 0 {
		return ""
	}
	accent := lipgloss.NewStyle().Foreground(theme.Accent).Render(s1)
	secondary := lipgloss.NewStyle().Foreground(theme.Secondary).Render(s2)

	row := lipgloss.JoinHorizontal(lipgloss.Center, cards...)
	return lipgloss.JoinHorizontal(lipgloss.Center, accent+"  ", row, "  "+secondary)
}
