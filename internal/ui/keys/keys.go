// Package keys holds the key bindings shared by the screens.
package keys

import (
	"fmt"

	"charm.land/bubbles/v2/key"

	"github.com/abhisek/mathquest/internal/ui/layout"
)

var (
	Quit = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("Ctrl+C", "Quit"))
	Back = key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back"))

	Up      = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Navigate"))
	Down    = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↑↓", "Navigate"))
	Select  = key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Select"))
	Details = key.NewBinding(key.WithKeys("i"), key.WithHelp("I", "Details"))

	// Advance moves dialogue and cutscenes forward.
	Advance = key.NewBinding(key.WithKeys("enter", "space", " "), key.WithHelp("Enter", "Next"))
	Skip    = key.NewBinding(key.WithKeys("esc", "s"), key.WithHelp("S", "Skip"))

	MainMenu = key.NewBinding(key.WithKeys("m"), key.WithHelp("M", "Save & menu"))
	Help     = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "How to play"))
	Close    = key.NewBinding(key.WithKeys("esc", "enter", "?"), key.WithHelp("Esc", "Close"))
)

// Combat bindings.
var (
	Option = []key.Binding{
		key.NewBinding(key.WithKeys("1", "a")),
		key.NewBinding(key.WithKeys("2", "b")),
		key.NewBinding(key.WithKeys("3", "c")),
		key.NewBinding(key.WithKeys("4", "d")),
	}
	Answer = key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "Answer"))

	Hint        = key.NewBinding(key.WithKeys("h"), key.WithHelp("H", "Hint"))
	Potion      = key.NewBinding(key.WithKeys("p"), key.WithHelp("P", "Potion"))
	PowerStrike = key.NewBinding(key.WithKeys("f"), key.WithHelp("F", "Power Strike"))
	Retreat     = key.NewBinding(key.WithKeys("r", "esc"), key.WithHelp("R", "Retreat"))
)

// OptionIndex returns which answer option k selects, if any.
func OptionIndex(k fmt.Stringer) (int, bool) {
	for i, b := range Option {
		if key.Matches(k, b) {
			return i, true
		}
	}
	return 0, false
}

// Hints turns bindings into footer hints. Disabled bindings and bindings
// without help are left out.
func Hints(bs ...key.Binding) []layout.KeyHint {
	hints := make([]layout.KeyHint, 0, len(bs))
	for _, b := range bs {
		h := b.Help()
		if !b.Enabled() || h.Key == "" {
			continue
		}
		hints = append(hints, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return hints
}
