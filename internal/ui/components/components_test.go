package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

type chosenMsg string

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Continue", Disabled: true},
		{Label: "New Game"},
		{Label: "History", Disabled: true},
		{Label: "Quit"},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want first enabled item 1", m.Selected)
	}

	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 3 {
		t.Errorf("after down Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(keyPress('k'))
	if m.Selected != 1 {
		t.Errorf("after k Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("up past a disabled top item moved to %d", m.Selected)
	}
}

func TestMenu_EnterRunsAction(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "New Game", Action: func() tea.Cmd {
			return func() tea.Msg { return chosenMsg("new") }
		}},
	})
	_, cmd := m.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if got := cmd(); got != chosenMsg("new") {
		t.Errorf("cmd() = %v, want new", got)
	}
}

func TestMenu_LabelsAndDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "A", Disabled: true}, {Label: "B"}})
	if got := strings.Join(m.Labels(), ","); got != "A,B" {
		t.Errorf("Labels = %q", got)
	}
	d := m.DisabledSet()
	if !d[0] || d[1] {
		t.Errorf("DisabledSet = %v", d)
	}
}

func TestMultiChoice_Markers(t *testing.T) {
	mc := NewMultiChoice([]string{"10", "11", "12", "13"})

	mc, _ = mc.Update(specialKey(tea.KeyDown))
	mc, _ = mc.Update(specialKey(tea.KeyDown))
	if mc.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", mc.Selected)
	}
	for i := 0; i < 5; i++ {
		mc, _ = mc.Update(keyPress('j'))
	}
	if mc.Selected != 3 {
		t.Errorf("cursor ran past the last option: %d", mc.Selected)
	}

	mc.RevealedIndex = 1
	if !strings.Contains(mc.View(), "💡") {
		t.Error("expected revealed marker")
	}

	mc.Locked = true
	mc.ChosenIndex = 3
	mc.CorrectIndex = 1
	view := mc.View()
	if !strings.Contains(view, "✓") || !strings.Contains(view, "✗") {
		t.Errorf("expected correct and wrong markers in %q", view)
	}
	if strings.Contains(view, "▸") {
		t.Error("locked choice should hide the cursor")
	}

	before := mc.Selected
	mc, _ = mc.Update(specialKey(tea.KeyUp))
	if mc.Selected != before {
		t.Error("locked choice should ignore navigation")
	}
}

func TestProgressBar_Percent(t *testing.T) {
	tests := []struct {
		value, max int
		want       float64
	}{
		{50, 100, 0.5},
		{0, 100, 0},
		{150, 100, 1},
		{-5, 100, 0},
		{5, 0, 0},
	}
	for _, tt := range tests {
		p := NewProgressBar("HP", tt.value, tt.max, 30, nil)
		if got := p.Percent(); got != tt.want {
			t.Errorf("Percent(%d/%d) = %v, want %v", tt.value, tt.max, got, tt.want)
		}
	}
}

func TestProgressBar_Readout(t *testing.T) {
	view := NewProgressBar("HP", 42, 100, 40, nil).View()
	if !strings.Contains(view, "42/100") {
		t.Errorf("expected readout in %q", view)
	}
}

func TestDialogueBox_View(t *testing.T) {
	d := DialogueBox{Sprite: "🧚", Speaker: "Pixie", Text: "Watch out!", Index: 1, Count: 3}
	view := d.View(50)
	for _, want := range []string{"Pixie", "Watch out!", "2/3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
