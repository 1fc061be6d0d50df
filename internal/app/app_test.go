package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathquest/internal/progression"
	"github.com/abhisek/mathquest/internal/progression/progressiontest"
	"github.com/abhisek/mathquest/internal/router"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return am, cmd
}

func newTestApp(t *testing.T) (AppModel, *progressiontest.Fixture) {
	t.Helper()
	f := progressiontest.New(t)
	m := New(context.Background(), Options{Game: f.Game, History: f.Store.HistoryRepo()})
	m.Init()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 45})
	return m, f
}

// startGame picks NEW GAME on the main menu.
func startGame(t *testing.T, m AppModel) AppModel {
	t.Helper()
	m, _ = update(t, m, specialKey(tea.KeyEnter))
	if m.game.Screen() != progression.ScreenCutscene {
		t.Fatalf("screen = %v, want cutscene", m.game.Screen())
	}
	return m
}

func TestApp_StartsOnMainMenu(t *testing.T) {
	m, _ := newTestApp(t)
	out := m.render()
	for _, want := range []string{"Main Menu", "NEW GAME", "Ctrl+C"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
	if strings.Contains(out, "♥ 100/100") {
		t.Error("main menu header should not show player stats")
	}
}

func TestApp_NewGameThroughCombat(t *testing.T) {
	m, _ := newTestApp(t)
	m = startGame(t, m)
	if !strings.Contains(m.render(), "Long ago in Numeria") {
		t.Error("expected intro cutscene")
	}

	m, _ = update(t, m, keyPress('s'))
	if m.router.Current() != progression.ScreenAdventureMap {
		t.Fatalf("router on %v, want map", m.router.Current())
	}
	out := m.render()
	if !strings.Contains(out, "Adventure Map") || !strings.Contains(out, "♥ 100/100") {
		t.Error("expected map with player stats in the header")
	}

	m, _ = update(t, m, specialKey(tea.KeyEnter))
	out = m.render()
	if !strings.Contains(out, "A slime blocks the path!") || !strings.Contains(out, "1/2") {
		t.Error("expected intro dialogue box")
	}

	m, _ = update(t, m, keyPress(' '))
	if !strings.Contains(m.render(), "Leave it to me.") {
		t.Error("expected second dialogue line")
	}

	m, cmd := update(t, m, specialKey(tea.KeyEnter))
	if m.router.Current() != progression.ScreenCombat {
		t.Fatalf("router on %v, want combat", m.router.Current())
	}
	if cmd == nil {
		t.Error("expected the combat timer to start")
	}
	if !strings.Contains(m.render(), "Slime") {
		t.Error("expected combat view")
	}
}

func TestApp_DialogueSwallowsScreenKeys(t *testing.T) {
	m, f := newTestApp(t)
	m = startGame(t, m)
	m, _ = update(t, m, keyPress('s'))
	m, _ = update(t, m, specialKey(tea.KeyEnter))

	// 'm' means main menu on the map, but the dialogue is on top.
	m, _ = update(t, m, keyPress('m'))
	if _, ok := f.Game.DialogueLine(); !ok || f.Game.Screen() != progression.ScreenAdventureMap {
		t.Fatal("dialogue should stay open")
	}

	m, _ = update(t, m, keyPress('s'))
	if m.router.Current() != progression.ScreenCombat {
		t.Errorf("router on %v, want combat after skipping", m.router.Current())
	}
}

func TestApp_TutorialOverlay(t *testing.T) {
	m, f := newTestApp(t)
	m = startGame(t, m)
	m, _ = update(t, m, keyPress('s'))

	m, _ = update(t, m, keyPress('?'))
	out := m.render()
	if !strings.Contains(out, "HOW TO PLAY") || !strings.Contains(out, "Journey through 2 stages.") {
		t.Fatal("expected tutorial modal")
	}

	m, _ = update(t, m, specialKey(tea.KeyDown))
	if !f.Game.TutorialOpen() {
		t.Fatal("navigation keys should not close the tutorial")
	}

	m, _ = update(t, m, specialKey(tea.KeyEscape))
	if f.Game.TutorialOpen() {
		t.Error("esc should close the tutorial")
	}
	if strings.Contains(m.render(), "HOW TO PLAY") {
		t.Error("tutorial still drawn after close")
	}
}

func TestApp_OverlayPushAndPop(t *testing.T) {
	m, _ := newTestApp(t)
	m = startGame(t, m)
	m, _ = update(t, m, keyPress('s'))

	m, cmd := update(t, m, keyPress('i'))
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	m, _ = update(t, m, cmd())
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}
	if !strings.Contains(m.render(), "Back") {
		t.Error("expected back hint in footer")
	}

	m, cmd = update(t, m, specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
	m, _ = update(t, m, cmd())
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	m, _ := newTestApp(t)
	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestApp_TooSmall(t *testing.T) {
	m, _ := newTestApp(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected size warning")
	}
}

func TestApp_NoSizeRendersNothing(t *testing.T) {
	f := progressiontest.New(t)
	m := New(context.Background(), Options{Game: f.Game})
	if m.render() != "" {
		t.Error("expected empty render before the first size message")
	}
}
