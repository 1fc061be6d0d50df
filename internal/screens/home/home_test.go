package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathquest/internal/progression"
	"github.com/abhisek/mathquest/internal/progression/progressiontest"
	"github.com/abhisek/mathquest/internal/router"
	"github.com/abhisek/mathquest/internal/screens/history"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func press(t *testing.T, h *HomeScreen, code rune) tea.Cmd {
	t.Helper()
	_, cmd := h.Update(specialKey(code))
	return cmd
}

func TestHome_NoSaveStartsOnNewGame(t *testing.T) {
	f := progressiontest.New(t)
	h := New(context.Background(), f.Game, f.Store.HistoryRepo())
	h.Init()

	if got := h.Selected(); got != LabelNewGame {
		t.Errorf("selected = %q, want %q", got, LabelNewGame)
	}
	view := h.View(100, 39)
	for _, want := range []string{"NO SAVED GAME", LabelContinue, LabelNewGame, LabelHistory} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	// CONTINUE is disabled, so up stays put.
	press(t, h, tea.KeyUp)
	if got := h.Selected(); got != LabelNewGame {
		t.Errorf("selected = %q after up, want %q", got, LabelNewGame)
	}
}

func TestHome_NewGame(t *testing.T) {
	f := progressiontest.New(t)
	h := New(context.Background(), f.Game, nil)
	h.Init()

	if cmd := press(t, h, tea.KeyEnter); cmd != nil {
		t.Error("new game needs no command")
	}
	if f.Game.Screen() != progression.ScreenCutscene {
		t.Errorf("screen = %v, want cutscene", f.Game.Screen())
	}
}

func TestHome_HowToPlay(t *testing.T) {
	f := progressiontest.New(t)
	h := New(context.Background(), f.Game, nil)
	h.Init()

	press(t, h, tea.KeyDown)
	press(t, h, tea.KeyEnter)
	if !f.Game.TutorialOpen() {
		t.Error("expected the tutorial to open")
	}
}

func TestHome_HistoryPushesScreen(t *testing.T) {
	f := progressiontest.New(t)
	h := New(context.Background(), f.Game, f.Store.HistoryRepo())
	h.Init()

	press(t, h, tea.KeyDown)
	press(t, h, tea.KeyDown)
	if got := h.Selected(); got != LabelHistory {
		t.Fatalf("selected = %q, want %q", got, LabelHistory)
	}
	cmd := press(t, h, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("pushed %T, want history screen", push.Screen)
	}
}

func TestHome_NilHistoryDisablesItem(t *testing.T) {
	f := progressiontest.New(t)
	h := New(context.Background(), f.Game, nil)
	h.Init()

	press(t, h, tea.KeyDown)
	press(t, h, tea.KeyDown)
	if got := h.Selected(); got != LabelQuit {
		t.Fatalf("selected = %q, want %q", got, LabelQuit)
	}
	cmd := press(t, h, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestHome_ContinueSavedGame(t *testing.T) {
	f := progressiontest.New(t, progressiontest.SkipIntro)
	ctx := context.Background()
	f.Game.NewGame(ctx)
	f.Game.ToMainMenu(ctx)

	h := New(ctx, f.Game, nil)
	h.Init()
	if got := h.Selected(); got != LabelContinue {
		t.Fatalf("selected = %q, want %q", got, LabelContinue)
	}
	view := h.View(100, 39)
	if !strings.Contains(view, "♥ 100/100 HP") || !strings.Contains(view, "STAGE 1/2") {
		t.Error("expected saved stats in the view")
	}

	press(t, h, tea.KeyEnter)
	if f.Game.Screen() != progression.ScreenAdventureMap {
		t.Errorf("screen = %v, want map", f.Game.Screen())
	}
}

func TestHome_CompactView(t *testing.T) {
	f := progressiontest.New(t, progressiontest.SkipIntro)
	ctx := context.Background()
	f.Game.NewGame(ctx)
	f.Game.ToMainMenu(ctx)

	h := New(ctx, f.Game, nil)
	h.Init()
	view := h.View(80, 18)
	if !strings.Contains(view, "♥100") {
		t.Error("expected compact stats")
	}
	if strings.Contains(view, "┌─────┐") {
		t.Error("compact view should hide the mascot")
	}
}

func TestMascotFor(t *testing.T) {
	tests := []struct {
		name string
		s    statsBar
		want MascotVariant
	}{
		{"no save", statsBar{}, MascotIdle},
		{"low hp", statsBar{hasSave: true, hp: 20, maxHP: 100, stage: 1, stageCount: 15}, MascotAlert},
		{"final stage", statsBar{hasSave: true, hp: 90, maxHP: 100, stage: 15, stageCount: 15}, MascotCelebrating},
		{"healthy", statsBar{hasSave: true, hp: 90, maxHP: 100, stage: 3, stageCount: 15}, MascotIdle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mascotFor(tt.s); got != tt.want {
				t.Errorf("mascotFor = %v, want %v", got, tt.want)
			}
		})
	}
}
