// Package progressiontest builds controllers backed by a temporary SQLite
// store for screen tests.
package progressiontest

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/abhisek/mathquest/internal/combat"
	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/progression"
	"github.com/abhisek/mathquest/internal/random"
	"github.com/abhisek/mathquest/internal/stages"
	"github.com/abhisek/mathquest/internal/store"
)

// Catalog is a small two-stage catalog. s1 falls to a single correct
// answer; s2 cannot be won in its three problems.
const Catalog = `
stages:
  - id: s1
    name: Numeria Woods
    worldName: Edge of the Woods
    description: A quiet start.
    operation: ADD
    numProblems: 3
    enemyName: Slime
    enemySprite: "🟢"
    enemyMaxHp: 10
    mapIcon: "🌳"
    companion: {name: Sprite, sprite: "✨", advice: "Add carefully!"}
    introDialogue:
      - {speakerSprite: "✨", speakerName: Sprite, text: "A slime blocks the path!"}
      - {speakerSprite: "🧙", speakerName: Mage, text: "Leave it to me."}
  - id: s2
    name: Whispering Brook
    worldName: Brook of Subtraction
    operation: SUBTRACT
    numProblems: 3
    enemyName: Rock Bat
    enemySprite: "🦇"
    enemyMaxHp: 500
    mapIcon: "🏞️"
cutscenes:
  gameIntro:
    - {id: f1, autoAdvanceMs: 1000, elements: [{kind: text, text: "Long ago in Numeria..."}]}
    - id: f2
      elements:
        - {kind: character, sprite: "🧙", name: Apprentice Mage}
        - {kind: text, text: "You are the only hope!"}
tutorial:
  - "Journey through {stageCount} stages."
  - "Answer within {quickSeconds}s for +{quickBonus} points."
`

// Fixture is a controller with the store behind it.
type Fixture struct {
	Game  *progression.Controller
	Store *store.Store
}

// New builds a controller over Catalog with a fresh save. mutate may
// adjust the options before the controller is built.
func New(t testing.TB, mutate ...func(*progression.Options)) *Fixture {
	t.Helper()

	data, err := stages.Parse([]byte(Catalog))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	logger := log.New(io.Discard, "", 0)
	cfg := problemgen.DefaultConfig()
	cfg.Logger = logger

	opts := progression.Options{
		Generator: problemgen.New(random.New(21), cfg),
		Catalog:   data,
		Rules:     combat.DefaultRules(),
		RNG:       random.New(22),
		KV:        st.KVRepo(),
		History:   st.HistoryRepo(),
		Logger:    logger,
	}
	for _, m := range mutate {
		m(&opts)
	}

	game, err := progression.New(context.Background(), opts)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return &Fixture{Game: game, Store: st}
}

// SkipIntro starts new games on the map.
func SkipIntro(o *progression.Options) { o.SkipIntro = true }

// InCombat starts a new game and enters combat on the first stage, past
// its intro dialogue.
func (f *Fixture) InCombat(t testing.TB) {
	t.Helper()
	ctx := context.Background()
	f.Game.NewGame(ctx)
	f.Game.SkipCutscene(ctx)
	if !f.Game.SelectStage(ctx, "s1") {
		t.Fatal("select s1 failed")
	}
	f.Game.SkipDialogue(ctx)
	if f.Game.Screen() != progression.ScreenCombat {
		t.Fatalf("screen = %v, want combat", f.Game.Screen())
	}
}

// Answer returns the correct answer, or a wrong one, for the problem on
// screen.
func (f *Fixture) Answer(correct bool) int {
	p := f.Game.Session().Problem()
	if correct {
		return p.CorrectAnswer
	}
	for _, o := range p.Options {
		if o != p.CorrectAnswer {
			return o
		}
	}
	return p.CorrectAnswer + 1
}
