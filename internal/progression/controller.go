// Package progression drives the game between screens: new game, stage
// selection, dialogue and cutscene modals, combat hand-off, stage end
// screens and the saved game.
package progression

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/abhisek/mathquest/internal/combat"
	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/stages"
	"github.com/abhisek/mathquest/internal/store"
)

// Saved-game keys.
const (
	KeyPlayerStats   = "playerStats"
	KeyUnlockedStage = "unlockedStageId"
	KeyCurrentScreen = "currentScreen"
)

// Options configures a Controller.
type Options struct {
	// Generator builds stage problems. Required.
	Generator *problemgen.Generator

	// Catalog is the stage data. Nil means the built-in catalog.
	Catalog *stages.Data

	// Rules are the combat constants. The zero value means DefaultRules.
	Rules combat.Rules

	// RNG drives combat damage rolls. Required.
	RNG *rand.Rand

	// KV persists the saved game. Required.
	KV store.KVRepo

	// History receives one record per finished combat. Optional.
	History store.HistoryRepo

	// SkipIntro goes straight to the map on a new game.
	SkipIntro bool

	Logger *log.Logger
}

// Controller is the single writer of player stats and the unlocked stage.
// It is not safe for concurrent use; the TUI event loop drives it.
type Controller struct {
	gen     *problemgen.Generator
	data    *stages.Data
	rules   combat.Rules
	rng     *rand.Rand
	kv      store.KVRepo
	history store.HistoryRepo
	logger  *log.Logger

	skipIntro bool

	stages     []stages.Stage
	stats      combat.PlayerStats
	unlockedID string
	screen     Screen
	hasSave    bool

	tutorialOpen bool

	current *stages.Stage
	session *combat.Session

	dialogue    []stages.DialogueLine
	dialogueIdx int

	cutscene    stages.Cutscene
	cutsceneIdx int

	pending     Continuation
	scoreEarned int
}

// New builds the stage catalog and restores the saved game.
func New(ctx context.Context, opts Options) (*Controller, error) {
	if opts.Generator == nil {
		return nil, errors.New("progression: generator is required")
	}
	if opts.RNG == nil {
		return nil, errors.New("progression: rng is required")
	}
	if opts.KV == nil {
		return nil, errors.New("progression: kv repo is required")
	}
	c := &Controller{
		gen:       opts.Generator,
		data:      opts.Catalog,
		rules:     opts.Rules,
		rng:       opts.RNG,
		kv:        opts.KV,
		history:   opts.History,
		logger:    opts.Logger,
		skipIntro: opts.SkipIntro,
	}
	if c.data == nil {
		c.data = stages.Default()
	}
	if c.rules.TimerSeconds <= 0 {
		c.rules = combat.DefaultRules()
	}
	if c.logger == nil {
		c.logger = log.Default()
	}

	c.stages = c.data.Build(c.gen)
	c.load(ctx)
	return c, nil
}

// load restores stats, unlocked stage and screen. Anything missing or
// corrupt falls back to a fresh game on the main menu.
func (c *Controller) load(ctx context.Context) {
	c.stats = combat.DefaultPlayerStats()
	c.unlockedID = c.firstStageID()
	c.screen = ScreenMainMenu

	if raw, ok := c.get(ctx, KeyPlayerStats); ok {
		stats, err := decodeStats(raw)
		if err != nil {
			c.logger.Printf("warning: saved player stats ignored: %v", err)
		} else {
			c.stats = stats
			c.hasSave = true
		}
	}

	if raw, ok := c.get(ctx, KeyUnlockedStage); ok {
		var id string
		if err := json.Unmarshal([]byte(raw), &id); err != nil {
			c.logger.Printf("warning: saved unlocked stage ignored: %v", err)
		} else if s, _ := stages.Find(c.stages, id); s != nil {
			c.unlockedID = id
		} else {
			c.logger.Printf("warning: saved unlocked stage %q is not in the catalog", id)
		}
	}

	if raw, ok := c.get(ctx, KeyCurrentScreen); ok && c.hasSave {
		var s Screen
		if err := json.Unmarshal([]byte(raw), &s); err != nil || !s.Valid() {
			c.logger.Printf("warning: saved screen %s ignored", raw)
		} else if s.Resumable() {
			c.screen = s
		} else {
			c.screen = ScreenAdventureMap
		}
	}
}

func (c *Controller) get(ctx context.Context, key string) (string, bool) {
	raw, err := c.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			c.logger.Printf("warning: load %s: %v", key, err)
		}
		return "", false
	}
	return raw, true
}

// decodeStats accepts a saved stats value only if hp and maxHp are
// numbers. Missing fields keep their defaults.
func decodeStats(raw string) (combat.PlayerStats, error) {
	var probe map[string]any
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return combat.PlayerStats{}, fmt.Errorf("decode stats: %w", err)
	}
	for _, k := range []string{"hp", "maxHp"} {
		if _, ok := probe[k].(float64); !ok {
			return combat.PlayerStats{}, fmt.Errorf("decode stats: %s is not a number", k)
		}
	}
	stats := combat.DefaultPlayerStats()
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return combat.PlayerStats{}, fmt.Errorf("decode stats: %w", err)
	}
	return stats.Normalize(), nil
}

func (c *Controller) set(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		c.logger.Printf("warning: encode %s: %v", key, err)
		return
	}
	if err := c.kv.Set(ctx, key, string(b)); err != nil {
		c.logger.Printf("warning: save %s: %v", key, err)
	}
}

func (c *Controller) saveStats(ctx context.Context) {
	c.set(ctx, KeyPlayerStats, c.stats)
	c.hasSave = true
	c.saveScreen(ctx)
}

func (c *Controller) saveUnlocked(ctx context.Context) {
	c.set(ctx, KeyUnlockedStage, c.unlockedID)
}

// saveScreen records the screen only when it is resumable and a saved
// game exists.
func (c *Controller) saveScreen(ctx context.Context) {
	if c.screen.Resumable() && c.hasSave {
		c.set(ctx, KeyCurrentScreen, c.screen)
	}
}

func (c *Controller) clearSave(ctx context.Context) {
	if err := c.kv.Delete(ctx, KeyPlayerStats, KeyUnlockedStage, KeyCurrentScreen); err != nil {
		c.logger.Printf("warning: clear save: %v", err)
	}
	c.hasSave = false
}

func (c *Controller) firstStageID() string {
	if len(c.stages) == 0 {
		return ""
	}
	return c.stages[0].ID
}

func (c *Controller) setScreen(ctx context.Context, s Screen) {
	if s != ScreenCombat {
		c.session = nil
	}
	if s != ScreenCutscene {
		c.cutscene, c.cutsceneIdx = nil, 0
	}
	c.screen = s
	c.saveScreen(ctx)
}

// Screen returns the current screen.
func (c *Controller) Screen() Screen { return c.screen }

// Stages returns the catalog in play order.
func (c *Controller) Stages() []stages.Stage { return c.stages }

// Stats returns the player's stats outside combat.
func (c *Controller) Stats() combat.PlayerStats { return c.stats }

// UnlockedStageID returns the furthest unlocked stage.
func (c *Controller) UnlockedStageID() string { return c.unlockedID }

// CurrentStage returns the stage being played, or nil.
func (c *Controller) CurrentStage() *stages.Stage { return c.current }

// Session returns the active combat, or nil.
func (c *Controller) Session() *combat.Session { return c.session }

// Pending returns the continuation waiting on the active modal.
func (c *Controller) Pending() Continuation { return c.pending }

// HasSave reports whether saved progress exists.
func (c *Controller) HasSave() bool { return c.hasSave }

// IsUnlocked reports whether stage id can be selected.
func (c *Controller) IsUnlocked(id string) bool {
	s, i := stages.Find(c.stages, id)
	if s == nil {
		return false
	}
	_, u := stages.Find(c.stages, c.unlockedID)
	return i <= u
}
