package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/app"
	"github.com/abhisek/mathquest/internal/combat"
	"github.com/abhisek/mathquest/internal/config"
	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/progression"
	"github.com/abhisek/mathquest/internal/random"
	"github.com/abhisek/mathquest/internal/stages"
	"github.com/abhisek/mathquest/internal/store"
)

// loadConfig reads the environment and applies the command's flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	if cmd.Flags().Changed("catalog") {
		cfg.CatalogFile, _ = cmd.Flags().GetString("catalog")
	}
	if cmd.Flags().Changed("skip-intro") {
		cfg.SkipIntro, _ = cmd.Flags().GetBool("skip-intro")
	}
	return cfg, nil
}

// loadCatalog returns the configured catalog file, or the built-in one.
func loadCatalog(cfg config.Config) (*stages.Data, error) {
	if cfg.CatalogFile == "" {
		return stages.Default(), nil
	}
	data, err := stages.LoadFile(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.CatalogFile, err)
	}
	return data, nil
}

// game bundles everything a command needs to drive the controller.
type game struct {
	cfg        config.Config
	seed       uint64
	store      *store.Store
	controller *progression.Controller
	logger     *log.Logger
}

// openGame opens the save file and restores the controller from it.
func openGame(cmd *cobra.Command, logger *log.Logger) (*game, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	data, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	seed, err := random.Resolve(cfg.Seed)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	rules := combat.DefaultRules()
	rules.TimerSeconds = cfg.TimerSeconds

	genCfg := problemgen.DefaultConfig()
	genCfg.Logger = logger
	rng := random.New(seed)

	ctrl, err := progression.New(cmd.Context(), progression.Options{
		Generator: problemgen.New(rng, genCfg),
		Catalog:   data,
		Rules:     rules,
		RNG:       rng,
		KV:        st.KVRepo(),
		History:   st.HistoryRepo(),
		SkipIntro: cfg.SkipIntro,
		Logger:    logger,
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("start game: %w", err)
	}
	return &game{cfg: cfg, seed: seed, store: st, controller: ctrl, logger: logger}, nil
}

func (g *game) Close() error {
	return g.store.Close()
}

// runApp builds the game and launches the TUI.
func runApp(cmd *cobra.Command) error {
	logger := log.New(os.Stderr, "mathquest: ", log.LstdFlags)

	g, err := openGame(cmd, logger)
	if err != nil {
		return err
	}
	defer g.Close()

	var logOut io.Writer
	if g.cfg.LogFile != "" {
		f, err := os.OpenFile(g.cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
		fmt.Fprintf(f, "%s seed %d\n", time.Now().Format(time.RFC3339), g.seed)
	}

	return app.Run(cmd.Context(), app.Options{
		Game:          g.controller,
		History:       g.store.HistoryRepo(),
		FeedbackDelay: g.cfg.FeedbackDelay,
		Logger:        logger,
		LogOutput:     logOut,
	})
}
