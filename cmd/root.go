package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathquest",
	Short: "Arithmetic adventure for the terminal",
	Long: `MathQuest is a terminal adventure where every attack is a math problem.
Clear stages on the map, beat the enemy of each world and keep your HP up.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite save file (overrides MATHQUEST_DB env var)")
	addGameFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(versionCmd)
}

// addGameFlags registers the flags shared by every command that builds a
// stage catalog.
func addGameFlags(c *cobra.Command) {
	c.Flags().Uint64("seed", 0, "Random seed (0 draws a fresh one; overrides MATHQUEST_SEED)")
	c.Flags().String("catalog", "", "YAML stage catalog replacing the built-in one (overrides MATHQUEST_CATALOG)")
}

// resolveDBPath returns the save file path using --db flag (highest
// priority), then the configured path, then the default XDG path. The
// parent directory is created.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	if p == "" {
		p = configured
	}
	if p == "" {
		var err error
		if p, err = store.DefaultDBPath(); err != nil {
			return "", err
		}
	}
	return p, store.EnsureDir(p)
}
