package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/random"
	"github.com/abhisek/mathquest/internal/stages"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Generate a stage catalog and print it (no save file)",
	Long: `Build the stage catalog the way a new game does and print every stage
with its problems. Useful for checking difficulty and catalog files.`,
	RunE: runCatalog,
}

func init() {
	addGameFlags(catalogCmd)
	catalogCmd.Flags().String("stage", "", "Only print this stage ID")
	catalogCmd.Flags().Bool("answers", false, "Mark the correct option of each problem")
}

// buildStages generates a catalog from the configured seed and file.
func buildStages(cmd *cobra.Command) ([]stages.Stage, uint64, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, 0, err
	}
	data, err := loadCatalog(cfg)
	if err != nil {
		return nil, 0, err
	}
	seed, err := random.Resolve(cfg.Seed)
	if err != nil {
		return nil, 0, err
	}
	genCfg := problemgen.DefaultConfig()
	genCfg.Logger = log.New(os.Stderr, "mathquest: ", 0)
	return data.Build(problemgen.New(random.New(seed), genCfg)), seed, nil
}

func runCatalog(cmd *cobra.Command, args []string) error {
	only, _ := cmd.Flags().GetString("stage")
	answers, _ := cmd.Flags().GetBool("answers")

	all, seed, err := buildStages(cmd)
	if err != nil {
		return err
	}
	list := all
	if only != "" {
		s, _ := stages.Find(all, only)
		if s == nil {
			return fmt.Errorf("no stage %q in the catalog", only)
		}
		list = []stages.Stage{*s}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "seed %d\n", seed)
	for _, s := range list {
		_, i := stages.Find(all, s.ID)
		fmt.Fprintf(out, "\n%d. %s [%s]  %s  %s\n", i+1, s.Name, s.ID, s.WorldName, s.Mode)
		fmt.Fprintf(out, "   %s %s  %d HP", s.EnemySprite, s.EnemyName, s.EnemyMaxHP)
		if s.SpecialAbility != "" {
			fmt.Fprintf(out, "  %s %d", s.SpecialAbility, s.AbilityValue)
		}
		fmt.Fprintf(out, "  %d/%d problems\n", len(s.Problems), s.NumProblems)
		for _, p := range s.Problems {
			fmt.Fprintf(out, "   %-10s %-16s %s\n", p.ID, p.Text, formatOptions(p, answers))
		}
	}
	return nil
}

func formatOptions(p problemgen.Problem, answers bool) string {
	parts := make([]string, len(p.Options))
	for i, o := range p.Options {
		parts[i] = fmt.Sprintf("%d) %d", i+1, o)
		if answers && o == p.CorrectAnswer {
			parts[i] += "*"
		}
	}
	return strings.Join(parts, "  ")
}
