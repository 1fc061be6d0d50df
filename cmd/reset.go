package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/progression"
	"github.com/abhisek/mathquest/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the saved game and combat history",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

func runReset(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}

	if !yes {
		fmt.Fprintf(cmd.OutOrStdout(), "Delete the saved game in %s? [y/N] ", dbPath)
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if err := st.KVRepo().Delete(ctx,
		progression.KeyPlayerStats, progression.KeyUnlockedStage, progression.KeyCurrentScreen); err != nil {
		return fmt.Errorf("delete save: %w", err)
	}
	if err := st.HistoryRepo().ClearCombats(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Saved game deleted.")
	return nil
}
