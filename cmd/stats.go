package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/stages"
	"github.com/abhisek/mathquest/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the saved game and recent combats",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent combats to show")
}

func runStats(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	g, err := openGame(cmd, log.New(os.Stderr, "mathquest: ", 0))
	if err != nil {
		return err
	}
	defer g.Close()

	out := cmd.OutOrStdout()
	ctrl := g.controller
	if !ctrl.HasSave() {
		fmt.Fprintln(out, "No saved game yet. Run mathquest to start one.")
	} else {
		st := ctrl.Stats()
		fmt.Fprintf(out, "HP %d/%d   Focus %d/%d   Score %d\n", st.HP, st.MaxHP, st.Focus, st.MaxFocus, st.Score)
		fmt.Fprintf(out, "Hints %d   Potions %d\n", st.Hints, st.Potions)

		all := ctrl.Stages()
		if s, i := stages.Find(all, ctrl.UnlockedStageID()); s != nil {
			fmt.Fprintf(out, "Next stage: %d. %s (%s)\n", i+1, s.Name, s.WorldName)
			fmt.Fprintf(out, "Progress: %d/%d stages cleared\n", i, len(all))
		}
	}

	recs, err := g.store.HistoryRepo().RecentCombats(cmd.Context(), store.QueryOpts{Limit: limit})
	if err != nil {
		return fmt.Errorf("query history: %w", err)
	}
	if len(recs) == 0 {
		return nil
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Recent combats:")
	for _, r := range recs {
		fmt.Fprintf(out, "  %s  %-24s %-8s %+4d  score %d  HP %d\n",
			r.Timestamp.Local().Format("2006-01-02 15:04"), r.StageName, r.Outcome,
			r.ScoreDelta, r.TotalScore, r.HPAfter)
	}
	return nil
}
