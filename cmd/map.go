package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/mapprint"
	"github.com/abhisek/mathquest/internal/stages"
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Print the adventure map of the saved game to a PDF",
	RunE:  runMap,
}

func init() {
	mapCmd.Flags().StringP("output", "o", "mathquest-map.pdf", "PDF file to write")
}

func runMap(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	g, err := openGame(cmd, log.New(os.Stderr, "mathquest: ", 0))
	if err != nil {
		return err
	}
	defer g.Close()

	ctrl := g.controller
	all := ctrl.Stages()
	_, unlocked := stages.Find(all, ctrl.UnlockedStageID())
	unlocked = max(unlocked, 0)
	st := ctrl.Stats()
	subtitle := fmt.Sprintf("Score %d · HP %d/%d · %d/%d stages cleared",
		st.Score, st.HP, st.MaxHP, unlocked, len(all))

	pdf, err := mapprint.Generate(all, unlocked, subtitle)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, pdf, 0o644); err != nil {
		return fmt.Errorf("write map: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Map written to %s\n", output)
	return nil
}
