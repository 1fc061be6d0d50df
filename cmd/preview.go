package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/stages"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Answer a stage's problems on the command line (no save file)",
	Long: `Generate one stage and answer its problems interactively.

This is a stateless drill: no combat, no saved game, no history. Answer with
the option number or the value itself.`,
	RunE: runPreview,
}

func init() {
	addGameFlags(previewCmd)
	previewCmd.Flags().String("stage", "", "Stage ID (default: the first stage)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("stage")

	all, seed, err := buildStages(cmd)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		return fmt.Errorf("catalog has no stages")
	}
	stage := &all[0]
	if id != "" {
		if stage, _ = stages.Find(all, id); stage == nil {
			return fmt.Errorf("no stage %q in the catalog", id)
		}
	}

	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprintf(out, "Stage: %s — %s (%s, seed %d)\n\n", stage.Name, stage.WorldName, stage.Mode, seed)

	var correct, asked int
	for i, p := range stage.Problems {
		fmt.Fprintf(out, "── Problem %d/%d ──\n", i+1, len(stage.Problems))
		fmt.Fprintln(out, p.Text)
		for j, o := range p.Options {
			fmt.Fprintf(out, "  %d) %d\n", j+1, o)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			fmt.Fprintln(out, "(skipped)")
			fmt.Fprintln(out)
			continue
		}
		asked++

		value, ok := problemgen.ParseChoice(p, input)
		switch {
		case !ok:
			fmt.Fprintf(out, "✗ %q is not one of the options. Answer: %d\n", input, p.CorrectAnswer)
		case problemgen.CheckAnswer(p, value):
			correct++
			fmt.Fprintln(out, "✓ Correct!")
		default:
			fmt.Fprintf(out, "✗ Wrong. Answer: %d\n", p.CorrectAnswer)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "── Summary: %d/%d correct ──\n", correct, asked)
	return nil
}
