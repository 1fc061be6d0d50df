package cmd

import "github.com/spf13/cobra"

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start or resume the adventure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().Bool("skip-intro", false, "Skip the opening cutscene on a new game")
}
