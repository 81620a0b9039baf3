package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz session",
	Long:  "Start a quiz session. With --name the splash and name prompt are skipped.",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		return runApp(cmd, name != "")
	},
}

func init() {
	playCmd.Flags().String("name", "", "Player name (overrides LISTENUP_PLAYER)")
}
