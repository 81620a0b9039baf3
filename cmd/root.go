package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "listenup",
	Short:        "Listening comprehension quiz",
	Long:         "listenup is a terminal quiz for practicing listening comprehension.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite history database (overrides LISTENUP_DB)")
	flags.String("questions", "", "Question bank file, .json or .yaml (overrides LISTENUP_QUESTIONS)")
	flags.String("log-file", "", "Write logs to this file (overrides LISTENUP_LOG_FILE)")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error")
	flags.Bool("no-history", false, "Do not read or write result history")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
