package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/listenup/internal/question"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Inspect question banks",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the questions of the active bank (--questions or the built-in one)",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, needs{bank: true})
		if err != nil {
			return err
		}
		defer e.Close()

		printQuestions(cmd.OutOrStdout(), e.bank)
		return nil
	},
}

var questionsValidateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a question bank file against the bank format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := question.LoadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d questions)\n", args[0], bank.Len())
		return nil
	},
}

func init() {
	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsValidateCmd)
}

func printQuestions(w io.Writer, bank *question.Bank) {
	if bank.Title() != "" {
		fmt.Fprintln(w, bank.Title())
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%4s  %-17s  %-50s  %s\n", "ID", "Type", "Question", "Answer")
	fmt.Fprintln(w, strings.Repeat("─", 95))

	for _, q := range bank.All() {
		text := q.Text
		if r := []rune(text); len(r) > 50 {
			text = string(r[:47]) + "..."
		}
		fmt.Fprintf(w, "%4d  %-17s  %-50s  %s\n", q.ID, q.Type.DisplayName(), text, q.CorrectAnswer)
	}

	fmt.Fprintf(w, "\n%d questions\n", bank.Len())
}
