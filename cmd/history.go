package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/listenup/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print recent quiz results",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, needs{})
		if err != nil {
			return err
		}
		defer e.Close()

		if !e.cfg.History.Enabled {
			return errHistoryDisabled
		}
		dbPath, err := resolveDBPath(e.cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		if e.store, err = store.Open(dbPath); err != nil {
			return fmt.Errorf("open store: %w", err)
		}

		player, _ := cmd.Flags().GetString("player")
		since, _ := cmd.Flags().GetString("since")
		until, _ := cmd.Flags().GetString("until")
		from, to, err := dayRange(since, until, time.Local)
		if err != nil {
			return err
		}

		sessions, err := e.repo().QuerySessionSummaries(cmd.Context(), store.QueryOpts{
			Limit:  e.cfg.History.Limit,
			Player: player,
			From:   from,
			To:     to,
		})
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}

		printHistory(cmd.OutOrStdout(), sessions)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 0, "Maximum number of sessions to show (overrides history.limit)")
	historyCmd.Flags().String("player", "", "Only show sessions of this player")
	historyCmd.Flags().String("since", "", "Only show sessions finished on or after this day (YYYY-MM-DD)")
	historyCmd.Flags().String("until", "", "Only show sessions finished on or before this day (YYYY-MM-DD)")
}

const dayLayout = "2006-01-02"

// dayRange turns --since/--until days into an inclusive time range. Empty
// days leave that end open.
func dayRange(since, until string, loc *time.Location) (from, to time.Time, err error) {
	if since != "" {
		if from, err = time.ParseInLocation(dayLayout, since, loc); err != nil {
			return from, to, fmt.Errorf("invalid --since %q: want YYYY-MM-DD", since)
		}
	}
	if until != "" {
		day, err := time.ParseInLocation(dayLayout, until, loc)
		if err != nil {
			return from, to, fmt.Errorf("invalid --until %q: want YYYY-MM-DD", until)
		}
		to = day.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return from, to, fmt.Errorf("--until %s is before --since %s", until, since)
	}
	return from, to, nil
}

func printHistory(w io.Writer, sessions []store.SessionSummary) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions yet.")
		return
	}

	fmt.Fprintf(w, "%-16s  %-16s  %-5s  %8s  %5s  %4s  %s\n",
		"Finished", "Player", "Mode", "Correct", "Score", "%", "Wrong IDs")
	fmt.Fprintln(w, strings.Repeat("─", 80))

	for _, s := range sessions {
		wrong := make([]string, len(s.WrongIDs))
		for i, id := range s.WrongIDs {
			wrong[i] = fmt.Sprint(id)
		}
		fmt.Fprintf(w, "%-16s  %-16s  %-5s  %8s  %5d  %3d%%  %s\n",
			s.FinishedAt.Local().Format("2006-01-02 15:04"),
			s.Player,
			s.Mode,
			fmt.Sprintf("%d/%d", s.Correct, s.Answered),
			s.Score,
			s.Percent,
			strings.Join(wrong, ","))
	}

	fmt.Fprintf(w, "\n%d sessions\n", len(sessions))
}
