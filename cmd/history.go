package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wifeymooc/quizkit/internal/store"
	"github.com/wifeymooc/quizkit/internal/ui/theme"
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "List past sessions, or the graded answers of one session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		repo := s.EventRepo()

		if len(args) == 1 {
			events, err := repo.QueryGradeEvents(ctx, args[0], store.QueryOpts{Limit: limit})
			if err != nil {
				return fmt.Errorf("query grades: %w", err)
			}
			if len(events) == 0 {
				return fmt.Errorf("no graded answers for session %q", args[0])
			}
			fmt.Fprintf(out, "%-6s  %-24s  %-11s  %s\n", "Block", "Type", "Status", "Prompt")
			fmt.Fprintln(out, strings.Repeat("─", 80))
			for _, e := range events {
				line := fmt.Sprintf("%-6s  %-24s  %-11s  %s", e.BlockKey, e.Kind, e.Status, truncate(e.Prompt, 30))
				if e.Message != "" && !e.Correct {
					line += "  " + e.Message
				}
				fmt.Fprintln(out, theme.Verdict(e.Status).Render(line))
			}
			return nil
		}

		sums, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sums) == 0 {
			fmt.Fprintln(out, "No sessions recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-16s  %-20s  %7s  %7s  %6s\n", "Session", "Bank", "Ended", "Checked", "Correct", "Time")
		fmt.Fprintln(out, strings.Repeat("─", 102))
		for _, sum := range sums {
			fmt.Fprintf(out, "%-36s  %-16s  %-20s  %7d  %7d  %3d:%02d\n",
				sum.SessionID,
				truncate(sum.Bank, 16),
				sum.EndedAt.Local().Format("2006-01-02 15:04:05"),
				sum.QuestionsChecked,
				sum.CorrectCount,
				sum.DurationSecs/60, sum.DurationSecs%60,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of rows to show")
}
