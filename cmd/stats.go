package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wifeymooc/quizkit/internal/question"
	"github.com/wifeymooc/quizkit/internal/ui/components"
	"github.com/wifeymooc/quizkit/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show accuracy per question type across all sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		stats, err := s.EventRepo().KindStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(stats) == 0 {
			fmt.Fprintln(out, "No answers recorded yet.")
			return nil
		}

		fmt.Fprintln(out, theme.Title.Render("Accuracy by question type"))
		var checked, correct int
		for _, st := range stats {
			label := st.Kind
			if k, ok := question.ParseKind(st.Kind); ok {
				label = k.DisplayName()
			}
			bar := components.NewProgressBar(fmt.Sprintf("%-24s", label), st.Correct, st.Checked, 64)
			fmt.Fprintf(out, "%s  %s\n", bar.View(),
				theme.Dim.Render(fmt.Sprintf("%d/%d, %d incomplete", st.Correct, st.Checked, st.Incomplete)))
			checked += st.Checked
			correct += st.Correct
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, components.NewProgressBar(fmt.Sprintf("%-24s", "Overall"), correct, checked, 64).View())
		return nil
	},
}
