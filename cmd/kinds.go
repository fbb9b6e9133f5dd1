package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wifeymooc/quizkit/internal/question"
	"github.com/wifeymooc/quizkit/internal/ui/theme"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the supported question types",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, k := range question.AllKinds() {
			fmt.Fprintf(out, "%-24s %s\n", k, theme.Dim.Render(k.DisplayName()))
		}
	},
}
