package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wifeymooc/quizkit/internal/lint"
	"github.com/wifeymooc/quizkit/internal/ui/theme"
)

var lintCmd = &cobra.Command{
	Use:   "lint <bank>",
	Short: "Check a bank for schema, answer-key and media problems",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opts := lint.Options{}
		if skip, _ := cmd.Flags().GetBool("no-media"); !skip {
			opts.MediaDir = resolveMediaDir(cmd, path)
		}

		rep, err := lint.File(path, opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, f := range rep.Findings {
			style := theme.Incomplete
			if f.Severity == lint.SeverityError {
				style = theme.Incorrect
			}
			fmt.Fprintln(out, style.Render(f.String()))
		}

		warnings := len(rep.Findings) - rep.Errors()
		summary := fmt.Sprintf("%d questions, %d errors, %d warnings", rep.Questions, rep.Errors(), warnings)
		if rep.OK() {
			fmt.Fprintln(out, theme.Correct.Render(summary))
			return nil
		}
		fmt.Fprintln(out, theme.Incorrect.Render(summary))
		return fmt.Errorf("%s: %d errors", path, rep.Errors())
	},
}

func init() {
	lintCmd.Flags().Bool("no-media", false, "Skip checking that media files exist")
}
