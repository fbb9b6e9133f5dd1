package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wifeymooc/quizkit/internal/app"
	"github.com/wifeymooc/quizkit/internal/question"
	sessionscreen "github.com/wifeymooc/quizkit/internal/screens/session"
	"github.com/wifeymooc/quizkit/internal/session"
	"github.com/wifeymooc/quizkit/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play <bank>",
	Short: "Practice a bank in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]

		bank, warnings, err := question.LoadBank(path)
		if err != nil {
			return err
		}
		for _, w := range warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
		}

		// Recording is optional; the player works without a store.
		var repo store.EventRepo
		st, err := openStore(cmd)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
			fmt.Fprintln(cmd.ErrOrStderr(), "Results will not be recorded.")
		} else {
			defer st.Close()
			repo = st.EventRepo()
		}

		sess := session.New(bank, repo)
		sess.BankName = filepath.Base(path)
		if err := sess.Start(ctx); err != nil {
			return err
		}

		return app.Run(sessionscreen.New(sess, bank, resolveMediaDir(cmd, path)))
	},
}
