package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wifeymooc/quizkit/internal/authoring"
	"github.com/wifeymooc/quizkit/internal/question"
)

var importCmd = &cobra.Command{
	Use:   "import <drafts.json|->",
	Short: "Convert drafts pasted from an AI chat into bank questions",
	Long: "Convert a JSON array of question drafts, as produced by a chat assistant, into\n" +
		"bank questions. Use - to read from stdin.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("read drafts: %w", err)
		}

		res, err := authoring.Import(data)
		if err != nil {
			return err
		}

		bankPath, _ := cmd.Flags().GetString("bank")
		bank := &question.Bank{}
		if bankPath != "" {
			if bank, err = loadOrCreateBank(cmd, bankPath); err != nil {
				return err
			}
		}
		return writeDrafts(cmd, bank, bankPath, res)
	},
}

func init() {
	importCmd.Flags().StringP("bank", "b", "", "Append converted questions to this bank file")
}
