package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/wifeymooc/quizkit/internal/question"
)

var newCmd = &cobra.Command{
	Use:   "new <kind>",
	Short: "Print a template question, or append it to a bank",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		k, ok := question.ParseKind(args[0])
		if !ok {
			return fmt.Errorf("unknown question type %q (see 'quizkit kinds')", args[0])
		}
		q, ok := question.Template(k)
		if !ok {
			return fmt.Errorf("no template for %s", k)
		}

		bankPath, _ := cmd.Flags().GetString("bank")
		if bankPath == "" {
			data, err := question.EncodeIndent(q)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		bank, err := loadOrCreateBank(cmd, bankPath)
		if err != nil {
			return err
		}
		i := bank.Add(q)
		if err := bank.Save(bankPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s as question %d of %s\n", question.Summary(q), i+1, bankPath)
		return nil
	},
}

// loadOrCreateBank loads the bank at path, or returns an empty bank when
// the file does not exist yet. Load warnings go to stderr.
func loadOrCreateBank(cmd *cobra.Command, path string) (*question.Bank, error) {
	bank, warnings, err := question.LoadBank(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &question.Bank{}, nil
	}
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	return bank, nil
}

func init() {
	newCmd.Flags().StringP("bank", "b", "", "Append the template to this bank file instead of printing it")
}
