package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wifeymooc/quizkit/internal/question"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <bank>",
	Short: "Rewrite a bank in canonical form",
	Long: "Decode every question and write it back in canonical form: legacy field names\n" +
		"are renamed, answers are coerced to their declared shape, unsupported objects\n" +
		"are kept verbatim. YAML banks are printed as JSON.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		raw, err := question.ReadBankFile(path)
		if err != nil {
			return err
		}
		bank, err := question.ParseBank(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		for _, w := range bank.Warnings() {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
		}
		data, err := bank.Marshal()
		if err != nil {
			return err
		}

		write, _ := cmd.Flags().GetBool("write")
		if !write {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		if bytes.Equal(data, raw) {
			return nil
		}
		if err := bank.Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "formatted %s\n", path)
		return nil
	},
}

func init() {
	fmtCmd.Flags().BoolP("write", "w", false, "Write the result back to the file")
}
