package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wifeymooc/quizkit/internal/authoring"
	"github.com/wifeymooc/quizkit/internal/llm"
	"github.com/wifeymooc/quizkit/internal/question"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft questions on a topic with a language model",
	Long: "Draft questions with the configured LLM provider (QUIZKIT_LLM_PROVIDER and\n" +
		"QUIZKIT_<PROVIDER>_API_KEY, or GEMINI_API_KEY / OPENAI_API_KEY / ANTHROPIC_API_KEY).\n" +
		"Drafts are appended to --bank, or printed when no bank is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		topic, _ := cmd.Flags().GetString("topic")
		kindName, _ := cmd.Flags().GetString("kind")
		count, _ := cmd.Flags().GetInt("count")
		bankPath, _ := cmd.Flags().GetString("bank")

		if topicFile, _ := cmd.Flags().GetString("topic-file"); topicFile != "" {
			data, err := os.ReadFile(topicFile)
			if err != nil {
				return fmt.Errorf("read topic: %w", err)
			}
			topic = string(data)
		}

		var kind question.Kind
		if kindName != "" {
			k, ok := question.ParseKind(kindName)
			if !ok {
				return fmt.Errorf("unknown question type %q", kindName)
			}
			kind = k
		}

		cfg, err := llm.ResolveConfig()
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		provider, err := llm.NewProvider(ctx, cfg, st.EventRepo())
		if err != nil {
			return err
		}

		bank := &question.Bank{}
		if bankPath != "" {
			if bank, err = loadOrCreateBank(cmd, bankPath); err != nil {
				return err
			}
		}

		gen := authoring.New(provider, authoring.DefaultConfig(), nil)
		res, err := gen.Generate(ctx, authoring.Input{
			Topic:    topic,
			Kind:     kind,
			Count:    count,
			Existing: bank.Prompts(),
		})
		if err != nil {
			return err
		}
		return writeDrafts(cmd, bank, bankPath, res)
	},
}

// writeDrafts appends converted drafts to the bank at bankPath, or prints
// them as a bank when bankPath is empty. Skipped drafts go to stderr.
func writeDrafts(cmd *cobra.Command, bank *question.Bank, bankPath string, res *authoring.Result) error {
	for _, s := range res.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped: %s\n", s)
	}
	if len(res.Questions) == 0 {
		return fmt.Errorf("no usable questions")
	}

	if bankPath == "" {
		data, err := (&question.Bank{Questions: res.Questions}).Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	for _, q := range res.Questions {
		bank.Add(q)
	}
	if err := bank.Save(bankPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %d questions to %s (%d total)\n", len(res.Questions), bankPath, bank.Len())
	return nil
}

func init() {
	generateCmd.Flags().StringP("topic", "t", "", "Topic or source text for the questions")
	generateCmd.Flags().String("topic-file", "", "Read the topic from a file")
	generateCmd.Flags().StringP("kind", "k", "", "Restrict drafts to one question type")
	generateCmd.Flags().IntP("count", "n", 0, "Number of questions (default from config)")
	generateCmd.Flags().StringP("bank", "b", "", "Append drafts to this bank file")
}
