package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wifeymooc/quizkit/internal/grading"
	"github.com/wifeymooc/quizkit/internal/question"
	"github.com/wifeymooc/quizkit/internal/response"
	"github.com/wifeymooc/quizkit/internal/session"
	"github.com/wifeymooc/quizkit/internal/store"
	"github.com/wifeymooc/quizkit/internal/ui/theme"
)

var gradeCmd = &cobra.Command{
	Use:   "grade <bank> <responses.json>",
	Short: "Grade recorded responses against a bank",
	Long: "Grade every block of a bank against a responses file: a JSON object mapping\n" +
		"composite keys (\"3\", \"3-1\") to response states. Results are recorded as a\n" +
		"session in the event store unless --no-record is set.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, warnings, err := question.LoadBank(args[0])
		if err != nil {
			return err
		}
		for _, w := range warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
		}
		reg, err := response.LoadRegistry(args[1])
		if err != nil {
			return err
		}

		var repo store.EventRepo
		if noRecord, _ := cmd.Flags().GetBool("no-record"); !noRecord {
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			repo = s.EventRepo()
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		_, err = runGrade(cmd.Context(), cmd.OutOrStdout(), bank, filepath.Base(args[0]), reg, repo, asJSON)
		return err
	},
}

// blockReport is the JSON form of one graded block.
type blockReport struct {
	Block   int            `json:"block"`
	Status  string         `json:"status"`
	Correct bool           `json:"correct"`
	Message string         `json:"message,omitempty"`
	Results []resultReport `json:"results"`
}

type resultReport struct {
	Key     string `json:"key"`
	Kind    string `json:"kind"`
	Status  string `json:"status"`
	Correct bool   `json:"correct"`
	Message string `json:"message,omitempty"`
	Answer  any    `json:"answer,omitempty"`
}

// runGrade checks every block of bank against src as one session and
// writes a report to out.
func runGrade(ctx context.Context, out io.Writer, bank *question.Bank, bankName string, src response.Source, repo store.EventRepo, asJSON bool) (*session.Summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	sess := session.New(bank, repo)
	sess.BankName = bankName
	if err := sess.Start(ctx); err != nil {
		return nil, err
	}

	reports := make([]blockReport, 0, bank.Len())
	for i, q := range bank.Questions {
		v, results, err := sess.Check(ctx, i, src)
		if err != nil {
			return nil, err
		}
		rep := blockReport{Block: i, Status: string(v.Status), Correct: v.Correct, Message: v.Message}
		for _, r := range results {
			rep.Results = append(rep.Results, resultReport{
				Key:     r.Key,
				Kind:    string(r.Kind),
				Status:  string(r.Verdict.Status),
				Correct: r.Verdict.Correct,
				Message: r.Verdict.Message,
				Answer:  r.Verdict.Answer,
			})
		}
		reports = append(reports, rep)
		if !asJSON {
			printBlock(out, i, q, v, results)
		}
	}

	sum, err := sess.End(ctx)
	if err != nil {
		return sum, err
	}

	if asJSON {
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return sum, fmt.Errorf("encode report: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return sum, nil
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d/%d blocks correct (%.0f%%)\n", sum.Correct, sum.Checked, sum.Accuracy*100)
	return sum, nil
}

func printBlock(out io.Writer, i int, q question.Question, v grading.Verdict, results []grading.Result) {
	status := theme.Verdict(string(v.Status)).Render(fmt.Sprintf("%-10s", v.Status))
	fmt.Fprintf(out, "%4d  %s %s  %s\n", i+1, theme.Mark(string(v.Status)), status, question.Summary(q))
	if v.Message != "" {
		fmt.Fprintf(out, "      %s\n", theme.Dim.Render(v.Message))
	}
	if _, ok := q.Body.(*question.MultiQuestions); !ok {
		return
	}
	for _, r := range results {
		fmt.Fprintf(out, "      %s %-6s %s\n", theme.Mark(string(r.Verdict.Status)), r.Key, r.Kind)
	}
}

func init() {
	gradeCmd.Flags().Bool("json", false, "Print the report as JSON")
	gradeCmd.Flags().Bool("no-record", false, "Do not record the session in the event store")
}
