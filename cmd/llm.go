package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wifeymooc/quizkit/internal/store"
	"github.com/wifeymooc/quizkit/internal/ui/theme"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded question generation requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent requests, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		rows := 0
		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			if rows == 0 {
				fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("%-5s  %-19s  %-12s  %-24s  %7s  %7s  %6s",
					"ID", "When", "Purpose", "Model", "In", "Out", "Ms")))
			}
			rows++
			status := theme.Mark("correct")
			if !e.Success {
				status = theme.Mark("incorrect")
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-12s  %-24s  %7d  %7d  %6d  %s\n",
				e.ID, e.Timestamp.Local().Format("2006-01-02 15:04:05"), truncate(e.Purpose, 12),
				truncate(e.Model, 24), e.InputTokens, e.OutputTokens, e.LatencyMs, status)
		}
		if rows == 0 {
			fmt.Fprintln(out, "No LLM requests recorded.")
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one request with its captured bodies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("no request with ID %d", id)
		}

		out := cmd.OutOrStdout()
		field := func(label string, v any) {
			fmt.Fprintf(out, "%s %v\n", theme.Dim.Render(fmt.Sprintf("%-9s", label+":")), v)
		}
		field("ID", e.ID)
		field("When", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		field("Backend", e.Provider+" / "+e.Model)
		field("Purpose", e.Purpose)
		field("Tokens", fmt.Sprintf("%d in, %d out", e.InputTokens, e.OutputTokens))
		field("Latency", fmt.Sprintf("%dms", e.LatencyMs))
		if e.Success {
			field("Result", theme.Correct.Render("ok"))
		} else {
			field("Result", theme.Incorrect.Render(e.ErrorMessage))
		}

		printBody(out, "Request", e.RequestBody)
		printBody(out, "Response", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage by purpose",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		usage, err := s.EventRepo().LLMUsageByPurpose(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(usage) == 0 {
			fmt.Fprintln(out, "No LLM requests recorded.")
			return nil
		}

		line := "%-16s  %6v  %10v  %10v  %8v\n"
		fmt.Fprint(out, theme.Title.Render(fmt.Sprintf(line, "Purpose", "Calls", "In", "Out", "Avg ms")))
		var calls, in, outTokens int
		for _, u := range usage {
			fmt.Fprintf(out, line, truncate(u.Key, 16), u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
			calls += u.Calls
			in += u.InputTokens
			outTokens += u.OutputTokens
		}
		fmt.Fprintf(out, line, "all", calls, in, outTokens, "")
		return nil
	},
}

func printBody(out io.Writer, label, body string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, theme.Title.Render(label))
	if body == "" {
		fmt.Fprintln(out, theme.Dim.Render("(not captured)"))
		return
	}
	fmt.Fprintln(out, strings.TrimRight(body, "\n"))
}

func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show this purpose (e.g. question-gen)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
