package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wifeymooc/quizkit/internal/media"
	"github.com/wifeymooc/quizkit/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "quizkit",
	Short:         "Author, check and practice quiz question banks",
	Long:          "quizkit — edit JSON question banks, grade recorded answers and practice in the terminal.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZKIT_DB env var)")
	rootCmd.PersistentFlags().String("media-dir", "", "Base directory for relative media paths (overrides QUIZKIT_MEDIA_DIR env var)")

	rootCmd.AddCommand(kindsCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZKIT_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the event store selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// resolveMediaDir picks the media base directory: --media-dir, then
// QUIZKIT_MEDIA_DIR, then the bank file's directory.
func resolveMediaDir(cmd *cobra.Command, bankPath string) string {
	override, _ := cmd.Flags().GetString("media-dir")
	if override == "" {
		override = os.Getenv("QUIZKIT_MEDIA_DIR")
	}
	return media.BaseDir(override, bankPath)
}
