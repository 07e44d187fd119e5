package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"govsync/internal/flags"
	"govsync/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [project]",
	Short: "Show recorded check and audit outcomes",
	Long: `List recent recorded runs for a project, newest first. Runs are only
recorded when check or audit is invoked with --record.

Examples:
  govsync history
  govsync history ./svc-a --limit 5
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		if _, err := os.Stat(filepath.Join(root, history.Dir)); err != nil {
			fmt.Println("no recorded runs (use --record with check or audit)")
			return
		}

		ctx := context.Background()
		store, err := history.Open(ctx, root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		defer store.Close()

		entries, err := store.Recent(ctx, historyLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		if len(entries) == 0 {
			fmt.Println("no recorded runs (use --record with check or audit)")
			return
		}
		for _, e := range entries {
			line := fmt.Sprintf("%s  %-5s  score %d", e.Timestamp.Local().Format(time.DateTime), e.Kind, e.Score)
			if e.Grade != "" {
				line += fmt.Sprintf(" (%s)", e.Grade)
			}
			if e.Kind == "check" {
				line += fmt.Sprintf(", %d violation(s)", e.Violations)
			}
			fmt.Println(line)
		}
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, flags.FlagLimit, 20, "Maximum number of runs to list")
	rootCmd.AddCommand(historyCmd)
}
