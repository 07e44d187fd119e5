package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"govsync/internal/flags"
	"govsync/internal/gitstatus"
	"govsync/internal/governor"
	"govsync/internal/syncer"
)

var syncCmd = &cobra.Command{
	Use:   "sync [project]",
	Short: "Reconcile version references with the durable manifest",
	Long: `Detect version drift between the durable manifest and tracked files,
and optionally apply the updates.

Without flags, detected conflicts are listed for review and nothing is
written. --dry-run additionally exercises the full pipeline short of the
write. --force applies every proposed update.

Exit codes:
	0 = no drift, or all updates applied
	1 = conflicts pending review
	2 = partial failure (some files could not be updated)
	3 = fatal error

Examples:
  # List drift in the current directory
  govsync sync

  # Apply all updates
  govsync sync --force
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		ctx := context.Background()
		gov, err := governor.New(root, governor.WithRepositoryStatus(gitstatus.Detect(ctx)))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		if status := gov.RepositoryStatus(ctx); status != nil && status.HasRemoteUpdates {
			color.Yellow("warning: %s is %d commits behind %s; consider pulling before syncing",
				gov.Project().Name(), status.CommitsBehind, status.RemoteBranch)
		}

		result, err := gov.Sync(ctx, syncer.Options{DryRun: cfg.Sync.DryRun, Force: cfg.Sync.Force})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		os.Exit(printSyncResult(result))
	},
}

func printSyncResult(result *syncer.Result) int {
	if result.Updated == 0 && len(result.Conflicts) == 0 {
		fmt.Println("all version references match the manifest")
		return 0
	}

	skipped := 0
	for _, c := range result.Conflicts {
		switch c.Resolution {
		case syncer.ResolutionIgnore:
			color.Red("skip  %s:%d  %s (write failed)", c.File, c.Line, c.CurrentVersion)
			skipped++
		default:
			fmt.Printf("drift %s:%d  %s -> %s\n", c.File, c.Line, c.CurrentVersion, c.TargetVersion)
		}
	}
	if result.Updated > 0 {
		color.Green("applied %d update(s)", result.Updated)
	}

	switch {
	case skipped > 0:
		return 2
	case result.Updated == 0 && len(result.Conflicts) > 0:
		fmt.Println("run `govsync sync --force` to apply")
		return 1
	default:
		return 0
	}
}

func init() {
	f := syncCmd.Flags()
	f.BoolVar(&cfg.Sync.DryRun, flags.FlagDryRun, false, "Run the full pipeline without writing any file")
	f.BoolVar(&cfg.Sync.Force, flags.FlagForce, false, "Apply every proposed version update")
	rootCmd.AddCommand(syncCmd)
}
