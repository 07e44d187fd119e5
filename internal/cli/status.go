package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"govsync/internal/gitstatus"
	"govsync/internal/governor"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status [project]",
	Short: "Print a one-screen governance summary",
	Long: `Print a condensed governance summary: manifest versions, a quick
compliance score, the number of tracked files, and up to ten open issues.

Examples:
  govsync status
  govsync status ./svc-a --json
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
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
		snap, err := gov.Status(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}

		if statusJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(snap); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(3)
			}
			return
		}

		fmt.Printf("%s\n", gov.Project().Name())
		fmt.Printf("  protocol:    %s\n", snap.ProtocolVersion)
		fmt.Printf("  governance:  %s\n", snap.GovernanceVersion)
		fmt.Printf("  compliance:  %d/100\n", snap.ComplianceScore)
		fmt.Printf("  tracked:     %d files\n", snap.TrackedFiles)
		if remote := gov.RepositoryStatus(ctx); remote != nil && remote.HasRemoteUpdates {
			fmt.Printf("  remote:      %d behind / %d ahead of %s\n",
				remote.CommitsBehind, remote.CommitsAhead, remote.RemoteBranch)
		}
		for _, issue := range snap.Issues {
			fmt.Printf("  issue:       %s\n", issue)
		}
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Print the snapshot as JSON")
	rootCmd.AddCommand(statusCmd)
}
