package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"govsync/internal/flags"
	"govsync/internal/governor"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [project]",
	Short: "Scaffold the governance layout for a project",
	Long: `Create the governance scaffold: the governance directory with a
default version manifest and operating documents, plus the working and
archive directories.

Existing files are left alone; --force re-renders the template documents.
The version manifest is never overwritten.

Examples:
  govsync init
  govsync init ./new-service --force
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		gov, err := governor.New(root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}

		res, err := gov.Init(governor.InitOptions{Force: initForce})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		for _, rel := range res.Created {
			fmt.Printf("created %s\n", rel)
		}
		for _, rel := range res.Skipped {
			fmt.Printf("kept    %s\n", rel)
		}
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, flags.FlagForce, false, "Re-render template documents over existing files")
	rootCmd.AddCommand(initCmd)
}
