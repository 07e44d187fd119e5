package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"govsync/internal/flags"
	"govsync/internal/governor"
)

var fixStrict bool

var fixCmd = &cobra.Command{
	Use:   "fix [project]",
	Short: "Auto-repair fixable governance violations",
	Long: `Run a compliance check and repair every violation that has a known
remediation: version drift, missing archive directory, obsolete files
(moved to the archive), and missing scaffold documents.

Non-fixable violations are listed for manual follow-up.

Exit codes:
	0 = nothing left to fix
	1 = unfixable violations remain
	2 = some fixes failed
	3 = fatal error

Examples:
  govsync fix
  govsync fix ./svc-a --strict
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

		ctx := context.Background()
		violations, err := gov.CheckCompliance(ctx, governor.CheckOptions{Strict: fixStrict})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		if len(violations) == 0 {
			fmt.Println("nothing to fix")
			return
		}

		res := gov.AutoFix(ctx, violations)
		for _, v := range res.Fixed {
			color.Green("fixed   %s", v.Message)
		}
		for _, failure := range res.Failures {
			color.Red("failed  %v", failure)
		}
		for _, v := range res.Skipped {
			fmt.Printf("manual  [%s] %s", v.Severity, v.Message)
			if v.Remediation != "" {
				fmt.Printf(" (%s)", v.Remediation)
			}
			fmt.Println()
		}

		switch {
		case len(res.Failures) > 0:
			os.Exit(2)
		case len(res.Skipped) > 0:
			os.Exit(1)
		}
	},
}

func init() {
	fixCmd.Flags().BoolVar(&fixStrict, flags.FlagStrict, false, "Include strict-mode violations in the fix pass")
	rootCmd.AddCommand(fixCmd)
}
