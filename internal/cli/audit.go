package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"govsync/internal/auditor"
	"govsync/internal/flags"
	"govsync/internal/governor"
	"govsync/internal/history"
	"govsync/internal/schema"
)

var (
	auditType   string
	auditOutput string
)

var auditCmd = &cobra.Command{
	Use:   "audit [project]",
	Short: "Run a scored audit of documentation quality, compliance, and security",
	Long: `Audit a project and produce a 0-100 score per category.

Audit types:
  quality        documentation depth of the primary document
  compliance     required governance files and manifest presence
  security       secret-like files and unresolved dependency findings
  comprehensive  all of the above, scored as their unweighted mean

Exit codes:
	0 = audit completed
	3 = fatal error

Examples:
  govsync audit
  govsync audit --type security
  govsync audit --type comprehensive --output audit-report.json
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		t, err := auditor.ParseType(auditType)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
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
		result, err := gov.Audit(ctx, t)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}

		printAudit(result, gov.Project().Schema)

		if auditOutput != "" {
			if err := result.Save(auditOutput); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(3)
			}
			fmt.Printf("report written to %s\n", auditOutput)
		}
		if cfg.Runtime.Record {
			if err := recordAudit(ctx, gov.Project().Root, result); err != nil {
				fmt.Fprintf(os.Stderr, "warning: cannot record audit: %v\n", err)
			}
		}
	},
}

func printAudit(result *auditor.Result, sch *schema.Schema) {
	fmt.Printf("%s audit: %s\n", result.Type, scoreLabel(result.Score, sch))
	for _, cat := range result.Categories {
		fmt.Printf("  %-12s %s\n", cat.Name, scoreLabel(cat.Score, sch))
		for _, issue := range cat.Issues {
			color.Red("    - %s", issue)
		}
		for _, rec := range cat.Recommendations {
			fmt.Printf("    > %s\n", rec)
		}
	}
}

func scoreLabel(score int, sch *schema.Schema) string {
	return fmt.Sprintf("%d (%s)", score, sch.Grade(score))
}

func recordAudit(ctx context.Context, root string, result *auditor.Result) error {
	store, err := history.Open(ctx, root)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(ctx, history.Entry{
		Kind:  "audit",
		Score: result.Score,
	})
}

func init() {
	f := auditCmd.Flags()
	f.StringVar(&auditType, flags.FlagType, string(auditor.TypeComprehensive), "Audit type (quality, compliance, security, comprehensive)")
	f.StringVar(&auditOutput, flags.FlagOutput, "", "Write a JSON audit report to this file")
	f.BoolVar(&cfg.Runtime.Record, flags.FlagRecord, false, "Record the audit outcome in the project history database")
	rootCmd.AddCommand(auditCmd)
}
