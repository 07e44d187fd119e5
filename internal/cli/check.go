package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"govsync/internal/engine"
	"govsync/internal/flags"
	"govsync/internal/watcher"
)

var checkCmd = &cobra.Command{
	Use:   "check [project...]",
	Short: "Check projects for governance violations",
	Long: `Check one or more project roots for governance violations.

A check merges three sources into one violation list:
  - version drift between the durable manifest and tracked files
  - schema validation failures (structure, quality, safety, exceptions)
  - governance layout problems (missing manifest, missing documents)

Output:
	Console output is controlled by --console-format (default: text).
	Structured outputs can be written via:
	- --out / --out-format: write an aggregate JSON array or NDJSON stream to a file
	- --emit: write an additional structured stream to stdout (json or ndjson)
	- --report: write a Markdown compliance report to a file
	- --no-console: suppress the console sink (use with --emit/--out for machine output)

	NDJSON mode emits one JSON object per line. Objects are lifecycle Events with a
	"type" field (run.started, project.started, violation, project.finished,
	run.finished).

Exit codes:
	0 = clean run, no violations
	1 = violations detected
	2 = partial failure (some projects errored)
	3 = fatal error (check did not run)

Examples:
  # Check the current directory
  govsync check

  # Check several projects, strictly, four at a time
  govsync check ./svc-a ./svc-b --strict --concurrency 4

  # Repair what can be repaired, then report what remains
  govsync check --fix

	# AI Agent: stream machine-readable events to stdout
	govsync check --no-console --emit ndjson
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg.Targeting.Projects = args
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		if cfg.Check.Watch && len(cfg.Targeting.Projects) != 1 {
			fmt.Fprintln(os.Stderr, "Error: --watch supports exactly one project")
			os.Exit(3)
		}

		ctx := context.Background()
		eng := engine.NewEngine()

		if !cfg.Check.Watch {
			os.Exit(eng.Run(ctx, cfg))
		}

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		eng.Run(ctx, cfg)
		w := watcher.New(cfg.Targeting.Projects[0], func(runCtx context.Context) {
			eng.Run(runCtx, cfg)
		})
		if err := w.Run(ctx); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
	},
}

func init() {
	f := checkCmd.Flags()
	f.BoolVar(&cfg.Check.Strict, flags.FlagStrict, false, "Require exception policy documents to carry active content")
	f.BoolVar(&cfg.Check.Fix, flags.FlagFix, false, "Apply auto-remediation to fixable violations before reporting")
	f.BoolVar(&cfg.Check.Watch, flags.FlagWatch, false, "Re-run the check when governed files change (single project only)")
	f.StringVar(&cfg.Check.MinSeverity, flags.FlagMinSeverity, "", "Hide console violations below this severity (critical, high, medium, low)")
	f.StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, "text", "Console output format (text, json, ndjson)")
	f.StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this file")
	f.StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Format for --out (json, ndjson); inferred from extension if omitted")
	f.StringArrayVar(&cfg.Output.Emit, flags.FlagEmit, nil, "Write an additional structured stream to stdout (json, ndjson)")
	f.StringVar(&cfg.Output.Report, flags.FlagReport, "", "Write a Markdown compliance report to this file")
	f.BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress the console sink")
	f.IntVar(&cfg.Runtime.Concurrency, flags.FlagConcurrency, cfg.Runtime.Concurrency, "Number of projects checked in parallel")
	f.BoolVar(&cfg.Runtime.Record, flags.FlagRecord, false, "Record the run outcome in the project history database")
	rootCmd.AddCommand(checkCmd)
}
