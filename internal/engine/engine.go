// Package engine orchestrates governance runs across one or more project
// roots: it wires the output sinks, fans projects out to workers, and
// folds the outcomes into the process exit code.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"govsync/internal/config"
	"govsync/internal/governor"
	"govsync/internal/history"
	"govsync/internal/logging"
	"govsync/internal/output"
	"govsync/internal/rules"
)

func exitCodeForRun(fatal, partial, violations bool) int {
	// Exit code contract:
	// 0 = clean run, no violations
	// 1 = violations detected
	// 2 = partial failure (some projects errored)
	// 3 = fatal error (check did not run)
	if fatal {
		return 3
	}
	if partial {
		return 2
	}
	if violations {
		return 1
	}
	return 0
}

func setupOutputManager(cfg *config.Config) (*output.Manager, error) {
	outMgr := output.NewManager()

	// Console Sink
	if !cfg.Output.NoConsole {
		sink := output.NewConsoleSink(nil, cfg.Output.ConsoleFormat, rules.Severity(cfg.Check.MinSeverity))
		if err := outMgr.AddSink(sink); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// Emit Sinks (additional structured streams)
	for _, emit := range cfg.Output.Emit {
		es, err := output.NewEmitSink(os.Stdout, emit)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(es); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// File Sink
	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(fs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// Report Sink
	if cfg.Output.Report != "" {
		rs, err := output.NewReportSink(cfg.Output.Report)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(rs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	return outMgr, nil
}

type Engine struct {
	log *slog.Logger
}

func NewEngine() *Engine {
	return &Engine{log: logging.ForComponent("engine")}
}

type projectOutcome struct {
	loaded     bool
	failed     bool
	violations int
}

// Run checks every configured project and returns the process exit code.
// Projects are independent: a broken project degrades the run to partial
// instead of aborting the rest.
func (e *Engine) Run(ctx context.Context, cfg *config.Config) int {
	outMgr, err := setupOutputManager(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCodeForRun(true, false, false)
	}

	projects := cfg.Targeting.Projects
	_ = outMgr.Write(output.Event{Type: "run.started", Projects: len(projects)})

	var mu sync.Mutex
	outcomes := make([]projectOutcome, len(projects))

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(cfg.Runtime.Concurrency)
	for i, root := range projects {
		grp.Go(func() error {
			out := e.runProject(grpCtx, cfg, root, outMgr)
			mu.Lock()
			outcomes[i] = out
			mu.Unlock()
			return nil
		})
	}
	_ = grp.Wait()

	var loaded, failed, violations int
	for _, o := range outcomes {
		if o.loaded {
			loaded++
		}
		if o.failed {
			failed++
		}
		violations += o.violations
	}

	fatal := loaded == 0
	partial := !fatal && failed > 0
	code := exitCodeForRun(fatal, partial, violations > 0)
	_ = outMgr.Write(output.Event{Type: "run.finished", ExitCode: code})
	if err := outMgr.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if code == 0 {
			code = exitCodeForRun(false, true, false)
		}
	}
	return code
}

func (e *Engine) runProject(ctx context.Context, cfg *config.Config, root string, outMgr *output.Manager) projectOutcome {
	gov, err := governor.New(root)
	if err != nil {
		e.log.Error("cannot load project", "root", root, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", root, err)
		return projectOutcome{failed: true}
	}
	name := gov.Project().Name()
	_ = outMgr.Write(output.Event{Type: "project.started", Project: name})

	violations, err := gov.CheckCompliance(ctx, governor.CheckOptions{Strict: cfg.Check.Strict})
	if err != nil {
		e.log.Error("compliance check failed", "project", name, "error", err)
		return projectOutcome{loaded: true, failed: true}
	}

	if cfg.Check.Fix {
		fixRes := gov.AutoFix(ctx, violations)
		if len(fixRes.Fixed) > 0 {
			// Re-check so the reported list reflects the repaired tree.
			violations, err = gov.CheckCompliance(ctx, governor.CheckOptions{Strict: cfg.Check.Strict})
			if err != nil {
				e.log.Error("post-fix check failed", "project", name, "error", err)
				return projectOutcome{loaded: true, failed: true}
			}
		}
	}

	governor.SortBySeverity(violations)
	for _, v := range violations {
		_ = outMgr.Write(output.Record{Project: name, Violation: v})
	}

	result, err := gov.Validate(ctx)
	if err != nil {
		e.log.Error("validation failed", "project", name, "error", err)
		return projectOutcome{loaded: true, failed: true, violations: len(violations)}
	}
	_ = outMgr.Write(output.Event{
		Type:    "project.finished",
		Project: name,
		Score:   result.Score,
		Grade:   result.Grade,
	})

	if cfg.Runtime.Record {
		if err := e.record(ctx, gov.Project().Root, result.Score, result.Grade, len(violations)); err != nil {
			e.log.Warn("cannot record run", "project", name, "error", err)
		}
	}
	return projectOutcome{loaded: true, violations: len(violations)}
}

func (e *Engine) record(ctx context.Context, root string, score int, grade string, violations int) error {
	store, err := history.Open(ctx, root)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(ctx, history.Entry{
		Kind:       "check",
		Score:      score,
		Grade:      grade,
		Violations: violations,
	})
}
