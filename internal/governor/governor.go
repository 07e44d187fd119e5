// Package governor is the top-level façade of the governance engine. It
// aggregates the synchronizer, validator, and governance-structure checks
// into a unified violation list, computes a cheap status snapshot,
// performs idempotent one-time scaffolding, and dispatches best-effort
// auto-fix.
package governor

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"govsync/internal/auditor"
	"govsync/internal/gitstatus"
	"govsync/internal/logging"
	"govsync/internal/manifest"
	"govsync/internal/project"
	"govsync/internal/rules"
	"govsync/internal/scanner"
	"govsync/internal/schema"
	"govsync/internal/syncer"
)

type Governor struct {
	pc        *project.Context
	validator *rules.Validator
	syncer    *syncer.Syncer
	auditor   *auditor.Auditor
	log       *slog.Logger
	clock     func() time.Time
}

type Option func(*Governor)

// WithRepositoryStatus installs the remote status capability on the
// underlying synchronizer.
func WithRepositoryStatus(p gitstatus.Provider) Option {
	return func(g *Governor) {
		g.syncer = syncer.New(g.pc.Manifest, syncer.WithRepositoryStatus(p))
	}
}

// New loads the manifest and schema for the project root and assembles
// the engine. Loader failures are ConfigurationErrors: fatal, before any
// score is produced.
func New(root string, opts ...Option) (*Governor, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &ConfigurationError{Path: root, Err: err}
	}

	man, err := manifest.Load(abs)
	if err != nil {
		return nil, &ConfigurationError{Path: filepath.Join(abs, manifest.FileName), Err: err}
	}
	sch, err := schema.Load(abs)
	if err != nil {
		return nil, &ConfigurationError{Path: filepath.Join(abs, schema.FileName), Err: err}
	}

	pc := &project.Context{
		Root:     abs,
		Manifest: man,
		Schema:   sch,
		Files:    scanner.New().List(abs),
	}

	g := &Governor{
		pc:        pc,
		validator: rules.NewValidator(),
		syncer:    syncer.New(man),
		auditor:   auditor.New(),
		log:       logging.ForComponent("governor"),
	}
	for _, apply := range opts {
		apply(g)
	}
	return g, nil
}

// Project returns the read-only context the engine operates on.
func (g *Governor) Project() *project.Context { return g.pc }

type CheckOptions struct {
	// Strict adds the exception-policy liveness check.
	Strict bool
}

// CheckCompliance runs the read-only synchronizer scan, the validator,
// and the governance-structure checks, merging everything into one
// violation list. The component runs are independent: a low score in one
// never aborts the others.
func (g *Governor) CheckCompliance(ctx context.Context, opts CheckOptions) ([]Violation, error) {
	task := logging.StartTask(g.log, "check-compliance", "project", g.pc.Name(), "strict", opts.Strict)

	var violations []Violation

	conflicts, err := g.syncer.ValidateSync(ctx, g.pc.Root)
	if err != nil {
		task.Fail(err)
		return nil, err
	}
	for _, c := range conflicts {
		violations = append(violations, fromConflict(c))
	}
	task.Update("synchronizer scan finished", "conflicts", len(conflicts))

	result, err := g.validator.Validate(ctx, g.pc)
	if err != nil {
		task.Fail(err)
		return nil, err
	}
	for _, issue := range result.Issues {
		violations = append(violations, fromIssue(issue))
	}
	task.Update("validation finished", "score", result.Score, "grade", result.Grade)

	violations = append(violations, g.structureViolations(opts.Strict)...)

	counts := CountBySeverity(violations)
	task.Complete(
		"violations", len(violations),
		"critical", counts[rules.SeverityCritical],
		"high", counts[rules.SeverityHigh],
		"medium", counts[rules.SeverityMedium],
		"low", counts[rules.SeverityLow],
	)
	return violations, nil
}

// structureViolations covers the governance layout itself: the durable
// manifest, the schema override, and the primary governance document.
func (g *Governor) structureViolations(strict bool) []Violation {
	var out []Violation

	if !g.pc.HasFile(manifest.FileName) {
		out = append(out, Violation{
			Severity:    rules.SeverityHigh,
			Category:    CategoryStructure,
			Message:     "project has no durable version manifest",
			File:        manifest.FileName,
			AutoFixable: true,
			Remediation: "run `govsync init`",
			kind:        rules.KindMissingScaffold,
		})
	}
	if !g.pc.HasFile("GOVERNANCE.md") {
		out = append(out, Violation{
			Severity:    rules.SeverityMedium,
			Category:    CategoryStructure,
			Message:     "governance document missing",
			File:        "GOVERNANCE.md",
			Remediation: "document the governance model in GOVERNANCE.md",
		})
	}
	if !schema.Exists(g.pc.Root) {
		// Running on the bundled default is legal; surface it as advisory.
		out = append(out, Violation{
			Severity: rules.SeverityLow,
			Category: CategoryStructure,
			Message:  "no project-local validation schema; bundled default in effect",
			File:     schema.FileName,
		})
	}

	if strict {
		for _, policy := range g.pc.Schema.ExceptionPolicies {
			if !g.policyAlive(policy.Path) {
				out = append(out, Violation{
					Severity:    rules.SeverityHigh,
					Category:    CategoryStructure,
					Message:     fmt.Sprintf("exception policy %s has no active content", policy.Path),
					File:        policy.Path,
					Remediation: "record current exceptions or retire the policy document",
				})
			}
		}
	}
	return out
}

// policyAlive reports whether an exception policy document carries any
// body text beyond headings. Skeleton documents pass the structural
// check but fail strict mode.
func (g *Governor) policyAlive(rel string) bool {
	raw, err := g.pc.Read(rel)
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(raw), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return true
	}
	return false
}

// Validate exposes the validator run directly.
func (g *Governor) Validate(ctx context.Context) (*rules.Result, error) {
	return g.validator.Validate(ctx, g.pc)
}

// Sync exposes the synchronizer with dry-run/force semantics.
func (g *Governor) Sync(ctx context.Context, opts syncer.Options) (*syncer.Result, error) {
	return g.syncer.Sync(ctx, g.pc.Root, opts)
}

// RepositoryStatus returns the best-effort remote snapshot, nil when no
// remote information is available.
func (g *Governor) RepositoryStatus(ctx context.Context) *gitstatus.RepoStatus {
	return g.syncer.RepositoryStatus(ctx, g.pc.Root)
}

// Audit exposes the category auditor.
func (g *Governor) Audit(ctx context.Context, t auditor.Type) (*auditor.Result, error) {
	return g.auditor.Audit(ctx, g.pc, t)
}
