package governor

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"govsync/internal/rules"
)

// FixResult reports what AutoFix changed. Failures carry the wrapped
// AutoFixError for each violation that could not be repaired.
type FixResult struct {
	Fixed    []Violation
	Skipped  []Violation
	Failures []*AutoFixError
}

// AutoFix repairs every fixable violation it knows how to handle.
// Violations are independent: one failed fix never blocks the rest.
// Non-fixable violations land in Skipped.
func (g *Governor) AutoFix(ctx context.Context, violations []Violation) *FixResult {
	res := &FixResult{}
	for _, v := range violations {
		if err := ctx.Err(); err != nil {
			res.Skipped = append(res.Skipped, v)
			continue
		}
		if !v.AutoFixable {
			res.Skipped = append(res.Skipped, v)
			continue
		}
		if err := g.fix(v); err != nil {
			fixErr := &AutoFixError{Kind: v.kind, File: v.File, Err: err}
			g.log.Warn("auto-fix failed", "kind", v.kind, "file", v.File, "error", err)
			res.Failures = append(res.Failures, fixErr)
			continue
		}
		g.log.Info("auto-fix applied", "kind", v.kind, "file", v.File)
		res.Fixed = append(res.Fixed, v)
	}
	return res
}

func (g *Governor) fix(v Violation) error {
	switch v.kind {
	case kindVersionDrift:
		if v.conflict == nil {
			return fmt.Errorf("drift violation without conflict detail")
		}
		return g.syncer.ApplyConflict(g.pc.Root, *v.conflict)
	case rules.KindMissingArchiveDir:
		return os.MkdirAll(g.pc.Abs(g.pc.Schema.Safety.ArchiveDir), 0o755)
	case rules.KindObsoleteFile:
		return g.archive(v.File)
	case rules.KindMissingScaffold:
		_, err := g.Init(InitOptions{})
		return err
	default:
		return fmt.Errorf("no fixer for kind %q", v.kind)
	}
}

// archive moves an obsolete file into the archive directory, preserving
// the base name. An existing archived copy of the same name blocks the
// move rather than being clobbered.
func (g *Governor) archive(rel string) error {
	archiveDir := g.pc.Abs(g.pc.Schema.Safety.ArchiveDir)
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return err
	}
	dest := filepath.Join(archiveDir, path.Base(rel))
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("archive already holds %s", path.Base(rel))
	}
	return os.Rename(g.pc.Abs(rel), dest)
}
