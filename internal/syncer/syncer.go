// Package syncer detects and reconciles drift between the version
// manifest and version strings scattered across project text. Detection
// is read-only and fully precedes any write; applying updates is gated by
// dry-run and force semantics.
package syncer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"govsync/internal/gitstatus"
	"govsync/internal/logging"
	"govsync/internal/manifest"
	"govsync/internal/scanner"
)

type Resolution string

const (
	ResolutionUpdate Resolution = "update"
	ResolutionIgnore Resolution = "ignore"
)

// Conflict is a detected mismatch between a version string in project
// text and the manifest's authoritative value for that reference.
type Conflict struct {
	File           string     `json:"file"`
	Line           int        `json:"line,omitempty"`
	CurrentVersion string     `json:"currentVersion"`
	TargetVersion  string     `json:"targetVersion"`
	Resolution     Resolution `json:"resolution"`
}

type Result struct {
	Updated   int        `json:"updated"`
	Skipped   int        `json:"skipped"`
	Conflicts []Conflict `json:"conflicts,omitempty"`
}

type Options struct {
	// DryRun performs every step except the final write.
	DryRun bool
	// Force applies every detected conflict. Without it, any conflicts
	// suppress all writes and the full list is returned for review.
	Force bool
}

type Syncer struct {
	man    *manifest.Manifest
	files  *scanner.Scanner
	remote gitstatus.Provider
	log    *slog.Logger
}

type Option func(*Syncer)

// WithRepositoryStatus installs the best-effort remote status capability.
func WithRepositoryStatus(p gitstatus.Provider) Option {
	return func(s *Syncer) { s.remote = p }
}

func New(man *manifest.Manifest, opts ...Option) *Syncer {
	s := &Syncer{
		man:   man,
		files: scanner.New(),
		log:   logging.ForComponent("syncer"),
	}
	for _, apply := range opts {
		apply(s)
	}
	return s
}

// ValidateSync scans candidate files and returns every version conflict,
// without touching any file. Unreadable files are skipped.
func (s *Syncer) ValidateSync(ctx context.Context, root string) ([]Conflict, error) {
	var conflicts []Conflict

	for _, rel := range s.files.List(root) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := os.ReadFile(abs(root, rel))
		if err != nil {
			s.log.Debug("skipping unreadable file", "file", rel, "error", err)
			continue
		}
		conflicts = append(conflicts, s.scanContent(rel, string(raw))...)
	}
	return conflicts, nil
}

func (s *Syncer) scanContent(rel, content string) []Conflict {
	var conflicts []Conflict
	for i, line := range strings.Split(content, "\n") {
		for _, pat := range referencePatterns {
			for _, match := range pat.re.FindAllStringSubmatch(line, -1) {
				token := match[pat.group]
				// Resolve against the matched text only, so one match's
				// keyword never leaks onto another token on the same line.
				target, ok := s.expectedVersion(match[0])
				if !ok {
					// Not a governed reference; skip rather than guess.
					continue
				}
				if token == target {
					continue
				}
				conflicts = append(conflicts, Conflict{
					File:           rel,
					Line:           i + 1,
					CurrentVersion: token,
					TargetVersion:  target,
					Resolution:     ResolutionUpdate,
				})
			}
		}
	}
	return conflicts
}

// expectedVersion resolves the manifest version a matched reference
// should carry, from the matched text alone: "Protocol" and "Governance"
// mentions win, then a unique case-insensitive component-name match.
// Ambiguous matches and matches with no resolvable context are skipped.
func (s *Syncer) expectedVersion(text string) (string, bool) {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "protocol") {
		return s.man.Protocol.Current, true
	}
	if strings.Contains(lower, "governance") {
		return s.man.Governance.Current, true
	}

	var matched string
	count := 0
	for _, name := range s.man.ComponentNames() {
		if strings.Contains(lower, strings.ToLower(name)) {
			matched = name
			count++
		}
	}
	if count != 1 {
		return "", false
	}
	return s.man.Components[matched].Current, true
}

// Sync runs detection and, depending on the options, applies the
// proposed updates. Detection always fully completes before any write so
// it never observes its own partial output.
func (s *Syncer) Sync(ctx context.Context, root string, opts Options) (*Result, error) {
	conflicts, err := s.ValidateSync(ctx, root)
	if err != nil {
		return nil, err
	}
	if len(conflicts) == 0 {
		return &Result{}, nil
	}

	if opts.DryRun {
		s.log.Info("dry run: no files written", "conflicts", len(conflicts))
		return &Result{Conflicts: conflicts}, nil
	}
	if !opts.Force {
		s.log.Info("conflicts require review; pass force to apply", "conflicts", len(conflicts))
		return &Result{Conflicts: conflicts}, nil
	}

	result := &Result{}
	grouped := groupByFile(conflicts)
	files := make([]string, 0, len(grouped))
	for file := range grouped {
		files = append(files, file)
	}
	sort.Strings(files)

	for _, file := range files {
		group := grouped[file]
		n, err := s.applyFile(root, file, group)
		if err != nil {
			// Per-file write failures are recorded, never fatal.
			s.log.Warn("failed to apply version updates", "file", file, "error", err)
			for _, c := range group {
				c.Resolution = ResolutionIgnore
				result.Conflicts = append(result.Conflicts, c)
			}
			result.Skipped += len(group)
			continue
		}
		result.Updated += n
	}
	return result, nil
}

// ApplyConflict applies a single conflict's substitution, used by
// per-violation auto-fix.
func (s *Syncer) ApplyConflict(root string, c Conflict) error {
	_, err := s.applyFile(root, c.File, []Conflict{c})
	return err
}

// applyFile performs a literal global substitution of each conflict's
// current token with its target token, scoped to one file.
func (s *Syncer) applyFile(root, file string, group []Conflict) (int, error) {
	path := abs(root, file)
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content := string(raw)
	applied := 0
	for _, c := range group {
		if c.Resolution != ResolutionUpdate {
			continue
		}
		replaced := strings.ReplaceAll(content, c.CurrentVersion, c.TargetVersion)
		if replaced != content {
			content = replaced
		}
		applied++
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return 0, err
	}
	return applied, nil
}

// RepositoryStatus returns the best-effort ahead/behind snapshot, or nil
// when no remote information is available. Failures never surface.
func (s *Syncer) RepositoryStatus(ctx context.Context, root string) *gitstatus.RepoStatus {
	if s.remote == nil {
		return nil
	}
	status, ok := s.remote.Status(ctx, root)
	if !ok {
		return nil
	}
	return status
}

func groupByFile(conflicts []Conflict) map[string][]Conflict {
	out := make(map[string][]Conflict)
	for _, c := range conflicts {
		out[c.File] = append(out[c.File], c)
	}
	return out
}

func abs(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
