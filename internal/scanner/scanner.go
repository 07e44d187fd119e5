// Package scanner enumerates the documentation and configuration files a
// governance run operates on. It walks the project root, keeps files with
// doc/config extensions, skips dependency, build, VCS, and temp
// directories, and never fails on an unreadable entry: callers must
// tolerate an empty or partial result.
package scanner

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var defaultExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
	".rst":      true,
	".json":     true,
	".yaml":     true,
	".yml":      true,
	".toml":     true,
	".ini":      true,
	".cfg":      true,
	".conf":     true,
}

var excludedDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	".git":         true,
	".hg":          true,
	".svn":         true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"tmp":          true,
	".cache":       true,
	".govsync":     true,
	"__pycache__":  true,
}

// ExcludedDir reports whether a directory name is skipped during scans.
// Exposed so sibling walkers (auditor security sweep, watcher) apply the
// same exclusions.
func ExcludedDir(name string) bool {
	return excludedDirs[name]
}

type Scanner struct {
	include []string
	exclude []string
}

type Option func(*Scanner)

// WithInclude adds doublestar globs; when set, a candidate must match at
// least one in addition to having a doc/config extension.
func WithInclude(globs ...string) Option {
	return func(s *Scanner) { s.include = append(s.include, globs...) }
}

// WithExclude adds doublestar globs removing candidates from the result.
func WithExclude(globs ...string) Option {
	return func(s *Scanner) { s.exclude = append(s.exclude, globs...) }
}

func New(opts ...Option) *Scanner {
	s := &Scanner{}
	for _, apply := range opts {
		apply(s)
	}
	return s
}

// List returns the deduplicated, ordered candidate list as slash-separated
// paths relative to root. Walk order is lexical, so the result is stable
// across runs. Unreadable entries are skipped.
func (s *Scanner) List(root string) []string {
	var out []string
	seen := make(map[string]bool)

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && excludedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if !s.candidate(rel, d.Name()) || seen[rel] {
			return nil
		}
		seen[rel] = true
		out = append(out, rel)
		return nil
	})

	return out
}

func (s *Scanner) candidate(rel, name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if !defaultExtensions[ext] && name != ".env.example" {
		return false
	}
	for _, glob := range s.exclude {
		if ok, _ := doublestar.Match(glob, rel); ok {
			return false
		}
	}
	if len(s.include) == 0 {
		return true
	}
	for _, glob := range s.include {
		if ok, _ := doublestar.Match(glob, rel); ok {
			return true
		}
	}
	return false
}
