// Package project carries the read-only inputs a governance run operates
// on: the resolved project root, the version manifest, the validation
// schema, and the scanned candidate file list. Checks consume this context
// and never reach back to loaders.
package project

import (
	"os"
	"path/filepath"
	"strings"

	"govsync/internal/manifest"
	"govsync/internal/schema"
)

type Context struct {
	// Root is the absolute project root path.
	Root     string
	Manifest *manifest.Manifest
	Schema   *schema.Schema
	// Files is the scanner output: slash-separated paths relative to Root,
	// in stable scan order.
	Files []string
}

// Abs resolves a root-relative slash path to an absolute path.
func (c *Context) Abs(rel string) string {
	return filepath.Join(c.Root, filepath.FromSlash(rel))
}

// HasFile reports whether a root-relative path exists and is a regular
// file.
func (c *Context) HasFile(rel string) bool {
	info, err := os.Stat(c.Abs(rel))
	return err == nil && info.Mode().IsRegular()
}

// HasDir reports whether a root-relative path exists and is a directory.
func (c *Context) HasDir(rel string) bool {
	info, err := os.Stat(c.Abs(rel))
	return err == nil && info.IsDir()
}

// Read returns the contents of a root-relative file.
func (c *Context) Read(rel string) ([]byte, error) {
	return os.ReadFile(c.Abs(rel))
}

// Name derives the project name from the root directory.
func (c *Context) Name() string {
	return filepath.Base(strings.TrimRight(c.Root, string(filepath.Separator)))
}
