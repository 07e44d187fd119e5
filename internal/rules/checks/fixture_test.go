package checks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"govsync/internal/manifest"
	"govsync/internal/project"
	"govsync/internal/scanner"
	"govsync/internal/schema"
)

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func mkdir(t *testing.T, root, rel string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(rel)), 0o755); err != nil {
		t.Fatal(err)
	}
}

// compliantProject builds a project tree that scores 100 in every
// category against the bundled default schema.
func compliantProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	readme := "# Demo Project\n\n## Overview\n\n## Usage\n\n" + strings.Repeat("governed word ", 150)
	write(t, root, "README.md", readme)
	write(t, root, "GOVERNANCE.md",
		"# Governance\n\n## Versioning\n\n## Compliance\n\nSee OPERATING_INSTRUCTIONS.md for daily operation.\n")
	write(t, root, "governance/OPERATING_INSTRUCTIONS.md",
		"# Operating Instructions\n\nGoverned by GOVERNANCE.md.\n")
	write(t, root, "governance/versions.json",
		`{"versions": {"protocol": {"current": "1.0.0"}, "governance": {"current": "1.0.0"}}}`)
	write(t, root, "governance/policies/EXCEPTIONS.md",
		"# Exceptions\n\n## Scope\n\n## Approval\n\n## Expiry\n")
	write(t, root, "ops/housekeeping.sh", "#!/bin/sh\n")
	mkdir(t, root, "archive")

	return root
}

func loadContext(t *testing.T, root string) *project.Context {
	t.Helper()
	man, err := manifest.Load(root)
	if err != nil {
		t.Fatalf("manifest load: %v", err)
	}
	sch, err := schema.Load(root)
	if err != nil {
		t.Fatalf("schema load: %v", err)
	}
	return &project.Context{
		Root:     root,
		Manifest: man,
		Schema:   sch,
		Files:    scanner.New().List(root),
	}
}
