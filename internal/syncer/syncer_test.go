package syncer

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"govsync/internal/manifest"
)

func testManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Protocol:   manifest.Version{Current: "2.2.0"},
		Governance: manifest.Version{Current: "1.4.0"},
		Components: map[string]manifest.Version{
			"scanner": {Current: "0.9.1"},
			"auditor": {Current: "1.2.0"},
		},
	}
}

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

func read(t *testing.T, root, rel string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatal(err)
	}
	return string(raw)
}

func TestValidateSyncDetectsProtocolDrift(t *testing.T) {
	root := t.TempDir()
	write(t, root, "CHANGELOG.md", "Protocol v2.1.0 introduced X\n")

	conflicts, err := New(testManifest()).ValidateSync(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(conflicts) != 1 {
		t.Fatalf("conflicts = %+v, want exactly 1", conflicts)
	}
	c := conflicts[0]
	if c.CurrentVersion != "2.1.0" || c.TargetVersion != "2.2.0" {
		t.Errorf("conflict = %+v, want 2.1.0 -> 2.2.0", c)
	}
	if c.Resolution != ResolutionUpdate {
		t.Errorf("resolution = %s, want update", c.Resolution)
	}
}

func TestForceAppliesAndSecondSyncIsClean(t *testing.T) {
	root := t.TempDir()
	write(t, root, "CHANGELOG.md", "Protocol v2.1.0 introduced X\n")
	s := New(testManifest())

	result, err := s.Sync(context.Background(), root, Options{Force: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.Updated != 1 || len(result.Conflicts) != 0 {
		t.Fatalf("force sync result = %+v, want updated 1 and no conflicts", result)
	}
	if got := read(t, root, "CHANGELOG.md"); got != "Protocol v2.2.0 introduced X\n" {
		t.Errorf("file after sync = %q", got)
	}

	again, err := s.ValidateSync(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 0 {
		t.Errorf("second validateSync reports %+v, want none", again)
	}
}

func TestForceGatingWithoutForce(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.md", "Governance v1.0.0 notes\n")
	write(t, root, "b.md", "Protocol v2.0.0 notes\n")
	s := New(testManifest())

	before := read(t, root, "a.md") + read(t, root, "b.md")
	result, err := s.Sync(context.Background(), root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Updated != 0 {
		t.Errorf("updated = %d, want 0", result.Updated)
	}
	if len(result.Conflicts) != 2 {
		t.Errorf("conflicts = %+v, want 2", result.Conflicts)
	}
	if after := read(t, root, "a.md") + read(t, root, "b.md"); after != before {
		t.Error("files mutated without force")
	}
}

func TestDryRunPurity(t *testing.T) {
	root := t.TempDir()
	write(t, root, "doc.md", "Protocol v1.9.0 and Governance v1.0.0\n")
	write(t, root, "other.md", "scanner v0.1.0 release notes\n")
	s := New(testManifest())

	hash := func() [32]byte {
		var all []byte
		for _, rel := range []string{"doc.md", "other.md"} {
			all = append(all, []byte(read(t, root, rel))...)
		}
		return sha256.Sum256(all)
	}

	before := hash()
	result, err := s.Sync(context.Background(), root, Options{DryRun: true, Force: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Conflicts) == 0 {
		t.Fatal("dry run should still report conflicts")
	}
	if result.Updated != 0 {
		t.Errorf("dry run updated = %d, want 0", result.Updated)
	}
	if hash() != before {
		t.Error("dry run mutated file contents")
	}
}

func TestComponentResolutionByName(t *testing.T) {
	root := t.TempDir()
	write(t, root, "notes.md", "The scanner v0.9.0 build\n")

	conflicts, err := New(testManifest()).ValidateSync(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(conflicts) != 1 || conflicts[0].TargetVersion != "0.9.1" {
		t.Fatalf("conflicts = %+v, want one targeting 0.9.1", conflicts)
	}
}

func TestUnknownReferenceSkipped(t *testing.T) {
	root := t.TempDir()
	write(t, root, "notes.md", "Using widget v3.0.0 today\n")

	conflicts, err := New(testManifest()).ValidateSync(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(conflicts) != 0 {
		t.Errorf("ungoverned reference produced conflicts: %+v", conflicts)
	}
}

func TestAmbiguousComponentMatchSkipped(t *testing.T) {
	root := t.TempDir()
	// Two component names inside one matched reference: skip rather
	// than guess.
	write(t, root, "app.yaml", "scanner.auditor.version: 0.1.0\n")

	conflicts, err := New(testManifest()).ValidateSync(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(conflicts) != 0 {
		t.Errorf("ambiguous line produced conflicts: %+v", conflicts)
	}
}

func TestKeyStyleVersionField(t *testing.T) {
	root := t.TempDir()
	write(t, root, "app.yaml", "protocol_version: 2.0.0\n")

	conflicts, err := New(testManifest()).ValidateSync(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(conflicts) != 1 {
		t.Fatalf("conflicts = %+v, want 1", conflicts)
	}
	if conflicts[0].TargetVersion != "2.2.0" {
		t.Errorf("target = %s, want 2.2.0", conflicts[0].TargetVersion)
	}
}

func TestMatchingTokenProducesNoConflict(t *testing.T) {
	root := t.TempDir()
	write(t, root, "doc.md", "Protocol v2.2.0 is current\n")

	conflicts, err := New(testManifest()).ValidateSync(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(conflicts) != 0 {
		t.Errorf("up-to-date reference produced conflicts: %+v", conflicts)
	}
}

func TestSyncIdempotence(t *testing.T) {
	root := t.TempDir()
	write(t, root, "doc.md", "Protocol v2.0.0, Governance v1.0.0, scanner v0.5.0\n")
	s := New(testManifest())

	if _, err := s.Sync(context.Background(), root, Options{Force: true}); err != nil {
		t.Fatal(err)
	}
	second, err := s.Sync(context.Background(), root, Options{Force: true})
	if err != nil {
		t.Fatal(err)
	}
	if second.Updated != 0 || len(second.Conflicts) != 0 {
		t.Errorf("second forced sync = %+v, want no work", second)
	}
}

func TestSubstitutionIsFileScoped(t *testing.T) {
	root := t.TempDir()
	write(t, root, "drift.md", "Protocol v2.1.0\n")
	write(t, root, "clean.md", "An ungoverned note mentioning 2.1.0 plainly\n")
	s := New(testManifest())

	if _, err := s.Sync(context.Background(), root, Options{Force: true}); err != nil {
		t.Fatal(err)
	}
	if got := read(t, root, "clean.md"); !strings.Contains(got, "2.1.0") {
		t.Error("substitution leaked into a file without conflicts")
	}
}

func TestBareTokenBesideNamedMatchNotDoubleCounted(t *testing.T) {
	root := t.TempDir()
	// The bare pattern also matches the token, but its match text has
	// no keyword context, so only the named match produces a conflict.
	write(t, root, "doc.md", "Protocol v2.1.0\n")

	conflicts, err := New(testManifest()).ValidateSync(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(conflicts) != 1 {
		t.Errorf("conflicts = %+v, want exactly one", conflicts)
	}
}

func TestBareTokenWithoutContextSkipped(t *testing.T) {
	root := t.TempDir()
	write(t, root, "doc.md", "v9.9.9\n")

	conflicts, err := New(testManifest()).ValidateSync(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(conflicts) != 0 {
		t.Errorf("contextless token produced conflicts: %+v", conflicts)
	}
}

func TestMixedReferencesOnOneLineResolveIndependently(t *testing.T) {
	root := t.TempDir()
	// Both tokens already match the manifest; neither keyword may leak
	// onto the other token.
	write(t, root, "doc.md", "Protocol v2.2.0 and Governance v1.4.0\n")

	conflicts, err := New(testManifest()).ValidateSync(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(conflicts) != 0 {
		t.Errorf("fully current line produced conflicts: %+v", conflicts)
	}
}

func TestForceUpdatesEachReferenceToItsOwnTarget(t *testing.T) {
	root := t.TempDir()
	write(t, root, "doc.md", "Protocol v2.1.0 and Governance v1.3.0\n")
	s := New(testManifest())

	result, err := s.Sync(context.Background(), root, Options{Force: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.Updated != 2 {
		t.Errorf("updated = %d, want 2", result.Updated)
	}
	if got := read(t, root, "doc.md"); got != "Protocol v2.2.0 and Governance v1.4.0\n" {
		t.Errorf("file after sync = %q", got)
	}
}
