// Package manifest loads and validates the version manifest: the canonical
// record of the protocol version, governance version, and per-component
// versions for a project. The manifest is loaded once per invocation and
// treated read-only; only explicit apply/init paths write it back.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// FileName is the project-local manifest path relative to the project root.
// If the file is absent the bundled default manifest is used.
const FileName = "governance/versions.json"

// semverPattern matches the semantic-version shape every manifest field
// must have. The engine never orders versions; it only validates shape and
// substitutes literal tokens.
var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?$`)

// IsSemver reports whether s has semantic-version shape.
func IsSemver(s string) bool {
	return semverPattern.MatchString(s)
}

type Version struct {
	Current string `json:"current"`
}

type Manifest struct {
	Protocol   Version            `json:"protocol"`
	Governance Version            `json:"governance"`
	Components map[string]Version `json:"components,omitempty"`
}

// file is the on-disk envelope: {"versions": {...}}.
type file struct {
	Versions Manifest `json:"versions"`
}

// Default returns the bundled manifest used when no project-local
// manifest exists.
func Default() *Manifest {
	return &Manifest{
		Protocol:   Version{Current: "1.0.0"},
		Governance: Version{Current: "1.0.0"},
		Components: map[string]Version{},
	}
}

// Load reads the project-local manifest if present, else returns the
// bundled default. A present-but-unparsable or shape-invalid manifest is
// a fatal error: governance cannot proceed without a truth source.
func Load(root string) (*Manifest, error) {
	path := filepath.Join(root, filepath.FromSlash(FileName))
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read version manifest %s: %w", path, err)
	}
	m, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse version manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes and shape-validates a manifest document.
func Parse(raw []byte) (*Manifest, error) {
	var f file
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	m := f.Versions
	if m.Components == nil {
		m.Components = map[string]Version{}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that every version field has semantic-version shape.
func (m *Manifest) Validate() error {
	if !IsSemver(m.Protocol.Current) {
		return fmt.Errorf("protocol version %q is not a semantic version", m.Protocol.Current)
	}
	if !IsSemver(m.Governance.Current) {
		return fmt.Errorf("governance version %q is not a semantic version", m.Governance.Current)
	}
	for name, v := range m.Components {
		if !IsSemver(v.Current) {
			return fmt.Errorf("component %q version %q is not a semantic version", name, v.Current)
		}
	}
	return nil
}

// ComponentNames returns component names in sorted order for deterministic
// iteration.
func (m *Manifest) ComponentNames() []string {
	names := make([]string, 0, len(m.Components))
	for name := range m.Components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exists reports whether a project-local manifest file is present.
func Exists(root string) bool {
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(FileName)))
	return err == nil
}

// Save writes the manifest to its project-local path. Only explicit
// apply/init operations call this.
func (m *Manifest) Save(root string) error {
	if err := m.Validate(); err != nil {
		return err
	}
	path := filepath.Join(root, filepath.FromSlash(FileName))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}
	raw, err := json.MarshalIndent(file{Versions: *m}, "", "  ")
	if err != nil {
		return err
	}
	raw = append(raw, '\n')
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write version manifest: %w", err)
	}
	return nil
}
