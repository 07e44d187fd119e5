package governor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"govsync/internal/manifest"
)

// InitOptions controls scaffolding. Force re-renders template documents
// over existing files; the durable manifest is never overwritten.
type InitOptions struct {
	Force bool
}

// InitResult lists what Init touched, relative to the project root.
type InitResult struct {
	Created []string
	Skipped []string
}

// Init lays down the governance scaffold: the governance directory with
// a default manifest and the two operating documents, plus the working
// and archive directories. Re-running without force is a no-op on
// anything that already exists.
func (g *Governor) Init(opts InitOptions) (*InitResult, error) {
	res := &InitResult{}
	data := templateData{
		Project: titler.String(g.pc.Name()),
		Date:    g.now().Format("2006-01-02"),
		Version: g.pc.Manifest.Protocol.Current,
	}

	dirs := []string{"governance", "tmp", g.pc.Schema.Safety.ArchiveDir}
	for _, dir := range dirs {
		abs := g.pc.Abs(dir)
		if _, err := os.Stat(abs); err == nil {
			res.Skipped = append(res.Skipped, dir+"/")
			continue
		}
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return res, &FileAccessError{Path: dir, Op: "create", Err: err}
		}
		res.Created = append(res.Created, dir+"/")
	}

	if manifest.Exists(g.pc.Root) {
		res.Skipped = append(res.Skipped, manifest.FileName)
	} else {
		if err := manifest.Default().Save(g.pc.Root); err != nil {
			return res, fmt.Errorf("write manifest: %w", err)
		}
		res.Created = append(res.Created, manifest.FileName)
	}

	docs := []struct {
		rel  string
		tmpl *template.Template
	}{
		{"governance/OPERATING_INSTRUCTIONS.md", operatingInstructionsTmpl},
		{"governance/DOCUMENTATION_INDEX.md", documentationIndexTmpl},
	}
	for _, doc := range docs {
		abs := g.pc.Abs(doc.rel)
		if _, err := os.Stat(abs); err == nil && !opts.Force {
			res.Skipped = append(res.Skipped, doc.rel)
			continue
		}
		var buf bytes.Buffer
		if err := doc.tmpl.Execute(&buf, data); err != nil {
			return res, fmt.Errorf("render %s: %w", doc.rel, err)
		}
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return res, &FileAccessError{Path: filepath.Dir(doc.rel), Op: "create", Err: err}
		}
		if err := os.WriteFile(abs, buf.Bytes(), 0o644); err != nil {
			return res, &FileAccessError{Path: doc.rel, Op: "write", Err: err}
		}
		res.Created = append(res.Created, doc.rel)
	}

	g.log.Info("scaffold finished",
		"project", g.pc.Name(),
		"created", len(res.Created),
		"skipped", len(res.Skipped),
	)
	return res, nil
}

// now is indirected for deterministic template dates in tests.
func (g *Governor) now() time.Time {
	if g.clock != nil {
		return g.clock()
	}
	return time.Now()
}
