package governor

import (
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// templateData is what every scaffold template renders against.
type templateData struct {
	Project string
	Date    string
	Version string
}

var titler = cases.Title(language.English)

var operatingInstructionsTmpl = template.Must(template.New("operating-instructions").Parse(`# {{.Project}} Operating Instructions

Protocol v{{.Version}}, established {{.Date}}.

## Purpose

Describe what {{.Project}} governs and who is responsible for keeping
this document current.

## Scope

List the repositories, services, and artifacts covered by this
governance model.

## Version Policy

Version references in tracked documents must match the durable manifest
at governance/versions.json. Run ` + "`govsync check`" + ` before release and
` + "`govsync sync --force`" + ` to reconcile drift.

## Exceptions

Record approved deviations in the exception policy documents. Every
exception names an owner and an expiry.
`))

var documentationIndexTmpl = template.Must(template.New("documentation-index").Parse(`# {{.Project}} Documentation Index

Generated {{.Date}}.

| Document | Purpose |
| --- | --- |
| GOVERNANCE.md | Governance model and decision process |
| governance/OPERATING_INSTRUCTIONS.md | Day-to-day operating procedures |
| governance/versions.json | Durable version manifest |
| governance/validation-schema.yaml | Project-local validation overrides |
`))
