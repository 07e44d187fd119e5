package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields that affect
	// check behavior, keep the CLI flags in internal/cli in sync.
	Targeting Targeting
	Check     Check
	Sync      Sync
	Output    Output
	Runtime   Runtime
}

type Targeting struct {
	// Projects is the list of project roots to operate on (positional
	// arguments). Empty means the current directory.
	Projects []string
}

type Check struct {
	// Strict additionally requires exception policy documents to carry
	// active content (see --strict).
	Strict bool

	// Fix applies auto-remediation to fixable violations after the check
	// (see --fix).
	Fix bool

	// Watch re-runs the check when governed files change (see --watch).
	Watch bool

	// MinSeverity filters console output below this severity (see
	// --min-severity). Allowed values: critical, high, medium, low.
	// Empty shows everything.
	MinSeverity string
}

type Sync struct {
	// DryRun performs conflict detection and reporting without writing
	// (see --dry-run).
	DryRun bool

	// Force applies every detected version update (see --force).
	Force bool
}

type Output struct {
	// ConsoleFormat controls the human-facing console sink format (see --console-format).
	// Allowed values: text, json, ndjson.
	ConsoleFormat string

	// Report writes a Markdown compliance report to this path (see --report).
	Report string

	// Out writes structured output to this path (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson. If empty, it is inferred from the --out file extension.
	OutFormat string

	// Emit writes an additional structured event stream to stdout (see --emit).
	// Allowed values: json, ndjson.
	Emit []string

	// NoConsole suppresses the console sink (see --no-console).
	// Use with --emit/--out/--report for machine-readable output.
	NoConsole bool
}

type Runtime struct {
	// Concurrency controls parallelism across project roots (see --concurrency).
	// Must be >= 1.
	Concurrency int

	// Record persists the run outcome in the project history database
	// (see --record).
	Record bool

	// Verbose enables debug-level diagnostics (see --verbose).
	Verbose bool
}

func New() *Config {
	return &Config{
		Output: Output{
			ConsoleFormat: "text",
		},
		Runtime: Runtime{
			Concurrency: 4,
		},
	}
}

func (c *Config) Validate() error {
	// Normalize comma-delimited list inputs.
	c.Output.Emit = splitCommaList(c.Output.Emit)

	if len(c.Targeting.Projects) == 0 {
		c.Targeting.Projects = []string{"."}
	}

	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		c.Output.ConsoleFormat = "text"
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json, ndjson)", c.Output.ConsoleFormat)
	}

	for i, emit := range c.Output.Emit {
		v := normalizeEnumValue(emit)
		if v != "json" && v != "ndjson" {
			return fmt.Errorf("unsupported --emit value: %s (must be one of: json, ndjson)", emit)
		}
		c.Output.Emit[i] = v
	}

	c.Check.MinSeverity = normalizeEnumValue(c.Check.MinSeverity)
	switch c.Check.MinSeverity {
	case "", "critical", "high", "medium", "low":
	default:
		return fmt.Errorf("unsupported --min-severity: %s (must be one of: critical, high, medium, low)", c.Check.MinSeverity)
	}

	if c.Sync.DryRun && c.Sync.Force {
		return errors.New("--dry-run and --force are mutually exclusive")
	}

	if c.Runtime.Concurrency <= 0 {
		return errors.New("--concurrency must be >= 1")
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson", ".jsonl":
				c.Output.OutFormat = "ndjson"
			default:
				if ext == "" {
					return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
				}
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else {
			if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" {
				return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
			}
		}
	}

	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// splitCommaList flattens repeated flags and comma-separated values into
// one trimmed list.
func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
