package config

import (
	"strings"
	"testing"
)

func TestValidateDefaults(t *testing.T) {
	c := New()
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if len(c.Targeting.Projects) != 1 || c.Targeting.Projects[0] != "." {
		t.Errorf("projects default = %v, want [.]", c.Targeting.Projects)
	}
	if c.Output.ConsoleFormat != "text" {
		t.Errorf("console format default = %s, want text", c.Output.ConsoleFormat)
	}
}

func TestValidateNormalizesEnums(t *testing.T) {
	c := New()
	c.Output.ConsoleFormat = "  NDJSON "
	c.Check.MinSeverity = "High"
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.Output.ConsoleFormat != "ndjson" {
		t.Errorf("console format = %s, want ndjson", c.Output.ConsoleFormat)
	}
	if c.Check.MinSeverity != "high" {
		t.Errorf("min severity = %s, want high", c.Check.MinSeverity)
	}
}

func TestValidateRejectsBadEnums(t *testing.T) {
	cases := []struct {
		name  string
		set   func(*Config)
		wants string
	}{
		{"console format", func(c *Config) { c.Output.ConsoleFormat = "yaml" }, "--console-format"},
		{"emit", func(c *Config) { c.Output.Emit = []string{"xml"} }, "--emit"},
		{"min severity", func(c *Config) { c.Check.MinSeverity = "urgent" }, "--min-severity"},
		{"concurrency", func(c *Config) { c.Runtime.Concurrency = 0 }, "--concurrency"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			tc.set(c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.wants) {
				t.Fatalf("error = %v, want mention of %s", err, tc.wants)
			}
		})
	}
}

func TestValidateDryRunForceConflict(t *testing.T) {
	c := New()
	c.Sync.DryRun = true
	c.Sync.Force = true
	if err := c.Validate(); err == nil {
		t.Fatal("expected mutual-exclusion error")
	}
}

func TestValidateSplitsEmitList(t *testing.T) {
	c := New()
	c.Output.Emit = []string{"json, ndjson", " "}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(c.Output.Emit) != 2 || c.Output.Emit[0] != "json" || c.Output.Emit[1] != "ndjson" {
		t.Errorf("emit = %v, want [json ndjson]", c.Output.Emit)
	}
}

func TestValidateInfersOutFormat(t *testing.T) {
	c := New()
	c.Output.Out = "results.ndjson"
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.Output.OutFormat != "ndjson" {
		t.Errorf("out format = %s, want ndjson", c.Output.OutFormat)
	}

	c = New()
	c.Output.Out = "results.csv"
	if err := c.Validate(); err == nil {
		t.Fatal("expected inference error for .csv")
	}

	c = New()
	c.Output.Out = "results"
	if err := c.Validate(); err == nil {
		t.Fatal("expected inference error for missing extension")
	}
}
