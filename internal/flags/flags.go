package flags

// Package flags defines canonical CLI flag names shared across the CLI and
// engine. Keeping these as constants helps avoid drift between Cobra flag
// wiring and other code paths that need to reference flags.
// IMPORTANT: These are flag *names* without leading dashes.
const (
	// Check
	FlagStrict      = "strict"
	FlagFix         = "fix"
	FlagWatch       = "watch"
	FlagMinSeverity = "min-severity"

	// Sync
	FlagDryRun = "dry-run"
	FlagForce  = "force"

	// Audit
	FlagType   = "type"
	FlagOutput = "output"

	// Output
	FlagConsoleFormat = "console-format"
	FlagReport        = "report"
	FlagOut           = "out"
	FlagOutFormat     = "out-format"
	FlagEmit          = "emit"
	FlagNoConsole     = "no-console"

	// Runtime
	FlagConcurrency = "concurrency"
	FlagRecord      = "record"
	FlagVerbose     = "verbose"

	// History
	FlagLimit = "limit"
)
