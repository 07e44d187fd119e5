package governor

import "fmt"

// ConfigurationError marks a missing or malformed manifest/schema. It is
// always fatal: governance cannot proceed without a truth source, so it
// aborts before any score is produced.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error (%s): %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// FileAccessError marks a single file that could not be read or written.
// It is always recovered locally: the file is recorded as an issue or a
// skipped action, and the batch continues.
type FileAccessError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// AutoFixError records a single failed remediation attempt. It is logged
// and skipped; remaining fixes are still attempted.
type AutoFixError struct {
	Kind string
	File string
	Err  error
}

func (e *AutoFixError) Error() string {
	return fmt.Sprintf("auto-fix %s failed for %s: %v", e.Kind, e.File, e.Err)
}

func (e *AutoFixError) Unwrap() error { return e.Err }
