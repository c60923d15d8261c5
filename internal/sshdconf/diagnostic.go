// SPDX-License-Identifier: MPL-2.0

package sshdconf

const (
	// SeverityWarning indicates a recoverable parse warning.
	SeverityWarning Severity = "warning"
)

const (
	// CodeIncludeTargetMissing is reported when an included path does not
	// exist or is not a regular file. Missing includes are tolerated.
	CodeIncludeTargetMissing DiagnosticCode = "include_target_missing"
	// CodeIncludeGlobFailed is reported when an Include pattern is malformed.
	CodeIncludeGlobFailed DiagnosticCode = "include_glob_failed"
	// CodeIncludeNoMatch is reported when an Include pattern matches no files.
	CodeIncludeNoMatch DiagnosticCode = "include_no_match"
	// CodeIncludeCycle is reported when an included file is already being
	// parsed on the current call chain (A includes B includes A).
	CodeIncludeCycle DiagnosticCode = "include_cycle"
	// CodeIncludeDepthExceeded is reported when the inclusion chain is deeper
	// than the recursion ceiling.
	CodeIncludeDepthExceeded DiagnosticCode = "include_depth_exceeded"
	// CodeFileUnreadable is reported when a config file exists but cannot
	// be read.
	CodeFileUnreadable DiagnosticCode = "file_unreadable"
	// CodeTokenizeFailed is reported when a line has unbalanced quoting and
	// is skipped.
	CodeTokenizeFailed DiagnosticCode = "tokenize_failed"
)

type (
	// Severity represents parse diagnostic severity. Every condition the
	// parser tolerates is a warning; fatal conditions surface as errors from
	// Parse instead.
	Severity string

	// DiagnosticCode is a machine-readable identifier for a tolerated parse
	// condition.
	DiagnosticCode string

	// Diagnostic represents a structured, non-fatal parse condition that is
	// returned to callers (rather than written to stderr) for consistent
	// rendering policy. The parser itself is silent: none of these conditions
	// change the parse result, they only explain why a branch contributed
	// nothing.
	Diagnostic struct {
		// Severity is the diagnostic level.
		Severity Severity
		// Code identifies the tolerated condition.
		Code DiagnosticCode
		// Message is the human-readable description.
		Message string
		// Path is the file path associated with this diagnostic.
		Path string
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error
	}
)
