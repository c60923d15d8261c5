// SPDX-License-Identifier: MPL-2.0

// Package sshdconf reconstructs the effective OpenSSH server configuration
// from a root sshd_config file and everything it pulls in via Include
// directives.
//
// This package intentionally combines two related concerns:
//   - Scope registry: first-directive-wins option storage per scope
//     (global or a Match condition), with location/appearance auditing
//   - Recursive parser: deterministic traversal of the Include graph with
//     cycle protection and per-file Match scope tracking
//
// These concerns are tightly coupled because the parser streams directives
// into the registry as it walks the tree; splitting them into separate
// packages would create unnecessary indirection.
//
// File organization:
//   - registry.go: registry, scope and option records, Snapshot output
//   - parser.go: Parser, recursive descent, Include/Match dispatch
//   - tokenize.go: POSIX word splitting of directive lines
//   - fs.go: ConfigFS collaborator interface and the OS-backed default
//   - diagnostic.go: structured non-fatal diagnostics
package sshdconf
