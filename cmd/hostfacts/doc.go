// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for hostfacts.
//
// This package implements the Cobra command hierarchy: the root command and
// the fact-gathering subcommands (sshd, dev, lvm) plus configuration
// management. Command handlers delegate to the internal collector packages
// and only deal with flag plumbing and rendering.
package cmd
