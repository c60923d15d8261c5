// SPDX-License-Identifier: MPL-2.0

package sshdconf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"sort"
	"strings"
)

// maxIncludeDepth bounds pathological inclusion chains. Branches deeper than
// this are truncated silently rather than failing the parse.
const maxIncludeDepth = 20

// ErrRootConfigNotFound is returned when the root file handed to Parse does
// not exist or is not a regular file. This is the one caller-fatal condition:
// a missing *included* file only terminates its own branch.
var ErrRootConfigNotFound = errors.New("root config file not found")

type (
	// Parser walks a config tree rooted at one sshd_config file, following
	// Include directives recursively, and reconstructs the effective
	// configuration under first-directive-wins semantics.
	//
	// The traversal is single-threaded and deterministic for a fixed
	// filesystem snapshot: Include glob matches are processed in
	// lexicographically ascending order, mirroring how sshd itself loads
	// includes. A Parser is stateless between calls; each Parse owns a fresh
	// registry, so independent parses may run concurrently.
	Parser struct {
		fs ConfigFS
		// baseDir resolves relative Include patterns. Inclusion is
		// base-relative, not include-relative: a relative pattern inside a
		// nested file still resolves against the root file's directory.
		// Empty means "derive from the root file's directory".
		baseDir string
	}

	// Result bundles the structured configuration with the non-fatal
	// diagnostics collected during the walk. The default rendering policy is
	// the caller's: the parse output itself never reflects a tolerated
	// failure.
	Result struct {
		Config      Config
		Diagnostics []Diagnostic
	}

	// ParserOption configures a Parser.
	ParserOption func(*Parser)

	// session carries the per-Parse mutable state through the recursion.
	session struct {
		fs      ConfigFS
		baseDir string
		reg     *registry
		diags   []Diagnostic
	}
)

// WithFS overrides the filesystem collaborator (default OSConfigFS).
func WithFS(fs ConfigFS) ParserOption {
	return func(p *Parser) { p.fs = fs }
}

// WithBaseDir overrides the directory against which relative Include
// patterns resolve.
func WithBaseDir(dir string) ParserOption {
	return func(p *Parser) { p.baseDir = dir }
}

// NewParser builds a Parser with the given options.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{fs: OSConfigFS{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse walks the config tree rooted at rootPath and returns the effective
// configuration snapshot. The root file must exist; everything the walk
// tolerates (missing includes, unreadable files, unbalanced quoting,
// inclusion cycles, depth truncation) is reported through
// Result.Diagnostics without affecting the output.
//
// File reads are sequential and blocking. The context is checked before each
// file open, so callers needing bounded latency on a slow filesystem can
// cancel the whole traversal with a deadline.
func (p *Parser) Parse(ctx context.Context, rootPath string) (*Result, error) {
	rootAbs, err := p.fs.Abs(rootPath)
	if err != nil {
		return nil, err
	}
	if !p.fs.Exists(rootAbs) || !p.fs.IsRegularFile(rootAbs) {
		return nil, fmt.Errorf("%w: %s", ErrRootConfigNotFound, rootPath)
	}

	baseDir := p.baseDir
	if baseDir == "" {
		baseDir = filepath.Dir(rootAbs)
	}

	s := &session{fs: p.fs, baseDir: baseDir, reg: newRegistry()}
	if err := s.parseFile(ctx, rootAbs, GlobalScope, 0, map[string]struct{}{}); err != nil {
		return nil, err
	}

	slog.Debug("sshd config parse complete",
		"root", rootAbs, "diagnostics", len(s.diags))

	return &Result{Config: s.reg.snapshot(), Diagnostics: s.diags}, nil
}

// parseFile processes one file. localScope starts at the scope inherited
// from the includer and is mutated only by Match lines within this file;
// it is discarded on return, so a Match inside an included file never leaks
// back into the includer. ancestors holds the absolute paths currently being
// parsed on this call chain (ancestors only, not all visited files), so a
// shared snippet may legitimately be included again from an independent
// branch while true cycles still break.
func (s *session) parseFile(ctx context.Context, path, localScope string, depth int, ancestors map[string]struct{}) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("config parse canceled: %w", err)
	}

	if depth > maxIncludeDepth {
		s.warn(CodeIncludeDepthExceeded, path, nil,
			"include chain deeper than %d, truncating", maxIncludeDepth)
		return nil
	}

	abs, err := s.fs.Abs(path)
	if err != nil {
		s.warn(CodeFileUnreadable, path, err, "cannot resolve path")
		return nil
	}
	if _, onStack := ancestors[abs]; onStack {
		s.warn(CodeIncludeCycle, abs, nil, "inclusion cycle, skipping")
		return nil
	}
	if !s.fs.Exists(abs) || !s.fs.IsRegularFile(abs) {
		s.warn(CodeIncludeTargetMissing, abs, nil, "include target missing")
		return nil
	}

	lines, err := s.fs.ReadLines(abs)
	if err != nil {
		s.warn(CodeFileUnreadable, abs, err, "cannot read file")
		return nil
	}

	// Copy-on-recurse: extend the ancestor set for this branch without
	// mutating the caller's view of the stack.
	stack := maps.Clone(ancestors)
	stack[abs] = struct{}{}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok, err := splitDirective(line)
		if err != nil {
			s.warn(CodeTokenizeFailed, abs, err, "skipping malformed line %q", line)
			continue
		}
		if !ok {
			continue
		}

		switch strings.ToLower(key) {
		case "include":
			if err := s.include(ctx, value, localScope, depth, stack); err != nil {
				return err
			}
		case "match":
			if strings.EqualFold(value, "all") {
				// Match All closes the current block: subsequent options in
				// this file land in the global scope again.
				localScope = GlobalScope
				continue
			}
			localScope = value
			s.reg.recordMatchEntry(localScope, abs)
		default:
			s.reg.addOption(localScope, key, value, abs)
		}
	}
	return nil
}

// include expands one Include pattern and descends into every match in
// sorted order, passing the includer's current scope down.
func (s *session) include(ctx context.Context, pattern, activeScope string, depth int, stack map[string]struct{}) error {
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(s.baseDir, pattern)
	}

	matches, err := s.fs.Glob(pattern)
	if err != nil {
		s.warn(CodeIncludeGlobFailed, pattern, err, "cannot expand pattern")
		return nil
	}
	if len(matches) == 0 {
		s.warn(CodeIncludeNoMatch, pattern, nil, "pattern matched no files")
		return nil
	}

	// Sorting is what makes the traversal deterministic: sshd loads include
	// matches in lexical order and globs carry no ordering guarantee.
	sort.Strings(matches)

	for _, match := range matches {
		if err := s.parseFile(ctx, match, activeScope, depth+1, stack); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) warn(code DiagnosticCode, path string, cause error, format string, args ...any) {
	s.diags = append(s.diags, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Path:     path,
		Cause:    cause,
	})
}
