// SPDX-License-Identifier: MPL-2.0

package sshdconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

type (
	// ConfigFS is the filesystem surface the parser consumes. The production
	// implementation is OSConfigFS; tests supply in-memory fakes to exercise
	// the parser against arbitrary file trees.
	//
	// Glob results carry no ordering guarantee; the parser sorts matches
	// itself before descending into them.
	ConfigFS interface {
		// Glob returns the paths matching a shell pattern.
		Glob(pattern string) ([]string, error)
		// Exists reports whether the path exists.
		Exists(path string) bool
		// IsRegularFile reports whether the path is a regular file.
		IsRegularFile(path string) bool
		// ReadLines returns the text lines of a file using permissive
		// decoding: invalid byte sequences are replaced, never fatal.
		ReadLines(path string) ([]string, error)
		// Abs returns the normalized absolute form of a path. Absolute paths
		// are the identity used for cycle detection and for every location
		// string in the parse output.
		Abs(path string) (string, error)
	}

	// OSConfigFS implements ConfigFS against the real filesystem.
	OSConfigFS struct{}
)

// Glob wraps filepath.Glob.
func (OSConfigFS) Glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding pattern %q: %w", pattern, err)
	}
	return matches, nil
}

// Exists reports whether the path exists.
func (OSConfigFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsRegularFile reports whether the path is a regular file.
func (OSConfigFS) IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ReadLines reads the whole file and splits it into lines. Invalid UTF-8
// sequences are replaced with the Unicode replacement rune so a stray binary
// blob in a config directory cannot abort the parse.
func (OSConfigFS) ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

// Abs wraps filepath.Abs.
func (OSConfigFS) Abs(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path for %s: %w", path, err)
	}
	return abs, nil
}
