// SPDX-License-Identifier: MPL-2.0

// Package execwrap runs external inventory commands (blkid, findmnt, pvs,
// vgs, lvs) with a stable environment and captured output. Collectors depend
// on the Runner interface so tests can substitute canned results without
// touching the host.
package execwrap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// ErrCommandNotFound is returned when the requested binary is not on PATH.
var ErrCommandNotFound = errors.New("command not found")

type (
	// Result captures one finished external command.
	Result struct {
		// ExitCode is the process exit status. Zero means success.
		ExitCode int
		// Stdout is the captured standard output.
		Stdout string
		// Stderr is the captured standard error.
		Stderr string
	}

	// Runner executes an external command and captures its outcome. A
	// non-zero exit status is reported through Result.ExitCode, not through
	// the error: callers decide whether a non-zero status is tolerable.
	Runner interface {
		Run(ctx context.Context, name string, args ...string) (Result, error)
	}

	// OSRunner is the production Runner. Every command runs with the C
	// locale forced so the parsed output is not localized.
	OSRunner struct{}
)

// cLocale pins command output to the untranslated C locale, matching how
// configuration-management tools invoke inventory commands.
var cLocale = []string{"LANG=C", "LC_ALL=C", "LC_MESSAGES=C", "LC_CTYPE=C"}

// Run executes name with args, capturing stdout and stderr separately.
func (OSRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = append(os.Environ(), cLocale...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	res := Result{ExitCode: 0, Stdout: stdout.String(), Stderr: stderr.String()}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			slog.Debug("external command exited non-zero",
				"command", name, "exit_code", res.ExitCode)
			return res, nil
		}
		return res, fmt.Errorf("running %s: %w", name, runErr)
	}
	return res, nil
}
