// SPDX-License-Identifier: MPL-2.0

package execwrap

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
)

func TestOSRunner_CapturesStdout(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX sh")
	}

	res, err := OSRunner{}.Run(context.Background(), "sh", "-c", "echo out; echo err >&2")
	if err != nil {
		t.Fatal(err)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d", res.ExitCode)
	}
	if strings.TrimSpace(res.Stdout) != "out" {
		t.Errorf("Stdout = %q", res.Stdout)
	}
	if strings.TrimSpace(res.Stderr) != "err" {
		t.Errorf("Stderr = %q", res.Stderr)
	}
}

func TestOSRunner_NonZeroExitIsNotAnError(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX sh")
	}

	res, err := OSRunner{}.Run(context.Background(), "sh", "-c", "exit 3")
	if err != nil {
		t.Fatalf("non-zero exit must surface via ExitCode, got error %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
}

func TestOSRunner_MissingBinary(t *testing.T) {
	t.Parallel()

	_, err := OSRunner{}.Run(context.Background(), "hostfacts-no-such-binary-xyz")
	if !errors.Is(err, ErrCommandNotFound) {
		t.Errorf("err = %v, want ErrCommandNotFound", err)
	}
}
