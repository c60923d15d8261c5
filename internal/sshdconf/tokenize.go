// SPDX-License-Identifier: MPL-2.0

package sshdconf

import (
	"strings"

	"github.com/anmitsu/go-shlex"
)

// splitDirective tokenizes one non-blank, non-comment config line into a
// directive key and its value. Tokenization follows POSIX shell word
// splitting: quoted substrings stay single tokens and backslash escapes are
// honored, so `Banner "/etc/ssh/My Banner"` yields a single-path value.
// The value is the remaining tokens rejoined with single spaces; its
// directive-specific syntax is not parsed further.
//
// A line with unbalanced quoting fails with the shlex error; callers skip
// such lines. ok is false for lines that tokenize to nothing.
func splitDirective(line string) (key, value string, ok bool, err error) {
	parts, err := shlex.Split(line, true)
	if err != nil {
		return "", "", false, err
	}
	if len(parts) == 0 {
		return "", "", false, nil
	}
	return parts[0], strings.Join(parts[1:], " "), true, nil
}
