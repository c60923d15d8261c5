// SPDX-License-Identifier: MPL-2.0

// Package testutil provides shared helpers for hostfacts tests.
package testutil

import (
	"context"
	"sync"

	"hostfacts-cli/internal/execwrap"
)

// FakeRunner is an execwrap.Runner returning canned results per command
// name. It records every invocation so tests can assert on the exact
// argument vectors used.
type FakeRunner struct {
	mu sync.Mutex

	// Results maps a command name to its canned outcome.
	Results map[string]execwrap.Result
	// Errs maps a command name to a hard error (e.g. binary missing).
	Errs map[string]error
	// Calls records each invocation as [name, args...].
	Calls [][]string
}

// Run returns the canned result for name, recording the call.
func (r *FakeRunner) Run(_ context.Context, name string, args ...string) (execwrap.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	call := append([]string{name}, args...)
	r.Calls = append(r.Calls, call)

	if err, ok := r.Errs[name]; ok {
		return execwrap.Result{}, err
	}
	return r.Results[name], nil
}

// CallsFor returns the recorded argument vectors for one command name.
func (r *FakeRunner) CallsFor(name string) [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out [][]string
	for _, call := range r.Calls {
		if len(call) > 0 && call[0] == name {
			out = append(out, call)
		}
	}
	return out
}
