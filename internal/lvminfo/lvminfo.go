// SPDX-License-Identifier: MPL-2.0

// Package lvminfo gathers LVM inventory (physical volumes, volume groups,
// logical volumes) from the native report commands pvs, vgs and lvs.
package lvminfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"hostfacts-cli/internal/execwrap"
)

const (
	// ScopePVS reports physical volumes via pvs.
	ScopePVS = "pvs"
	// ScopeVGS reports volume groups via vgs.
	ScopeVGS = "vgs"
	// ScopeLVS reports logical volumes via lvs.
	ScopeLVS = "lvs"

	// DefaultUnit is the size unit used when none is requested.
	DefaultUnit = "m"
)

var (
	// ErrInvalidUnit is returned for a unit outside the LVM --units alphabet.
	ErrInvalidUnit = errors.New("invalid LVM unit")
	// ErrInvalidScope is returned for a report scope other than pvs/vgs/lvs.
	ErrInvalidScope = errors.New("invalid LVM report scope")
	// ErrReportFailed is the sentinel wrapped by ReportError.
	ErrReportFailed = errors.New("LVM report failed")
)

// validUnits is the LVM --units alphabet: binary (base-2) suffixes are
// lower-case, decimal (SI) upper-case, plus the human-readable formats.
var validUnits = []string{
	"b", "s", "k", "m", "g", "t", "p", "e",
	"B", "S", "K", "M", "G", "T", "P", "E",
	"r", "R", "h", "H",
}

// scopeReportKeys maps each report command to the key its JSON report
// carries its rows under.
var scopeReportKeys = map[string]string{
	ScopePVS: "pv",
	ScopeVGS: "vg",
	ScopeLVS: "lv",
}

type (
	// Record is one row of an LVM JSON report; LVM emits every field as a
	// string regardless of its semantic type.
	Record map[string]string

	// Report aggregates the rows of the requested scopes. Unrequested
	// scopes stay as empty lists, mirroring the report commands' own shape.
	Report struct {
		PV []Record `json:"pv"`
		VG []Record `json:"vg"`
		LV []Record `json:"lv"`
	}

	// Options selects what to collect. The zero value means "pvs only, in
	// megabytes".
	Options struct {
		// Unit is the LVM --units value.
		Unit string
		// Scopes lists the report commands to run. The single entry "all"
		// expands to every scope.
		Scopes []string
	}

	// ReportError carries the full outcome of a failed report command so
	// callers can surface rc/stdout/stderr verbatim.
	ReportError struct {
		Command string
		Result  execwrap.Result
		Cause   error
	}
)

// Error returns the error message for ReportError.
func (e *ReportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Command, e.Cause)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Command, e.Result.ExitCode, strings.TrimSpace(e.Result.Stderr))
}

// Unwrap makes ReportError match ErrReportFailed via errors.Is.
func (e *ReportError) Unwrap() error { return ErrReportFailed }

// normalize validates Options and expands defaults and the "all" shorthand.
func (o Options) normalize() (Options, error) {
	if o.Unit == "" {
		o.Unit = DefaultUnit
	}
	if !slices.Contains(validUnits, o.Unit) {
		return o, fmt.Errorf("%w: %q", ErrInvalidUnit, o.Unit)
	}

	if len(o.Scopes) == 0 {
		o.Scopes = []string{ScopePVS}
	}
	if len(o.Scopes) == 1 && o.Scopes[0] == "all" {
		o.Scopes = []string{ScopePVS, ScopeVGS, ScopeLVS}
	}
	for _, scope := range o.Scopes {
		if _, ok := scopeReportKeys[scope]; !ok {
			return o, fmt.Errorf("%w: %q", ErrInvalidScope, scope)
		}
	}
	return o, nil
}

// ParseScopes splits a comma-separated --filter value into scopes.
func ParseScopes(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	scopes := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			scopes = append(scopes, p)
		}
	}
	return scopes
}

// Collect runs the requested report commands and aggregates their rows.
// Any report command failing (non-zero exit or unparseable JSON) fails the
// whole collection with a ReportError.
func Collect(ctx context.Context, runner execwrap.Runner, opts Options) (*Report, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	report := &Report{PV: []Record{}, VG: []Record{}, LV: []Record{}}
	for _, scope := range opts.Scopes {
		rows, err := runReport(ctx, runner, scope, opts.Unit)
		if err != nil {
			return nil, err
		}
		switch scope {
		case ScopePVS:
			report.PV = rows
		case ScopeVGS:
			report.VG = rows
		case ScopeLVS:
			report.LV = rows
		}
	}
	return report, nil
}

// runReport executes one report command and extracts its rows from the
// first report entry of the JSON output.
func runReport(ctx context.Context, runner execwrap.Runner, scope, unit string) ([]Record, error) {
	res, err := runner.Run(ctx, scope, "--units", unit, "--reportformat", "json")
	if err != nil {
		return nil, &ReportError{Command: scope, Cause: err}
	}
	if res.ExitCode != 0 {
		return nil, &ReportError{Command: scope, Result: res}
	}

	var payload struct {
		Report []map[string][]Record `json:"report"`
	}
	if err := json.Unmarshal([]byte(res.Stdout), &payload); err != nil {
		return nil, &ReportError{Command: scope, Result: res, Cause: fmt.Errorf("parsing JSON report: %w", err)}
	}
	if len(payload.Report) == 0 {
		return []Record{}, nil
	}

	rows := payload.Report[0][scopeReportKeys[scope]]
	if rows == nil {
		rows = []Record{}
	}
	return rows, nil
}
