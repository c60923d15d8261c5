// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"testing"

	"hostfacts-cli/internal/lvminfo"
)

func TestCheckReportAttr(t *testing.T) {
	t.Parallel()

	uniform := &lvminfo.Report{
		PV: []lvminfo.Record{{"pv_name": "/dev/sda1", "vg_name": "data"}},
		VG: []lvminfo.Record{{"vg_name": "data"}},
		LV: []lvminfo.Record{{"lv_name": "root", "vg_name": "data"}},
	}
	mixed := &lvminfo.Report{
		PV: []lvminfo.Record{{"pv_name": "/dev/sda1", "vg_name": "data"}},
		LV: []lvminfo.Record{{"lv_name": "swap", "vg_name": "other"}},
	}

	tests := []struct {
		name     string
		report   *lvminfo.Report
		spec     string
		wantCode int // 0 means nil error
		wantBad  bool
	}{
		{name: "uniform passes", report: uniform, spec: "vg_name=data"},
		{name: "mixed fails", report: mixed, spec: "vg_name=data", wantCode: 1},
		{name: "missing attr fails", report: uniform, spec: "absent=x", wantCode: 1},
		{name: "empty report passes", report: &lvminfo.Report{}, spec: "vg_name=data"},
		{name: "malformed spec", report: uniform, spec: "no-equals", wantBad: true},
		{name: "empty key", report: uniform, spec: "=v", wantBad: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stderr bytes.Buffer
			err := checkReportAttr(&stderr, tt.report, tt.spec)

			if tt.wantBad {
				var exitErr *ExitError
				if err == nil || errors.As(err, &exitErr) {
					t.Fatalf("err = %v, want plain usage error", err)
				}
				return
			}
			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("err = %v, want nil", err)
				}
				return
			}
			var exitErr *ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("err = %v, want *ExitError", err)
			}
			if exitErr.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", exitErr.Code, tt.wantCode)
			}
			if stderr.Len() == 0 {
				t.Error("failed check wrote nothing to stderr")
			}
		})
	}
}
