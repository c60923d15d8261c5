// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"hostfacts-cli/internal/attrcheck"
	"hostfacts-cli/internal/execwrap"
	"hostfacts-cli/internal/lvminfo"

	"github.com/spf13/cobra"
)

var (
	lvmUnit      string
	lvmFilter    string
	lvmCheckAttr string

	lvmCmd = &cobra.Command{
		Use:   "lvm",
		Short: "Gather LVM inventory (PVs, VGs, LVs)",
		Long: `Gather LVM inventory from the native report commands.

Runs pvs, vgs and/or lvs with JSON report output and aggregates the
rows. The --filter flag selects which reports to run (comma-separated,
or "all"); --unit selects the LVM size unit.

With --check-attr KEY=VALUE the command additionally verifies that
every collected row carries that attribute value, and exits non-zero
when the inventory is not uniform.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLVM(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
)

func init() {
	lvmCmd.Flags().StringVarP(&lvmUnit, "unit", "u", "", "LVM size unit (b s k m g t p e, upper-case for SI, r R h H for human)")
	lvmCmd.Flags().StringVar(&lvmFilter, "filter", "", "report scopes: comma-separated pvs,vgs,lvs or all (default pvs)")
	lvmCmd.Flags().StringVar(&lvmCheckAttr, "check-attr", "", "verify every row has KEY=VALUE, exit non-zero otherwise")
}

func runLVM(ctx context.Context, stdout, stderr io.Writer) error {
	unit := lvmUnit
	if unit == "" {
		unit = cfg.LVMUnit
	}

	report, err := lvminfo.Collect(ctx, execwrap.OSRunner{}, lvminfo.Options{
		Unit:   unit,
		Scopes: lvminfo.ParseScopes(lvmFilter),
	})
	if err != nil {
		var repErr *lvminfo.ReportError
		if errors.As(err, &repErr) && repErr.Result.ExitCode != 0 {
			return &ExitError{Code: repErr.Result.ExitCode, Err: err}
		}
		return err
	}

	if err := printJSON(stdout, report, cfg.Output.Indent); err != nil {
		return err
	}

	if lvmCheckAttr != "" {
		return checkReportAttr(stderr, report, lvmCheckAttr)
	}
	return nil
}

// checkReportAttr verifies attribute uniformity across every collected row.
func checkReportAttr(stderr io.Writer, report *lvminfo.Report, spec string) error {
	attr, want, found := strings.Cut(spec, "=")
	if !found || attr == "" {
		return fmt.Errorf("invalid --check-attr value %q, expected KEY=VALUE", spec)
	}

	var records []attrcheck.Record
	for _, rows := range [][]lvminfo.Record{report.PV, report.VG, report.LV} {
		for _, row := range rows {
			rec := make(attrcheck.Record, len(row))
			for k, v := range row {
				rec[k] = v
			}
			records = append(records, rec)
		}
	}

	if attrcheck.AnyNot(records, attr, want) {
		fmt.Fprintln(stderr, ErrorStyle.Render("check failed: ")+fmt.Sprintf("not every record has %s=%s", attr, want))
		return &ExitError{Code: 1}
	}
	return nil
}
