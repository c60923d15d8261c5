// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"hostfacts-cli/internal/sshdconf"
)

// printJSON renders any fact structure as a JSON document.
func printJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

// renderDiagnostics writes parse diagnostics to stderr, one warning per
// line. Rendering is gated on --verbose by the callers: default output is
// indistinguishable from a clean parse, matching the permissive loader
// behavior.
func renderDiagnostics(w io.Writer, diags []sshdconf.Diagnostic) {
	for _, d := range diags {
		line := fmt.Sprintf("%s: %s", d.Code, d.Message)
		if d.Path != "" {
			line += " (" + d.Path + ")"
		}
		fmt.Fprintln(w, WarningStyle.Render("Warning: ")+line)
	}
}

// renderSSHDText writes the effective sshd configuration as styled text:
// global options first in name order, then each Match block.
func renderSSHDText(w io.Writer, cfg sshdconf.Config) {
	var names []string
	for name, v := range cfg {
		if _, isOption := v.(sshdconf.Option); isOption {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		opt := cfg[name].(sshdconf.Option)
		fmt.Fprintf(w, "%s %s\n", KeyStyle.Render(name), opt.Value)
		fmt.Fprintf(w, "  %s\n", LocationStyle.Render("from "+opt.Location))
	}

	blocks, ok := cfg["Match"].([]sshdconf.MatchBlock)
	if !ok {
		return
	}
	for _, block := range blocks {
		fmt.Fprintf(w, "%s %s\n", TitleStyle.Render("Match"), block.Condition)
		fmt.Fprintf(w, "  %s\n", LocationStyle.Render("entered at "+block.Location))

		var optNames []string
		for name := range block.Options {
			optNames = append(optNames, name)
		}
		sort.Strings(optNames)
		for _, name := range optNames {
			opt := block.Options[name]
			fmt.Fprintf(w, "  %s %s\n", KeyStyle.Render(name), opt.Value)
			fmt.Fprintf(w, "    %s\n", LocationStyle.Render("from "+opt.Location))
		}
	}
}
