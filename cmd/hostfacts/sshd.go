// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"

	"hostfacts-cli/internal/config"
	"hostfacts-cli/internal/sshdconf"

	"github.com/spf13/cobra"
)

var (
	// sshdConfigPath is the --config-path flag value; empty means "use the
	// configured default".
	sshdConfigPath string

	sshdCmd = &cobra.Command{
		Use:   "sshd",
		Short: "Gather the effective OpenSSH server configuration",
		Long: `Gather the effective OpenSSH server configuration.

Parses the sshd_config tree recursively, following Include directives
(glob patterns load in lexical order, as sshd itself does) and Match
blocks. Options resolve under first-directive-wins semantics; every
file that defines an option is recorded in its appearance list.

A missing included file, an inclusion cycle, or a malformed line never
fails the command - those branches simply contribute nothing. Run with
--verbose to see them reported on stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := sshdConfigPath
			if path == "" {
				path = cfg.SSHDConfigPath
			}
			return runSSHD(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), path)
		},
	}
)

func init() {
	sshdCmd.Flags().StringVarP(&sshdConfigPath, "config-path", "c", "", "root sshd config file (default /etc/ssh/sshd_config)")
}

// runSSHD parses the config tree rooted at path and renders the snapshot.
func runSSHD(ctx context.Context, stdout, stderr io.Writer, path string) error {
	res, err := sshdconf.NewParser().Parse(ctx, path)
	if err != nil {
		if errors.Is(err, sshdconf.ErrRootConfigNotFound) {
			return &ExitError{Code: 2, Err: err}
		}
		return err
	}

	if verbose {
		renderDiagnostics(stderr, res.Diagnostics)
	}

	format, err := effectiveFormat()
	if err != nil {
		return err
	}
	if format == config.FormatText {
		renderSSHDText(stdout, res.Config)
		return nil
	}
	return printJSON(stdout, res.Config, cfg.Output.Indent)
}
