// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"

	"hostfacts-cli/internal/devinfo"
	"hostfacts-cli/internal/execwrap"

	"github.com/spf13/cobra"
)

var devCmd = &cobra.Command{
	Use:   "dev <path>",
	Short: "Gather facts about a filesystem object",
	Long: `Gather facts about a filesystem object.

Reports stat(2) metadata and the ls-style file type letter for any
path. For block devices, blkid attributes and the matching mount table
entries from findmnt are included. A path that does not exist is not an
error: the result simply reports is_exists false.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDev(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func runDev(ctx context.Context, stdout io.Writer, path string) error {
	info, err := devinfo.Collect(ctx, execwrap.OSRunner{}, path)
	if err != nil {
		return err
	}
	return printJSON(stdout, info, cfg.Output.Indent)
}
