// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"hostfacts-cli/internal/config"

	"github.com/spf13/cobra"
)

// configCmd is the `hostfacts config` command tree.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage hostfacts configuration",
	Long: `Manage hostfacts configuration.

Configuration is stored in:
  - Linux: ~/.config/hostfacts/config.toml
  - macOS: ~/Library/Application Support/hostfacts/config.toml
  - Windows: %APPDATA%\hostfacts\config.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), cfg, true)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigFilePath()
			if err != nil {
				return err
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Created "+path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigFilePath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
}
