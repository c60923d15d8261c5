// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"hostfacts-cli/internal/config"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables diagnostic output on stderr
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// outputFormat overrides the configured output format (json or text)
	outputFormat string

	// cfg is the loaded tool configuration, never nil after initRootConfig.
	cfg = config.DefaultConfig()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "hostfacts",
		Short: "Gather structured facts about a host",
		Long: TitleStyle.Render("hostfacts") + SubtitleStyle.Render(" - Gather structured facts about a host") + `

hostfacts inspects a host and reports structured facts as JSON or
styled text. It understands the OpenSSH server configuration tree
(sshd_config plus Include'd files with Match blocks), filesystem
objects including block devices, and LVM inventory.

` + SubtitleStyle.Render("Examples:") + `
  hostfacts sshd                       Effective sshd configuration
  hostfacts sshd -c /srv/ssh/config    Parse an alternate config tree
  hostfacts dev /dev/sdb1              Block device facts
  hostfacts lvm --filter all           Full LVM inventory
  hostfacts config show                Show current tool configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable diagnostic output on stderr")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/hostfacts/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "output format: json or text")

	// Add subcommands
	rootCmd.AddCommand(sshdCmd)
	rootCmd.AddCommand(devCmd)
	rootCmd.AddCommand(lvmCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set, and installs
// the process-wide logger.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		// Config problems never abort fact gathering; defaults apply.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+err.Error())
	}
	if loaded != nil {
		cfg = loaded
	}

	if !verbose {
		verbose = cfg.Output.Verbose
	}

	setupLogging()
}

// setupLogging routes slog through charmbracelet/log so internal packages
// can stay on the standard structured logging surface.
func setupLogging() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	slog.SetDefault(slog.New(logger))
}

// effectiveFormat resolves the output format: flag wins over config.
func effectiveFormat() (config.OutputFormat, error) {
	if outputFormat == "" {
		return cfg.Output.Format, nil
	}
	f := config.OutputFormat(outputFormat)
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", config.ErrInvalidOutputFormat, outputFormat)
	}
	return f, nil
}
