package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pmlandwehr/dynetml2other/pkg/buildinfo"
)

// Execute runs the dynetml CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (convert,
// inspect), configures logging based on the --verbose flag, and executes the
// command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext. Defaults for the backend and filter lists may be set in
// a TOML config file passed via --config; explicit flags win over the file.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
		cfg        Config
	)

	root := &cobra.Command{
		Use:          "dynetml",
		Short:        "dynetml converts and inspects DyNetML meta-network documents",
		Long:         `dynetml is a CLI tool for working with DyNetML XML documents: dynamic meta-networks of time-sliced node trees and networks. It can filter, convert, and summarize them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))

			loaded, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file with defaults (searches ./dynetml.toml if unset)")

	root.AddCommand(newConvertCmd(&cfg))
	root.AddCommand(newInspectCmd(&cfg))

	return root.ExecuteContext(ctx)
}
