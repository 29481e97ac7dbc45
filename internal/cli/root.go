package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mreyes/kintree/pkg/buildinfo"
)

// appName is used for config and cache directory names.
const appName = "kintree"

// Execute runs the kintree CLI and returns an error if any command fails.
// This is the main entry point for the CLI application. The passed
// context carries signal cancellation from the main package.
//
// The function sets up the root command with all subcommands (import,
// render, export, serve, browse, cache, completion), configures logging
// based on the --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "kintree",
		Short:        "Kintree renders family records as descendant-tree diagrams",
		Long:         `Kintree is a CLI tool for turning tabular family records into descendant-tree diagrams, with couples joined through union points and generations aligned on shared ranks.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newImportCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newBrowseCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
