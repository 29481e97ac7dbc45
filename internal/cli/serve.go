package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mreyes/kintree/internal/server"
	"github.com/mreyes/kintree/pkg/ingest"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr   string // listen address
	rootID int    // root person id; first record when unset
	title  string // diagram title for the HTML page
	legend bool   // include the color legend cluster
	sheet  string // worksheet name for XLSX inputs
	config string // config file path
}

// newServeCmd creates the serve command for previewing the rendered
// tree in a browser. All artifacts are rendered once at startup.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Preview the rendered tree in a local web server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.config)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				opts.addr = cfg.Addr
			}
			if !cmd.Flags().Changed("root") && cfg.Root != 0 {
				opts.rootID = cfg.Root
			}
			if !cmd.Flags().Changed("title") {
				opts.title = cfg.Title
			}
			if !cmd.Flags().Changed("legend") {
				opts.legend = cfg.Legend
			}
			if !cmd.Flags().Changed("sheet") {
				opts.sheet = cfg.Sheet
			}
			return runServe(cmd.Context(), args[0], &opts, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "127.0.0.1:8571", "listen address")
	cmd.Flags().IntVarP(&opts.rootID, "root", "r", 0, "root person id (default: first record)")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "diagram title")
	cmd.Flags().BoolVar(&opts.legend, "legend", true, "include the color legend")
	cmd.Flags().StringVarP(&opts.sheet, "sheet", "s", "", "worksheet name for XLSX inputs")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "config file (default: ./kintree.toml)")

	return cmd
}

// runServe renders the tree and serves it until interrupted.
func runServe(ctx context.Context, input string, opts *serveOpts, cfg Config) error {
	logger := loggerFromContext(ctx)

	t, err := ingest.Load(input, opts.sheet)
	if err != nil {
		return err
	}
	rootID, err := resolveRoot(t, opts.rootID)
	if err != nil {
		return err
	}

	sp := newSpinner(ctx, "Rendering tree")
	sp.Start()
	srv, err := server.New(ctx, t, server.Config{
		Title:  opts.title,
		RootID: rootID,
		Colors: cfg.treeOptions(),
		Legend: opts.legend,
		Logger: logger,
	})
	sp.Stop()
	if err != nil {
		return err
	}

	printSuccess("Tree ready")
	printKeyValue("Preview", StyleLink.Render(fmt.Sprintf("http://%s", opts.addr)))
	printDetail("Press Ctrl+C to stop")

	return srv.ListenAndServe(ctx, opts.addr)
}
