package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mreyes/kintree/pkg/export"
	"github.com/mreyes/kintree/pkg/ingest"
	"github.com/mreyes/kintree/pkg/tree"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output string // output file path; stdout when empty
	rootID int    // root person id; first record when unset
	sheet  string // worksheet name for XLSX inputs
	config string // config file path
}

// newExportCmd creates the export command. It writes person data
// enriched with derived fields (generation, lifetime, full parent and
// spouse names, children) as JSON.
func newExportCmd() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export enriched person data as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.config)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("root") && cfg.Root != 0 {
				opts.rootID = cfg.Root
			}
			if !cmd.Flags().Changed("sheet") {
				opts.sheet = cfg.Sheet
			}
			return runExport(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVarP(&opts.rootID, "root", "r", 0, "root person id (default: first record)")
	cmd.Flags().StringVarP(&opts.sheet, "sheet", "s", "", "worksheet name for XLSX inputs")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "config file (default: ./kintree.toml)")

	return cmd
}

// runExport loads the table and writes the enriched persons.
func runExport(ctx context.Context, input string, opts *exportOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	t, err := ingest.Load(input, opts.sheet)
	if err != nil {
		return err
	}
	rootID, err := resolveRoot(t, opts.rootID)
	if err != nil {
		return err
	}

	b := tree.New(t, rootID, tree.DefaultOptions())
	persons := export.Build(b)

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := export.Write(out, persons); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Exported %d persons", len(persons)))
	if opts.output != "" {
		printSuccess("Exported %d persons", len(persons))
		printFile(opts.output)
	}
	return nil
}
