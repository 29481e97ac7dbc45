package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mreyes/kintree/pkg/ingest"
)

// importOpts holds the command-line flags for the import command.
type importOpts struct {
	output string // output file path; derived from input when empty
	sheet  string // worksheet name for XLSX inputs; first sheet when empty
	config string // config file path
}

// newImportCmd creates the import command for converting spreadsheet
// records into the JSON record format used by render, export, and serve.
func newImportCmd() *cobra.Command {
	var opts importOpts

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Convert spreadsheet records (XLSX, CSV) to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with .json)")
	cmd.Flags().StringVarP(&opts.sheet, "sheet", "s", "", "worksheet name for XLSX inputs (default: first sheet)")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "config file (default: ./kintree.toml)")

	return cmd
}

// runImport loads the records from input and writes them as JSON.
func runImport(ctx context.Context, input string, opts *importOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	sheet := opts.sheet
	if sheet == "" {
		sheet = cfg.Sheet
	}

	logger.Infof("Importing %s", input)
	t, err := ingest.Load(input, sheet)
	if err != nil {
		return err
	}
	logger.Debugf("Parsed %d records", t.Len())

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".json"
	}
	if err := ingest.ExportJSON(t, output); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Imported %d persons", t.Len()))
	printSuccess("Wrote %d records", t.Len())
	printFile(output)
	printNextStep("Render", fmt.Sprintf("kintree render %s", output))
	return nil
}
