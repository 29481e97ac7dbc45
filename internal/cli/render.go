package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mreyes/kintree/pkg/cache"
	kinerr "github.com/mreyes/kintree/pkg/errors"
	"github.com/mreyes/kintree/pkg/export"
	"github.com/mreyes/kintree/pkg/family"
	"github.com/mreyes/kintree/pkg/ingest"
	"github.com/mreyes/kintree/pkg/render"
	"github.com/mreyes/kintree/pkg/tree"
)

// artifactTTL is how long rendered artifacts stay in the cache.
const artifactTTL = 30 * 24 * time.Hour

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file path or base path for multiple formats
	formats []string // output formats: "svg", "png", "dot", "html", "json"
	rootID  int      // root person id; first record when unset
	title   string   // diagram title for the HTML page
	legend  bool     // include the color legend cluster
	sheet   string   // worksheet name for XLSX inputs
	noCache bool     // bypass the artifact cache
	config  string   // config file path
}

// newRenderCmd creates the render command for generating descendant-tree
// diagrams. It supports multiple output formats written side by side.
//
// Default settings:
//   - format: svg (or the formats list from kintree.toml)
//   - root: the first record in the table
//   - legend: on
func newRenderCmd() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a descendant-tree diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.config)
			if err != nil {
				return err
			}
			applyRenderConfig(cmd, &opts, cfg)

			if formatsStr != "" {
				opts.formats = splitList(formatsStr)
			}
			if len(opts.formats) == 0 {
				opts.formats = []string{"svg"}
			}
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts, cfg.treeOptions())
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, html, json (comma-separated)")
	cmd.Flags().IntVarP(&opts.rootID, "root", "r", 0, "root person id (default: first record)")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "diagram title")
	cmd.Flags().BoolVar(&opts.legend, "legend", true, "include the color legend")
	cmd.Flags().StringVarP(&opts.sheet, "sheet", "s", "", "worksheet name for XLSX inputs")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "config file (default: ./kintree.toml)")

	return cmd
}

// applyRenderConfig fills flags the user did not set from the config file.
func applyRenderConfig(cmd *cobra.Command, opts *renderOpts, cfg Config) {
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
	if !cmd.Flags().Changed("format") {
		opts.formats = cfg.Formats
	}
}

// splitList parses a comma-separated flag value.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "png": true, "dot": true, "html": true, "json": true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return kinerr.New(kinerr.ErrCodeInvalidFormat, "invalid format: %s (must be 'svg', 'png', 'dot', 'html', or 'json')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// resolveRoot picks the root person. An unset root falls back to the
// first record in the table; an explicit root must exist.
func resolveRoot(t *family.Table, rootID int) (int, error) {
	if rootID == 0 {
		records := t.Records()
		if len(records) == 0 {
			return 0, kinerr.New(kinerr.ErrCodeInvalidInput, "no person records in input")
		}
		return records[0].ID, nil
	}
	if _, ok := t.Lookup(rootID); !ok {
		return 0, kinerr.New(kinerr.ErrCodeNotFound, "root person %d not found", rootID)
	}
	return rootID, nil
}

// runRender loads the table, builds the tree, and writes every
// requested format next to the input (or under --output).
func runRender(ctx context.Context, input string, opts *renderOpts, colors tree.Options) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	logger.Infof("Rendering %s", input)

	t, err := ingest.Load(input, opts.sheet)
	if err != nil {
		return err
	}
	rootID, err := resolveRoot(t, opts.rootID)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %d records, root person %d", t.Len(), rootID)

	b := tree.New(t, rootID, colors)
	backend := newCacheBackend(ctx, opts.noCache)
	defer backend.Close()

	tableHash, err := hashTable(t)
	if err != nil {
		return err
	}

	r := &artifactRenderer{
		builder:   b,
		backend:   backend,
		tableHash: tableHash,
		opts:      opts,
		rootID:    rootID,
		colors:    colors,
	}

	base := basePath(opts.output, input)
	anyCached := false
	for _, format := range opts.formats {
		path := base + "." + format
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}

		data, cached, err := r.render(ctx, format)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		anyCached = anyCached || cached
		if err := writeFileAtomic(path, data); err != nil {
			return err
		}
		logger.Debugf("Generated %s: %d bytes", format, len(data))
		printFile(path)
	}

	prog.done(fmt.Sprintf("Rendered %d persons", b.PersonCount()))
	printStats(b.PersonCount(), b.GenerationCount(), anyCached)
	return nil
}

// newCacheBackend returns the artifact cache, or the null cache when
// caching is disabled or the cache directory is unavailable.
func newCacheBackend(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		printWarning("Artifact cache unavailable, rendering without cache")
		return cache.NewNullCache()
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		loggerFromContext(ctx).Debugf("Artifact cache unavailable: %v", err)
		printWarning("Artifact cache unavailable, rendering without cache")
		return cache.NewNullCache()
	}
	return c
}

// hashTable computes the content hash of the table used in cache keys.
func hashTable(t *family.Table) (string, error) {
	var buf bytes.Buffer
	if err := ingest.WriteJSON(t, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

// artifactRenderer renders one format at a time, consulting the cache
// before invoking the layout engine.
type artifactRenderer struct {
	builder   *tree.Builder
	backend   cache.Cache
	tableHash string
	opts      *renderOpts
	rootID    int
	colors    tree.Options

	// dot and svg are memoized across formats since html embeds the
	// svg and both derive from the same description.
	dot string
	svg []byte
}

func (r *artifactRenderer) key(format string) string {
	return cache.ArtifactKey(r.tableHash, cache.ArtifactKeyOpts{
		RootID: r.rootID,
		Format: format,
		Title:  r.opts.title,
		Legend: r.opts.legend,
		Colors: [3]string{r.colors.MaleColor, r.colors.FemaleColor, r.colors.SpouseEdgeColor},
	})
}

// render produces the artifact for format, reporting whether it came
// from the cache.
func (r *artifactRenderer) render(ctx context.Context, format string) ([]byte, bool, error) {
	key := r.key(format)
	if data, ok, err := r.backend.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}

	data, err := r.build(ctx, format)
	if err != nil {
		return nil, false, err
	}
	if err := r.backend.Set(ctx, key, data, artifactTTL); err != nil {
		loggerFromContext(ctx).Debugf("Cache write failed: %v", err)
	}
	return data, false, nil
}

func (r *artifactRenderer) build(ctx context.Context, format string) ([]byte, error) {
	switch format {
	case "dot":
		return []byte(r.buildDOT()), nil
	case "svg":
		svg, err := r.buildSVG(ctx)
		return svg, err
	case "png":
		sp := newSpinner(ctx, "Rendering PNG")
		sp.Start()
		png, err := render.PNG(ctx, r.buildDOT())
		sp.Stop()
		return png, err
	case "html":
		svg, err := r.buildSVG(ctx)
		if err != nil {
			return nil, err
		}
		return render.HTML(svg, render.PageData{
			Title:       r.opts.title,
			Persons:     r.builder.PersonCount(),
			Generations: r.builder.GenerationCount(),
		})
	case "json":
		var buf bytes.Buffer
		if err := export.Write(&buf, export.Build(r.builder)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, kinerr.New(kinerr.ErrCodeInvalidFormat, "unknown format: %s", format)
	}
}

func (r *artifactRenderer) buildDOT() string {
	if r.dot == "" {
		r.dot = render.ToDOT(r.builder.Build(), render.DOTOptions{
			Legend: r.opts.legend,
			Colors: r.colors,
		})
	}
	return r.dot
}

func (r *artifactRenderer) buildSVG(ctx context.Context) ([]byte, error) {
	if r.svg != nil {
		return r.svg, nil
	}
	sp := newSpinner(ctx, "Rendering SVG")
	sp.Start()
	svg, err := render.SVG(ctx, r.buildDOT())
	sp.Stop()
	if err != nil {
		return nil, kinerr.Wrap(kinerr.ErrCodeRender, err, "graphviz layout failed")
	}
	r.svg = svg
	return svg, nil
}
