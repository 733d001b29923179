package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cim-modules/modgraph/pkg/cache"
	errs "github.com/cim-modules/modgraph/pkg/errors"
	"github.com/cim-modules/modgraph/pkg/registry"
	"github.com/cim-modules/modgraph/pkg/render/mermaid"
	"github.com/cim-modules/modgraph/pkg/render/nodelink"
)

const (
	formatMermaid = "mermaid" // Mermaid flowchart text
	formatDOT     = "dot"     // Graphviz source
	formatSVG     = "svg"
	formatPDF     = "pdf" // requires rsvg-convert
	formatPNG     = "png" // requires rsvg-convert

	defaultScale = 2.0 // PNG resolution multiplier

	// artifactTTL bounds how long rendered artifacts stay in the cache.
	artifactTTL = 30 * 24 * time.Hour
)

// validFormats lists the supported output formats in help order.
var validFormats = []string{formatMermaid, formatDOT, formatSVG, formatPDF, formatPNG}

// renderOpts holds the resolved options of one render invocation.
type renderOpts struct {
	input   string  // registry document path
	output  string  // output file, "" or "-" for stdout
	format  string  // one of validFormats
	rankDir string  // Graphviz layout direction
	scale   float64 // PNG scale factor
	noCache bool    // bypass the artifact cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		opts  renderOpts
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a registry graph as a diagram",
		Long: `Render a module registry graph as a diagram.

The input defaults to ` + registry.DefaultPath + ` (or the configured input) and may be
JSON, YAML or TOML. Mermaid text is written to stdout unless --output is given.
When --format is omitted it is inferred from the --output extension.`,
		Example: `  modgraph render
  modgraph render registry/modules-graph.json -o docs/graph.mmd
  modgraph render -o graph.svg
  modgraph render --watch -o docs/graph.mmd`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(c.config.GetString(keyFormat), opts.output)
			if err != nil {
				return err
			}
			opts.input = c.inputPath(args)
			opts.format = format
			opts.rankDir = c.config.GetString(keyRankDir)
			opts.noCache = c.config.GetBool(keyNoCache)

			if !watch {
				return c.runRender(cmd.Context(), opts, cmd.OutOrStdout())
			}
			return c.watchRender(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringP("format", "f", "", "output format: "+strings.Join(validFormats, ", ")+" (default mermaid)")
	cmd.Flags().String("rankdir", "TB", "Graphviz layout direction: TB, LR, BT, RL")
	cmd.Flags().Float64Var(&opts.scale, "scale", defaultScale, "PNG scale factor")
	cmd.Flags().Bool("no-cache", false, "disable the rendered artifact cache")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render whenever the input changes")

	c.bindFlag(keyFormat, cmd.Flags().Lookup("format"))
	c.bindFlag(keyRankDir, cmd.Flags().Lookup("rankdir"))
	c.bindFlag(keyNoCache, cmd.Flags().Lookup("no-cache"))

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return validFormats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// resolveFormat validates format, inferring it from the output extension
// when empty.
func resolveFormat(format, output string) (string, error) {
	if format == "" {
		format = formatFromPath(output)
	}
	format = strings.ToLower(format)
	if !slices.Contains(validFormats, format) {
		return "", errs.New(errs.ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)",
			format, strings.Join(validFormats, ", "))
	}
	return format, nil
}

// formatFromPath maps an output file extension to a format.
// Unknown extensions and stdout fall back to Mermaid.
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dot", ".gv":
		return formatDOT
	case ".svg":
		return formatSVG
	case ".pdf":
		return formatPDF
	case ".png":
		return formatPNG
	default:
		return formatMermaid
	}
}

// runRender loads the registry document, renders it and writes the result.
func (c *CLI) runRender(ctx context.Context, opts renderOpts, stdout io.Writer) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, err := registry.Load(opts.input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %s: %d nodes, %d edges", opts.input, doc.Graph.Nodes.Len(), len(doc.Graph.Edges))

	data, err := c.renderDocument(ctx, doc, opts)
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	out, err := openOutput(opts.output, stdout)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if isStdout(opts.output) {
		logger.Debug("Wrote diagram to stdout")
		return nil
	}
	prog.done("Generated " + opts.output)
	return nil
}

// renderDocument produces the bytes of doc in opts.format. Graphviz-backed
// binary formats go through the artifact cache keyed by the DOT source.
func (c *CLI) renderDocument(ctx context.Context, doc *registry.Document, opts renderOpts) ([]byte, error) {
	if opts.format == formatMermaid {
		return []byte(mermaid.Render(doc)), nil
	}

	dot := nodelink.ToDOT(doc, nodelink.Options{RankDir: opts.rankDir, Legend: true})
	if opts.format == formatDOT {
		return []byte(dot), nil
	}

	variant := opts.format
	if opts.format == formatPNG {
		variant = fmt.Sprintf("%s@%g", formatPNG, opts.scale)
	}
	return c.cachedArtifact(ctx, cache.ArtifactKey(variant, []byte(dot)), opts.noCache, func() ([]byte, error) {
		switch opts.format {
		case formatSVG:
			return nodelink.RenderSVG(ctx, dot)
		case formatPDF:
			return nodelink.RenderPDF(ctx, dot)
		case formatPNG:
			return nodelink.RenderPNG(ctx, dot, opts.scale)
		default:
			return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown format: %s", opts.format)
		}
	})
}

// cachedArtifact returns the cached bytes under key, or computes and stores them.
// Cache failures are logged and never fail the render.
func (c *CLI) cachedArtifact(ctx context.Context, key string, noCache bool, compute func() ([]byte, error)) ([]byte, error) {
	logger := loggerFromContext(ctx)
	store := c.newCache(noCache)
	defer store.Close()

	if data, ok, err := store.Get(ctx, key); err != nil {
		logger.Warn("Cache read failed", "err", err)
	} else if ok {
		logger.Debug("Using cached artifact", "key", key)
		return data, nil
	}

	data, err := compute()
	if err != nil {
		return nil, err
	}
	if err := store.Set(ctx, key, data, artifactTTL); err != nil {
		logger.Warn("Cache write failed", "err", err)
	}
	return data, nil
}

// isStdout reports whether path names standard output.
func isStdout(path string) bool {
	return path == "" || path == "-"
}

// openOutput returns the file at path, or stdout wrapped so that closing it is a no-op.
func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if isStdout(path) {
		return nopCloser{stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
