package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/cim-modules/modgraph/pkg/buildinfo"
	errs "github.com/cim-modules/modgraph/pkg/errors"
	"github.com/cim-modules/modgraph/pkg/registry"
	"github.com/cim-modules/modgraph/pkg/render"
)

// Options configures DOT generation.
type Options struct {
	// RankDir is the Graphviz layout direction. Defaults to "TB".
	RankDir string

	// Legend appends a cluster with one example node per known status.
	Legend bool
}

// ToDOT converts a registry document to Graphviz DOT source.
// The output is deterministic for a given document and options.
func ToDOT(doc *registry.Document, opts Options) string {
	rankDir := opts.RankDir
	if rankDir == "" {
		rankDir = "TB"
	}

	var (
		meta  registry.Metadata
		graph *registry.Graph
	)
	if doc != nil {
		meta, graph = doc.Metadata, doc.Graph
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Generated by %s\n", buildinfo.Generator())
	fmt.Fprintf(&buf, "// Last updated: %s\n", meta.LastUpdated())
	buf.WriteString("digraph modules {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankDir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\", margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")

	for i, grp := range render.GroupByCategory(graph) {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", grp.Name)
		buf.WriteString("    style=\"rounded,dashed\";\n")
		for _, n := range grp.Nodes {
			status := render.LookupStatus(n.Status)
			fmt.Fprintf(&buf, "    %q [%s];\n", n.ID, strings.Join(fmtAttrs(n.ID+"\n"+status.Emoji, status), ", "))
		}
		buf.WriteString("  }\n")
	}

	if edges := render.DependencyEdges(graph); len(edges) > 0 {
		buf.WriteString("\n")
		for _, e := range edges {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		}
	}

	if opts.Legend {
		writeLegend(&buf)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeLegend(buf *bytes.Buffer) {
	buf.WriteString("\n")
	buf.WriteString("  subgraph cluster_legend {\n")
	buf.WriteString("    label=\"Legend\";\n")
	buf.WriteString("    style=\"rounded\";\n")
	for _, e := range render.Legend() {
		status := render.LookupStatus(e.Status)
		fmt.Fprintf(buf, "    %q [%s];\n", "legend_"+e.Status, strings.Join(fmtAttrs(e.Label+" "+status.Emoji, status), ", "))
	}
	buf.WriteString("  }\n")
}

func fmtAttrs(label string, s render.Status) []string {
	return []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", expandHex(s.Fill)),
		fmt.Sprintf("color=%q", expandHex(s.Stroke)),
		fmt.Sprintf("penwidth=%d", s.StrokeWidth),
		fmt.Sprintf("fontcolor=%q", expandHex(s.Color)),
	}
}

// expandHex turns CSS shorthand colors ("#FFF") into the six-digit form
// Graphviz requires. Other values are returned unchanged.
func expandHex(c string) string {
	if len(c) != 4 || c[0] != '#' {
		return c
	}
	return string([]byte{'#', c[1], c[1], c[2], c[2], c[3], c[3]})
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the diagram scales from a
// zero origin with explicit pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
