// Package nodelink renders registry graphs as Graphviz node-link diagrams.
//
// # Overview
//
// This is the Graphviz counterpart of the Mermaid renderer. Each category
// becomes a cluster labeled with its display name, nodes are filled with
// their status colors, and only "dependency" edges are drawn.
//
// # Usage
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{Legend: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0) // 2x scale
//
// # Dependencies
//
// SVG rendering runs in-process through [github.com/goccy/go-graphviz].
// PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
