// Package render holds what the modgraph renderers share: the category and
// status tables, node grouping, and SVG format conversion.
//
// # Categories
//
// A node's "type" selects its category. Known types have display names
// (core → "Core Infrastructure"); an unknown type is displayed as-is and a
// missing type falls back to [DefaultCategory]. Lookups are exact string
// matches with no case folding or trimming.
//
// # Statuses
//
// A node's "status" selects a marker emoji and colors from a fixed table.
// Unknown or missing statuses use the neutral gray [UnknownStatus].
//
// # Grouping
//
// [GroupByCategory] partitions nodes by category, keeping the order in which
// categories and nodes were first encountered in the document.
//
// # Subpackages
//
//   - [mermaid]: Mermaid flowchart text, the primary output
//   - [nodelink]: Graphviz DOT and SVG
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG output using the external rsvg-convert tool.
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [mermaid]: github.com/cim-modules/modgraph/pkg/render/mermaid
// [nodelink]: github.com/cim-modules/modgraph/pkg/render/nodelink
package render
