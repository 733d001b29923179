package mermaid

import (
	"fmt"
	"io"
	"strings"

	"github.com/cim-modules/modgraph/pkg/registry"
	"github.com/cim-modules/modgraph/pkg/render"
)

const (
	indent      = "    "
	innerIndent = indent + indent
)

// Render returns the Mermaid flowchart for doc.
// A nil document or graph renders as an empty diagram with the legend.
func Render(doc *registry.Document) string {
	var buf strings.Builder

	var (
		meta  registry.Metadata
		graph *registry.Graph
	)
	if doc != nil {
		meta, graph = doc.Metadata, doc.Graph
	}

	writeHeader(&buf, meta.LastUpdated())
	for _, grp := range render.GroupByCategory(graph) {
		writeGroup(&buf, grp)
	}
	writeDependencies(&buf, render.DependencyEdges(graph))
	writeLegend(&buf)

	return buf.String()
}

// Write renders doc to w.
func Write(w io.Writer, doc *registry.Document) error {
	_, err := io.WriteString(w, Render(doc))
	return err
}

func writeHeader(buf *strings.Builder, lastUpdated string) {
	buf.WriteString("graph TB\n")
	buf.WriteString(indent + "%% CIM Module Dependency Graph\n")
	buf.WriteString(indent + "%% Auto-generated from modules-graph.json\n")
	fmt.Fprintf(buf, indent+"%%%% Last updated: %s\n", lastUpdated)
	buf.WriteString(indent + "\n")
	buf.WriteString(indent + "%% Nodes\n")
}

func writeGroup(buf *strings.Builder, grp render.Group) {
	fmt.Fprintf(buf, indent+"subgraph \"%s\"\n", grp.Name)
	for _, n := range grp.Nodes {
		status := render.LookupStatus(n.Status)
		fmt.Fprintf(buf, innerIndent+"%s[\"%s<br/>%s\"]\n", n.ID, n.ID, status.Emoji)
		writeStyle(buf, n.ID, status)
	}
	buf.WriteString(indent + "end\n\n")
}

func writeStyle(buf *strings.Builder, id string, status render.Status) {
	fmt.Fprintf(buf, innerIndent+"style %s %s\n", id, status.Style())
}

func writeDependencies(buf *strings.Builder, edges []registry.Edge) {
	buf.WriteString(indent + "%% Dependencies\n")
	for _, e := range edges {
		fmt.Fprintf(buf, indent+"%s --> %s\n", e.From, e.To)
	}
}

func writeLegend(buf *strings.Builder) {
	legend := render.Legend()

	buf.WriteString("\n" + indent + "%% Legend\n")
	buf.WriteString(indent + "subgraph \"Legend\"\n")
	for _, e := range legend {
		status := render.LookupStatus(e.Status)
		fmt.Fprintf(buf, innerIndent+"%s[\"%s %s\"]\n", e.Status, e.Label, status.Emoji)
	}
	buf.WriteString(innerIndent + "\n")
	for _, e := range legend {
		writeStyle(buf, e.Status, render.LookupStatus(e.Status))
	}
	buf.WriteString(indent + "end\n")
}
