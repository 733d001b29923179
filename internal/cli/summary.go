package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cim-modules/modgraph/pkg/registry"
	"github.com/cim-modules/modgraph/pkg/render"
)

// statusUnknown labels nodes whose status has no entry in the status table.
const statusUnknown = "unknown"

// graphSummary holds the counts reported by the summary command.
type graphSummary struct {
	LastUpdated  string
	Nodes        int
	Edges        int
	Dependencies int             // edges drawn as arrows
	Skipped      int             // edges of any other type
	Categories   []labeledCount  // in diagram order
	Statuses     []labeledCount  // legend order, then unknown
	Dangling     []registry.Edge // dependency edges naming an undeclared node
}

type labeledCount struct {
	Label string
	Count int
}

// summaryCommand creates the summary command.
func (c *CLI) summaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary [file]",
		Short: "Print node and edge counts of a registry graph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd.Context(), c.inputPath(args), cmd.OutOrStdout())
		},
	}
}

func runSummary(ctx context.Context, input string, w io.Writer) error {
	logger := loggerFromContext(ctx)

	doc, err := registry.Load(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %s", input)

	printSummary(w, input, summarize(doc))
	return nil
}

// summarize counts the nodes and edges of doc the way the renderers see them.
func summarize(doc *registry.Document) graphSummary {
	s := graphSummary{LastUpdated: doc.Metadata.LastUpdated()}
	g := doc.Graph
	if g == nil {
		return s
	}

	s.Nodes = g.Nodes.Len()
	s.Edges = len(g.Edges)

	for _, grp := range render.GroupByCategory(g) {
		s.Categories = append(s.Categories, labeledCount{Label: grp.Name, Count: len(grp.Nodes)})
	}

	byStatus := make(map[string]int)
	for _, n := range g.Nodes.All() {
		if render.KnownStatus(n.Status) {
			byStatus[n.Status]++
		} else {
			byStatus[statusUnknown]++
		}
	}
	for _, e := range render.Legend() {
		if n := byStatus[e.Status]; n > 0 {
			s.Statuses = append(s.Statuses, labeledCount{Label: render.LookupStatus(e.Status).Emoji + " " + e.Label, Count: n})
		}
	}
	if n := byStatus[statusUnknown]; n > 0 {
		s.Statuses = append(s.Statuses, labeledCount{Label: render.UnknownStatus.Emoji + " Unknown", Count: n})
	}

	deps := render.DependencyEdges(g)
	s.Dependencies = len(deps)
	s.Skipped = s.Edges - s.Dependencies
	for _, e := range deps {
		_, fromOK := g.Nodes.Get(e.From)
		_, toOK := g.Nodes.Get(e.To)
		if !fromOK || !toOK {
			s.Dangling = append(s.Dangling, e)
		}
	}
	return s
}

func printSummary(w io.Writer, input string, s graphSummary) {
	printTitle(w, input)
	if s.LastUpdated != "" {
		printKeyValue(w, "Last updated", s.LastUpdated)
	}
	printKeyValue(w, "Nodes", fmt.Sprint(s.Nodes))
	printKeyValue(w, "Edges", fmt.Sprintf("%d (%d dependency, %d skipped)", s.Edges, s.Dependencies, s.Skipped))

	if len(s.Categories) > 0 {
		printNewline(w)
		printTitle(w, "Categories")
		printCounts(w, s.Categories)
	}
	if len(s.Statuses) > 0 {
		printNewline(w)
		printTitle(w, "Statuses")
		printCounts(w, s.Statuses)
	}

	if len(s.Dangling) > 0 {
		printNewline(w)
		printWarning(w, "%d dependency edges reference undeclared modules", len(s.Dangling))
		for _, e := range s.Dangling {
			printDetail(w, "%s --> %s", e.From, e.To)
		}
	}
}

func printCounts(w io.Writer, counts []labeledCount) {
	width := 0
	for _, c := range counts {
		width = max(width, len(c.Label))
	}
	for _, c := range counts {
		printCount(w, c.Label, c.Count, width)
	}
}
