package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cim-modules/modgraph/pkg/registry"
)

func TestSummarize(t *testing.T) {
	doc, err := registry.ReadJSON(strings.NewReader(testGraph))
	if err != nil {
		t.Fatal(err)
	}
	doc.Graph.Edges = append(doc.Graph.Edges, registry.Edge{From: "cim-domain", To: "cim-ghost", Type: "dependency"})

	s := summarize(doc)

	if s.Nodes != 3 || s.Edges != 3 || s.Dependencies != 2 || s.Skipped != 1 {
		t.Errorf("counts = %d nodes, %d edges, %d deps, %d skipped; want 3, 3, 2, 1",
			s.Nodes, s.Edges, s.Dependencies, s.Skipped)
	}

	wantCategories := []labeledCount{{"Core Infrastructure", 2}, {"Storage Modules", 1}}
	if len(s.Categories) != len(wantCategories) {
		t.Fatalf("Categories = %v, want %v", s.Categories, wantCategories)
	}
	for i, c := range wantCategories {
		if s.Categories[i] != c {
			t.Errorf("Categories[%d] = %v, want %v", i, s.Categories[i], c)
		}
	}

	wantStatuses := []labeledCount{{"🟢 Production Ready", 1}, {"🟡 In Development", 1}, {"⚪ Unknown", 1}}
	if len(s.Statuses) != len(wantStatuses) {
		t.Fatalf("Statuses = %v, want %v", s.Statuses, wantStatuses)
	}
	for i, c := range wantStatuses {
		if s.Statuses[i] != c {
			t.Errorf("Statuses[%d] = %v, want %v", i, s.Statuses[i], c)
		}
	}

	if len(s.Dangling) != 1 || s.Dangling[0].To != "cim-ghost" {
		t.Errorf("Dangling = %v, want the edge to cim-ghost", s.Dangling)
	}
}

func TestSummarizeEmptyGraph(t *testing.T) {
	s := summarize(&registry.Document{Graph: &registry.Graph{}})
	if s.Nodes != 0 || len(s.Categories) != 0 || len(s.Statuses) != 0 {
		t.Errorf("summarize(empty) = %+v, want zero counts", s)
	}
}

func TestPrintSummary(t *testing.T) {
	doc, err := registry.ReadJSON(strings.NewReader(testGraph))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	printSummary(&buf, "modules-graph.json", summarize(doc))
	out := buf.String()

	for _, want := range []string{
		"modules-graph.json",
		"2025-01-15",
		"2 (1 dependency, 1 skipped)",
		"Core Infrastructure",
		"Storage Modules",
		"In Development",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "undeclared") {
		t.Errorf("summary should not warn without dangling edges:\n%s", out)
	}
}

func TestSummaryCommand(t *testing.T) {
	isolate(t)
	path := writeGraph(t, "modules-graph.json", testGraph)

	stdout, _, err := execute(t, "summary", path)
	if err != nil {
		t.Fatalf("summary error: %v", err)
	}
	if !strings.Contains(stdout, "Categories") || !strings.Contains(stdout, "Statuses") {
		t.Errorf("summary output incomplete:\n%s", stdout)
	}
}
