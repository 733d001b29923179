package render

import "github.com/cim-modules/modgraph/pkg/registry"

// Group is the set of nodes that share a category.
type Group struct {
	Key   string // category key, the node type or DefaultCategory
	Name  string // display name
	Nodes []registry.Node
}

// GroupByCategory partitions the nodes of g by category. Groups appear in
// the order their first node appears; nodes keep document order within a
// group. A nil graph yields no groups.
func GroupByCategory(g *registry.Graph) []Group {
	if g == nil {
		return nil
	}

	var groups []Group
	index := make(map[string]int)
	for _, n := range g.Nodes.All() {
		key := CategoryKey(n.Type)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key, Name: CategoryName(key)})
		}
		groups[i].Nodes = append(groups[i].Nodes, n)
	}
	return groups
}

// DependencyEdges returns the edges of g drawn as arrows, in input order.
func DependencyEdges(g *registry.Graph) []registry.Edge {
	if g == nil {
		return nil
	}
	var out []registry.Edge
	for _, e := range g.Edges {
		if e.IsDependency() {
			out = append(out, e)
		}
	}
	return out
}
