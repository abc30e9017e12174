package metrics

import (
	watcon "github.com/abrownless1/WatCon"
	"github.com/abrownless1/WatCon/network"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
)

// PathMode selects how the characteristic path length handles a disconnected
// graph.
type PathMode int

const (
	//PathAll averages the per-component path lengths.
	PathAll PathMode = iota
	//PathLongest reports the value for the largest component only.
	PathLongest
)

// ParsePathMode reads a path mode as the configuration files spell it.
func ParsePathMode(name string) (PathMode, error) {
	switch name {
	case "", "all":
		return PathAll, nil
	case "longest":
		return PathLongest, nil
	}
	return PathAll, watcon.NewError(watcon.KindConfiguration, "unknown path mode %q", name)
}

// CPL returns the characteristic path length of the selected subgraph: the
// mean shortest-path hop count over all ordered node pairs. If the subgraph
// is not connected (for directed graphs, if any ordered pair is unreachable)
// it falls back to the undirected view, computes the per-component average
// path length, and either averages those values (PathAll) or reports the
// largest component's value (PathLongest). Size-1 components contribute a
// length of zero unless excludeSingles is set, in which case they are left
// out entirely. An empty subgraph has no path length and yields a
// degenerate-geometry error.
func CPL(g *network.Graph, sel Selection, mode PathMode, excludeSingles bool) (float64, error) {
	s := Subgraph(g, sel)
	nodes := graphNodes(s.Gonum())
	if len(nodes) == 0 {
		return 0, watcon.NewError(watcon.KindGeometryDegenerate, "path length undefined for an empty graph")
	}
	if cpl, connected := meanShortestPath(s.Gonum(), nodes); connected {
		return cpl, nil
	}
	und := s.Undirected()
	comps := topo.ConnectedComponents(und)
	var perComp []float64
	var largest []graph.Node
	for _, c := range comps {
		if len(c) > len(largest) {
			largest = c
		}
		if excludeSingles && len(c) < 2 {
			continue
		}
		cpl, _ := meanShortestPath(und, c) //a component is connected by construction
		perComp = append(perComp, cpl)
	}
	if mode == PathLongest {
		cpl, _ := meanShortestPath(und, largest)
		return cpl, nil
	}
	if len(perComp) == 0 {
		return 0, watcon.NewError(watcon.KindGeometryDegenerate, "no component of 2 or more nodes to take a path length from")
	}
	var sum float64
	for _, v := range perComp {
		sum += v
	}
	return sum / float64(len(perComp)), nil
}

// meanShortestPath returns the mean hop count over all ordered pairs of the
// given nodes, by breadth-first search from each node, and whether every
// pair was reachable. A single node has a mean path length of zero.
func meanShortestPath(g graph.Graph, nodes []graph.Node) (float64, bool) {
	if len(nodes) < 2 {
		return 0, true
	}
	var bfs traverse.BreadthFirst
	total := 0
	connected := true
	for _, u := range nodes {
		reached := 0
		bfs.Walk(g, u, func(n graph.Node, depth int) bool {
			if n.ID() != u.ID() {
				total += depth
				reached++
			}
			return false
		})
		bfs.Reset()
		if reached != len(nodes)-1 {
			connected = false
		}
	}
	pairs := len(nodes) * (len(nodes) - 1)
	return float64(total) / float64(pairs), connected
}

func graphNodes(g graph.Graph) []graph.Node {
	it := g.Nodes()
	out := make([]graph.Node, 0, it.Len())
	for it.Next() {
		out = append(out, it.Node())
	}
	return out
}
