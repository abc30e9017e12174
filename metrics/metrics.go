//Package metrics computes graph-theoretic descriptors of a hydrogen-bond
//network: density, connected component sizes, characteristic path length,
//local clustering coefficients and degree-distribution entropy. Every
//operation accepts a Selection restricting it to the matching edge-induced
//subgraph. All operations are stateless; the graph is never modified.
package metrics

import (
	"math"

	watcon "github.com/abrownless1/WatCon"
	"github.com/abrownless1/WatCon/network"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/stat"
)

// Selection scopes a metric to a subset of a graph's edges.
type Selection int

const (
	//All uses the graph as built.
	All Selection = iota
	//ActiveSiteOnly keeps only edges tagged active_site.
	ActiveSiteOnly
	//NotActiveSite keeps only edges tagged not_active_site.
	NotActiveSite
)

func (s Selection) String() string {
	switch s {
	case ActiveSiteOnly:
		return "active_site"
	case NotActiveSite:
		return "not_active_site"
	}
	return "all"
}

// ParseSelection reads a selection name as the configuration files spell it.
func ParseSelection(name string) (Selection, error) {
	switch name {
	case "", "all":
		return All, nil
	case "active_site":
		return ActiveSiteOnly, nil
	case "not_active_site":
		return NotActiveSite, nil
	}
	return All, watcon.NewError(watcon.KindConfiguration, "unknown analysis selection %q", name)
}

// Subgraph returns the edge-filtered subgraph the selection induces: only
// edges whose active-site tag matches, and only the nodes incident to those
// edges. Nodes isolated by the filter are dropped, so they do not count
// towards the subgraph's size. All returns the graph itself.
func Subgraph(g *network.Graph, sel Selection) *network.Graph {
	if sel == All {
		return g
	}
	want := network.SiteActive
	if sel == NotActiveSite {
		want = network.SiteNotActive
	}
	s := network.NewGraph(g.Directed())
	for _, e := range g.Edges() {
		if e.Site != want {
			continue
		}
		s.AddNode(e.F)
		s.AddNode(e.T)
		s.SetEdge(e)
	}
	return s
}

// Density returns edges/(N(N-1)/2) for the selected subgraph. A subgraph
// with fewer than two nodes has no defined density; that case surfaces as a
// degenerate-geometry error, never as a silent zero or NaN.
func Density(g *network.Graph, sel Selection) (float64, error) {
	s := Subgraph(g, sel)
	n := s.NodeCount()
	if n < 2 {
		return 0, watcon.NewError(watcon.KindGeometryDegenerate, "density undefined for a graph of %d node(s)", n)
	}
	possible := float64(n*(n-1)) / 2
	return float64(s.EdgeCount()) / possible, nil
}

// ConnectedComponents returns the size of each connected component of the
// selected subgraph, in no particular order. Directed graphs use weak
// connectivity. An empty subgraph has no components.
func ConnectedComponents(g *network.Graph, sel Selection) []int {
	s := Subgraph(g, sel)
	comps := topo.ConnectedComponents(s.Undirected())
	sizes := make([]int, len(comps))
	for i, c := range comps {
		sizes[i] = len(c)
	}
	return sizes
}

// Entropy returns the Shannon entropy, in bits, of the selected subgraph's
// degree distribution: node degrees are bucketed into counts 0..max degree,
// normalized, and H = -sum p*log2(p) over the nonzero buckets. A graph where
// every node has the same degree has entropy 0. An empty subgraph has no
// degree distribution and yields a degenerate-geometry error.
func Entropy(g *network.Graph, sel Selection) (float64, error) {
	s := Subgraph(g, sel)
	degrees := nodeDegrees(s)
	if len(degrees) == 0 {
		return 0, watcon.NewError(watcon.KindGeometryDegenerate, "entropy undefined for an empty graph")
	}
	max := 0
	for _, d := range degrees {
		if d > max {
			max = d
		}
	}
	counts := make([]float64, max+1)
	for _, d := range degrees {
		counts[d]++
	}
	total := float64(len(degrees))
	for i := range counts {
		counts[i] /= total
	}
	//stat.Entropy works in nats; the degree-distribution convention is bits.
	return stat.Entropy(counts) / math.Ln2, nil
}

// nodeDegrees returns the degree of every node of g. For directed graphs the
// degree is in-degree plus out-degree.
func nodeDegrees(g *network.Graph) []int {
	nodes := g.Nodes()
	degrees := make([]int, 0, len(nodes))
	gg := g.Gonum()
	dir, directed := gg.(graph.Directed)
	for _, n := range nodes {
		if directed {
			degrees = append(degrees, iterLen(dir.From(n.ID()))+iterLen(dir.To(n.ID())))
		} else {
			degrees = append(degrees, iterLen(gg.From(n.ID())))
		}
	}
	return degrees
}

func iterLen(it graph.Nodes) int {
	if it == nil {
		return 0
	}
	n := 0
	for it.Next() {
		n++
	}
	return n
}
