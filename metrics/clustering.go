package metrics

import (
	"github.com/abrownless1/WatCon/network"
	"gonum.org/v1/gonum/graph"
)

// ClusteringCoefficient returns the local clustering coefficient of every
// node of the selected subgraph: the fraction of a node's neighbor pairs
// that are themselves connected. Nodes with fewer than two neighbors have a
// coefficient of zero. Directed graphs are evaluated on their undirected
// view.
func ClusteringCoefficient(g *network.Graph, sel Selection) map[int64]float64 {
	und := Subgraph(g, sel).Undirected()
	out := make(map[int64]float64)
	it := und.Nodes()
	for it.Next() {
		id := it.Node().ID()
		neigh := neighborIDs(und.From(id))
		k := len(neigh)
		if k < 2 {
			out[id] = 0
			continue
		}
		links := 0
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				if und.HasEdgeBetween(neigh[i], neigh[j]) {
					links++
				}
			}
		}
		out[id] = 2 * float64(links) / float64(k*(k-1))
	}
	return out
}

func neighborIDs(it graph.Nodes) []int64 {
	var out []int64
	for it.Next() {
		out = append(out, it.Node().ID())
	}
	return out
}
