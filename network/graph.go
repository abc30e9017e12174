package network

import (
	watcon "github.com/abrownless1/WatCon"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// NodeCategory tags what a graph node stands for.
type NodeCategory int

const (
	WaterNode NodeCategory = iota
	ProteinNode
)

func (c NodeCategory) String() string {
	if c == WaterNode {
		return "WAT"
	}
	return "PROTEIN"
}

// Node is one network node: a water oxygen or a protein atom. It carries its
// own copies of the metadata so the originating AtomCatalog can be discarded
// after the graph is built. It implements gonum's graph.Node.
type Node struct {
	id       int64 //the atom index (oxygen index for waters)
	Category NodeCategory
	Name     string
	MolID    int
	MSA      int //watcon.NoMSA when no alignment applies
	Pos      [3]float64
}

// NewNode returns a node keyed by the given atom index. Build makes the
// nodes of a frame's network; this constructor is for hand-assembled graphs.
func NewNode(id int64, cat NodeCategory) *Node {
	return &Node{id: id, Category: cat, MSA: watcon.NoMSA}
}

// ID satisfies graph.Node.
func (n *Node) ID() int64 { return n.id }

// Index returns the node identity as the atom index it was built from.
func (n *Node) Index() int { return int(n.id) }

// Edge is one network edge, carrying the bond category and active-site tag of
// the Connection it was built from. It implements gonum's graph.Edge.
type Edge struct {
	F, T *Node
	Bond BondType
	Site SiteStatus
}

func (e *Edge) From() graph.Node { return e.F }
func (e *Edge) To() graph.Node   { return e.T }

// ReversedEdge returns a copy of the edge with the endpoints swapped.
func (e *Edge) ReversedEdge() graph.Edge {
	r := *e
	r.F, r.T = e.T, e.F
	return &r
}

// Graph is a typed hydrogen-bond network, either undirected (oxygen-only) or
// directed (hydrogen-donor -> acceptor-oxygen). It wraps a gonum simple graph
// so the topo and path machinery applies directly. A Graph is built once per
// frame by Build and never mutated afterwards.
type Graph struct {
	directed bool
	und      *simple.UndirectedGraph
	dir      *simple.DirectedGraph
}

// NewGraph returns an empty graph of the given directedness.
func NewGraph(directed bool) *Graph {
	g := &Graph{directed: directed}
	if directed {
		g.dir = simple.NewDirectedGraph()
	} else {
		g.und = simple.NewUndirectedGraph()
	}
	return g
}

// Directed returns whether the graph is directed.
func (g *Graph) Directed() bool { return g.directed }

// Gonum exposes the underlying gonum graph.
func (g *Graph) Gonum() graph.Graph {
	if g.directed {
		return g.dir
	}
	return g.und
}

// AddNode inserts a node. Adding an existing id again is a no-op, so callers
// need not track which atoms already joined the graph.
func (g *Graph) AddNode(n *Node) {
	if g.Gonum().Node(n.id) != nil {
		return
	}
	if g.directed {
		g.dir.AddNode(n)
	} else {
		g.und.AddNode(n)
	}
}

// SetEdge inserts an edge. Both endpoints must already be nodes of the graph.
func (g *Graph) SetEdge(e *Edge) {
	if g.directed {
		g.dir.SetEdge(e)
	} else {
		g.und.SetEdge(e)
	}
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id int64) *Node {
	n := g.Gonum().Node(id)
	if n == nil {
		return nil
	}
	return n.(*Node)
}

// Nodes returns all nodes, in no particular order.
func (g *Graph) Nodes() []*Node {
	it := g.Gonum().Nodes()
	out := make([]*Node, 0, it.Len())
	for it.Next() {
		out = append(out, it.Node().(*Node))
	}
	return out
}

// Edges returns all edges, each once, in no particular order.
func (g *Graph) Edges() []*Edge {
	var it graph.Edges
	if g.directed {
		it = g.dir.Edges()
	} else {
		it = g.und.Edges()
	}
	var out []*Edge
	for it.Next() {
		out = append(out, it.Edge().(*Edge))
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return g.Gonum().Nodes().Len() }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.Edges()) }

// Undirected returns an undirected view of the graph: the graph itself when
// already undirected, or a copy with every directed edge present between its
// endpoints. Metrics that are defined on undirected graphs (components,
// clustering, disconnected path lengths) use this view.
func (g *Graph) Undirected() *simple.UndirectedGraph {
	if !g.directed {
		return g.und
	}
	und := simple.NewUndirectedGraph()
	it := g.dir.Nodes()
	for it.Next() {
		und.AddNode(it.Node())
	}
	eit := g.dir.Edges()
	for eit.Next() {
		e := eit.Edge().(*Edge)
		if !und.HasEdgeBetween(e.F.ID(), e.T.ID()) {
			und.SetEdge(e)
		}
	}
	return und
}

// BuildOptions holds the parameters of graph assembly.
type BuildOptions struct {
	Directed       bool
	WaterOnly      bool
	ActiveSiteOnly bool
}

// Build assembles a graph from the scoped waters and protein atoms plus the
// finder's connections. One node is added per water oxygen (category WAT)
// and, unless water-only, per protein atom (category PROTEIN, with its
// alignment column; atoms without one carry watcon.NoMSA). One edge is added
// per connection. With ActiveSiteOnly only connections tagged active_site
// become edges, but every scoped node is still added, so density and degree
// statistics run over the active-site node population.
//
// A connection endpoint that is not among the scoped atoms is a defect in the
// caller's scoping and fails the build.
func Build(waters []*watcon.WaterMolecule, protein []*watcon.Atom, conns []*Connection, o BuildOptions) (*Graph, error) {
	g := NewGraph(o.Directed)
	for _, w := range waters {
		g.AddNode(&Node{
			id:       int64(w.O.Index),
			Category: WaterNode,
			Name:     w.O.Name,
			MolID:    w.MolID,
			MSA:      watcon.NoMSA,
			Pos:      w.O.Coords,
		})
	}
	if !o.WaterOnly {
		for _, at := range protein {
			g.AddNode(&Node{
				id:       int64(at.Index),
				Category: ProteinNode,
				Name:     at.Name,
				MolID:    at.MolID,
				MSA:      at.MSA,
				Pos:      at.Coords,
			})
		}
	}
	for _, c := range conns {
		if o.ActiveSiteOnly && c.Site != SiteActive {
			continue
		}
		from := g.Node(int64(c.From))
		to := g.Node(int64(c.To))
		if from == nil || to == nil {
			return nil, watcon.NewError(watcon.KindDataMissing, "connection %d-%d references an atom outside the graph scope", c.From, c.To)
		}
		g.SetEdge(&Edge{F: from, T: to, Bond: c.Bond, Site: c.Site})
	}
	return g, nil
}
