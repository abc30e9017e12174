//Package residues tallies a built network's edges by bond category and by
//residue, and classifies the waters hydrogen-bonded to the protein. It is
//the residue-analysis collaborator the metrics suite delegates interaction
//counting to; it consumes only the graph's edges and node metadata, never
//the originating atom catalog.
package residues

import (
	"math"
	"sort"

	"github.com/abrownless1/WatCon/geo"
	"github.com/abrownless1/WatCon/metrics"
	"github.com/abrownless1/WatCon/network"
)

// Counts tallies a network's edges by bond category and, for water-protein
// edges, by the protein side's role.
type Counts struct {
	WatWat    int
	WatProt   int
	Backbone  int
	SideChain int
}

// InteractionCounts tallies the selected subgraph's edges. The protein role
// of a water-protein edge is read from the protein node's atom name, backbone
// being the bare O and N names.
func InteractionCounts(g *network.Graph, sel metrics.Selection) *Counts {
	c := new(Counts)
	for _, e := range metrics.Subgraph(g, sel).Edges() {
		if e.Bond == network.WatWat {
			c.WatWat++
			continue
		}
		c.WatProt++
		if p := proteinSide(e); p != nil {
			if p.Name == "O" || p.Name == "N" {
				c.Backbone++
			} else {
				c.SideChain++
			}
		}
	}
	return c
}

// PerResidueInteractions returns, per residue id, the number of selected
// edges incident on that residue's nodes. Both endpoints of an edge count
// towards their residues.
func PerResidueInteractions(g *network.Graph, sel metrics.Selection) map[int]int {
	out := make(map[int]int)
	for _, e := range metrics.Subgraph(g, sel).Edges() {
		f := e.F
		t := e.T
		out[f.MolID]++
		if t.MolID != f.MolID {
			out[t.MolID]++
		}
	}
	return out
}

func proteinSide(e *network.Edge) *network.Node {
	if e.F.Category == network.ProteinNode {
		return e.F
	}
	if e.T.Category == network.ProteinNode {
		return e.T
	}
	return nil
}

// Classification is one classified water: the protein partner it hydrogen
// bonds to and the geometry of the contact relative to one or two reference
// points. Angle2 is NaN when no second reference was supplied.
type Classification struct {
	Resid       int     //the water's residue id
	MSAResid    int     //alignment column of the partner protein residue
	Index1      int     //the water oxygen index
	Index2      int     //the partner protein atom index
	ProteinAtom string  //the partner protein atom name
	Kind        string  //backbone or side-chain
	Angle1      float64 //degrees at the oxygen, reference 1 vs partner
	Angle2      float64 //degrees at the oxygen, reference 2 vs partner
}

// ClassifyWaters classifies every water of the graph that has at least one
// water-protein edge, one record per water. A water with several protein
// partners is classified against the nearest one. ref1 is required; ref2 may
// be nil.
func ClassifyWaters(g *network.Graph, ref1 [3]float64, ref2 *[3]float64) []Classification {
	type partner struct {
		prot *network.Node
		dist float64
	}
	best := make(map[int64]partner) //water node id -> nearest protein partner
	waters := make(map[int64]*network.Node)
	for _, e := range g.Edges() {
		if e.Bond != network.WatProt {
			continue
		}
		prot := proteinSide(e)
		var wat *network.Node
		if prot == e.F {
			wat = e.T
		} else {
			wat = e.F
		}
		if prot == nil || wat.Category != network.WaterNode {
			continue
		}
		d := geo.Dist(wat.Pos, prot.Pos)
		if b, ok := best[wat.ID()]; !ok || d < b.dist {
			best[wat.ID()] = partner{prot: prot, dist: d}
			waters[wat.ID()] = wat
		}
	}
	var out []Classification
	for id, b := range best {
		wat := waters[id]
		kind := "side-chain"
		if b.prot.Name == "O" || b.prot.Name == "N" {
			kind = "backbone"
		}
		c := Classification{
			Resid:       wat.MolID,
			MSAResid:    b.prot.MSA,
			Index1:      wat.Index(),
			Index2:      b.prot.Index(),
			ProteinAtom: b.prot.Name,
			Kind:        kind,
			Angle1:      angleOrNaN(wat.Pos, ref1, b.prot.Pos),
			Angle2:      math.NaN(),
		}
		if ref2 != nil {
			c.Angle2 = angleOrNaN(wat.Pos, *ref2, b.prot.Pos)
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index1 < out[j].Index1 })
	return out
}

func angleOrNaN(vertex, a, b [3]float64) float64 {
	ang, err := geo.VertexAngle(vertex, a, b)
	if err != nil {
		return math.NaN()
	}
	return ang * geo.Rad2Deg
}
