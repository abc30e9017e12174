package network

import (
	"math"

	watcon "github.com/abrownless1/WatCon"
	"github.com/abrownless1/WatCon/geo"
)

// Default search parameters. The directed cutoff is tighter because it is
// measured H...acceptor, not oxygen-oxygen.
const (
	DefaultCutoff         = 3.3
	DefaultDirectedCutoff = 2.0
	defaultNeighbors      = 10
)

// Options holds the parameters of a connection search.
type Options struct {
	cutoff         float64
	k              int
	waterOnly      bool
	activeSiteOnly bool
	angle          float64 //degrees; <0 means no angle criteria
}

// DefaultOptions returns the Options for an undirected oxygen-only search.
func DefaultOptions() *Options {
	return &Options{cutoff: DefaultCutoff, k: defaultNeighbors, angle: -1}
}

// DefaultDirectedOptions returns the Options for a directed hydrogen-explicit
// search.
func DefaultDirectedOptions() *Options {
	return &Options{cutoff: DefaultDirectedCutoff, k: defaultNeighbors, angle: -1}
}

// Cutoff returns the distance cutoff, and sets it to the given value, if any.
func (o *Options) Cutoff(cutoff ...float64) float64 {
	ret := o.cutoff
	if len(cutoff) > 0 && cutoff[0] > 0 {
		o.cutoff = cutoff[0]
	}
	return ret
}

// K returns the maximum neighbors considered per query point, and sets it,
// if a valid value is given.
func (o *Options) K(k ...int) int {
	ret := o.k
	if len(k) > 0 && k[0] > 0 {
		o.k = k[0]
	}
	return ret
}

// WaterOnly returns whether the search only considers waters, and sets it,
// if a value is given.
func (o *Options) WaterOnly(wo ...bool) bool {
	ret := o.waterOnly
	if len(wo) > 0 {
		o.waterOnly = wo[0]
	}
	return ret
}

// ActiveSiteOnly returns whether the search is restricted to the active-site
// subset, and sets it, if a value is given.
func (o *Options) ActiveSiteOnly(aso ...bool) bool {
	ret := o.activeSiteOnly
	if len(aso) > 0 {
		o.activeSiteOnly = aso[0]
	}
	return ret
}

// AngleCriteria returns the donor-H...acceptor angle threshold in degrees
// (negative means no angle filtering), and sets it, if a value is given.
func (o *Options) AngleCriteria(deg ...float64) float64 {
	ret := o.angle
	if len(deg) > 0 {
		o.angle = deg[0]
	}
	return ret
}

// scope returns the water and protein sets the search runs over.
func scope(cat *watcon.AtomCatalog, site *ActiveSite, o *Options) ([]*watcon.WaterMolecule, []*watcon.Atom) {
	if o.activeSiteOnly && site != nil {
		return site.Waters, site.Protein
	}
	return cat.Waters, cat.Protein
}

// Connections finds the undirected, oxygen-only hydrogen-bond candidates of
// one frame. For each water oxygen it finds the k nearest other oxygens
// within the cutoff and emits a WAT-WAT connection per pair, lower oxygen
// index first, so no unordered pair is ever duplicated. Unless the water-only
// option is set, it also finds protein atoms within the cutoff of each
// oxygen and emits WAT-PROT connections, classifying the protein atom as
// backbone (the bare O or N backbone names) or side-chain.
//
// The neighbor searches use plain distances even when the frame has a box:
// the subsets are assumed already filtered to a local shell, so no pair of
// interest wraps around the boundary.
func Connections(cat *watcon.AtomCatalog, site *ActiveSite, options ...*Options) ([]*Connection, error) {
	o := DefaultOptions()
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	}
	waters, protein := scope(cat, site, o)
	var conns []*Connection
	if !o.waterOnly && len(protein) == 0 {
		return nil, watcon.NewError(watcon.KindDataMissing, "water-protein network requested but the frame has no protein atoms")
	}
	opts := make([]geo.Point, len(waters))
	for i, w := range waters {
		opts[i] = geo.Point{Loc: w.O.Coords, ID: i}
	}
	oindex := geo.NewIndex(opts)
	for i, w := range waters {
		for _, n := range oindex.Query(w.O.Coords, o.k, o.cutoff) {
			if n.ID == i {
				continue //the query oxygen itself
			}
			other := waters[n.ID]
			if w.O.Index >= other.O.Index {
				continue //the mirrored query emits this pair
			}
			conns = append(conns, &Connection{
				From: w.O.Index,
				To:   other.O.Index,
				Name: w.O.Name,
				Bond: WatWat,
				Site: site.Status(w.MolID, other.MolID),
			})
		}
	}
	if o.waterOnly {
		return conns, nil
	}
	ppts := make([]geo.Point, len(protein))
	for i, at := range protein {
		ppts[i] = geo.Point{Loc: at.Coords, ID: i}
	}
	pindex := geo.NewIndex(ppts)
	for _, w := range waters {
		for _, n := range pindex.Query(w.O.Coords, o.k, o.cutoff) {
			at := protein[n.ID]
			role := RoleSideChain
			if at.Name == "O" || at.Name == "N" {
				role = RoleBackbone
			}
			conns = append(conns, &Connection{
				From: at.Index,
				To:   w.O.Index,
				Name: at.Name,
				Bond: WatProt,
				Site: site.Status(w.MolID, at.MolID),
				Role: role,
			})
		}
	}
	return conns, nil
}

// donor is one hydrogen available for a directed connection, together with
// the identity of its owner (the oxygen index for water hydrogens, the
// hydrogen's own index for protein hydrogens) and its residue.
type donor struct {
	h     *watcon.Atom
	owner int
	resid int
}

// acceptor is one electronegative atom available as a hydrogen-bond acceptor.
type acceptor struct {
	at    *watcon.Atom
	water bool
	mol   *watcon.WaterMolecule //owner, for water oxygens
}

// DirectedConnections finds the hydrogen-explicit, directed hydrogen-bond
// candidates of one frame. Donors are each water's two hydrogens plus, unless
// water-only, the protein hydrogens; acceptors are the water oxygens plus the
// protein O/N/S/P atoms. For every donor hydrogen it queries acceptors within
// the cutoff and emits a directed connection hydrogen-owner -> acceptor.
// Connections inside a single water molecule are never emitted.
//
// When an angle criteria (in degrees) is set, the donor-H...acceptor angle,
// measured at the hydrogen between the directions to the donor heavy atom and
// to the acceptor, must be at least the threshold. The donor heavy atom is
// the owner oxygen for water hydrogens, and for protein hydrogens the nearest
// non-hydrogen atom of the hydrogen's own residue.
func DirectedConnections(cat *watcon.AtomCatalog, site *ActiveSite, options ...*Options) ([]*Connection, error) {
	o := DefaultDirectedOptions()
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	}
	waters, protein := scope(cat, site, o)
	if !o.waterOnly && len(protein) == 0 {
		return nil, watcon.NewError(watcon.KindDataMissing, "water-protein network requested but the frame has no protein atoms")
	}
	var watDonors []donor
	for _, w := range waters {
		for _, h := range w.Hydrogens() {
			watDonors = append(watDonors, donor{h: h, owner: w.O.Index, resid: w.MolID})
		}
	}
	var watAcc []acceptor
	for _, w := range waters {
		watAcc = append(watAcc, acceptor{at: w.O, water: true, mol: w})
	}
	var protDonors []donor
	var protAcc []acceptor
	if !o.waterOnly {
		for _, at := range protein {
			if at.HBonding {
				protAcc = append(protAcc, acceptor{at: at})
			} else if at.IsHydrogen() {
				protDonors = append(protDonors, donor{h: at, owner: at.Index, resid: at.MolID})
			}
		}
	}
	var conns []*Connection
	//protein hydrogens -> water oxygens
	for _, c := range matchDonors(cat, protDonors, watAcc, WatProt, site, o) {
		conns = append(conns, c)
	}
	//water hydrogens -> protein acceptors
	for _, c := range matchDonors(cat, watDonors, protAcc, WatProt, site, o) {
		conns = append(conns, c)
	}
	//water hydrogens -> water oxygens
	for _, c := range matchDonors(cat, watDonors, watAcc, WatWat, site, o) {
		conns = append(conns, c)
	}
	return conns, nil
}

// matchDonors queries the acceptor set for every donor hydrogen and emits the
// qualifying directed connections.
func matchDonors(cat *watcon.AtomCatalog, donors []donor, acceptors []acceptor, bond BondType, site *ActiveSite, o *Options) []*Connection {
	if len(donors) == 0 || len(acceptors) == 0 {
		return nil
	}
	apts := make([]geo.Point, len(acceptors))
	for i, a := range acceptors {
		apts[i] = geo.Point{Loc: a.at.Coords, ID: i}
	}
	aindex := geo.NewIndex(apts)
	var conns []*Connection
	for _, d := range donors {
		for _, n := range aindex.Query(d.h.Coords, o.k, o.cutoff) {
			a := acceptors[n.ID]
			if a.water && a.mol.MolID == d.resid {
				continue //same water molecule
			}
			if o.angle >= 0 && !passesAngle(cat, d, a, o.angle) {
				continue
			}
			conns = append(conns, &Connection{
				From: d.owner,
				To:   a.at.Index,
				Name: d.h.Name,
				Bond: bond,
				Site: site.Status(d.resid, a.at.MolID),
			})
		}
	}
	return conns
}

// passesAngle evaluates the donor-H...acceptor angle at the hydrogen. A
// hydrogen without a locatable donor heavy atom, or degenerate geometry,
// fails the criteria rather than producing an unchecked edge.
func passesAngle(cat *watcon.AtomCatalog, d donor, a acceptor, criteria float64) bool {
	heavy, ok := donorHeavy(cat, d)
	if !ok {
		return false
	}
	ang, err := geo.VertexAngle(d.h.Coords, heavy, a.at.Coords)
	if err != nil {
		return false
	}
	return ang*geo.Rad2Deg >= criteria
}

// donorHeavy locates the heavy atom the donor hydrogen is covalently bound
// to: the owner oxygen for a water hydrogen, and for a protein hydrogen the
// nearest non-hydrogen atom among its own residue's atoms.
func donorHeavy(cat *watcon.AtomCatalog, d donor) ([3]float64, bool) {
	if d.h.Category == watcon.WaterHydrogen {
		w := cat.Water(d.owner)
		if w == nil {
			return [3]float64{}, false
		}
		return w.O.Coords, true
	}
	best := math.Inf(1)
	var pos [3]float64
	found := false
	for _, at := range cat.Protein {
		if at.MolID != d.resid || at.IsHydrogen() {
			continue
		}
		if dist := geo.Dist(at.Coords, d.h.Coords); dist < best {
			best = dist
			pos = at.Coords
			found = true
		}
	}
	return pos, found
}
