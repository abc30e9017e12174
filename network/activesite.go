package network

import (
	watcon "github.com/abrownless1/WatCon"
	"github.com/abrownless1/WatCon/geo"
)

// ActiveSite describes the subset of a frame's catalog lying within a radius
// of a reference atom group. It is returned by SelectActiveSite and passed
// explicitly to the finder and builder; nothing here is mutated as a side
// effect of other calls. A nil *ActiveSite everywhere means "no active site
// defined".
type ActiveSite struct {
	//Resids holds the residue ids of every member of the active set,
	//including the reference residues themselves.
	Resids map[int]bool
	//Protein holds the qualifying non-reference protein atoms.
	Protein []*watcon.Atom
	//Waters holds the qualifying water molecules.
	Waters []*watcon.WaterMolecule
}

// ContainsResid returns whether the residue id belongs to the active set.
// It is nil-safe: no active site contains nothing.
func (S *ActiveSite) ContainsResid(id int) bool {
	if S == nil {
		return false
	}
	return S.Resids[id]
}

// Status tags a connection whose endpoints have the given residue ids:
// SiteNone if no active site is defined, SiteActive if any endpoint residue
// is in the active set, SiteNotActive otherwise.
func (S *ActiveSite) Status(resids ...int) SiteStatus {
	if S == nil {
		return SiteNone
	}
	for _, id := range resids {
		if S.Resids[id] {
			return SiteActive
		}
	}
	return SiteNotActive
}

// SelectActiveSite partitions the catalog by distance to a reference atom
// group. An atom belonging to a reference residue is always included,
// regardless of distance. Any other protein atom is included iff its minimum
// distance to any reference atom is within radius; a water molecule is
// included iff any of its three atoms is. When box is not nil the distances
// are minimum-image.
func SelectActiveSite(cat *watcon.AtomCatalog, reference []*watcon.Atom, radius float64, box *geo.Box) (*ActiveSite, error) {
	if len(reference) == 0 {
		return nil, watcon.NewError(watcon.KindConfiguration, "active-site selection needs a non-empty reference group")
	}
	if radius <= 0 {
		return nil, watcon.NewError(watcon.KindConfiguration, "active-site radius must be positive, got %f", radius)
	}
	refResids := make(map[int]bool, len(reference))
	refPos := make([][3]float64, 0, len(reference))
	for _, at := range reference {
		refResids[at.MolID] = true
		refPos = append(refPos, at.Coords)
	}
	site := &ActiveSite{Resids: make(map[int]bool)}
	for id := range refResids {
		site.Resids[id] = true
	}
	for _, at := range cat.Protein {
		if refResids[at.MolID] {
			continue //reference members are already in
		}
		if geo.MinDist(at.Coords, refPos, box) <= radius {
			site.Resids[at.MolID] = true
			site.Protein = append(site.Protein, at)
		}
	}
	for _, w := range cat.Waters {
		d := geo.MinDist(w.O.Coords, refPos, box)
		if dh := geo.MinDist(w.H1.Coords, refPos, box); dh < d {
			d = dh
		}
		if dh := geo.MinDist(w.H2.Coords, refPos, box); dh < d {
			d = dh
		}
		if d <= radius {
			site.Resids[w.MolID] = true
			site.Waters = append(site.Waters, w)
		}
	}
	return site, nil
}

// ReferenceByResid collects the catalog's protein atoms belonging to the
// given residue ids, for use as an active-site reference group.
func ReferenceByResid(cat *watcon.AtomCatalog, resids []int) []*watcon.Atom {
	wanted := make(map[int]bool, len(resids))
	for _, id := range resids {
		wanted[id] = true
	}
	var ref []*watcon.Atom
	for _, at := range cat.Protein {
		if wanted[at.MolID] {
			ref = append(ref, at)
		}
	}
	return ref
}
