/*
 * atoms.go, part of watcon.
 *
 * Copyright 2026 The watcon authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package watcon

import "strings"

// NoMSA is the alignment-column value of an atom without an alignment.
const NoMSA = -1

// Category tags what an atom is. It is assigned once, when the atom enters a
// catalog, so that no later stage re-infers it by string matching on residue
// names.
type Category int

const (
	//ProteinAtom is any non-water atom (protein or "other").
	ProteinAtom Category = iota
	//WaterOxygen is the oxygen of a water molecule.
	WaterOxygen
	//WaterHydrogen is one of the two hydrogens of a water molecule.
	WaterHydrogen
)

func (c Category) String() string {
	switch c {
	case WaterOxygen:
		return "WAT-O"
	case WaterHydrogen:
		return "WAT-H"
	}
	return "PROTEIN"
}

// Atom contains one atom of a frame: its identity, residue, coordinate and
// hydrogen-bonding classification. Atoms are immutable once constructed for
// a frame.
type Atom struct {
	Index    int //unique within a frame
	Name     string
	MolName  string
	MolID    int
	MSA      int //alignment column, NoMSA if none
	Category Category
	HBonding bool //name contains O, N, S or P
	Coords   [3]float64
}

// Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("watcon: attempted to copy a nil atom")
	}
	newat := *A
	return &newat
}

// IsHydrogen returns whether the atom name marks a hydrogen.
func (A *Atom) IsHydrogen() bool {
	return strings.Contains(A.Name, "H") && !A.HBonding
}

// hbonding returns whether an atom with the given name can act as a
// hydrogen-bond acceptor (the name contains O, N, S or P).
func hbonding(name string) bool {
	return strings.ContainsAny(name, "ONSP")
}

// waterNames are the residue names recognized as water.
var waterNames = []string{"WAT", "HOH", "SOL", "H2O"}

// IsWaterResidue returns whether resname names a water residue.
func IsWaterResidue(resname string) bool {
	for _, n := range waterNames {
		if resname == n {
			return true
		}
	}
	return false
}

// WaterMolecule groups the oxygen and the two hydrogens of one water residue.
// All three atoms share the same MolID. The oxygen atom's index is the
// molecule's identity in any network it joins.
type WaterMolecule struct {
	MolID int
	O     *Atom
	H1    *Atom
	H2    *Atom
}

// NewWaterMolecule builds a WaterMolecule from its three atoms. It returns an
// error if the atoms do not share a residue id.
func NewWaterMolecule(o, h1, h2 *Atom) (*WaterMolecule, error) {
	if o == nil || h1 == nil || h2 == nil {
		return nil, NewError(KindDataMissing, "water molecule needs an oxygen and two hydrogens")
	}
	if o.MolID != h1.MolID || o.MolID != h2.MolID {
		return nil, NewError(KindDataMissing, "water atoms %d %d %d do not share a residue id", o.Index, h1.Index, h2.Index)
	}
	return &WaterMolecule{MolID: o.MolID, O: o, H1: h1, H2: h2}, nil
}

// Index returns the network identity of the molecule, i.e. the oxygen index.
func (W *WaterMolecule) Index() int {
	if W == nil || W.O == nil {
		panic("watcon: requested the index of an incomplete water molecule")
	}
	return W.O.Index
}

// Position returns the canonical position of the molecule (the oxygen
// coordinate), used for oxygen-only networks.
func (W *WaterMolecule) Position() [3]float64 {
	if W == nil || W.O == nil {
		panic("watcon: requested the position of an incomplete water molecule")
	}
	return W.O.Coords
}

// Hydrogens returns the two hydrogens of the molecule.
func (W *WaterMolecule) Hydrogens() [2]*Atom {
	return [2]*Atom{W.H1, W.H2}
}
