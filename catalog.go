/*
 * catalog.go, part of watcon.
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

// AtomRecord is the flat per-atom datum a Trajectory supplies for one frame.
type AtomRecord struct {
	Index   int
	Name    string
	MolName string
	MolID   int
	Coords  [3]float64
}

// AtomCatalog is the per-frame collection of non-water atoms and water
// molecules, classified by residue name at ingestion time. A catalog is
// constructed fresh for every frame and discarded once the frame's graph and
// metrics have been produced; nothing is retained across frames.
type AtomCatalog struct {
	Protein []*Atom
	Waters  []*WaterMolecule
}

// NewAtomCatalog builds a catalog from trajectory records, grouping water
// residues (WAT, HOH, SOL, H2O) into WaterMolecule values and classifying
// everything else as protein/"other" atoms. If seq is not nil it supplies the
// alignment column per residue id; a missing id degrades to NoMSA, never to an
// error. Water residues that do not consist of exactly one oxygen and two
// hydrogens make the whole frame fail.
func NewAtomCatalog(records []AtomRecord, seq SequenceIndexer) (*AtomCatalog, error) {
	cat := &AtomCatalog{}
	var pending []AtomRecord //atoms of the water residue being read
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		err := cat.AddWater(pending)
		pending = nil
		return err
	}
	for _, rec := range records {
		if IsWaterResidue(rec.MolName) {
			if len(pending) > 0 && pending[0].MolID != rec.MolID {
				if err := flush(); err != nil {
					return nil, EDecorate(err, "NewAtomCatalog")
				}
			}
			pending = append(pending, rec)
			continue
		}
		if err := flush(); err != nil {
			return nil, EDecorate(err, "NewAtomCatalog")
		}
		cat.AddAtom(rec, alignmentFor(seq, rec.MolID))
	}
	if err := flush(); err != nil {
		return nil, EDecorate(err, "NewAtomCatalog")
	}
	return cat, nil
}

func alignmentFor(seq SequenceIndexer, molid int) int {
	if seq == nil {
		return NoMSA
	}
	col, ok := seq.AlignmentColumn(molid)
	if !ok {
		return NoMSA
	}
	return col
}

// AddAtom appends one non-water atom to the catalog, classifying its
// hydrogen-bonding capability from the atom name.
func (C *AtomCatalog) AddAtom(rec AtomRecord, msa int) {
	C.Protein = append(C.Protein, &Atom{
		Index:    rec.Index,
		Name:     rec.Name,
		MolName:  rec.MolName,
		MolID:    rec.MolID,
		MSA:      msa,
		Category: ProteinAtom,
		HBonding: hbonding(rec.Name),
		Coords:   rec.Coords,
	})
}

// AddWater appends one water molecule, given the records of a single water
// residue. The residue must hold exactly one oxygen and two hydrogens.
func (C *AtomCatalog) AddWater(records []AtomRecord) error {
	if len(records) != 3 {
		return NewError(KindDataMissing, "water residue %d has %d atoms, want 3", waterResID(records), len(records))
	}
	var o *Atom
	var hs []*Atom
	for _, rec := range records {
		at := &Atom{
			Index:   rec.Index,
			Name:    rec.Name,
			MolName: rec.MolName,
			MolID:   rec.MolID,
			MSA:     NoMSA,
			Coords:  rec.Coords,
		}
		if strings.HasPrefix(rec.Name, "O") {
			at.Category = WaterOxygen
			at.HBonding = true
			o = at
		} else {
			at.Category = WaterHydrogen
			hs = append(hs, at)
		}
	}
	if o == nil || len(hs) != 2 {
		return NewError(KindDataMissing, "water residue %d lacks an oxygen or two hydrogens", waterResID(records))
	}
	w, err := NewWaterMolecule(o, hs[0], hs[1])
	if err != nil {
		return EDecorate(err, "AddWater")
	}
	C.Waters = append(C.Waters, w)
	return nil
}

func waterResID(records []AtomRecord) int {
	if len(records) == 0 {
		return -1
	}
	return records[0].MolID
}

// Len returns the total number of atoms in the catalog.
func (C *AtomCatalog) Len() int {
	return len(C.Protein) + 3*len(C.Waters)
}

// Water returns the water molecule with the given oxygen index, or nil.
func (C *AtomCatalog) Water(oxygenIndex int) *WaterMolecule {
	for _, w := range C.Waters {
		if w.Index() == oxygenIndex {
			return w
		}
	}
	return nil
}

// ProteinAtomByIndex returns the protein atom with the given index, or nil.
func (C *AtomCatalog) ProteinAtomByIndex(index int) *Atom {
	for _, at := range C.Protein {
		if at.Index == index {
			return at
		}
	}
	return nil
}
