package watcon

import (
	"fmt"
	"testing"
)

func waterRecords(index, molid int, x float64) []AtomRecord {
	return []AtomRecord{
		{Index: index, Name: "OW", MolName: "WAT", MolID: molid, Coords: [3]float64{x, 0, 0}},
		{Index: index + 1, Name: "HW1", MolName: "WAT", MolID: molid, Coords: [3]float64{x + 0.8, 0.6, 0}},
		{Index: index + 2, Name: "HW2", MolName: "WAT", MolID: molid, Coords: [3]float64{x - 0.8, 0.6, 0}},
	}
}

func TestNewAtomCatalog(Te *testing.T) {
	var records []AtomRecord
	records = append(records, AtomRecord{Index: 0, Name: "N", MolName: "ALA", MolID: 1})
	records = append(records, AtomRecord{Index: 1, Name: "CA", MolName: "ALA", MolID: 1})
	records = append(records, AtomRecord{Index: 2, Name: "O", MolName: "ALA", MolID: 1})
	records = append(records, waterRecords(3, 100, 0.0)...)
	records = append(records, waterRecords(6, 101, 3.0)...)
	cat, err := NewAtomCatalog(records, MapIndexer{1: 42})
	if err != nil {
		Te.Fatal(err)
	}
	if len(cat.Protein) != 3 || len(cat.Waters) != 2 {
		Te.Errorf("got %d protein atoms and %d waters, want 3 and 2", len(cat.Protein), len(cat.Waters))
	}
	if cat.Len() != 9 {
		Te.Errorf("catalog length %d, want 9", cat.Len())
	}
	if cat.Protein[0].MSA != 42 {
		Te.Errorf("resid 1 should map to alignment column 42, got %d", cat.Protein[0].MSA)
	}
	if !cat.Protein[0].HBonding || cat.Protein[1].HBonding {
		Te.Error("N should be h-bonding and CA should not")
	}
	w := cat.Water(3)
	if w == nil || w.MolID != 100 {
		Te.Fatalf("water with oxygen index 3 not found")
	}
	fmt.Println("catalog", cat.Len(), "atoms,", len(cat.Waters), "waters")
}

func TestNewAtomCatalogNoAlignment(Te *testing.T) {
	records := []AtomRecord{{Index: 0, Name: "O", MolName: "GLY", MolID: 7}}
	cat, err := NewAtomCatalog(records, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if cat.Protein[0].MSA != NoMSA {
		Te.Errorf("no indexer given, MSA should be NoMSA, got %d", cat.Protein[0].MSA)
	}
}

func TestBadWaterResidue(Te *testing.T) {
	records := []AtomRecord{
		{Index: 0, Name: "OW", MolName: "WAT", MolID: 1},
		{Index: 1, Name: "HW1", MolName: "WAT", MolID: 1},
	}
	_, err := NewAtomCatalog(records, nil)
	if err == nil {
		Te.Fatal("a 2-atom water residue should fail the frame")
	}
	if !IsDataMissing(err) {
		Te.Errorf("expected a data-missing error, got %v", err)
	}
}

func TestWaterMoleculeAccessors(Te *testing.T) {
	cat, err := NewAtomCatalog(waterRecords(0, 5, 1.0), nil)
	if err != nil {
		Te.Fatal(err)
	}
	w := cat.Waters[0]
	if w.Index() != 0 {
		Te.Errorf("oxygen index %d, want 0", w.Index())
	}
	if p := w.Position(); p != [3]float64{1.0, 0, 0} {
		Te.Errorf("position %v, want the oxygen's", p)
	}
	hs := w.Hydrogens()
	if !hs[0].IsHydrogen() || !hs[1].IsHydrogen() {
		Te.Error("both hydrogens should report IsHydrogen")
	}
}
