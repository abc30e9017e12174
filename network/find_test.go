package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	watcon "github.com/abrownless1/WatCon"
)

// water returns the three records of a water residue with the oxygen at the
// given position and the hydrogens set off towards +y.
func water(index, molid int, pos [3]float64) []watcon.AtomRecord {
	return []watcon.AtomRecord{
		{Index: index, Name: "OW", MolName: "WAT", MolID: molid, Coords: pos},
		{Index: index + 1, Name: "HW1", MolName: "WAT", MolID: molid,
			Coords: [3]float64{pos[0] + 0.76, pos[1] + 0.59, pos[2]}},
		{Index: index + 2, Name: "HW2", MolName: "WAT", MolID: molid,
			Coords: [3]float64{pos[0] - 0.76, pos[1] + 0.59, pos[2]}},
	}
}

func catalogOf(t *testing.T, records []watcon.AtomRecord) *watcon.AtomCatalog {
	t.Helper()
	cat, err := watcon.NewAtomCatalog(records, nil)
	require.NoError(t, err)
	return cat
}

func TestConnectionsWaterChain(t *testing.T) {
	var records []watcon.AtomRecord
	records = append(records, water(0, 100, [3]float64{0, 0, 0})...)
	records = append(records, water(3, 101, [3]float64{2.8, 0, 0})...)
	records = append(records, water(6, 102, [3]float64{5.6, 0, 0})...)
	cat := catalogOf(t, records)
	o := DefaultOptions()
	o.WaterOnly(true)
	conns, err := Connections(cat, nil, o)
	require.NoError(t, err)
	require.Len(t, conns, 2, "only consecutive pairs are within the cutoff")
	for _, c := range conns {
		assert.Less(t, c.From, c.To, "water-water edges list the lower index first")
		assert.Equal(t, WatWat, c.Bond)
		assert.Equal(t, SiteNone, c.Site, "no active site defined")
	}
	pairs := map[[2]int]bool{}
	for _, c := range conns {
		pairs[[2]int{c.From, c.To}] = true
	}
	assert.True(t, pairs[[2]int{0, 3}])
	assert.True(t, pairs[[2]int{3, 6}])
}

func TestConnectionsNoFalsePositives(t *testing.T) {
	//a 3x3 grid of waters spaced 4.0 apart, everything beyond the cutoff
	var records []watcon.AtomRecord
	idx, molid := 0, 100
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			records = append(records, water(idx, molid, [3]float64{float64(i) * 4.0, float64(j) * 4.0, 0})...)
			idx += 3
			molid++
		}
	}
	cat := catalogOf(t, records)
	o := DefaultOptions()
	o.WaterOnly(true)
	conns, err := Connections(cat, nil, o)
	require.NoError(t, err)
	assert.Empty(t, conns, "grid spacing 4.0 exceeds the 3.3 cutoff")
}

func TestConnectionsProtein(t *testing.T) {
	var records []watcon.AtomRecord
	records = append(records, water(0, 100, [3]float64{0, 0, 0})...)
	records = append(records,
		watcon.AtomRecord{Index: 3, Name: "O", MolName: "ALA", MolID: 1, Coords: [3]float64{3.0, 0, 0}},
		watcon.AtomRecord{Index: 4, Name: "OG", MolName: "SER", MolID: 2, Coords: [3]float64{0, -3.0, 0}},
		watcon.AtomRecord{Index: 5, Name: "N", MolName: "GLY", MolID: 3, Coords: [3]float64{20, 20, 20}},
	)
	cat := catalogOf(t, records)
	conns, err := Connections(cat, nil)
	require.NoError(t, err)
	roles := map[int]Role{}
	for _, c := range conns {
		require.Equal(t, WatProt, c.Bond)
		roles[c.From] = c.Role
	}
	require.Len(t, roles, 2, "the far nitrogen is outside the cutoff")
	assert.Equal(t, RoleBackbone, roles[3], "bare O is backbone")
	assert.Equal(t, RoleSideChain, roles[4], "OG is side-chain")
}

func TestConnectionsNoProtein(t *testing.T) {
	cat := catalogOf(t, water(0, 100, [3]float64{0, 0, 0}))
	_, err := Connections(cat, nil)
	require.Error(t, err)
	assert.True(t, watcon.IsDataMissing(err), "no protein should be signaled, not masked")
}

func TestActiveSiteSelection(t *testing.T) {
	var records []watcon.AtomRecord
	records = append(records,
		watcon.AtomRecord{Index: 0, Name: "N", MolName: "HIS", MolID: 1, Coords: [3]float64{0, 0, 0}})
	records = append(records, water(1, 100, [3]float64{3.0, 0, 0})...)
	records = append(records, water(4, 101, [3]float64{10.0, 0, 0})...)
	cat := catalogOf(t, records)
	ref := ReferenceByResid(cat, []int{1})
	require.Len(t, ref, 1)
	site, err := SelectActiveSite(cat, ref, 5.0, nil)
	require.NoError(t, err)
	require.Len(t, site.Waters, 1, "only the near water is in the site")
	assert.Equal(t, 100, site.Waters[0].MolID)
	assert.True(t, site.ContainsResid(1), "reference resids are always included")
	assert.Equal(t, SiteActive, site.Status(100))
	assert.Equal(t, SiteNotActive, site.Status(101))
}

func TestActiveSiteBadInput(t *testing.T) {
	cat := catalogOf(t, water(0, 100, [3]float64{0, 0, 0}))
	_, err := SelectActiveSite(cat, nil, 5.0, nil)
	require.Error(t, err)
	assert.True(t, watcon.IsConfiguration(err))
	ref := []*watcon.Atom{{Index: 0, MolID: 1}}
	_, err = SelectActiveSite(cat, ref, 0, nil)
	require.Error(t, err)
	assert.True(t, watcon.IsConfiguration(err))
}

func TestDirectedConnections(t *testing.T) {
	//water A's first hydrogen points straight at water B's oxygen
	records := []watcon.AtomRecord{
		{Index: 0, Name: "OW", MolName: "WAT", MolID: 100, Coords: [3]float64{0, 0, 0}},
		{Index: 1, Name: "HW1", MolName: "WAT", MolID: 100, Coords: [3]float64{0.96, 0, 0}},
		{Index: 2, Name: "HW2", MolName: "WAT", MolID: 100, Coords: [3]float64{-0.3, 0.9, 0}},
		{Index: 3, Name: "OW", MolName: "WAT", MolID: 101, Coords: [3]float64{2.7, 0, 0}},
		{Index: 4, Name: "HW1", MolName: "WAT", MolID: 101, Coords: [3]float64{3.5, 0.6, 0}},
		{Index: 5, Name: "HW2", MolName: "WAT", MolID: 101, Coords: [3]float64{3.5, -0.6, 0}},
	}
	cat := catalogOf(t, records)
	o := DefaultDirectedOptions()
	o.WaterOnly(true)
	conns, err := DirectedConnections(cat, nil, o)
	require.NoError(t, err)
	require.Len(t, conns, 1, "only A's aligned hydrogen reaches B's oxygen")
	assert.Equal(t, 0, conns[0].From, "the edge runs donor oxygen to acceptor oxygen")
	assert.Equal(t, 3, conns[0].To)
	assert.Equal(t, WatWat, conns[0].Bond)
}

func TestDirectedAngleCriteria(t *testing.T) {
	records := []watcon.AtomRecord{
		{Index: 0, Name: "OW", MolName: "WAT", MolID: 100, Coords: [3]float64{0, 0, 0}},
		{Index: 1, Name: "HW1", MolName: "WAT", MolID: 100, Coords: [3]float64{0.96, 0, 0}},
		{Index: 2, Name: "HW2", MolName: "WAT", MolID: 100, Coords: [3]float64{-0.3, 0.9, 0}},
		//B sits off-axis, so the O-H...O angle at A's first hydrogen is bent
		{Index: 3, Name: "OW", MolName: "WAT", MolID: 101, Coords: [3]float64{1.2, 1.5, 0}},
		{Index: 4, Name: "HW1", MolName: "WAT", MolID: 101, Coords: [3]float64{2.0, 2.1, 0}},
		{Index: 5, Name: "HW2", MolName: "WAT", MolID: 101, Coords: [3]float64{0.4, 2.1, 0}},
	}
	cat := catalogOf(t, records)
	loose := DefaultDirectedOptions()
	loose.WaterOnly(true)
	unfiltered, err := DirectedConnections(cat, nil, loose)
	require.NoError(t, err)
	strict := DefaultDirectedOptions()
	strict.WaterOnly(true)
	strict.AngleCriteria(150)
	filtered, err := DirectedConnections(cat, nil, strict)
	require.NoError(t, err)
	assert.Less(t, len(filtered), len(unfiltered),
		"the bent geometry must fail a 150 degree criteria")
	for _, c := range filtered {
		found := false
		for _, u := range unfiltered {
			if u.From == c.From && u.To == c.To {
				found = true
			}
		}
		assert.True(t, found, "filtering never invents edges")
	}
}

func TestDirectedExcludesIntramolecular(t *testing.T) {
	cat := catalogOf(t, water(0, 100, [3]float64{0, 0, 0}))
	o := DefaultDirectedOptions()
	o.WaterOnly(true)
	conns, err := DirectedConnections(cat, nil, o)
	require.NoError(t, err)
	assert.Empty(t, conns, "a lone water's hydrogens never bond its own oxygen")
}
