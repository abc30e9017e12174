package dyn

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	watcon "github.com/abrownless1/WatCon"
	"github.com/abrownless1/WatCon/residues"
)

func waterRecords(index, molid int, x float64) []watcon.AtomRecord {
	return []watcon.AtomRecord{
		{Index: index, Name: "OW", MolName: "WAT", MolID: molid, Coords: [3]float64{x, 0, 0}},
		{Index: index + 1, Name: "HW1", MolName: "WAT", MolID: molid, Coords: [3]float64{x + 0.76, 0.59, 0}},
		{Index: index + 2, Name: "HW2", MolName: "WAT", MolID: molid, Coords: [3]float64{x - 0.76, 0.59, 0}},
	}
}

// chainFrame returns three colinear waters spaced 2.8 apart.
func chainFrame() *watcon.Frame {
	var records []watcon.AtomRecord
	records = append(records, waterRecords(0, 100, 0.0)...)
	records = append(records, waterRecords(3, 101, 2.8)...)
	records = append(records, waterRecords(6, 102, 5.6)...)
	return &watcon.Frame{Records: records}
}

// sliceTraj feeds pre-built frames, ending like a real reader does.
type sliceTraj struct {
	frames []*watcon.Frame
	pos    int
}

func (s *sliceTraj) Readable() bool { return true }
func (s *sliceTraj) Len() int       { return 9 }
func (s *sliceTraj) Next() (*watcon.Frame, error) {
	if s.pos >= len(s.frames) {
		return nil, testLastFrame{}
	}
	f := s.frames[s.pos]
	s.pos++
	return f, nil
}

type testLastFrame struct{}

func (testLastFrame) Error() string               { return "EOF" }
func (testLastFrame) Decorate(string) []string    { return nil }
func (testLastFrame) Critical() bool              { return false }
func (testLastFrame) FileName() string            { return "test" }
func (testLastFrame) Format() string              { return "test" }
func (testLastFrame) NormalLastFrameTermination() {}

func TestProcessFrameWaterChain(t *testing.T) {
	conf := DefaultConfig()
	conf.NetworkType = "water-water"
	pipe, err := NewPipeline(conf, nil)
	require.NoError(t, err)
	fm, err := pipe.ProcessFrame(0, chainFrame())
	require.NoError(t, err)
	require.NotNil(t, fm.Density)
	assert.InDelta(t, 2.0/3.0, *fm.Density, 1e-12, "3 nodes, 2 edges")
	require.Len(t, fm.ConnectedComponents, 1)
	assert.Equal(t, 3, fm.ConnectedComponents[0])
	require.NotNil(t, fm.CPL)
	assert.InDelta(t, 4.0/3.0, *fm.CPL, 1e-12)
	assert.Len(t, fm.Coordinates, 3)
	assert.Empty(t, fm.Failures)
}

func TestProcessFrameDowngradesToWaterOnly(t *testing.T) {
	conf := DefaultConfig()
	conf.NetworkType = "water-protein"
	pipe, err := NewPipeline(conf, nil)
	require.NoError(t, err)
	fm, err := pipe.ProcessFrame(0, chainFrame())
	require.NoError(t, err, "a frame without protein degrades instead of failing")
	require.NotNil(t, fm.Density)
	assert.InDelta(t, 2.0/3.0, *fm.Density, 1e-12)
}

func TestProcessFrameSingleWater(t *testing.T) {
	conf := DefaultConfig()
	conf.NetworkType = "water-water"
	pipe, err := NewPipeline(conf, nil)
	require.NoError(t, err)
	frame := &watcon.Frame{Records: waterRecords(0, 100, 0.0)}
	fm, err := pipe.ProcessFrame(0, frame)
	require.NoError(t, err)
	assert.Nil(t, fm.Density, "density is undefined for one node")
	assert.Contains(t, fm.Failures, "density")
}

func TestRunOrdersResults(t *testing.T) {
	conf := DefaultConfig()
	conf.NetworkType = "water-water"
	conf.Workers = 4
	pipe, err := NewPipeline(conf, nil)
	require.NoError(t, err)
	traj := &sliceTraj{}
	for i := 0; i < 10; i++ {
		traj.frames = append(traj.frames, chainFrame())
	}
	results, err := pipe.Run(traj)
	require.NoError(t, err)
	require.Len(t, results, 10)
	for i, r := range results {
		assert.Equal(t, i, r.Frame, "results come back in frame order")
	}
}

func TestLoadConfig(t *testing.T) {
	yaml := `
network_type: water-water
cutoff: 3.0
selection: active_site
path_mode: longest
workers: 2
analysis_conditions:
  density: true
  graph_entropy: true
`
	file := filepath.Join(t.TempDir(), "conf.yaml")
	require.NoError(t, os.WriteFile(file, []byte(yaml), 0644))
	conf, err := LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "water-water", conf.NetworkType)
	assert.True(t, conf.WaterOnly())
	assert.Equal(t, 3.0, conf.Cutoff)
	assert.Equal(t, "longest", conf.PathMode)
	assert.Equal(t, 2, conf.Workers)
	assert.True(t, conf.Analysis.Density)
	assert.False(t, conf.Analysis.ClusteringCoefficient, "explicit conditions replace the defaults")
}

func TestConfigValidation(t *testing.T) {
	conf := DefaultConfig()
	conf.NetworkType = "protein-protein"
	err := conf.Validate()
	require.Error(t, err)
	assert.True(t, watcon.IsConfiguration(err))

	conf = DefaultConfig()
	conf.ClassifyWater = true
	err = conf.Validate()
	require.Error(t, err, "classification needs reference coordinates")
}

func TestClassificationLog(t *testing.T) {
	file := filepath.Join(t.TempDir(), "class.csv")
	log, err := NewClassificationLog(file)
	require.NoError(t, err)
	cs := []residues.Classification{{
		Resid: 100, MSAResid: 12, Index1: 0, Index2: 10,
		ProteinAtom: "O", Kind: "backbone",
		Angle1: 45.5, Angle2: math.NaN(),
	}}
	require.NoError(t, log.Append(3, cs))
	assert.Equal(t, 1, log.Rows())
	require.NoError(t, log.Close())

	buf, err := os.ReadFile(file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(buf)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Frame Index,Resid,MSA_Resid,Index_1,Index_2,Protein_Atom,Classification,Angle_1,Angle_2", lines[0])
	assert.Equal(t, "3,100,12,0,10,O,backbone,45.50,", lines[1], "a NaN angle becomes an empty field")
}
