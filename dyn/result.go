package dyn

import (
	"github.com/abrownless1/WatCon/residues"
)

// FrameMetrics holds everything computed for one frame. Metric fields are
// pointers or nil-able containers so a metric that was off, or failed for
// this frame, is distinguishable from a zero value. Per-metric failures land
// in Failures keyed by metric name.
type FrameMetrics struct {
	Frame                  int
	Density                *float64
	ConnectedComponents    []int //component sizes, descending
	InteractionCounts      *residues.Counts
	PerResidueInteractions map[int]int
	CPL                    *float64
	Entropy                *float64
	ClusteringCoefficient  map[int64]float64
	Classifications        []residues.Classification
	Coordinates            [][3]float64 //water oxygen positions in the network
	Failures               map[string]string
}

func (F *FrameMetrics) fail(metric string, err error) {
	if F.Failures == nil {
		F.Failures = make(map[string]string)
	}
	F.Failures[metric] = err.Error()
}

// AggregateCoordinates concatenates the water coordinates of every frame,
// the input a density-based clusterer wants.
func AggregateCoordinates(results []*FrameMetrics) [][3]float64 {
	var all [][3]float64
	for _, r := range results {
		if r == nil {
			continue
		}
		all = append(all, r.Coordinates...)
	}
	return all
}
