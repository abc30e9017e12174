//Package netplot draws quick-look figures for network analyses: the degree
//distribution of one frame's graph and the time series of a scalar metric
//over the trajectory. Output format follows the filename extension, as
//supported by gonum's plot (png, svg, pdf and so on).
package netplot

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	watcon "github.com/abrownless1/WatCon"
	"github.com/abrownless1/WatCon/metrics"
	"github.com/abrownless1/WatCon/network"
)

// DegreeDistribution plots a histogram of node degrees for the selected
// subgraph.
func DegreeDistribution(g *network.Graph, sel metrics.Selection, filename string) error {
	sub := metrics.Subgraph(g, sel)
	nodes := sub.Nodes()
	if len(nodes) == 0 {
		return watcon.NewError(watcon.KindGeometryDegenerate, "netplot: nothing to plot, the graph has no nodes")
	}
	und := sub.Undirected()
	vals := make(plotter.Values, 0, len(nodes))
	maxDegree := 0
	for _, n := range nodes {
		d := und.From(n.ID()).Len()
		vals = append(vals, float64(d))
		if d > maxDegree {
			maxDegree = d
		}
	}
	p := plot.New()
	p.Title.Text = "Degree distribution"
	p.X.Label.Text = "degree"
	p.Y.Label.Text = "nodes"
	bins := maxDegree + 1
	h, err := plotter.NewHist(vals, bins)
	if err != nil {
		return watcon.NewError(watcon.KindOther, "netplot: can't build histogram: %v", err)
	}
	p.Add(h)
	if err := p.Save(5*vg.Inch, 4*vg.Inch, filename); err != nil {
		return watcon.NewError(watcon.KindOther, "netplot: can't save %s: %v", filename, err)
	}
	return nil
}

// MetricSeries plots one metric value per frame as a line. NaN values mark
// frames where the metric failed; those frames are left out of the line.
func MetricSeries(values []float64, name, filename string) error {
	pts := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: v})
	}
	if len(pts) == 0 {
		return watcon.NewError(watcon.KindGeometryDegenerate, "netplot: nothing to plot, no values for %s", name)
	}
	p := plot.New()
	p.Title.Text = name
	p.X.Label.Text = "frame"
	p.Y.Label.Text = name
	l, err := plotter.NewLine(pts)
	if err != nil {
		return watcon.NewError(watcon.KindOther, "netplot: can't build line: %v", err)
	}
	p.Add(l)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return watcon.NewError(watcon.KindOther, "netplot: can't save %s: %v", filename, err)
	}
	return nil
}
