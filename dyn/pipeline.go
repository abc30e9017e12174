package dyn

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	watcon "github.com/abrownless1/WatCon"
	"github.com/abrownless1/WatCon/geo"
	"github.com/abrownless1/WatCon/metrics"
	"github.com/abrownless1/WatCon/network"
	"github.com/abrownless1/WatCon/residues"
)

// Pipeline turns trajectory frames into per-frame network metrics. One
// Pipeline serves a whole run; ProcessFrame is safe for concurrent use.
type Pipeline struct {
	conf     *Config
	log      *zap.Logger
	seq      watcon.SequenceIndexer
	sel      metrics.Selection
	pathMode metrics.PathMode
	classLog *ClassificationLog
}

// NewPipeline validates the configuration and readies a run. A nil logger
// gets a no-op one.
func NewPipeline(conf *Config, logger *zap.Logger) (*Pipeline, error) {
	if conf == nil {
		conf = DefaultConfig()
	}
	if err := conf.Validate(); err != nil {
		return nil, watcon.EDecorate(err, "NewPipeline")
	}
	if conf.ClassifyWater && len(conf.MSAMap) == 0 {
		return nil, watcon.NewError(watcon.KindConfiguration, "dyn: classify_water needs an msa_map to name alignment columns")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	sel, err := metrics.ParseSelection(conf.Selection)
	if err != nil {
		return nil, err
	}
	mode, err := metrics.ParsePathMode(conf.PathMode)
	if err != nil {
		return nil, err
	}
	P := &Pipeline{conf: conf, log: logger, sel: sel, pathMode: mode}
	if len(conf.MSAMap) > 0 {
		P.seq = watcon.MapIndexer(conf.MSAMap)
	}
	return P, nil
}

// SetClassificationLog attaches a shared log for per-water classifications.
// The caller keeps ownership and closes it after Run.
func (P *Pipeline) SetClassificationLog(l *ClassificationLog) {
	P.classLog = l
}

func (P *Pipeline) options(waterOnly bool) *network.Options {
	var o *network.Options
	if P.conf.IncludeHydrogens {
		o = network.DefaultDirectedOptions()
	} else {
		o = network.DefaultOptions()
	}
	o.Cutoff(P.conf.Cutoff)
	o.WaterOnly(waterOnly)
	o.ActiveSiteOnly(P.conf.ActiveSiteOnly)
	if P.conf.AngleCriteria > 0 {
		o.AngleCriteria(P.conf.AngleCriteria)
	}
	return o
}

// ProcessFrame builds the frame's network and evaluates the configured
// metrics. A frame without protein degrades to a water-only network when the
// run asked for water-protein; a metric failing on a degenerate graph is
// recorded in the result's Failures and does not fail the frame.
func (P *Pipeline) ProcessFrame(index int, frame *watcon.Frame) (*FrameMetrics, error) {
	conf := P.conf
	cat, err := watcon.NewAtomCatalog(frame.Records, P.seq)
	if err != nil {
		return nil, watcon.EDecorate(err, "ProcessFrame")
	}
	box := geo.NewBox(frame.Box)
	var site *network.ActiveSite
	if len(conf.ActiveSiteReference) > 0 {
		ref := network.ReferenceByResid(cat, conf.ActiveSiteReference)
		site, err = network.SelectActiveSite(cat, ref, conf.ActiveSiteRadius, box)
		if err != nil {
			return nil, watcon.EDecorate(err, "ProcessFrame")
		}
	}
	waterOnly := conf.WaterOnly()
	conns, err := P.findConnections(cat, site, waterOnly)
	if err != nil {
		if !waterOnly && watcon.IsDataMissing(err) {
			P.log.Warn("no protein atoms in frame, degrading to water-only network",
				zap.Int("frame", index))
			waterOnly = true
			conns, err = P.findConnections(cat, site, waterOnly)
		}
		if err != nil {
			return nil, watcon.EDecorate(err, "ProcessFrame")
		}
	}
	waters, protein := cat.Waters, cat.Protein
	if conf.ActiveSiteOnly && site != nil {
		waters, protein = site.Waters, site.Protein
	}
	g, err := network.Build(waters, protein, conns, network.BuildOptions{
		Directed:       conf.IncludeHydrogens,
		WaterOnly:      waterOnly,
		ActiveSiteOnly: conf.ActiveSiteOnly,
	})
	if err != nil {
		return nil, watcon.EDecorate(err, "ProcessFrame")
	}
	fm := &FrameMetrics{Frame: index}
	P.evaluate(fm, g, waters)
	if conf.ClassifyWater {
		fm.Classifications = P.classify(g)
		if P.classLog != nil {
			if err := P.classLog.Append(index, fm.Classifications); err != nil {
				return nil, watcon.EDecorate(err, "ProcessFrame")
			}
		}
	}
	return fm, nil
}

func (P *Pipeline) findConnections(cat *watcon.AtomCatalog, site *network.ActiveSite, waterOnly bool) ([]*network.Connection, error) {
	o := P.options(waterOnly)
	if P.conf.IncludeHydrogens {
		return network.DirectedConnections(cat, site, o)
	}
	return network.Connections(cat, site, o)
}

func (P *Pipeline) evaluate(fm *FrameMetrics, g *network.Graph, waters []*watcon.WaterMolecule) {
	cond := P.conf.Analysis
	if cond.Density {
		if d, err := metrics.Density(g, P.sel); err != nil {
			fm.fail("density", err)
		} else {
			fm.Density = &d
		}
	}
	if cond.ConnectedComponents {
		fm.ConnectedComponents = metrics.ConnectedComponents(g, P.sel)
	}
	if cond.InteractionCounts {
		fm.InteractionCounts = residues.InteractionCounts(g, P.sel)
	}
	if cond.PerResidueInteractions {
		fm.PerResidueInteractions = residues.PerResidueInteractions(g, P.sel)
	}
	if cond.CharacteristicPathLength {
		if v, err := metrics.CPL(g, P.sel, P.pathMode, P.conf.ExcludeSinglePoints); err != nil {
			fm.fail("characteristic_path_length", err)
		} else {
			fm.CPL = &v
		}
	}
	if cond.GraphEntropy {
		if v, err := metrics.Entropy(g, P.sel); err != nil {
			fm.fail("graph_entropy", err)
		} else {
			fm.Entropy = &v
		}
	}
	if cond.ClusteringCoefficient {
		fm.ClusteringCoefficient = metrics.ClusteringCoefficient(g, P.sel)
	}
	if cond.Coordinates {
		fm.Coordinates = make([][3]float64, len(waters))
		for i, w := range waters {
			fm.Coordinates[i] = w.Position()
		}
	}
}

func (P *Pipeline) classify(g *network.Graph) []residues.Classification {
	ref1 := P.conf.ReferenceCoords[0]
	var ref2 *[3]float64
	if len(P.conf.ReferenceCoords) > 1 {
		ref2 = &P.conf.ReferenceCoords[1]
	}
	return residues.ClassifyWaters(g, ref1, ref2)
}

type frameJob struct {
	index int
	frame *watcon.Frame
}

// Run reads the whole trajectory and processes its frames over the
// configured number of workers, returning results in frame order. A frame
// that fails is logged and skipped, unless the run aborts on error.
func (P *Pipeline) Run(traj watcon.Trajectory) ([]*FrameMetrics, error) {
	if traj == nil || !traj.Readable() {
		return nil, watcon.NewError(watcon.KindConfiguration, "dyn: trajectory is not readable")
	}
	jobs := make(chan frameJob, P.conf.Workers)
	out := make(chan *FrameMetrics, P.conf.Workers)
	fail := make(chan error, 1)
	var wg sync.WaitGroup
	for w := 0; w < P.conf.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				fm, err := P.ProcessFrame(j.index, j.frame)
				if err != nil {
					P.log.Error("frame failed", zap.Int("frame", j.index), zap.Error(err))
					if P.conf.AbortOnError {
						select {
						case fail <- err:
						default:
						}
					}
					continue
				}
				out <- fm
			}
		}()
	}
	var results []*FrameMetrics
	var collect sync.WaitGroup
	collect.Add(1)
	go func() {
		defer collect.Done()
		for fm := range out {
			results = append(results, fm)
		}
	}()
	var readErr error
	for i := 0; ; i++ {
		if P.conf.AbortOnError {
			select {
			case err := <-fail:
				readErr = err
			default:
			}
			if readErr != nil {
				break
			}
		}
		frame, err := traj.Next()
		if err != nil {
			if _, last := err.(watcon.LastFrameError); !last {
				readErr = watcon.EDecorate(err, "Run")
			}
			break
		}
		jobs <- frameJob{index: i, frame: frame}
	}
	close(jobs)
	wg.Wait()
	close(out)
	collect.Wait()
	if readErr == nil && P.conf.AbortOnError {
		select {
		case err := <-fail:
			readErr = err
		default:
		}
	}
	if readErr != nil {
		return nil, readErr
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Frame < results[j].Frame })
	P.log.Info("trajectory analysis done", zap.Int("frames", len(results)))
	return results, nil
}
