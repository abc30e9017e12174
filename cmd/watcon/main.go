// Command watcon analyzes water hydrogen-bond networks over a trajectory.
// It reads a YAML run configuration and a residue-annotated XYZ trajectory,
// builds one network per frame and writes the per-frame metrics as CSV.
package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abrownless1/WatCon/dyn"
	"github.com/abrownless1/WatCon/netplot"
	"github.com/abrownless1/WatCon/traj/xyz"
)

const version = "0.1.0"

var (
	configFile string
	trajFile   string
	outFile    string
	classFile  string
	plotDir    string
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:   "watcon",
		Short: "water hydrogen-bond network analysis",
		Long: `watcon builds per-frame water hydrogen-bond networks from a trajectory
and reports graph metrics: density, connected components, characteristic
path length, entropy, clustering and per-residue interaction counts.`,
		SilenceUsage: true,
	}
	run := &cobra.Command{
		Use:   "run",
		Short: "analyze a trajectory",
		RunE:  runAnalysis,
	}
	run.Flags().StringVarP(&configFile, "config", "c", "", "YAML run configuration")
	run.Flags().StringVarP(&trajFile, "traj", "t", "", "XYZ trajectory (plain, .gz or .zst)")
	run.Flags().StringVarP(&outFile, "output", "o", "metrics.csv", "per-frame metrics CSV")
	run.Flags().StringVar(&classFile, "class-log", "", "water classification CSV (optional, .zst compresses)")
	run.Flags().StringVar(&plotDir, "plot-dir", "", "write metric time-series plots here (optional)")
	run.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	run.MarkFlagRequired("traj")
	root.AddCommand(run)
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("watcon", version)
		},
	})
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()
	conf := dyn.DefaultConfig()
	if configFile != "" {
		conf, err = dyn.LoadConfig(configFile)
		if err != nil {
			return err
		}
	}
	pipe, err := dyn.NewPipeline(conf, logger)
	if err != nil {
		return err
	}
	if classFile != "" {
		clog, err := dyn.NewClassificationLog(classFile)
		if err != nil {
			return err
		}
		defer clog.Close()
		pipe.SetClassificationLog(clog)
	}
	reader, err := xyz.New(trajFile)
	if err != nil {
		return err
	}
	logger.Info("starting analysis",
		zap.String("trajectory", trajFile),
		zap.String("network_type", conf.NetworkType),
		zap.Int("workers", conf.Workers))
	results, err := pipe.Run(reader)
	if err != nil {
		return err
	}
	if err := writeMetrics(outFile, results); err != nil {
		return err
	}
	logger.Info("wrote metrics", zap.String("file", outFile), zap.Int("frames", len(results)))
	if plotDir != "" {
		if err := writePlots(plotDir, results); err != nil {
			return err
		}
		logger.Info("wrote plots", zap.String("dir", plotDir))
	}
	return nil
}

func writeMetrics(filename string, results []*dyn.FrameMetrics) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	fmt.Fprintln(f, "Frame,Density,CPL,Entropy,Components,WatWat,WatProt,Backbone,SideChain")
	for _, r := range results {
		fields := []string{
			fmt.Sprintf("%d", r.Frame),
			floatField(r.Density),
			floatField(r.CPL),
			floatField(r.Entropy),
		}
		if r.ConnectedComponents != nil {
			fields = append(fields, fmt.Sprintf("%d", len(r.ConnectedComponents)))
		} else {
			fields = append(fields, "")
		}
		if c := r.InteractionCounts; c != nil {
			fields = append(fields,
				fmt.Sprintf("%d", c.WatWat), fmt.Sprintf("%d", c.WatProt),
				fmt.Sprintf("%d", c.Backbone), fmt.Sprintf("%d", c.SideChain))
		} else {
			fields = append(fields, "", "", "", "")
		}
		fmt.Fprintln(f, strings.Join(fields, ","))
	}
	return nil
}

func floatField(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.4f", *v)
}

func writePlots(dir string, results []*dyn.FrameMetrics) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	series := map[string]func(*dyn.FrameMetrics) *float64{
		"density": func(r *dyn.FrameMetrics) *float64 { return r.Density },
		"cpl":     func(r *dyn.FrameMetrics) *float64 { return r.CPL },
		"entropy": func(r *dyn.FrameMetrics) *float64 { return r.Entropy },
	}
	for name, get := range series {
		vals := make([]float64, len(results))
		any := false
		for i, r := range results {
			if v := get(r); v != nil {
				vals[i] = *v
				any = true
			} else {
				vals[i] = math.NaN()
			}
		}
		if !any {
			continue
		}
		file := fmt.Sprintf("%s/%s.png", dir, name)
		if err := netplot.MetricSeries(vals, name, file); err != nil {
			return err
		}
	}
	return nil
}
