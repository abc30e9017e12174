/*
 * config.go, part of watcon
 *
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
 * GNU Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public
 * License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 */

//Package dyn runs the per-frame analysis over a whole trajectory. It
//builds one network per frame, evaluates the requested metrics and
//collects the results in frame order, distributing the frames over a
//bounded pool of workers.
package dyn

import (
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	watcon "github.com/abrownless1/WatCon"
	"github.com/abrownless1/WatCon/metrics"
	"github.com/abrownless1/WatCon/network"
)

// Conditions selects which metrics are evaluated per frame.
type Conditions struct {
	Density                  bool `yaml:"density"`
	ConnectedComponents      bool `yaml:"connected_components"`
	InteractionCounts        bool `yaml:"interaction_counts"`
	PerResidueInteractions   bool `yaml:"per_residue_interactions"`
	CharacteristicPathLength bool `yaml:"characteristic_path_length"`
	GraphEntropy             bool `yaml:"graph_entropy"`
	ClusteringCoefficient    bool `yaml:"clustering_coefficient"`
	Coordinates              bool `yaml:"coordinates"`
}

// AllConditions enables every metric.
func AllConditions() Conditions {
	return Conditions{
		Density:                  true,
		ConnectedComponents:      true,
		InteractionCounts:        true,
		PerResidueInteractions:   true,
		CharacteristicPathLength: true,
		GraphEntropy:             true,
		ClusteringCoefficient:    true,
		Coordinates:              true,
	}
}

// Config holds the full run setup for a trajectory analysis.
type Config struct {
	NetworkType         string       `yaml:"network_type"`      //water-protein or water-water
	IncludeHydrogens    bool         `yaml:"include_hydrogens"` //hydrogen-resolved, directed networks
	Cutoff              float64      `yaml:"cutoff"`
	AngleCriteria       float64      `yaml:"angle_criteria"` //degrees, <=0 disables the check
	ActiveSiteReference []int        `yaml:"active_site_reference"`
	ActiveSiteRadius    float64      `yaml:"active_site_radius"`
	ActiveSiteOnly      bool         `yaml:"active_site_only"`
	Selection           string       `yaml:"selection"` //all, active_site or not_active_site
	PathMode            string       `yaml:"path_mode"` //all or longest
	ExcludeSinglePoints bool         `yaml:"exclude_single_points"`
	ClassifyWater       bool         `yaml:"classify_water"`
	ReferenceCoords     [][3]float64 `yaml:"reference_coords"`
	Workers             int          `yaml:"workers"`
	AbortOnError        bool         `yaml:"abort_on_error"`
	MSAMap              map[int]int  `yaml:"msa_map"`
	Analysis            Conditions   `yaml:"analysis_conditions"`
}

// DefaultConfig returns a water-protein run with the usual cutoffs and all
// metrics on.
func DefaultConfig() *Config {
	return &Config{
		NetworkType:      "water-protein",
		Cutoff:           network.DefaultCutoff,
		AngleCriteria:    -1,
		ActiveSiteRadius: 8.0,
		Selection:        "all",
		PathMode:         "all",
		Workers:          runtime.NumCPU(),
		Analysis:         AllConditions(),
	}
}

// LoadConfig reads a YAML run setup, applying defaults for anything
// the file leaves out.
func LoadConfig(filename string) (*Config, error) {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, watcon.NewError(watcon.KindConfiguration, "dyn: can't read config %s: %v", filename, err)
	}
	conf := DefaultConfig()
	//a file that names analysis conditions replaces the default full set,
	//one that stays silent keeps it
	conf.Analysis = Conditions{}
	if err := yaml.Unmarshal(buf, conf); err != nil {
		return nil, watcon.NewError(watcon.KindConfiguration, "dyn: can't parse config %s: %v", filename, err)
	}
	if conf.Analysis == (Conditions{}) {
		conf.Analysis = AllConditions()
	}
	if err := conf.Validate(); err != nil {
		return nil, watcon.EDecorate(err, "LoadConfig")
	}
	return conf, nil
}

// Validate checks the enumerated fields and the numeric ranges.
func (C *Config) Validate() error {
	switch strings.ToLower(C.NetworkType) {
	case "water-protein", "water-water":
	default:
		return watcon.NewError(watcon.KindConfiguration, "dyn: unknown network type %q", C.NetworkType)
	}
	if C.Cutoff <= 0 {
		return watcon.NewError(watcon.KindConfiguration, "dyn: cutoff must be positive, got %v", C.Cutoff)
	}
	if _, err := metrics.ParseSelection(C.Selection); err != nil {
		return err
	}
	if _, err := metrics.ParsePathMode(C.PathMode); err != nil {
		return err
	}
	if C.ActiveSiteOnly && len(C.ActiveSiteReference) == 0 {
		return watcon.NewError(watcon.KindConfiguration, "dyn: active_site_only needs active_site_reference resids")
	}
	if C.ClassifyWater && len(C.ReferenceCoords) == 0 {
		return watcon.NewError(watcon.KindConfiguration, "dyn: classify_water needs at least one reference coordinate")
	}
	if C.Workers <= 0 {
		C.Workers = runtime.NumCPU()
	}
	return nil
}

// WaterOnly reports whether the run builds water-water networks.
func (C *Config) WaterOnly() bool {
	return strings.ToLower(C.NetworkType) == "water-water"
}
