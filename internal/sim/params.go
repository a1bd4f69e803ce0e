package sim

import "time"

// Params is the simulation tuning block. Durations are carried as
// milliseconds in yaml, matching the rest of the tuning files.
type Params struct {
	TrafficToPopulation     float64 `yaml:"traffic_to_population" json:"traffic_to_population"`
	NationFlipTrafficPc     float64 `yaml:"nation_flip_traffic_pc" json:"nation_flip_traffic_pc"`
	InitialTownPopulation   float64 `yaml:"initial_town_population" json:"initial_town_population"`
	TownRemovalPopulation   float64 `yaml:"town_removal_population" json:"town_removal_population"`
	RoadThreshold           int     `yaml:"road_threshold" json:"road_threshold"`
	TownTravelDurationMs    int64   `yaml:"town_travel_duration_ms" json:"town_travel_duration_ms"`
	StepIntervalMs          int64   `yaml:"step_interval_ms" json:"step_interval_ms"`
	DemandSources           int     `yaml:"demand_sources" json:"demand_sources"`
	PopulationPerDemandUnit float64 `yaml:"population_per_demand_unit" json:"population_per_demand_unit"`
}

func DefaultParams() Params {
	return Params{
		TrafficToPopulation:     0.5,
		NationFlipTrafficPc:     0.67,
		InitialTownPopulation:   0.5,
		TownRemovalPopulation:   0.3,
		RoadThreshold:           8,
		TownTravelDurationMs:    (6 * time.Hour).Milliseconds(),
		StepIntervalMs:          time.Second.Milliseconds(),
		DemandSources:           1,
		PopulationPerDemandUnit: 3.0,
	}
}

func (p Params) TownTravelDuration() time.Duration {
	return time.Duration(p.TownTravelDurationMs) * time.Millisecond
}

func (p Params) StepInterval() time.Duration {
	return time.Duration(p.StepIntervalMs) * time.Millisecond
}

func (p *Params) ApplyDefaults() {
	defaults := DefaultParams()
	if p.TrafficToPopulation == 0 {
		p.TrafficToPopulation = defaults.TrafficToPopulation
	}
	if p.NationFlipTrafficPc == 0 {
		p.NationFlipTrafficPc = defaults.NationFlipTrafficPc
	}
	if p.InitialTownPopulation == 0 {
		p.InitialTownPopulation = defaults.InitialTownPopulation
	}
	if p.TownRemovalPopulation == 0 {
		p.TownRemovalPopulation = defaults.TownRemovalPopulation
	}
	if p.RoadThreshold == 0 {
		p.RoadThreshold = defaults.RoadThreshold
	}
	if p.TownTravelDurationMs == 0 {
		p.TownTravelDurationMs = defaults.TownTravelDurationMs
	}
	if p.StepIntervalMs == 0 {
		p.StepIntervalMs = defaults.StepIntervalMs
	}
	if p.DemandSources == 0 {
		p.DemandSources = defaults.DemandSources
	}
	if p.PopulationPerDemandUnit == 0 {
		p.PopulationPerDemandUnit = defaults.PopulationPerDemandUnit
	}
}
