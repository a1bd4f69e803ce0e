// Package params aggregates every tunable the game reads, loadable from
// yaml and persisted alongside saves.
package params

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"frontier.sim/internal/artist"
	"frontier.sim/internal/bridges"
	"frontier.sim/internal/sim"
	"frontier.sim/internal/travel"
	"frontier.sim/internal/worldgen"
)

// AutoRoadParams tune the road builder's cost model.
type AutoRoadParams struct {
	OffRoadMillis uint64 `yaml:"off_road_millis" json:"off_road_millis"`
	RoadMillis    uint64 `yaml:"road_millis" json:"road_millis"`
	PenaltyMillis uint64 `yaml:"penalty_millis" json:"penalty_millis"`
}

func DefaultAutoRoadParams() AutoRoadParams {
	return AutoRoadParams{
		OffRoadMillis: 3_600_000,
		RoadMillis:    1_200_000,
		PenaltyMillis: 1_800_000,
	}
}

type Params struct {
	Seed      int64 `yaml:"seed" json:"seed"`
	Power     int   `yaml:"power" json:"power"`
	RevealAll bool  `yaml:"reveal_all" json:"reveal_all"`
	Threads   int   `yaml:"threads" json:"threads"`
	Homelands int   `yaml:"homelands" json:"homelands"`

	Avatar         travel.AvatarParams     `yaml:"avatar" json:"avatar"`
	AutoRoad       AutoRoadParams          `yaml:"auto_road" json:"auto_road"`
	BridgeDuration bridges.DurationFn      `yaml:"bridge_duration" json:"bridge_duration"`
	Sim            sim.Params              `yaml:"sim" json:"sim"`
	WorldGen       worldgen.Params         `yaml:"world_gen" json:"world_gen"`
	WorldColoring  artist.ColoringParams   `yaml:"world_coloring" json:"world_coloring"`
	TownArtist     artist.TownArtistParams `yaml:"town_artist" json:"town_artist"`
	SlabSize       int                     `yaml:"slab_size" json:"slab_size"`
}

// New builds the parameters for a fresh world. Power sizes the world and
// the seed feeds every generator.
func New(power int, seed int64, revealAll bool) Params {
	p := Params{Seed: seed, Power: power, RevealAll: revealAll}
	p.ApplyDefaults()
	return p
}

func (p *Params) ApplyDefaults() {
	if p.Power == 0 {
		p.Power = 8
	}
	if p.Homelands == 0 {
		p.Homelands = 8
	}
	if p.Avatar == (travel.AvatarParams{}) {
		p.Avatar = travel.DefaultAvatarParams()
	}
	if p.AutoRoad == (AutoRoadParams{}) {
		p.AutoRoad = DefaultAutoRoadParams()
	}
	if p.BridgeDuration == (bridges.DurationFn{}) {
		p.BridgeDuration = bridges.DefaultDurationFn()
	}
	p.Sim.ApplyDefaults()
	if p.WorldGen == (worldgen.Params{}) {
		p.WorldGen = worldgen.DefaultParams()
	}
	p.WorldGen.Power = p.Power
	p.WorldGen.Seed = p.Seed
	if p.WorldColoring == (artist.ColoringParams{}) {
		p.WorldColoring = artist.DefaultColoringParams()
	}
	if p.TownArtist == (artist.TownArtistParams{}) {
		p.TownArtist = artist.DefaultTownArtistParams()
	}
	if p.SlabSize == 0 {
		p.SlabSize = 64
	}
}

// HomelandDistance is how far apart homeland starts are spread, growing
// with the world: 3600 * 2^power seconds of travel.
func (p Params) HomelandDistance() time.Duration {
	return time.Duration(3600*(int64(1)<<uint(p.Power))) * time.Second
}

// AutoRoadDuration builds the road builder's travel model from the tuning.
func (p Params) AutoRoadDuration() *travel.AutoRoad {
	return travel.NewAutoRoad(
		travel.NewConstant(time.Duration(p.AutoRoad.OffRoadMillis)*time.Millisecond),
		travel.NewConstant(time.Duration(p.AutoRoad.RoadMillis)*time.Millisecond),
		time.Duration(p.AutoRoad.PenaltyMillis)*time.Millisecond,
	)
}

// Load reads a yaml parameters file and fills gaps with defaults.
func Load(path string) (Params, error) {
	var p Params
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("parameters %s: %w", path, err)
	}
	p.ApplyDefaults()
	return p, nil
}

func Save(path string, p Params) error {
	raw, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
