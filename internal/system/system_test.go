package system

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"frontier.sim/internal/artist"
	"frontier.sim/internal/avatar"
	"frontier.sim/internal/bridges"
	"frontier.sim/internal/geometry"
	"frontier.sim/internal/params"
	"frontier.sim/internal/persistence/snapshot"
	"frontier.sim/internal/protocol"
	"frontier.sim/internal/settlement"
	"frontier.sim/internal/sim"
	"frontier.sim/internal/territory"
	"frontier.sim/internal/travel"
	"frontier.sim/internal/world"
)

type captureSink struct {
	batches [][]artist.Command
}

func (c *captureSink) SendDraw(_ int64, commands []artist.Command) {
	if len(commands) > 0 {
		c.batches = append(c.batches, commands)
	}
}

func testState(t *testing.T) (*State, *captureSink) {
	t.Helper()
	elevations := geometry.NewGridFilled(8, 8, 2.0)
	w := world.New(elevations, 1.0)
	w.RevealAll()
	game := &sim.Game{
		World:       w,
		Settlements: settlement.Settlements{},
		Nations:     settlement.NewNations(settlement.NationDescriptions()),
		Territory:   territory.New(8, 8),
		Bridges:     bridges.NewBridges(),
		ModeFn:      travel.NewAvatarModeFn(0.05, true),
	}
	simState := sim.NewState(8, 8, sim.DefaultParams())
	simulation := sim.NewSimulation(game, simState, nil)

	inputs := avatar.JourneyInputs{
		World:          w,
		TravelDuration: travel.NewConstant(time.Second),
		ModeFn:         game.ModeFn,
		Bridges:        game.Bridges,
		BridgeDuration: bridges.DefaultDurationFn(),
	}
	avatars := avatar.NewAvatars()
	avatars.Add(&avatar.Avatar{
		Name:    "scout",
		Journey: avatar.Stationary(w, geometry.Pos(3, 3), avatar.RotationRight, avatar.VehicleNone, 0),
	})
	avatars.Select("scout")

	sink := &captureSink{}
	tuning := params.New(3, 7, true)
	state := &State{
		Sim:          simulation,
		Avatars:      avatars,
		Controls:     avatar.Controls{Inputs: inputs},
		Labels:       artist.NewLabels(),
		WorldArtist:  artist.NewWorldArtist(artist.DefaultColoringParams(), 8),
		TownArtist:   artist.NewTownArtist(artist.DefaultTownArtistParams()),
		AvatarArtist: artist.NewAvatarArtist(),
		LabelArtist:  artist.NewLabelArtist(),
		Out:          sink,
		Params:       tuning,
		Paths:        snapshot.Paths{Base: filepath.Join(t.TempDir(), "alpha")},
		Log:          log.New(io.Discard),
		StepsPerTick: 4,
		territoryLayer: true,
	}
	return state, sink
}

func pressed(key string, ctrl bool) protocol.InputEvent {
	return protocol.InputEvent{
		Kind: protocol.EventButton,
		Button: &protocol.ButtonEvent{
			Key:       key,
			State:     protocol.StatePressed,
			Modifiers: protocol.Modifiers{Ctrl: ctrl},
		},
	}
}

func TestTickAdvancesClockAndDraws(t *testing.T) {
	state, sink := testState(t)
	state.init()
	if len(sink.batches) != 1 {
		t.Fatalf("init drew %d batches", len(sink.batches))
	}

	state.handle(protocol.InputEvent{Kind: protocol.EventTick, ElapsedMicros: 500_000})
	if state.micros != 500_000 {
		t.Errorf("micros = %d", state.micros)
	}
	if state.Sim.Game().Micros != 500_000 {
		t.Errorf("game micros = %d", state.Sim.Game().Micros)
	}
}

func TestCtrlSpaceTogglesPause(t *testing.T) {
	state, _ := testState(t)
	state.init()

	state.handle(pressed("space", true))
	if !state.Sim.Paused() {
		t.Fatalf("not paused")
	}
	state.handle(protocol.InputEvent{Kind: protocol.EventTick, ElapsedMicros: 500_000})
	if state.micros != 0 {
		t.Errorf("clock advanced while paused: %d", state.micros)
	}

	state.handle(pressed("space", true))
	if state.Sim.Paused() {
		t.Errorf("still paused")
	}
}

func TestReleasedButtonIgnored(t *testing.T) {
	state, _ := testState(t)
	state.init()
	state.handle(protocol.InputEvent{
		Kind: protocol.EventButton,
		Button: &protocol.ButtonEvent{
			Key:       "space",
			State:     protocol.StateReleased,
			Modifiers: protocol.Modifiers{Ctrl: true},
		},
	})
	if state.Sim.Paused() {
		t.Errorf("released key paused the game")
	}
}

func TestWalkForwardMovesSelectedAvatar(t *testing.T) {
	state, _ := testState(t)
	state.init()

	state.handle(pressed("w", false))
	final := state.Avatars.Selected().Journey.FinalFrame()
	if final.Position != geometry.Pos(4, 3) {
		t.Errorf("avatar heading to %v", final.Position)
	}
}

func TestCtrlPWritesSaveFiles(t *testing.T) {
	state, _ := testState(t)
	state.init()
	state.handle(protocol.InputEvent{Kind: protocol.EventTick, ElapsedMicros: 250_000})

	state.handle(pressed("p", true))
	for _, path := range []string{state.Paths.Sim(), state.Paths.Labels(), state.Paths.Parameters()} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing %s: %v", path, err)
		}
	}
	if state.Sim.Paused() {
		t.Errorf("save left the game paused")
	}

	var blob snapshot.SaveV1
	if err := snapshot.Read(state.Paths.Sim(), &blob); err != nil {
		t.Fatalf("read save: %v", err)
	}
	if blob.Micros != 250_000 || blob.SelectedName != "scout" {
		t.Errorf("blob %d %q", blob.Micros, blob.SelectedName)
	}
}

func TestLabelToggleAtCursor(t *testing.T) {
	state, _ := testState(t)
	state.init()

	state.handle(pressed("l", false))
	if state.Labels.Len() != 0 {
		t.Fatalf("label placed with no cursor")
	}

	cursor := geometry.Pos(2, 5)
	state.handle(protocol.InputEvent{Kind: protocol.EventWorldPositionChanged, Position: &cursor})
	state.handle(pressed("l", false))
	if state.Labels.Get(cursor) != "camp" {
		t.Fatalf("label not placed: %q", state.Labels.Get(cursor))
	}
	state.handle(pressed("l", false))
	if state.Labels.Len() != 0 {
		t.Errorf("label not removed")
	}
}

func TestTerritoryLayerToggleRedraws(t *testing.T) {
	state, sink := testState(t)
	state.init()
	before := len(sink.batches)

	state.handle(pressed("t", false))
	if state.territoryLayer {
		t.Errorf("layer still on")
	}
	if len(sink.batches) <= before {
		t.Errorf("no redraw after toggle")
	}
}
