// Package system is the controller: it owns the simulation and the
// artists, consumes renderer input events, and runs the pause, save and
// shutdown lifecycle.
package system

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"frontier.sim/internal/artist"
	"frontier.sim/internal/avatar"
	"frontier.sim/internal/engine"
	"frontier.sim/internal/geometry"
	"frontier.sim/internal/params"
	"frontier.sim/internal/persistence/indexdb"
	steplog "frontier.sim/internal/persistence/log"
	"frontier.sim/internal/persistence/snapshot"
	"frontier.sim/internal/protocol"
	"frontier.sim/internal/sim"
)

// DrawSink receives the draw commands each tick produces.
type DrawSink interface {
	SendDraw(micros int64, commands []artist.Command)
}

// worldRedrawInterval is game time between full terrain redraws; the
// per-slab timestamp collapse keeps repeated redraws from stacking up.
const worldRedrawInterval = time.Hour

// State is everything the controller actor owns. All mutation happens on
// the actor goroutine.
type State struct {
	Sim      *sim.Simulation
	Avatars  *avatar.Avatars
	Controls avatar.Controls
	Labels   *artist.Labels

	WorldArtist  *artist.WorldArtist
	TownArtist   *artist.TownArtist
	AvatarArtist *artist.AvatarArtist
	LabelArtist  *artist.LabelArtist

	Out     DrawSink
	StepLog *steplog.StepLogger
	Index   *indexdb.SQLiteIndex
	Params  params.Params
	Paths   snapshot.Paths
	Log     *log.Logger

	StepsPerTick int

	micros          int64
	cursor          *geometry.Position
	territoryLayer  bool
	lastWorldRedraw int64
}

// System drives the controller state through an actor so renderer events
// and simulation steps are serialized.
type System struct {
	actor  *engine.Actor[State]
	sender *engine.Sender[State]
}

func New(state State) *System {
	if state.StepsPerTick == 0 {
		state.StepsPerTick = 64
	}
	state.territoryLayer = true
	actor := engine.NewActor("system", state)
	return &System{actor: actor, sender: actor.Sender("system")}
}

// Start launches the actor and queues the initial full redraw.
func (s *System) Start() {
	s.actor.Start()
	engine.FireAndForget(s.sender, func(st *State) { st.init() })
}

// Run consumes renderer events until a shutdown event arrives, then saves
// and releases the state's resources.
func (s *System) Run(events <-chan protocol.InputEvent) {
	for event := range events {
		if event.Kind == protocol.EventShutdown {
			break
		}
		ev := event
		engine.FireAndForget(s.sender, func(st *State) { st.handle(ev) })
	}
	final := s.actor.Stop()
	final.shutdown()
}

// Save queues a save from outside the event stream.
func (s *System) Save() {
	engine.FireAndForget(s.sender, func(st *State) { st.save() })
}

func (st *State) init() {
	st.micros = st.Sim.Game().Micros
	st.lastWorldRedraw = st.micros
	commands := st.WorldArtist.RedrawAll(st.view(), st.micros)
	commands = append(commands, st.TownArtist.Draw(st.view(), st.micros)...)
	commands = append(commands, st.LabelArtist.Draw(st.Sim.Game().World, st.Labels)...)
	commands = append(commands, st.AvatarArtist.Draw(st.Avatars, st.micros)...)
	st.Out.SendDraw(st.micros, commands)
	st.Log.Info("world ready", "micros", st.micros, "settlements", len(st.Sim.Game().Settlements))
}

func (st *State) view() artist.View {
	game := st.Sim.Game()
	return artist.View{
		World:              game.World,
		Territory:          game.Territory,
		Settlements:        game.Settlements,
		Nations:            game.Nations,
		TownTravelDuration: st.Sim.State().Params.TownTravelDuration(),
		TerritoryLayer:     st.territoryLayer,
	}
}

func (st *State) handle(event protocol.InputEvent) {
	switch event.Kind {
	case protocol.EventTick:
		st.tick(event.ElapsedMicros)
	case protocol.EventButton:
		if event.Button != nil && event.Button.State == protocol.StatePressed {
			st.button(*event.Button)
		}
	case protocol.EventWorldPositionChanged:
		st.cursor = event.Position
	}
}

func (st *State) tick(elapsedMicros int64) {
	fromMicros := st.micros
	if !st.Sim.Paused() {
		st.micros += elapsedMicros
		for i := 0; i < st.StepsPerTick; i++ {
			st.stepOnce()
		}
		st.revealFromAvatars(fromMicros)
	}
	commands := st.TownArtist.Draw(st.view(), st.micros)
	commands = append(commands, st.AvatarArtist.Draw(st.Avatars, st.micros)...)
	commands = append(commands, st.LabelArtist.Draw(st.Sim.Game().World, st.Labels)...)
	if st.micros-st.lastWorldRedraw >= worldRedrawInterval.Microseconds() {
		commands = append(commands, st.WorldArtist.RedrawAll(st.view(), st.micros)...)
		st.lastWorldRedraw = st.micros
	}
	st.Out.SendDraw(st.micros, commands)
}

// revealFromAvatars runs line of sight from every cell an avatar crossed
// since the last tick and repaints the newly revealed terrain.
func (st *State) revealFromAvatars(fromMicros int64) {
	game := st.Sim.Game()
	if game.Visibility == nil || !game.Visibility.Active() {
		return
	}
	var visited []geometry.Position
	st.Avatars.ForEach(func(av *avatar.Avatar) {
		for _, frame := range av.Journey.FramesBetween(fromMicros, st.micros) {
			visited = append(visited, frame.Position)
		}
	})
	if len(visited) == 0 {
		return
	}
	revealed := game.RevealPositions(game.Visibility.CheckAndReveal(visited))
	if len(revealed) == 0 {
		return
	}
	var commands []artist.Command
	for _, position := range revealed {
		commands = append(commands, st.WorldArtist.RedrawTile(st.view(), position, st.micros)...)
	}
	st.Out.SendDraw(st.micros, commands)
}

func (st *State) stepOnce() {
	state := st.Sim.State()
	kind := sim.InstructionStep
	if n := len(state.Instructions); n > 0 {
		kind = state.Instructions[n-1].Kind
	}
	st.Sim.Step(st.micros)
	if st.StepLog != nil {
		_ = st.StepLog.WriteStep(steplog.StepEntry{
			WallNanos:  time.Now().UnixNano(),
			Micros:     st.micros,
			Kind:       kind,
			StackDepth: len(state.Instructions),
			QueueLen:   state.BuildQueue.Len(),
		})
	}
}

func (st *State) button(button protocol.ButtonEvent) {
	if button.Modifiers.Ctrl {
		switch button.Key {
		case "space":
			st.togglePause()
		case "p":
			st.save()
		}
		return
	}
	switch button.Key {
	case "w":
		st.editJourney(func(journey *avatar.Journey) (*avatar.Journey, error) {
			return st.Controls.WalkForward(journey, st.micros)
		})
	case "a":
		st.editJourney(func(journey *avatar.Journey) (*avatar.Journey, error) {
			return st.Controls.RotateAnticlockwise(journey, st.micros), nil
		})
	case "d":
		st.editJourney(func(journey *avatar.Journey) (*avatar.Journey, error) {
			return st.Controls.RotateClockwise(journey, st.micros), nil
		})
	case "s":
		st.editJourney(func(journey *avatar.Journey) (*avatar.Journey, error) {
			return st.Controls.Stop(journey, st.micros), nil
		})
	case "l":
		st.toggleLabel()
	case "t":
		st.territoryLayer = !st.territoryLayer
		st.Out.SendDraw(st.micros, st.WorldArtist.RedrawAll(st.view(), st.micros))
	}
}

// toggleLabel marks or unmarks the tile under the cursor.
func (st *State) toggleLabel() {
	if st.cursor == nil {
		return
	}
	position := *st.cursor
	if st.Labels.Get(position) != "" {
		st.Labels.Set(position, "")
	} else {
		st.Labels.Set(position, "camp")
	}
	st.Out.SendDraw(st.micros, st.LabelArtist.Draw(st.Sim.Game().World, st.Labels))
}

func (st *State) editJourney(edit func(*avatar.Journey) (*avatar.Journey, error)) {
	selected := st.Avatars.Selected()
	if selected == nil {
		return
	}
	journey, err := edit(selected.Journey)
	if err != nil {
		st.Log.Debug("journey edit rejected", "avatar", selected.Name, "error", err)
		return
	}
	selected.Journey = journey
	st.Out.SendDraw(st.micros, st.AvatarArtist.Draw(st.Avatars, st.micros))
}

func (st *State) togglePause() {
	if st.Sim.Paused() {
		st.Sim.Resume()
		st.Log.Info("resumed", "micros", st.micros)
	} else {
		st.Sim.Pause()
		st.Log.Info("paused", "micros", st.micros)
	}
}

func (st *State) save() {
	wasPaused := st.Sim.Paused()
	st.Sim.Pause()
	defer func() {
		if !wasPaused {
			st.Sim.Resume()
		}
	}()

	game, simState := st.Sim.Game(), st.Sim.State()
	blob := snapshot.Capture(game, simState, st.Avatars)
	if err := snapshot.Write(st.Paths.Sim(), blob); err != nil {
		st.Log.Error("save sim", "error", err)
		return
	}
	if err := snapshot.Write(st.Paths.Labels(), st.Labels); err != nil {
		st.Log.Error("save labels", "error", err)
		return
	}
	if err := params.Save(st.Paths.Parameters(), st.Params); err != nil {
		st.Log.Error("save parameters", "error", err)
		return
	}
	if st.Index != nil {
		avatarCount := 0
		st.Avatars.ForEach(func(*avatar.Avatar) { avatarCount++ })
		st.Index.RecordSave(indexdb.SaveRow{
			Name:        filepath.Base(st.Paths.Base),
			Path:        st.Paths.Base,
			Micros:      game.Micros,
			Seed:        st.Params.Seed,
			Power:       st.Params.Power,
			Settlements: len(game.Settlements),
			Avatars:     avatarCount,
			VisibleLand: game.VisibleLandPositions,
		})
	}
	st.Log.Info("saved", "path", st.Paths.Base, "micros", game.Micros)
}

func (st *State) shutdown() {
	st.save()
	if st.StepLog != nil {
		_ = st.StepLog.Close()
	}
	if st.Index != nil {
		_ = st.Index.Close()
	}
	st.Log.Info("shut down", "micros", st.micros)
}
