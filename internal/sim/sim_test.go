package sim

import (
	"testing"
	"time"

	"frontier.sim/internal/bridges"
	"frontier.sim/internal/geometry"
	"frontier.sim/internal/pathfinding"
	"frontier.sim/internal/routes"
	"frontier.sim/internal/settlement"
	"frontier.sim/internal/territory"
	"frontier.sim/internal/travel"
	"frontier.sim/internal/visibility"
	"frontier.sim/internal/world"
)

func testGame(width, height int) *Game {
	elevations := geometry.NewGridFilled(width, height, 1.0)
	w := world.New(elevations, 0.0)
	walk := travel.NewConstant(100 * time.Millisecond)
	withPlanned := pathfinding.NewService(pathfinding.New(width, height, walk))
	withPlanned.Reset(w)
	withoutPlanned := pathfinding.NewService(pathfinding.New(width, height, walk))
	withoutPlanned.Reset(w)
	return &Game{
		World:       w,
		Resources:   geometry.NewGrid[routes.Resource](width, height),
		Settlements: settlement.Settlements{},
		Nations:     settlement.NewNations(settlement.NationDescriptions()),
		Territory:   territory.New(width, height),
		Bridges:     bridges.NewBridges(),
		Pathfinders: pathfinding.Pathfinders{
			WithPlannedRoads:    withPlanned,
			WithoutPlannedRoads: withoutPlanned,
		},
		Visibility: visibility.NewHandler(visibility.DefaultComputer(), elevations),
		ModeFn:     travel.NewAvatarModeFn(0.05, true),
	}
}

func testAutoRoad() travel.Duration {
	return travel.NewAutoRoad(
		travel.NewConstant(100*time.Millisecond),
		travel.NewConstant(50*time.Millisecond),
		0,
	)
}

func testTownWithPopulation(population float64) *settlement.Settlement {
	return &settlement.Settlement{
		Position:          geometry.Pos(3, 3),
		Class:             settlement.ClassTown,
		Nation:            "Spain",
		CurrentPopulation: population,
	}
}

type recordingProcessor struct {
	seen []InstructionKind
}

func (r *recordingProcessor) Process(game *Game, state *State, instruction Instruction) {
	r.seen = append(r.seen, instruction.Kind)
}

func TestStepConsumesLIFO(t *testing.T) {
	game := testGame(4, 4)
	state := NewState(4, 4, DefaultParams())
	recorder := &recordingProcessor{}
	simulation := NewSimulation(game, state, []Processor{recorder})

	state.Push(Instruction{Kind: InstructionRefreshPositions})
	state.Push(Instruction{Kind: InstructionRefreshEdges})

	simulation.Step(1)
	simulation.Step(2)

	want := []InstructionKind{InstructionRefreshEdges, InstructionRefreshPositions}
	if len(recorder.seen) != 2 || recorder.seen[0] != want[0] || recorder.seen[1] != want[1] {
		t.Fatalf("seen %v, want %v", recorder.seen, want)
	}
}

func TestStepRefillsEmptyStack(t *testing.T) {
	game := testGame(4, 4)
	state := NewState(4, 4, DefaultParams())
	simulation := NewSimulation(game, state, nil)

	simulation.Step(1)

	if len(state.Instructions) != 1 || state.Instructions[0].Kind != InstructionStep {
		t.Fatalf("stack %v, want single step", state.Instructions)
	}
}

func TestStepSetsClock(t *testing.T) {
	game := testGame(4, 4)
	simulation := NewSimulation(game, NewState(4, 4, DefaultParams()), nil)

	simulation.Step(12345)

	if game.Micros != 12345 {
		t.Errorf("micros %d, want 12345", game.Micros)
	}
}

func TestPauseStopsProcessing(t *testing.T) {
	game := testGame(4, 4)
	state := NewState(4, 4, DefaultParams())
	recorder := &recordingProcessor{}
	simulation := NewSimulation(game, state, []Processor{recorder})
	state.Push(Instruction{Kind: InstructionRefreshEdges})

	simulation.Pause()
	simulation.Step(1)
	if len(recorder.seen) != 0 {
		t.Fatalf("paused simulation processed %v", recorder.seen)
	}

	simulation.Resume()
	simulation.Step(2)
	if len(recorder.seen) != 1 {
		t.Fatalf("resumed simulation processed %v, want one instruction", recorder.seen)
	}
}

func TestStepInstructionFansOutPerSettlement(t *testing.T) {
	game := testGame(8, 8)
	state := NewState(8, 8, DefaultParams())
	game.Settlements.Add(&settlement.Settlement{
		Position: geometry.Pos(1, 1),
		Class:    settlement.ClassHomeland,
		Nation:   "Spain",
	})
	game.Settlements.Add(&settlement.Settlement{
		Position: geometry.Pos(5, 5),
		Class:    settlement.ClassTown,
		Nation:   "Spain",
	})

	StepHomeland{}.Process(game, state, Instruction{Kind: InstructionStep})
	StepTown{}.Process(game, state, Instruction{Kind: InstructionStep})

	counts := map[InstructionKind]int{}
	for _, instruction := range state.Instructions {
		counts[instruction.Kind]++
	}
	if counts[InstructionBuild] != 1 {
		t.Errorf("build instructions %d, want 1", counts[InstructionBuild])
	}
	if counts[InstructionUpdateCurrentPopulation] != 1 {
		t.Errorf("population instructions %d, want 1", counts[InstructionUpdateCurrentPopulation])
	}
	if counts[InstructionUpdateHomelandPopulation] != 1 {
		t.Errorf("homeland instructions %d, want 1", counts[InstructionUpdateHomelandPopulation])
	}
	if counts[InstructionGetTerritory] != 1 {
		t.Errorf("territory instructions %d, want 1", counts[InstructionGetTerritory])
	}
}
