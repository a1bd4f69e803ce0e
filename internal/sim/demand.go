package sim

import (
	"frontier.sim/internal/routes"
	"frontier.sim/internal/settlement"
)

// DemandFn derives the demands a settlement emits this step.
type DemandFn func(*settlement.Settlement, Params) []routes.Demand

// PopulationDemand spreads a settlement's population across every
// resource: one demand unit per PopulationPerDemandUnit of population.
func PopulationDemand(s *settlement.Settlement, params Params) []routes.Demand {
	quantity := int(s.CurrentPopulation / params.PopulationPerDemandUnit)
	if quantity <= 0 {
		return nil
	}
	out := make([]routes.Demand, 0, len(routes.Resources))
	for _, resource := range routes.Resources {
		out = append(out, routes.Demand{
			Position: s.Position,
			Resource: resource,
			Sources:  params.DemandSources,
			Quantity: quantity,
		})
	}
	return out
}

// DemandGeneration reacts to GetDemand: one route search per demand.
type DemandGeneration struct {
	DemandFn DemandFn
}

func NewDemandGeneration() DemandGeneration {
	return DemandGeneration{DemandFn: PopulationDemand}
}

func (d DemandGeneration) Process(game *Game, state *State, instruction Instruction) {
	if instruction.Kind != InstructionGetDemand {
		return
	}
	for _, demand := range d.DemandFn(instruction.Settlement, state.Params) {
		demand := demand
		state.Push(Instruction{Kind: InstructionGetRoutes, Demand: &demand})
	}
}
