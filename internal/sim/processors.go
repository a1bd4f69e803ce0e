package sim

import "frontier.sim/internal/travel"

// DefaultBuilders is the standard builder set, in dispatch order.
func DefaultBuilders() []Builder {
	return []Builder{
		RoadBuilder{},
		BridgeBuilder{},
		CropsBuilder{},
		TownBuilder{},
	}
}

// Processors is the canonical processor chain. Order matters: the town
// update must see the pre-removal population, and ports must be recorded
// before the traffic ledger queues refreshes that consume them.
func Processors(builders []Builder, autoRoadDuration travel.Duration) []Processor {
	return []Processor{
		BuildSim{Builders: builders},
		StepHomeland{},
		StepTown{},
		TerritoryUpdate{},
		TownTraffic{},
		TownUpdate{},
		TownRemoval{},
		PopulationUpdate{},
		HomelandPopulationUpdate{},
		NewDemandGeneration(),
		RouteSearch{},
		RouteChangeComputation{},
		PortDiscovery{},
		TrafficUpdate{},
		RoadTrigger{TravelDuration: autoRoadDuration},
		CropsTrigger{},
		TownTrigger{},
	}
}
