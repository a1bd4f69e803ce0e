// Package routes models trade routes from settlements to resources and the
// traffic ledger derived from them.
package routes

type Resource string

const (
	ResourceNone     Resource = "none"
	ResourceBananas  Resource = "bananas"
	ResourceBison    Resource = "bison"
	ResourceCoal     Resource = "coal"
	ResourceCrabs    Resource = "crabs"
	ResourceCrops    Resource = "crops"
	ResourceDeer     Resource = "deer"
	ResourceFur      Resource = "fur"
	ResourceGems     Resource = "gems"
	ResourceGold     Resource = "gold"
	ResourceIron     Resource = "iron"
	ResourceIvory    Resource = "ivory"
	ResourcePasture  Resource = "pasture"
	ResourceSpice    Resource = "spice"
	ResourceStone    Resource = "stone"
	ResourceTruffles Resource = "truffles"
	ResourceWhales   Resource = "whales"
	ResourceWood     Resource = "wood"
)

// Resources lists every real resource, excluding ResourceNone.
var Resources = []Resource{
	ResourceBananas, ResourceBison, ResourceCoal, ResourceCrabs,
	ResourceCrops, ResourceDeer, ResourceFur, ResourceGems, ResourceGold,
	ResourceIron, ResourceIvory, ResourcePasture, ResourceSpice,
	ResourceStone, ResourceTruffles, ResourceWhales, ResourceWood,
}

// TargetSet names the pathfinder target set holding this resource's
// positions.
func (r Resource) TargetSet() string {
	return "resource-" + string(r)
}
