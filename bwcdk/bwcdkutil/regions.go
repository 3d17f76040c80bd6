package bwcdkutil

import (
	"maps"
	"slices"
)

// regionIdents holds the regions the hosting service runs server-side rendered apps
// in, keyed by region code. The 4-character identifier goes into stack names.
// Deployments to any other region are rejected before synthesis.
var regionIdents = map[string]string{
	"us-east-1":    "Use1",
	"us-east-2":    "Use2",
	"us-west-1":    "Usw1",
	"us-west-2":    "Usw2",
	"ca-central-1": "Cac1",
	"sa-east-1":    "Sae1",

	"eu-central-1": "Euc1",
	"eu-north-1":   "Eun1",
	"eu-south-1":   "Eus1",
	"eu-west-1":    "Euw1",
	"eu-west-2":    "Euw2",
	"eu-west-3":    "Euw3",
	"me-south-1":   "Mes1",

	"ap-east-1":      "Ape1",
	"ap-south-1":     "Aps1",
	"ap-northeast-1": "Apn1",
	"ap-northeast-2": "Apn2",
	"ap-northeast-3": "Apn3",
	"ap-southeast-1": "Ase1",
	"ap-southeast-2": "Ase2",
}

// RegionIdentFor returns the identifier of region, as used in stack names.
// Panics outside the hosting regions; check with IsKnownRegion first.
func RegionIdentFor(region string) string {
	ident, ok := regionIdents[region]
	if !ok {
		panic("bwcdkutil: hosting is not available in region " + region)
	}
	return ident
}

// IsKnownRegion reports whether the hosting service runs in region.
func IsKnownRegion(region string) bool {
	_, ok := regionIdents[region]
	return ok
}

// KnownRegions returns the hosting regions, sorted.
func KnownRegions() []string {
	return slices.Sorted(maps.Keys(regionIdents))
}
