package pricing

import (
	"math"
	"strings"
)

// Default pricing parameters used when a provider carries no base rates.
const (
	defaultPricePerKg = 0.5
	defaultPricePerKm = 0.01 // charged per 100 km of distance
	defaultMinimum    = 5.0
)

// serviceMultipliers scale base cost by service level. Unrecognized levels
// cost the same as ground.
var serviceMultipliers = map[string]float64{
	"overnight": 3.0,
	"express":   1.8,
	"ground":    1.0,
}

// Params carries provider-specific pricing overrides; nil fields fall back
// to the defaults above.
type Params struct {
	BasePricePerKg  *float64
	BasePricePerKm  *float64
	MinimumCharge   *float64
	PriceMultiplier float64 // provider/level multiplier on top of the service-level one; 0 means 1.0
}

// EstimateShippingCost estimates a shipping cost from weight (kg), distance
// (km), and service level pricing. Pure function, never fails. Actual costs
// come from order data; this feeds comparison alternatives.
func EstimateShippingCost(weight, distance float64, serviceLevel string, p Params) float64 {
	pricePerKg := defaultPricePerKg
	if p.BasePricePerKg != nil {
		pricePerKg = *p.BasePricePerKg
	}
	pricePerKm := defaultPricePerKm
	if p.BasePricePerKm != nil {
		pricePerKm = *p.BasePricePerKm
	}
	minimum := defaultMinimum
	if p.MinimumCharge != nil {
		minimum = *p.MinimumCharge
	}
	multiplier := p.PriceMultiplier
	if multiplier == 0 {
		multiplier = 1.0
	}

	levelMultiplier := 1.0
	if m, ok := serviceMultipliers[strings.ToLower(serviceLevel)]; ok {
		levelMultiplier = m
	}

	weightCost := weight * pricePerKg
	distanceCost := distance / 100 * pricePerKm
	total := (weightCost + distanceCost) * levelMultiplier * multiplier

	return math.Max(total, minimum)
}
