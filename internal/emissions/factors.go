package emissions

import "greenmile/internal/domain"

// Fallback emission factors (kg CO2e per unit) used when Climatiq is not
// available.
// Sources:
//   Shipping: GLEC Framework v3.0 (Global Logistics Emissions Council), 2023
//     - Air freight: 1.13 kg CO2e/ton-km (GLEC default, includes RFI)
//     - Sea freight: 0.011 kg CO2e/ton-km (average container vessel)
//     - Road freight: 0.096 kg CO2e/ton-km (average truck, mixed fleet)
//     - Rail freight: 0.028 kg CO2e/ton-km (electric/diesel mix)
//   Packaging: EcoInvent v3.9 / EPA WARM Model
//     - Cardboard: 1.05 kg CO2e/kg (corrugated, virgin + recycled mix)
//     - Plastic: 6.0 kg CO2e/kg (LDPE film, virgin)
//     - Paper: 1.32 kg CO2e/kg (kraft paper, virgin)
//     - Biodegradable: 0.45 kg CO2e/kg (PLA/starch-based, avg)

var shippingFactors = map[domain.ShippingMode]float64{
	domain.ModeAir:  1.13,
	domain.ModeSea:  0.011,
	domain.ModeRoad: 0.096,
	domain.ModeRail: 0.028,
}

var packagingFactors = map[domain.PackagingType]float64{
	domain.PackagingCardboard:     1.05,
	domain.PackagingPlastic:       6.0,
	domain.PackagingPaper:         1.32,
	domain.PackagingBiodegradable: 0.45,
}

// ShippingFactor returns the fallback per-mode factor in kg CO2e per ton-km.
// Unknown modes fall back to road.
func ShippingFactor(mode domain.ShippingMode) float64 {
	if f, ok := shippingFactors[mode]; ok {
		return f
	}
	return shippingFactors[domain.ModeRoad]
}

// PackagingFactor returns the per-material factor in kg CO2e per kg.
// Unknown materials fall back to cardboard.
func PackagingFactor(t domain.PackagingType) float64 {
	if f, ok := packagingFactors[t]; ok {
		return f
	}
	return packagingFactors[domain.PackagingCardboard]
}

// TonKm converts a (distance km, weight kg) pair into ton-kilometers.
func TonKm(distanceKm, weightKg float64) float64 {
	return distanceKm * weightKg / 1000
}

// ProviderShippingCO2e computes shipping emissions for a provider-specific
// factor (kg CO2e per ton-km).
func ProviderShippingCO2e(emissionFactor, weightKg, distanceKm float64) float64 {
	return TonKm(distanceKm, weightKg) * emissionFactor
}
