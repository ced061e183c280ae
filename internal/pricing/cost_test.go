package pricing

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEstimateShippingCostDefaults(t *testing.T) {
	// 10 kg x 0.5 + 1000/100 x 0.01 = 5.1, ground multiplier 1.0
	got := EstimateShippingCost(10, 1000, "ground", Params{})
	if !almostEqual(got, 5.1) {
		t.Fatalf("expected 5.1, got %v", got)
	}
}

func TestEstimateShippingCostMinimumCharge(t *testing.T) {
	// Tiny order: 0.2 kg x 0.5 + 10/100 x 0.01 = 0.101, below the 5.0 floor.
	got := EstimateShippingCost(0.2, 10, "ground", Params{})
	if !almostEqual(got, 5.0) {
		t.Fatalf("expected minimum 5.0, got %v", got)
	}
}

func TestEstimateShippingCostServiceMultipliers(t *testing.T) {
	base := EstimateShippingCost(20, 2000, "ground", Params{})
	express := EstimateShippingCost(20, 2000, "express", Params{})
	overnight := EstimateShippingCost(20, 2000, "overnight", Params{})
	if !almostEqual(express, base*1.8) {
		t.Fatalf("express expected %v, got %v", base*1.8, express)
	}
	if !almostEqual(overnight, base*3.0) {
		t.Fatalf("overnight expected %v, got %v", base*3.0, overnight)
	}
}

func TestEstimateShippingCostUnknownLevelIsGround(t *testing.T) {
	ground := EstimateShippingCost(20, 2000, "ground", Params{})
	odd := EstimateShippingCost(20, 2000, "Home Delivery", Params{})
	if !almostEqual(ground, odd) {
		t.Fatalf("unknown level must price as ground: %v vs %v", ground, odd)
	}
}

func TestEstimateShippingCostProviderOverrides(t *testing.T) {
	perKg := 0.45
	perKm := 0.008
	minimum := 8.0
	got := EstimateShippingCost(10, 1000, "ground", Params{
		BasePricePerKg:  &perKg,
		BasePricePerKm:  &perKm,
		MinimumCharge:   &minimum,
		PriceMultiplier: 1.0,
	})
	// 10*0.45 + 1000/100*0.008 = 4.58, below the 8.0 minimum.
	if !almostEqual(got, 8.0) {
		t.Fatalf("expected 8.0, got %v", got)
	}
}

func TestEstimateShippingCostZeroMultiplierMeansOne(t *testing.T) {
	a := EstimateShippingCost(10, 1000, "ground", Params{PriceMultiplier: 0})
	b := EstimateShippingCost(10, 1000, "ground", Params{PriceMultiplier: 1.0})
	if !almostEqual(a, b) {
		t.Fatalf("zero multiplier must behave as 1.0: %v vs %v", a, b)
	}
}
