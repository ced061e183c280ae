package emissions

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"greenmile/internal/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFallbackShippingCO2e(t *testing.T) {
	calc := NewCalculator(nil)
	// 1000 km x 1000 kg = 1000 ton-km; road factor 0.096
	res := calc.Calculate(context.Background(), Input{
		ShippingDistance: 1000,
		ShippingMethod:   domain.ModeRoad,
		TotalWeight:      1000,
	})
	if !almostEqual(res.ShippingCO2e, 96.0) {
		t.Fatalf("expected 96.0 kg CO2e, got %v", res.ShippingCO2e)
	}
	if res.CalculationMethod != MethodFallback {
		t.Fatalf("expected fallback method, got %q", res.CalculationMethod)
	}
}

func TestPackagingAlwaysLocal(t *testing.T) {
	calc := NewCalculator(stubEstimator{co2e: 10})
	res := calc.Calculate(context.Background(), Input{
		ShippingDistance: 100,
		ShippingMethod:   domain.ModeRoad,
		TotalWeight:      2,
		PackagingWeight:  0.1,
		PackagingType:    domain.PackagingCardboard,
	})
	if !almostEqual(res.PackagingCO2e, 0.105) {
		t.Fatalf("expected packaging 0.105, got %v", res.PackagingCO2e)
	}
	if !almostEqual(res.TotalCO2e, res.ShippingCO2e+res.PackagingCO2e) {
		t.Fatalf("total %v != shipping %v + packaging %v", res.TotalCO2e, res.ShippingCO2e, res.PackagingCO2e)
	}
}

func TestRemoteEstimatorPreferred(t *testing.T) {
	calc := NewCalculator(stubEstimator{co2e: 42.5})
	res := calc.Calculate(context.Background(), Input{
		ShippingDistance: 500,
		ShippingMethod:   domain.ModeAir,
		TotalWeight:      3,
	})
	if !almostEqual(res.ShippingCO2e, 42.5) {
		t.Fatalf("expected remote value 42.5, got %v", res.ShippingCO2e)
	}
	if res.CalculationMethod != MethodClimatiq {
		t.Fatalf("expected climatiq method, got %q", res.CalculationMethod)
	}
}

func TestRemoteFailureFallsBack(t *testing.T) {
	calc := NewCalculator(stubEstimator{err: errors.New("boom")})
	res := calc.Calculate(context.Background(), Input{
		ShippingDistance: 1000,
		ShippingMethod:   domain.ModeAir,
		TotalWeight:      1000,
	})
	if !almostEqual(res.ShippingCO2e, 1130) {
		t.Fatalf("expected fallback air 1130, got %v", res.ShippingCO2e)
	}
	if res.CalculationMethod != MethodFallback {
		t.Fatalf("expected fallback method, got %q", res.CalculationMethod)
	}
}

func TestUnknownModeFallsBackToRoad(t *testing.T) {
	if f := ShippingFactor(domain.ShippingMode("teleport")); !almostEqual(f, 0.096) {
		t.Fatalf("expected road factor for unknown mode, got %v", f)
	}
	if f := PackagingFactor(domain.PackagingType("mystery")); !almostEqual(f, 1.05) {
		t.Fatalf("expected cardboard factor for unknown packaging, got %v", f)
	}
}

func TestZeroInputContributesZero(t *testing.T) {
	calc := NewCalculator(nil)
	res := calc.Calculate(context.Background(), Input{})
	if res.TotalCO2e != 0 {
		t.Fatalf("expected zero emissions for zero input, got %v", res.TotalCO2e)
	}
}

func TestNewClimatiqEstimatorRequiresKey(t *testing.T) {
	if est := NewClimatiqEstimator("", "", time.Second); est != nil {
		t.Fatal("expected nil estimator without api key")
	}
	if est := NewClimatiqEstimator("key", "", 0); est == nil {
		t.Fatal("expected estimator with api key")
	}
}

type stubEstimator struct {
	co2e float64
	err  error
}

func (s stubEstimator) EstimateShippingCO2e(context.Context, Input) (float64, error) {
	return s.co2e, s.err
}
