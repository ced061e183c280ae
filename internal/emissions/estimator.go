package emissions

import (
	"context"
	"log"

	"greenmile/internal/domain"
)

// Input parameterizes one emission calculation. Callers substitute sane
// defaults (0.5 kg, 500 km) before calling when true values are unknown;
// no validation happens here and zero/negative values contribute zero.
type Input struct {
	ShippingDistance float64 // km
	ShippingMethod   domain.ShippingMode
	TotalWeight      float64 // kg
	PackagingWeight  float64 // kg
	PackagingType    domain.PackagingType
}

// Result is the CO2e breakdown for one order, all values in kg.
type Result struct {
	TotalCO2e         float64
	ShippingCO2e      float64
	PackagingCO2e     float64
	CalculationMethod string
}

const (
	MethodClimatiq = "climatiq"
	MethodFallback = "fallback"
)

// ShippingEstimator estimates the shipping-leg CO2e for an input. Packaging
// emissions are never estimated remotely; the Calculator always computes
// them locally.
type ShippingEstimator interface {
	EstimateShippingCO2e(ctx context.Context, in Input) (float64, error)
}

// LocalEstimator computes shipping emissions from the static GLEC factor
// table. It never fails.
type LocalEstimator struct{}

func (LocalEstimator) EstimateShippingCO2e(_ context.Context, in Input) (float64, error) {
	return TonKm(in.ShippingDistance, in.TotalWeight) * ShippingFactor(in.ShippingMethod), nil
}

// Calculator composes a remote estimator with the local fallback. A nil or
// failing remote degrades silently to the fallback path.
type Calculator struct {
	remote ShippingEstimator
}

// NewCalculator builds a Calculator. remote may be nil (no credentials
// configured), in which case every calculation takes the fallback path.
func NewCalculator(remote ShippingEstimator) *Calculator {
	return &Calculator{remote: remote}
}

// Calculate produces the CO2e breakdown for an order. It tries the remote
// estimator first for the shipping leg and falls back to the GLEC table on
// any failure; packaging is always weight x material factor. Never returns
// an error for valid numeric input.
func (c *Calculator) Calculate(ctx context.Context, in Input) Result {
	packagingCO2e := in.PackagingWeight * PackagingFactor(in.PackagingType)

	if c.remote != nil {
		shippingCO2e, err := c.remote.EstimateShippingCO2e(ctx, in)
		if err == nil {
			return Result{
				TotalCO2e:         shippingCO2e + packagingCO2e,
				ShippingCO2e:      shippingCO2e,
				PackagingCO2e:     packagingCO2e,
				CalculationMethod: MethodClimatiq,
			}
		}
		log.Printf("remote emission estimate failed, using fallback: %v", err)
	}

	shippingCO2e, _ := LocalEstimator{}.EstimateShippingCO2e(ctx, in)
	return Result{
		TotalCO2e:         shippingCO2e + packagingCO2e,
		ShippingCO2e:      shippingCO2e,
		PackagingCO2e:     packagingCO2e,
		CalculationMethod: MethodFallback,
	}
}
