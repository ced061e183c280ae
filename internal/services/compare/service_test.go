package compare

import (
	"context"
	"errors"
	"math"
	"testing"

	"greenmile/internal/domain"
)

type fakeCatalog struct {
	providers []domain.ShippingProvider
	err       error
}

func (f fakeCatalog) FindActiveByName(context.Context, string) (domain.ShippingProvider, bool, error) {
	return domain.ShippingProvider{}, false, nil
}

func (f fakeCatalog) ListActive(_ context.Context, excludeIDs []string) ([]domain.ShippingProvider, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.ShippingProvider, 0, len(f.providers))
	for _, p := range f.providers {
		excluded := false
		for _, id := range excludeIDs {
			if id == p.ID {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, p)
		}
	}
	return out, nil
}

func intPtr(v int) *int         { return &v }
func f64Ptr(v float64) *float64 { return &v }

func testProviders() []domain.ShippingProvider {
	return []domain.ShippingProvider{
		{
			ID:                    "eco-1",
			Name:                  "eco",
			DisplayName:           "Eco",
			BasePricePerKg:        f64Ptr(0.35),
			BasePricePerKm:        f64Ptr(0.006),
			MinimumCharge:         f64Ptr(5.0),
			CarbonOffsetAvailable: false,
			ServiceLevels: []domain.ServiceLevel{
				{Name: "Ground Advantage", EmissionFactor: 0.075, ShippingMode: domain.ModeRoad, PriceMultiplier: 1.0, MaxDeliveryDays: intPtr(5)},
			},
		},
		{
			ID:                    "fast-1",
			Name:                  "fast",
			DisplayName:           "Fast",
			CarbonOffsetAvailable: true,
			ServiceLevels: []domain.ServiceLevel{
				{Name: "Overnight", EmissionFactor: 1.0, ShippingMode: domain.ModeAir, PriceMultiplier: 2.5, MaxDeliveryDays: intPtr(1)},
			},
		},
	}
}

func TestGenerateComparisonsSortedByScore(t *testing.T) {
	svc := New(fakeCatalog{providers: testProviders()})
	alts, err := svc.GenerateComparisons(context.Background(), 15, 0.5, 2, 1000, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(alts) != 2 {
		t.Fatalf("expected 2 alternatives, got %d", len(alts))
	}
	if alts[0].ProviderName != "Eco" {
		t.Fatalf("expected Eco first, got %q", alts[0].ProviderName)
	}
	if alts[0].RecommendationScore < alts[1].RecommendationScore {
		t.Fatal("alternatives not sorted descending by score")
	}

	// Eco Ground Advantage: cost floors at the 5.0 minimum, CO2e 2 ton-km x 0.075.
	eco := alts[0]
	if eco.EstimatedCost != 5.0 {
		t.Fatalf("expected cost 5.0, got %v", eco.EstimatedCost)
	}
	if eco.EstimatedCO2e != 0.15 {
		t.Fatalf("expected co2e 0.15, got %v", eco.EstimatedCO2e)
	}
	if eco.CostSavings != 10.0 {
		t.Fatalf("expected savings 10.0, got %v", eco.CostSavings)
	}
	if eco.CostSavingsPercent != 66.7 {
		t.Fatalf("expected 66.7%%, got %v", eco.CostSavingsPercent)
	}
	if eco.CO2SavingsPercent != 70.0 {
		t.Fatalf("expected 70%%, got %v", eco.CO2SavingsPercent)
	}
	if eco.RecommendationScore != 68.3 {
		t.Fatalf("expected score 68.3, got %v", eco.RecommendationScore)
	}
	if eco.DeliveryDays != 5 {
		t.Fatalf("expected 5 delivery days, got %d", eco.DeliveryDays)
	}
}

func TestGenerateComparisonsNegativeSavingsScoreZero(t *testing.T) {
	svc := New(fakeCatalog{providers: testProviders()})
	alts, err := svc.GenerateComparisons(context.Background(), 15, 0.5, 2, 1000, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fast := alts[1]
	if fast.ProviderName != "Fast" {
		t.Fatalf("expected Fast second, got %q", fast.ProviderName)
	}
	// Overnight is dirtier than the baseline: negative CO2 savings clamp to
	// zero in the score but stay negative in the payload.
	if fast.CO2Savings >= 0 {
		t.Fatalf("expected negative co2 savings, got %v", fast.CO2Savings)
	}
	if fast.CO2SavingsPercent != -300.0 {
		t.Fatalf("expected -300%%, got %v", fast.CO2SavingsPercent)
	}
	if fast.RecommendationScore != 22.5 {
		t.Fatalf("expected score 22.5, got %v", fast.RecommendationScore)
	}
}

func TestGenerateComparisonsMaxDeliveryDaysFilter(t *testing.T) {
	svc := New(fakeCatalog{providers: testProviders()})
	prefs := domain.DefaultOptimizationSettings("m1")
	prefs.MaxDeliveryDays = intPtr(1)
	alts, err := svc.GenerateComparisons(context.Background(), 15, 0.5, 2, 1000, &prefs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(alts) != 1 || alts[0].ServiceLevel != "Overnight" {
		t.Fatalf("expected only Overnight to pass the filter, got %+v", alts)
	}
}

func TestGenerateComparisonsRequireCarbonOffset(t *testing.T) {
	svc := New(fakeCatalog{providers: testProviders()})
	prefs := domain.DefaultOptimizationSettings("m1")
	prefs.RequireCarbonOffset = true
	alts, err := svc.GenerateComparisons(context.Background(), 15, 0.5, 2, 1000, &prefs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(alts) != 1 || alts[0].ProviderName != "Fast" {
		t.Fatalf("expected only offset-capable Fast, got %+v", alts)
	}
}

func TestGenerateComparisonsExcludedProviders(t *testing.T) {
	svc := New(fakeCatalog{providers: testProviders()})
	prefs := domain.DefaultOptimizationSettings("m1")
	prefs.ExcludedProviderIDs = []string{"eco-1"}
	alts, err := svc.GenerateComparisons(context.Background(), 15, 0.5, 2, 1000, &prefs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(alts) != 1 || alts[0].ProviderID != "fast-1" {
		t.Fatalf("expected eco-1 excluded, got %+v", alts)
	}
}

func TestGenerateComparisonsCatalogErrorYieldsEmpty(t *testing.T) {
	svc := New(fakeCatalog{err: errors.New("db down")})
	alts, err := svc.GenerateComparisons(context.Background(), 15, 0.5, 2, 1000, nil)
	if err != nil {
		t.Fatalf("catalog errors must not surface: %v", err)
	}
	if len(alts) != 0 {
		t.Fatalf("expected empty list, got %d", len(alts))
	}
}

func TestGenerateComparisonsZeroBaseline(t *testing.T) {
	svc := New(fakeCatalog{providers: testProviders()})
	alts, err := svc.GenerateComparisons(context.Background(), 0, 0, 2, 1000, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, alt := range alts {
		if alt.CostSavingsPercent != 0 || alt.CO2SavingsPercent != 0 {
			t.Fatalf("zero baseline must produce zero percentages: %+v", alt)
		}
		if alt.RecommendationScore != 0 {
			t.Fatalf("zero baseline must score zero: %+v", alt)
		}
	}
}

func TestRecommendationScoreWeights(t *testing.T) {
	// Pure cost preference ignores carbon savings entirely.
	if got := RecommendationScore(40, 80, 100, 0); got != 40 {
		t.Fatalf("expected 40, got %v", got)
	}
	if got := RecommendationScore(40, 80, 0, 100); got != 80 {
		t.Fatalf("expected 80, got %v", got)
	}
	// Zero weights average unweighted.
	if got := RecommendationScore(40, 80, 0, 0); got != 60 {
		t.Fatalf("expected 60, got %v", got)
	}
	// Negative clamps to zero, above 100 caps.
	if got := RecommendationScore(-50, 250, 50, 50); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
	if got := RecommendationScore(60, 20, 75, 25); math.Abs(got-50) > 1e-9 {
		t.Fatalf("expected 50, got %v", got)
	}
}

func TestBestAlternatives(t *testing.T) {
	svc := New(fakeCatalog{providers: testProviders()})
	alts, err := svc.GenerateComparisons(context.Background(), 15, 0.5, 2, 1000, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	picks := BestAlternatives(alts)
	if picks.BestForCost == nil || *picks.BestForCost != "Eco Ground Advantage" {
		t.Fatalf("unexpected best for cost: %v", picks.BestForCost)
	}
	if picks.BestForCarbon == nil || *picks.BestForCarbon != "Eco Ground Advantage" {
		t.Fatalf("unexpected best for carbon: %v", picks.BestForCarbon)
	}
	if picks.BestOverall == nil || *picks.BestOverall != "Eco Ground Advantage" {
		t.Fatalf("unexpected best overall: %v", picks.BestOverall)
	}
}

func TestBestAlternativesEmpty(t *testing.T) {
	picks := BestAlternatives(nil)
	if picks.BestForCost != nil || picks.BestForCarbon != nil || picks.BestOverall != nil {
		t.Fatalf("expected all nil picks, got %+v", picks)
	}
}
