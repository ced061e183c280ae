package recommend

import (
	"context"
	"testing"
	"time"

	"greenmile/internal/domain"
)

type fakeStats struct {
	summary   domain.CostSummary
	breakdown []domain.ProviderBreakdown
}

func (f fakeStats) CostSummary(context.Context, string, time.Time, time.Time) (domain.CostSummary, error) {
	return f.summary, nil
}

func (f fakeStats) ProviderBreakdown(context.Context, string, time.Time, time.Time) ([]domain.ProviderBreakdown, error) {
	return f.breakdown, nil
}

type fakeOrders struct {
	avgWeight   float64
	avgDistance float64
	count       int
}

func (f fakeOrders) CreateOrder(context.Context, domain.Order) (string, error) { return "", nil }

func (f fakeOrders) OrderByExternalID(context.Context, string, string) (domain.Order, bool, error) {
	return domain.Order{}, false, nil
}

func (f fakeOrders) GetOrder(context.Context, string, string) (domain.Order, bool, error) {
	return domain.Order{}, false, nil
}

func (f fakeOrders) AverageMetrics(context.Context, string, time.Time, time.Time) (float64, float64, int, error) {
	return f.avgWeight, f.avgDistance, f.count, nil
}

func (f fakeOrders) OrdersMissingEmissions(context.Context, string, int) ([]domain.Order, error) {
	return nil, nil
}

type fakeRecords struct {
	expressPercent float64
	affected       int
}

func (f fakeRecords) CreateShippingRecord(context.Context, domain.OrderShippingRecord) error {
	return nil
}

func (f fakeRecords) ShippingRecordByOrder(context.Context, string, string) (domain.OrderShippingRecord, bool, error) {
	return domain.OrderShippingRecord{}, false, nil
}

func (f fakeRecords) ExpressShareOver(context.Context, string, time.Time, time.Time) (float64, int, error) {
	return f.expressPercent, f.affected, nil
}

type fakeSettings struct {
	prefs domain.OptimizationSettings
	found bool
}

func (f fakeSettings) GetSettings(_ context.Context, merchantID string) (domain.OptimizationSettings, bool, error) {
	return f.prefs, f.found, nil
}

func (f fakeSettings) UpsertSettings(context.Context, domain.OptimizationSettings) error { return nil }

type fakeComparer struct {
	alts []domain.CompareAlternative
}

func (f fakeComparer) GenerateComparisons(context.Context, float64, float64, float64, float64, *domain.OptimizationSettings) ([]domain.CompareAlternative, error) {
	return f.alts, nil
}

func baseSummary() domain.CostSummary {
	return domain.CostSummary{
		TotalCost:       1000,
		TotalOrders:     100,
		AvgCostPerOrder: 10,
		TotalCO2e:       50,
		AvgCO2ePerOrder: 0.5,
	}
}

func TestRecommendationsEmptyForNewMerchant(t *testing.T) {
	svc := New(fakeStats{}, fakeOrders{}, fakeRecords{}, fakeSettings{}, fakeComparer{})
	result, err := svc.Recommendations(context.Background(), "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Recommendations == nil || len(result.Recommendations) != 0 {
		t.Fatalf("expected empty non-nil recommendations, got %+v", result.Recommendations)
	}
	if result.TopRecommendation != nil {
		t.Fatal("expected no top recommendation")
	}
}

func TestRecommendationsFullSet(t *testing.T) {
	best := domain.CompareAlternative{
		ProviderName:          "Eco",
		ServiceLevel:          "Ground Advantage",
		CostSavings:           2,
		CO2Savings:            0.1,
		CostSavingsPercent:    20,
		CO2SavingsPercent:     20,
		RecommendationScore:   35,
		CarbonOffsetAvailable: true,
	}
	svc := New(
		fakeStats{summary: baseSummary(), breakdown: []domain.ProviderBreakdown{{ProviderName: "UPS", PercentOfOrders: 60}}},
		fakeOrders{avgWeight: 2, avgDistance: 500, count: 100},
		fakeRecords{expressPercent: 45, affected: 45},
		fakeSettings{},
		fakeComparer{alts: []domain.CompareAlternative{best}},
	)

	result, err := svc.Recommendations(context.Background(), "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Recommendations) != 3 {
		t.Fatalf("expected 3 recommendations, got %d: %+v", len(result.Recommendations), result.Recommendations)
	}

	// High priorities sort first; stable order keeps switch ahead of downgrade.
	if result.Recommendations[0].Type != domain.RecProviderSwitch {
		t.Fatalf("expected provider_switch first, got %s", result.Recommendations[0].Type)
	}
	if result.Recommendations[0].Priority != domain.PriorityHigh {
		t.Fatalf("score 35 must be high priority, got %s", result.Recommendations[0].Priority)
	}
	if result.Recommendations[0].EstimatedCostSavings != 200 {
		t.Fatalf("expected 200 cost savings, got %v", result.Recommendations[0].EstimatedCostSavings)
	}

	if result.Recommendations[1].Type != domain.RecServiceDowngrade {
		t.Fatalf("expected service_downgrade second, got %s", result.Recommendations[1].Type)
	}
	if result.Recommendations[1].Priority != domain.PriorityHigh {
		t.Fatalf("45%% express share must be high priority, got %s", result.Recommendations[1].Priority)
	}
	if result.Recommendations[1].EstimatedCostSavings != 90 {
		t.Fatalf("expected 90 downgrade savings, got %v", result.Recommendations[1].EstimatedCostSavings)
	}

	if result.Recommendations[2].Type != domain.RecOffset {
		t.Fatalf("expected offset third, got %s", result.Recommendations[2].Type)
	}
	if result.Recommendations[2].EstimatedCO2Savings != 45 {
		t.Fatalf("expected 45 kg offset reduction, got %v", result.Recommendations[2].EstimatedCO2Savings)
	}

	if result.TopRecommendation == nil {
		t.Fatal("expected top recommendation")
	}
	if result.TopRecommendation.FromProvider != "UPS" {
		t.Fatalf("unexpected from provider: %q", result.TopRecommendation.FromProvider)
	}
	if result.TopRecommendation.ToProvider != "Eco Ground Advantage" {
		t.Fatalf("unexpected to provider: %q", result.TopRecommendation.ToProvider)
	}
	if result.TopRecommendation.Impact != "Save $200 and 10kg CO2e per month" {
		t.Fatalf("unexpected impact: %q", result.TopRecommendation.Impact)
	}

	if result.Summary.PotentialCostSavings != 200 {
		t.Fatalf("expected potential savings 200, got %v", result.Summary.PotentialCostSavings)
	}
	if result.Summary.PotentialCostSavingsPercent != 20 {
		t.Fatalf("expected 20%%, got %v", result.Summary.PotentialCostSavingsPercent)
	}
	if result.Summary.PotentialCO2Reduction != 10 {
		t.Fatalf("expected co2 reduction 10, got %v", result.Summary.PotentialCO2Reduction)
	}
}

func TestRecommendationsConsolidationOnly(t *testing.T) {
	// Nothing saves money or carbon, express share is low, no offsets: only
	// the tiny-order consolidation nudge fires.
	losing := domain.CompareAlternative{
		ProviderName:        "Pricey",
		ServiceLevel:        "Ground",
		CostSavings:         -1,
		CO2Savings:          -0.1,
		RecommendationScore: 0,
	}
	summary := baseSummary()
	summary.TotalOrders = 25
	svc := New(
		fakeStats{summary: summary, breakdown: []domain.ProviderBreakdown{{ProviderName: "UPS", PercentOfOrders: 100}}},
		fakeOrders{avgWeight: 0.3, avgDistance: 500, count: 25},
		fakeRecords{},
		fakeSettings{},
		fakeComparer{alts: []domain.CompareAlternative{losing}},
	)

	result, err := svc.Recommendations(context.Background(), "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Recommendations) != 1 {
		t.Fatalf("expected 1 recommendation, got %d: %+v", len(result.Recommendations), result.Recommendations)
	}
	rec := result.Recommendations[0]
	if rec.Type != domain.RecConsolidation {
		t.Fatalf("expected consolidation, got %s", rec.Type)
	}
	if rec.Priority != domain.PriorityLow {
		t.Fatalf("expected low priority, got %s", rec.Priority)
	}
	if rec.EstimatedCostSavings != 100 {
		t.Fatalf("expected 10%% of spend (100), got %v", rec.EstimatedCostSavings)
	}
	if result.TopRecommendation != nil {
		t.Fatal("expected no top recommendation without a provider switch")
	}
}

func TestSwitchPriorityThresholds(t *testing.T) {
	if got := switchPriority(30.5); got != domain.PriorityHigh {
		t.Fatalf("expected high, got %s", got)
	}
	if got := switchPriority(30); got != domain.PriorityMedium {
		t.Fatalf("expected medium at exactly 30, got %s", got)
	}
	if got := switchPriority(15.5); got != domain.PriorityMedium {
		t.Fatalf("expected medium, got %s", got)
	}
	if got := switchPriority(15); got != domain.PriorityLow {
		t.Fatalf("expected low at exactly 15, got %s", got)
	}
}

func TestOffsetSkippedWhenAlreadyRequired(t *testing.T) {
	offsetAlt := domain.CompareAlternative{
		ProviderName:          "Green",
		ServiceLevel:          "Ground",
		CostSavings:           -1,
		CO2Savings:            -0.1,
		CarbonOffsetAvailable: true,
	}
	prefs := domain.DefaultOptimizationSettings("m1")
	prefs.RequireCarbonOffset = true
	svc := New(
		fakeStats{summary: baseSummary(), breakdown: []domain.ProviderBreakdown{{ProviderName: "UPS"}}},
		fakeOrders{avgWeight: 2, avgDistance: 500, count: 100},
		fakeRecords{},
		fakeSettings{prefs: prefs, found: true},
		fakeComparer{alts: []domain.CompareAlternative{offsetAlt}},
	)

	result, err := svc.Recommendations(context.Background(), "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, rec := range result.Recommendations {
		if rec.Type == domain.RecOffset {
			t.Fatal("offset recommendation must be skipped when already required")
		}
	}
}
