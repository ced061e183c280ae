package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"greenmile/internal/domain"
	"greenmile/internal/ports"
)

// Thresholds driving narrative priorities.
const (
	switchHighScore   = 30
	switchMediumScore = 15

	expressShareTrigger = 20 // percent of orders on express/overnight
	expressShareHigh    = 40

	consolidationMaxAvgWeight = 0.5 // kg
	consolidationMinOrders    = 20

	offsetReductionShare         = 0.9 // assume 90% of emissions offset
	consolidationSavingsShare    = 0.1
	defaultLookbackDays          = 30
	defaultAvgOrderWeightKg      = 1
	defaultAvgShippingDistanceKm = 500
)

// Summary is the headline savings potential across a merchant's recent
// orders.
type Summary struct {
	PotentialCostSavings         float64
	PotentialCO2Reduction        float64
	PotentialCostSavingsPercent  float64
	PotentialCO2ReductionPercent float64
}

// TopRecommendation is the single highlighted switch suggestion, present
// only when a provider switch leads the list.
type TopRecommendation struct {
	FromProvider string
	ToProvider   string
	Reason       string
	Impact       string
}

// Result is the full recommendations payload.
type Result struct {
	Summary           Summary
	Recommendations   []domain.Recommendation
	TopRecommendation *TopRecommendation
}

// Service derives narrative optimization recommendations from aggregated
// history plus comparison alternatives.
type Service struct {
	stats    ports.StatsRepository
	orders   ports.OrderRepository
	records  ports.ShippingRecordRepository
	settings ports.SettingsRepository
	comparer ports.Comparer
}

func New(stats ports.StatsRepository, orders ports.OrderRepository, records ports.ShippingRecordRepository, settings ports.SettingsRepository, comparer ports.Comparer) *Service {
	return &Service{stats: stats, orders: orders, records: records, settings: settings, comparer: comparer}
}

// Recommendations builds the recommendation set over the merchant's last 30
// days of shipping activity. A merchant with no shipping data gets an empty
// (non-error) result.
func (s *Service) Recommendations(ctx context.Context, merchantID string) (Result, error) {
	to := time.Now()
	from := to.Add(-defaultLookbackDays * 24 * time.Hour)

	summary, err := s.stats.CostSummary(ctx, merchantID, from, to)
	if err != nil {
		return Result{}, err
	}
	if summary.TotalOrders == 0 {
		return Result{Recommendations: []domain.Recommendation{}}, nil
	}

	breakdown, err := s.stats.ProviderBreakdown(ctx, merchantID, from, to)
	if err != nil {
		return Result{}, err
	}

	avgWeight, avgDistance, _, err := s.orders.AverageMetrics(ctx, merchantID, from, to)
	if err != nil {
		return Result{}, err
	}
	if avgWeight <= 0 {
		avgWeight = defaultAvgOrderWeightKg
	}
	if avgDistance <= 0 {
		avgDistance = defaultAvgShippingDistanceKm
	}

	prefs := s.loadSettings(ctx, merchantID)

	alternatives, err := s.comparer.GenerateComparisons(ctx, summary.AvgCostPerOrder, summary.AvgCO2ePerOrder, avgWeight, avgDistance, &prefs)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Summary:         s.potentialSavings(summary, alternatives),
		Recommendations: []domain.Recommendation{},
	}

	if len(breakdown) == 0 || len(alternatives) == 0 {
		return result, nil
	}

	// Provider switch: lead with the top-scored alternative when it saves
	// anything at all.
	top := breakdown[0]
	best := alternatives[0]
	if best.CostSavings > 0 || best.CO2Savings > 0 {
		result.Recommendations = append(result.Recommendations, domain.Recommendation{
			Type:  domain.RecProviderSwitch,
			Title: fmt.Sprintf("Switch to %s %s", best.ProviderName, best.ServiceLevel),
			Description: fmt.Sprintf(
				"Switching from %s to %s %s could save you %g%% on costs and reduce carbon emissions by %g%%.",
				top.ProviderName, best.ProviderName, best.ServiceLevel,
				best.CostSavingsPercent, best.CO2SavingsPercent),
			EstimatedCostSavings:  best.CostSavings * float64(summary.TotalOrders),
			EstimatedCO2Savings:   best.CO2Savings * float64(summary.TotalOrders),
			Priority:              switchPriority(best.RecommendationScore),
			AffectedOrdersPercent: top.PercentOfOrders,
		})
	}

	// Service downgrade: heavy express/overnight usage.
	expressPercent, affected, err := s.records.ExpressShareOver(ctx, merchantID, from, to)
	if err != nil {
		return Result{}, err
	}
	if expressPercent > expressShareTrigger {
		if ground, ok := findGroundAlternative(alternatives); ok && (ground.CostSavings > 0 || ground.CO2Savings > 0) {
			priority := domain.PriorityMedium
			if expressPercent > expressShareHigh {
				priority = domain.PriorityHigh
			}
			result.Recommendations = append(result.Recommendations, domain.Recommendation{
				Type:  domain.RecServiceDowngrade,
				Title: "Consider standard shipping for non-urgent orders",
				Description: fmt.Sprintf(
					"%d%% of your orders use express/overnight shipping. Switching to ground shipping when possible could significantly reduce costs and carbon emissions.",
					int(math.Round(expressPercent))),
				EstimatedCostSavings:  ground.CostSavings * float64(affected),
				EstimatedCO2Savings:   ground.CO2Savings * float64(affected),
				Priority:              priority,
				AffectedOrdersPercent: expressPercent,
			})
		}
	}

	// Carbon offset: providers with offset programs exist and the merchant
	// has not opted in yet.
	offsetCount := 0
	for _, alt := range alternatives {
		if alt.CarbonOffsetAvailable {
			offsetCount++
		}
	}
	if offsetCount > 0 && !prefs.RequireCarbonOffset {
		result.Recommendations = append(result.Recommendations, domain.Recommendation{
			Type:  domain.RecOffset,
			Title: "Enable carbon offset shipping",
			Description: fmt.Sprintf(
				"%d shipping providers offer carbon offset options. This can help neutralize your shipping emissions at minimal additional cost.",
				offsetCount),
			EstimatedCO2Savings: summary.TotalCO2e * offsetReductionShare,
			Priority:            domain.PriorityMedium,
		})
	}

	// Consolidation: many tiny shipments.
	if avgWeight < consolidationMaxAvgWeight && summary.TotalOrders > consolidationMinOrders {
		result.Recommendations = append(result.Recommendations, domain.Recommendation{
			Type:                 domain.RecConsolidation,
			Title:                "Consider order consolidation",
			Description:          "Your average order weight is very low. Encouraging customers to consolidate orders or setting minimum order thresholds could reduce per-order shipping costs and emissions.",
			EstimatedCostSavings: summary.TotalCost * consolidationSavingsShare,
			EstimatedCO2Savings:  summary.TotalCO2e * consolidationSavingsShare,
			Priority:             domain.PriorityLow,
		})
	}

	sortByPriority(result.Recommendations)

	if len(result.Recommendations) > 0 && result.Recommendations[0].Type == domain.RecProviderSwitch {
		rec := result.Recommendations[0]
		result.TopRecommendation = &TopRecommendation{
			FromProvider: top.ProviderName,
			ToProvider:   fmt.Sprintf("%s %s", best.ProviderName, best.ServiceLevel),
			Reason:       "Best overall value based on your cost and carbon preferences",
			Impact: fmt.Sprintf("Save $%d and %gkg CO2e per month",
				int(math.Round(rec.EstimatedCostSavings)),
				math.Round(rec.EstimatedCO2Savings*10)/10),
		}
	}

	return result, nil
}

func (s *Service) loadSettings(ctx context.Context, merchantID string) domain.OptimizationSettings {
	prefs, found, err := s.settings.GetSettings(ctx, merchantID)
	if err != nil || !found {
		return domain.DefaultOptimizationSettings(merchantID)
	}
	return prefs
}

// potentialSavings extrapolates the single best cost and carbon savers
// across the period's order volume.
func (s *Service) potentialSavings(summary domain.CostSummary, alternatives []domain.CompareAlternative) Summary {
	out := Summary{}
	if len(alternatives) == 0 {
		return out
	}

	bestCost := alternatives[0]
	bestCarbon := alternatives[0]
	for _, alt := range alternatives[1:] {
		if alt.CostSavings > bestCost.CostSavings {
			bestCost = alt
		}
		if alt.CO2Savings > bestCarbon.CO2Savings {
			bestCarbon = alt
		}
	}

	if bestCost.CostSavings > 0 {
		out.PotentialCostSavings = math.Round(bestCost.CostSavings*float64(summary.TotalOrders)*100) / 100
	}
	if bestCarbon.CO2Savings > 0 {
		out.PotentialCO2Reduction = math.Round(bestCarbon.CO2Savings*float64(summary.TotalOrders)*1000) / 1000
	}
	if summary.TotalCost > 0 {
		out.PotentialCostSavingsPercent = math.Round(out.PotentialCostSavings/summary.TotalCost*1000) / 10
	}
	if summary.TotalCO2e > 0 {
		out.PotentialCO2ReductionPercent = math.Round(out.PotentialCO2Reduction/summary.TotalCO2e*1000) / 10
	}
	return out
}

func switchPriority(score float64) domain.Priority {
	switch {
	case score > switchHighScore:
		return domain.PriorityHigh
	case score > switchMediumScore:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

func findGroundAlternative(alternatives []domain.CompareAlternative) (domain.CompareAlternative, bool) {
	for _, alt := range alternatives {
		lower := strings.ToLower(alt.ServiceLevel)
		if strings.Contains(lower, "ground") || strings.Contains(lower, "standard") {
			return alt, true
		}
	}
	return domain.CompareAlternative{}, false
}

var priorityRank = map[domain.Priority]int{
	domain.PriorityHigh:   0,
	domain.PriorityMedium: 1,
	domain.PriorityLow:    2,
}

func sortByPriority(recs []domain.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return priorityRank[recs[i].Priority] < priorityRank[recs[j].Priority]
	})
}
