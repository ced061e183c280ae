package compare

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"

	"greenmile/internal/domain"
	"greenmile/internal/emissions"
	"greenmile/internal/ports"
	"greenmile/internal/pricing"
)

// Service evaluates catalog alternatives against a merchant's current
// cost/CO2e baseline.
type Service struct {
	catalog ports.ProviderCatalog
}

func New(catalog ports.ProviderCatalog) *Service {
	return &Service{catalog: catalog}
}

// RecommendationScore combines two normalized savings percentages into a
// weighted 0-100 score. Negative percentages clamp to 0 and values above
// 100 cap at 100 before weighting; when both weights are zero the two
// normalized scores are averaged unweighted.
func RecommendationScore(costSavingsPercent, co2SavingsPercent float64, costWeight, carbonWeight int) float64 {
	costScore := clampPercent(costSavingsPercent)
	co2Score := clampPercent(co2SavingsPercent)

	totalWeight := costWeight + carbonWeight
	if totalWeight <= 0 {
		return (costScore + co2Score) / 2
	}
	return (costScore*float64(costWeight) + co2Score*float64(carbonWeight)) / float64(totalWeight)
}

func clampPercent(p float64) float64 {
	if p <= 0 {
		return 0
	}
	return math.Min(p, 100)
}

// GenerateComparisons enumerates all eligible (provider, service level)
// pairs from the catalog, computes cost/CO2e estimates and savings against
// the baseline, and returns the list sorted descending by recommendation
// score. Catalog read failures are logged and yield an empty list; order
// ingestion and the API layer treat that as "no alternatives available".
func (s *Service) GenerateComparisons(ctx context.Context, currentCost, currentCO2e, weight, distance float64, prefs *domain.OptimizationSettings) ([]domain.CompareAlternative, error) {
	var excludeIDs []string
	costWeight, carbonWeight := 50, 50
	if prefs != nil {
		excludeIDs = prefs.ExcludedProviderIDs
		costWeight = prefs.CostWeight
		carbonWeight = prefs.CarbonWeight
	}

	providers, err := s.catalog.ListActive(ctx, excludeIDs)
	if err != nil {
		log.Printf("compare: list providers: %v", err)
		return []domain.CompareAlternative{}, nil
	}

	alternatives := make([]domain.CompareAlternative, 0, len(providers)*3)

	for _, provider := range providers {
		for _, level := range provider.ServiceLevels {
			if prefs != nil && prefs.MaxDeliveryDays != nil && level.MaxDeliveryDays != nil &&
				*level.MaxDeliveryDays > *prefs.MaxDeliveryDays {
				continue
			}
			if prefs != nil && prefs.RequireCarbonOffset && !provider.CarbonOffsetAvailable {
				continue
			}

			estimatedCO2e := emissions.ProviderShippingCO2e(level.EmissionFactor, weight, distance)
			estimatedCost := pricing.EstimateShippingCost(weight, distance, strings.ToLower(level.Name), pricing.Params{
				BasePricePerKg:  provider.BasePricePerKg,
				BasePricePerKm:  provider.BasePricePerKm,
				MinimumCharge:   provider.MinimumCharge,
				PriceMultiplier: level.PriceMultiplier,
			})

			costSavings := currentCost - estimatedCost
			co2Savings := currentCO2e - estimatedCO2e
			costSavingsPercent := 0.0
			if currentCost > 0 {
				costSavingsPercent = costSavings / currentCost * 100
			}
			co2SavingsPercent := 0.0
			if currentCO2e > 0 {
				co2SavingsPercent = co2Savings / currentCO2e * 100
			}

			score := RecommendationScore(costSavingsPercent, co2SavingsPercent, costWeight, carbonWeight)

			alternatives = append(alternatives, domain.CompareAlternative{
				ProviderID:            provider.ID,
				ProviderName:          provider.DisplayName,
				ServiceLevel:          level.Name,
				EstimatedCost:         round2(estimatedCost),
				EstimatedCO2e:         round3(estimatedCO2e),
				DeliveryDays:          deliveryDays(provider, level),
				CostSavings:           round2(costSavings),
				CostSavingsPercent:    round1(costSavingsPercent),
				CO2Savings:            round3(co2Savings),
				CO2SavingsPercent:     round1(co2SavingsPercent),
				RecommendationScore:   round1(score),
				SustainabilityRating:  provider.SustainabilityRating,
				CarbonOffsetAvailable: provider.CarbonOffsetAvailable,
			})
		}
	}

	// Stable sort keeps catalog enumeration order for ties; the descending
	// score order is a contract.
	sort.SliceStable(alternatives, func(i, j int) bool {
		return alternatives[i].RecommendationScore > alternatives[j].RecommendationScore
	})

	return alternatives, nil
}

// deliveryDays picks the displayed delivery estimate for an alternative:
// the level's max, else its min, else the provider average, else 5.
func deliveryDays(provider domain.ShippingProvider, level domain.ServiceLevel) int {
	switch {
	case level.MaxDeliveryDays != nil:
		return *level.MaxDeliveryDays
	case level.MinDeliveryDays != nil:
		return *level.MinDeliveryDays
	case provider.AvgDeliveryDays != nil:
		return *provider.AvgDeliveryDays
	default:
		return 5
	}
}

// BestPicks are the three named selections derived from a sorted
// alternatives list. Nil means no alternative qualifies for that pick.
type BestPicks struct {
	BestForCost   *string
	BestForCarbon *string
	BestOverall   *string
}

// BestAlternatives derives the best-for-cost, best-for-carbon, and
// best-overall picks. The input must already be sorted by recommendation
// score descending (GenerateComparisons output).
func BestAlternatives(alternatives []domain.CompareAlternative) BestPicks {
	if len(alternatives) == 0 {
		return BestPicks{}
	}

	bestForCost := alternatives[0]
	bestForCarbon := alternatives[0]
	for _, alt := range alternatives[1:] {
		if alt.CostSavings > bestForCost.CostSavings {
			bestForCost = alt
		}
		if alt.CO2Savings > bestForCarbon.CO2Savings {
			bestForCarbon = alt
		}
	}
	bestOverall := alternatives[0]

	picks := BestPicks{}
	if bestForCost.CostSavings > 0 {
		picks.BestForCost = ptr(label(bestForCost))
	}
	if bestForCarbon.CO2Savings > 0 {
		picks.BestForCarbon = ptr(label(bestForCarbon))
	}
	if bestOverall.RecommendationScore > 0 {
		picks.BestOverall = ptr(label(bestOverall))
	}
	return picks
}

func label(a domain.CompareAlternative) string {
	return a.ProviderName + " " + a.ServiceLevel
}

func ptr(s string) *string { return &s }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
