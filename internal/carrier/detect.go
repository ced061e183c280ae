package carrier

import (
	"math"
	"strings"

	"greenmile/internal/domain"
)

// Keyword tables for carrier and service-level detection. These are ordered
// slices, not maps: the first category whose keyword list contains a hit
// wins, even if a later category's keyword would also match.

type providerPattern struct {
	key      string
	keywords []string
}

var providerPatterns = []providerPattern{
	{"ups", []string{"ups", "united parcel", "u.p.s", "united parcel service"}},
	{"fedex", []string{"fedex", "federal express", "fed ex", "fed-ex"}},
	{"usps", []string{"usps", "postal service", "priority mail", "first class", "media mail", "parcel select"}},
	{"dhl", []string{"dhl", "deutsche post", "dhl express", "dhl ecommerce"}},
}

type servicePattern struct {
	level    string
	mode     domain.ShippingMode
	factor   float64
	keywords []string
}

// Default emission factors by service level (kg CO2e per ton-km), from the
// GLEC Framework v3.0. These are "no catalog match" defaults and are kept
// separate from both the fallback estimation table and catalog values.
var servicePatterns = []servicePattern{
	{"overnight", domain.ModeAir, 1.13, []string{"overnight", "next day", "1-day", "one day", "express saver", "priority overnight", "next business day"}},
	{"express", domain.ModeRoad, 0.15, []string{"express", "2-day", "two day", "2nd day", "second day", "priority", "2day", "3-day", "three day"}},
	{"ground", domain.ModeRoad, 0.096, []string{"ground", "standard", "economy", "parcel", "smartpost", "surepost", "basic", "deferred"}},
}

const (
	unknownProviderName = "Unknown"
	defaultServiceLevel = "ground"

	matchedConfidenceBase = 50
	unmatchedConfidence   = 20
)

// Detect parses free-text carrier title/code fields into a normalized
// detection result. Pure function; iteration order over the keyword tables
// is part of the contract.
func Detect(title, code string) domain.DetectedShippingInfo {
	searchText := strings.ToLower(title + " " + code)

	providerName := unknownProviderName
	matched := false
	bonus := 0.0

	for _, p := range providerPatterns {
		for _, keyword := range p.keywords {
			if strings.Contains(searchText, keyword) {
				matched = true
				providerName = strings.ToUpper(p.key)
				// Longer keyword hits relative to the search text earn a
				// larger confidence bonus.
				bonus = math.Max(bonus, float64(len(keyword))/float64(len(searchText))*100)
				break
			}
		}
		if matched {
			break
		}
	}

	serviceLevel := defaultServiceLevel
	mode := domain.ModeRoad
	factor := servicePatterns[len(servicePatterns)-1].factor

	for _, s := range servicePatterns {
		found := false
		for _, keyword := range s.keywords {
			if strings.Contains(searchText, keyword) {
				serviceLevel = s.level
				mode = s.mode
				factor = s.factor
				found = true
				break
			}
		}
		if found {
			break
		}
	}

	confidence := unmatchedConfidence
	if matched {
		confidence = int(math.Round(math.Min(bonus+matchedConfidenceBase, 100)))
	}

	return domain.DetectedShippingInfo{
		ProviderID:     nil, // matched against the catalog later
		ProviderName:   providerName,
		ServiceLevel:   serviceLevel,
		Confidence:     confidence,
		EmissionFactor: factor,
		ShippingMode:   mode,
	}
}
