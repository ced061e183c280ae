package carrier

import (
	"context"
	"log"
	"strings"

	"greenmile/internal/domain"
	"greenmile/internal/ports"
)

// Matcher reconciles detection results against the persisted provider
// catalog, overriding generic emission-factor guesses with catalog-specific
// values when a match is found.
type Matcher struct {
	catalog ports.ProviderCatalog
}

func NewMatcher(catalog ports.ProviderCatalog) *Matcher {
	return &Matcher{catalog: catalog}
}

// Match looks up the detected provider in the catalog. On a hit the
// catalog's service-level emission factor and mode replace the detector
// defaults and ProviderID is set. Lookup failures are logged and the
// detection result is returned unchanged; this path never surfaces an
// error to the caller.
func (m *Matcher) Match(ctx context.Context, detected domain.DetectedShippingInfo) domain.DetectedShippingInfo {
	if detected.ProviderName == unknownProviderName {
		return detected
	}

	provider, found, err := m.catalog.FindActiveByName(ctx, strings.ToLower(detected.ProviderName))
	if err != nil {
		log.Printf("carrier: match provider %q: %v", detected.ProviderName, err)
		return detected
	}
	if !found {
		return detected
	}

	out := detected
	out.ProviderID = &provider.ID
	for _, level := range provider.ServiceLevels {
		if strings.Contains(strings.ToLower(level.Name), detected.ServiceLevel) {
			out.EmissionFactor = level.EmissionFactor
			out.ShippingMode = level.ShippingMode
			break
		}
	}
	return out
}
