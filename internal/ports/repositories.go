package ports

import (
	"context"
	"time"

	"greenmile/internal/domain"
)

// ProviderCatalog reads the seeded carrier catalog. Read-only from the
// core's perspective.
type ProviderCatalog interface {
	// FindActiveByName looks up an active provider by its lowercase name,
	// with active service levels attached. found is false when no such
	// provider exists.
	FindActiveByName(ctx context.Context, name string) (provider domain.ShippingProvider, found bool, err error)
	// ListActive returns all active providers with active service levels,
	// excluding the given provider ids.
	ListActive(ctx context.Context, excludeIDs []string) ([]domain.ShippingProvider, error)
}

// OrderRepository stores and fetches the order slice the core consumes.
type OrderRepository interface {
	CreateOrder(ctx context.Context, o domain.Order) (orderID string, err error)
	OrderByExternalID(ctx context.Context, merchantID, externalOrderID string) (order domain.Order, found bool, err error)
	GetOrder(ctx context.Context, merchantID, orderID string) (order domain.Order, found bool, err error)
	// AverageMetrics returns mean order weight and shipping distance over
	// a period; count is the number of orders seen.
	AverageMetrics(ctx context.Context, merchantID string, from, to time.Time) (avgWeight, avgDistance float64, count int, err error)
	// OrdersMissingEmissions lists orders that have no emission record yet,
	// oldest first. The corrective sync pass consumes this.
	OrdersMissingEmissions(ctx context.Context, merchantID string, limit int) ([]domain.Order, error)
}

// ShippingRecordRepository manages per-order shipping records.
type ShippingRecordRepository interface {
	CreateShippingRecord(ctx context.Context, rec domain.OrderShippingRecord) error
	ShippingRecordByOrder(ctx context.Context, merchantID, orderID string) (rec domain.OrderShippingRecord, found bool, err error)
	// ExpressShareOver returns the fraction (0-100) of a merchant's orders
	// in the period whose detected service level is express or overnight,
	// along with the affected order count.
	ExpressShareOver(ctx context.Context, merchantID string, from, to time.Time) (percent float64, affected int, err error)
}

// EmissionRepository manages per-order emission records.
type EmissionRepository interface {
	UpsertEmission(ctx context.Context, rec domain.EmissionRecord) error
	EmissionByOrder(ctx context.Context, merchantID, orderID string) (rec domain.EmissionRecord, found bool, err error)
}

// SettingsRepository stores per-merchant optimization preferences.
type SettingsRepository interface {
	// GetSettings returns the merchant's saved settings, or found=false
	// when the merchant has never saved any (callers apply defaults).
	GetSettings(ctx context.Context, merchantID string) (s domain.OptimizationSettings, found bool, err error)
	UpsertSettings(ctx context.Context, s domain.OptimizationSettings) error
}

// StatsRepository serves the aggregations behind recommendations and the
// costs dashboard.
type StatsRepository interface {
	CostSummary(ctx context.Context, merchantID string, from, to time.Time) (domain.CostSummary, error)
	ProviderBreakdown(ctx context.Context, merchantID string, from, to time.Time) ([]domain.ProviderBreakdown, error)
}
