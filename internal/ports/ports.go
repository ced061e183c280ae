package ports

import (
	"context"
	"time"

	"greenmile/internal/domain"
)

// IncomingOrder is a raw order as delivered by a storefront webhook or sync
// pull, before any estimation has happened.
type IncomingOrder struct {
	MerchantID         string
	ExternalOrderID    string
	OrderNumber        string
	TotalPrice         float64
	LineItems          []IncomingLineItem
	ShippingLineTitle  string
	ShippingLineCode   string
	ShippingCost       float64
	Currency           string
	OriginAddress      string
	DestinationAddress string
	CreatedAt          time.Time
}

type IncomingLineItem struct {
	Grams    float64
	Quantity int
}

// Ingestor processes incoming orders into persisted order, shipping, and
// emission records.
type Ingestor interface {
	IngestOrder(ctx context.Context, in IncomingOrder) (orderID string, err error)
}

// Comparer evaluates catalog alternatives against a cost/CO2e baseline.
type Comparer interface {
	GenerateComparisons(ctx context.Context, currentCost, currentCO2e, weight, distance float64, prefs *domain.OptimizationSettings) ([]domain.CompareAlternative, error)
}
