package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"greenmile/internal/carrier"
	"greenmile/internal/domain"
	"greenmile/internal/emissions"
	"greenmile/internal/geo"
	"greenmile/internal/ports"
)

// Ingestion defaults for fields the storefront did not supply. The
// estimators themselves perform no validation, so sane values go in here.
const (
	defaultLineItemWeightKg  = 0.5
	defaultPackagingWeightKg = 0.1
	defaultCurrency          = "USD"
)

// Service turns incoming storefront orders into persisted order, shipping,
// and emission records. The emission write and the shipping-record write
// are independent; a partial failure leaves a repairable gap that the
// corrective sync pass closes later.
type Service struct {
	orders     ports.OrderRepository
	records    ports.ShippingRecordRepository
	emissions  ports.EmissionRepository
	matcher    *carrier.Matcher
	calculator *emissions.Calculator
	origin     string // merchant warehouse address used for distance estimates
}

func New(orders ports.OrderRepository, records ports.ShippingRecordRepository, emissionRepo ports.EmissionRepository, matcher *carrier.Matcher, calculator *emissions.Calculator, originAddress string) *Service {
	if originAddress == "" {
		originAddress = "Warehouse"
	}
	return &Service{
		orders:     orders,
		records:    records,
		emissions:  emissionRepo,
		matcher:    matcher,
		calculator: calculator,
		origin:     originAddress,
	}
}

// IngestOrder processes one incoming order: estimates distance and mode,
// detects and matches the carrier, then persists the order plus its
// shipping and emission records. Re-delivery of an already-ingested order
// repairs whatever records are missing instead of duplicating.
func (s *Service) IngestOrder(ctx context.Context, in ports.IncomingOrder) (string, error) {
	if existing, found, err := s.orders.OrderByExternalID(ctx, in.MerchantID, in.ExternalOrderID); err != nil {
		return "", fmt.Errorf("ingest: lookup order: %w", err)
	} else if found {
		return existing.ID, s.Repair(ctx, existing, in)
	}

	totalWeight := 0.0
	for _, item := range in.LineItems {
		weight := item.Grams / 1000
		if weight <= 0 {
			weight = defaultLineItemWeightKg
		}
		totalWeight += weight * float64(item.Quantity)
	}
	if totalWeight <= 0 {
		totalWeight = 1
	}

	origin := in.OriginAddress
	if origin == "" {
		origin = s.origin
	}
	mode := geo.DetermineShippingMethod(in.ShippingLineTitle)
	distance := geo.EstimateShippingDistance(origin, in.DestinationAddress)

	currency := in.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	order := domain.Order{
		MerchantID:         in.MerchantID,
		ExternalOrderID:    in.ExternalOrderID,
		OrderNumber:        in.OrderNumber,
		TotalPrice:         in.TotalPrice,
		TotalWeight:        totalWeight,
		ShippingDistance:   distance,
		ShippingMethod:     mode,
		OriginAddress:      origin,
		DestinationAddress: in.DestinationAddress,
		PackagingWeight:    defaultPackagingWeightKg,
		PackagingType:      domain.PackagingCardboard,
		CreatedAt:          createdAt,
	}

	orderID, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		return "", fmt.Errorf("ingest: create order: %w", err)
	}
	order.ID = orderID

	// Shipping record and emission record are independent writes; each
	// failure is logged and left for the corrective pass rather than
	// rolling back the order.
	if err := s.writeShippingRecord(ctx, order, in, currency); err != nil {
		log.Printf("ingest: shipping record for order %s: %v", orderID, err)
	}
	if err := s.writeEmissionRecord(ctx, order); err != nil {
		log.Printf("ingest: emission record for order %s: %v", orderID, err)
	}

	return orderID, nil
}

// Repair fills in missing shipping/emission records for an order that was
// only partially ingested.
func (s *Service) Repair(ctx context.Context, order domain.Order, in ports.IncomingOrder) error {
	currency := in.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	if _, found, err := s.records.ShippingRecordByOrder(ctx, order.MerchantID, order.ID); err != nil {
		return fmt.Errorf("ingest: lookup shipping record: %w", err)
	} else if !found && in.ShippingLineTitle != "" {
		if err := s.writeShippingRecord(ctx, order, in, currency); err != nil {
			return err
		}
	}

	if _, found, err := s.emissions.EmissionByOrder(ctx, order.MerchantID, order.ID); err != nil {
		return fmt.Errorf("ingest: lookup emission record: %w", err)
	} else if !found {
		return s.writeEmissionRecord(ctx, order)
	}
	return nil
}

// RepairMissingEmissions recalculates and writes emission records for the
// merchant's orders that have none, in batches. Shipping records cannot be
// rebuilt here; the original shipping line is only available at webhook
// delivery time.
func (s *Service) RepairMissingEmissions(ctx context.Context, merchantID string) error {
	const batchSize = 100
	for {
		orders, err := s.orders.OrdersMissingEmissions(ctx, merchantID, batchSize)
		if err != nil {
			return fmt.Errorf("ingest: list orders missing emissions: %w", err)
		}
		if len(orders) == 0 {
			return nil
		}
		for _, order := range orders {
			if err := s.writeEmissionRecord(ctx, order); err != nil {
				return fmt.Errorf("ingest: repair emission for order %s: %w", order.ID, err)
			}
		}
		if len(orders) < batchSize {
			return nil
		}
	}
}

func (s *Service) writeShippingRecord(ctx context.Context, order domain.Order, in ports.IncomingOrder, currency string) error {
	if in.ShippingLineTitle == "" {
		return nil
	}

	detected := carrier.Detect(in.ShippingLineTitle, in.ShippingLineCode)
	matched := s.matcher.Match(ctx, detected)

	rec := domain.OrderShippingRecord{
		OrderID:              order.ID,
		MerchantID:           order.MerchantID,
		DetectedProviderName: detected.ProviderName,
		DetectedServiceLevel: detected.ServiceLevel,
		MatchedProviderID:    matched.ProviderID,
		ShippingCost:         in.ShippingCost,
		ShippingCurrency:     currency,
	}
	if in.ShippingLineCode != "" {
		code := in.ShippingLineCode
		rec.CarrierCode = &code
	}
	title := in.ShippingLineTitle
	rec.CarrierTitle = &title
	if order.TotalWeight > 0 {
		perKg := in.ShippingCost / order.TotalWeight
		rec.CostPerKg = &perKg
	}
	if order.ShippingDistance > 0 {
		perKm := in.ShippingCost / order.ShippingDistance
		rec.CostPerKm = &perKm
	}

	return s.records.CreateShippingRecord(ctx, rec)
}

func (s *Service) writeEmissionRecord(ctx context.Context, order domain.Order) error {
	result := s.calculator.Calculate(ctx, emissions.Input{
		ShippingDistance: order.ShippingDistance,
		ShippingMethod:   order.ShippingMethod,
		TotalWeight:      order.TotalWeight,
		PackagingWeight:  order.PackagingWeight,
		PackagingType:    order.PackagingType,
	})

	return s.emissions.UpsertEmission(ctx, domain.EmissionRecord{
		MerchantID:        order.MerchantID,
		OrderID:           order.ID,
		TotalCO2e:         result.TotalCO2e,
		ShippingCO2e:      result.ShippingCO2e,
		PackagingCO2e:     result.PackagingCO2e,
		CalculationMethod: result.CalculationMethod,
	})
}
