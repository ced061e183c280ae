package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"greenmile/internal/domain"
)

// ShippingRecordRepository

func (db *DB) CreateShippingRecord(ctx context.Context, rec domain.OrderShippingRecord) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO order_shipping_records
		    (order_id, merchant_id, detected_provider_name, detected_service_level,
		     matched_provider_id, shipping_cost, shipping_currency,
		     carrier_code, carrier_title, cost_per_kg, cost_per_km)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (order_id) DO NOTHING
	`,
		rec.OrderID, rec.MerchantID, rec.DetectedProviderName, rec.DetectedServiceLevel,
		rec.MatchedProviderID, rec.ShippingCost, rec.ShippingCurrency,
		rec.CarrierCode, rec.CarrierTitle, rec.CostPerKg, rec.CostPerKm,
	)
	return err
}

func (db *DB) ShippingRecordByOrder(ctx context.Context, merchantID, orderID string) (domain.OrderShippingRecord, bool, error) {
	var rec domain.OrderShippingRecord
	err := db.Pool.QueryRow(ctx, `
		SELECT id, order_id, merchant_id, detected_provider_name, detected_service_level,
		       matched_provider_id, shipping_cost, shipping_currency,
		       carrier_code, carrier_title, cost_per_kg, cost_per_km, created_at
		FROM order_shipping_records
		WHERE merchant_id = $1 AND order_id = $2
	`, merchantID, orderID).Scan(
		&rec.ID, &rec.OrderID, &rec.MerchantID, &rec.DetectedProviderName, &rec.DetectedServiceLevel,
		&rec.MatchedProviderID, &rec.ShippingCost, &rec.ShippingCurrency,
		&rec.CarrierCode, &rec.CarrierTitle, &rec.CostPerKg, &rec.CostPerKm, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.OrderShippingRecord{}, false, nil
	}
	if err != nil {
		return domain.OrderShippingRecord{}, false, err
	}
	return rec, true, nil
}

// ExpressShareOver computes what fraction of the period's orders shipped on
// an express or overnight service level.
func (db *DB) ExpressShareOver(ctx context.Context, merchantID string, from, to time.Time) (float64, int, error) {
	var total, express int
	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE detected_service_level IN ('express', 'overnight'))
		FROM order_shipping_records
		WHERE merchant_id = $1 AND created_at >= $2 AND created_at < $3
	`, merchantID, from, to).Scan(&total, &express)
	if err != nil {
		return 0, 0, err
	}
	if total == 0 {
		return 0, 0, nil
	}
	return float64(express) / float64(total) * 100, express, nil
}
