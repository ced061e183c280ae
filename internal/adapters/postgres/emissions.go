package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"greenmile/internal/domain"
)

// EmissionRepository

func (db *DB) UpsertEmission(ctx context.Context, rec domain.EmissionRecord) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO emission_records
		    (merchant_id, order_id, total_co2e, shipping_co2e, packaging_co2e, calculation_method)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (order_id) DO UPDATE SET
		    total_co2e = EXCLUDED.total_co2e,
		    shipping_co2e = EXCLUDED.shipping_co2e,
		    packaging_co2e = EXCLUDED.packaging_co2e,
		    calculation_method = EXCLUDED.calculation_method
	`, rec.MerchantID, rec.OrderID, rec.TotalCO2e, rec.ShippingCO2e, rec.PackagingCO2e, rec.CalculationMethod)
	return err
}

func (db *DB) EmissionByOrder(ctx context.Context, merchantID, orderID string) (domain.EmissionRecord, bool, error) {
	var rec domain.EmissionRecord
	err := db.Pool.QueryRow(ctx, `
		SELECT id, merchant_id, order_id, total_co2e, shipping_co2e, packaging_co2e,
		       calculation_method, created_at
		FROM emission_records
		WHERE merchant_id = $1 AND order_id = $2
	`, merchantID, orderID).Scan(
		&rec.ID, &rec.MerchantID, &rec.OrderID, &rec.TotalCO2e, &rec.ShippingCO2e,
		&rec.PackagingCO2e, &rec.CalculationMethod, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.EmissionRecord{}, false, nil
	}
	if err != nil {
		return domain.EmissionRecord{}, false, err
	}
	return rec, true, nil
}
