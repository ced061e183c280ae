package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"greenmile/internal/domain"
)

// OrderRepository

func (db *DB) CreateOrder(ctx context.Context, o domain.Order) (string, error) {
	var id string
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO orders
		    (merchant_id, external_order_id, order_number, total_price, total_weight,
		     shipping_distance, shipping_method, origin_address, destination_address,
		     packaging_weight, packaging_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`,
		o.MerchantID, o.ExternalOrderID, o.OrderNumber, o.TotalPrice, o.TotalWeight,
		o.ShippingDistance, string(o.ShippingMethod), o.OriginAddress, o.DestinationAddress,
		o.PackagingWeight, string(o.PackagingType), o.CreatedAt,
	).Scan(&id)
	return id, err
}

func (db *DB) OrderByExternalID(ctx context.Context, merchantID, externalOrderID string) (domain.Order, bool, error) {
	return db.getOrder(ctx, `
		SELECT id, merchant_id, external_order_id, order_number, total_price, total_weight,
		       shipping_distance, shipping_method, origin_address, destination_address,
		       packaging_weight, packaging_type, created_at
		FROM orders
		WHERE merchant_id = $1 AND external_order_id = $2
	`, merchantID, externalOrderID)
}

func (db *DB) GetOrder(ctx context.Context, merchantID, orderID string) (domain.Order, bool, error) {
	return db.getOrder(ctx, `
		SELECT id, merchant_id, external_order_id, order_number, total_price, total_weight,
		       shipping_distance, shipping_method, origin_address, destination_address,
		       packaging_weight, packaging_type, created_at
		FROM orders
		WHERE merchant_id = $1 AND id = $2
	`, merchantID, orderID)
}

func (db *DB) getOrder(ctx context.Context, query string, args ...any) (domain.Order, bool, error) {
	var o domain.Order
	var method, packaging string
	err := db.Pool.QueryRow(ctx, query, args...).Scan(
		&o.ID, &o.MerchantID, &o.ExternalOrderID, &o.OrderNumber, &o.TotalPrice, &o.TotalWeight,
		&o.ShippingDistance, &method, &o.OriginAddress, &o.DestinationAddress,
		&o.PackagingWeight, &packaging, &o.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, false, nil
	}
	if err != nil {
		return domain.Order{}, false, err
	}
	o.ShippingMethod = domain.ShippingMode(method)
	o.PackagingType = domain.PackagingType(packaging)
	return o, true, nil
}

func (db *DB) OrdersMissingEmissions(ctx context.Context, merchantID string, limit int) ([]domain.Order, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT o.id, o.merchant_id, o.external_order_id, o.order_number, o.total_price, o.total_weight,
		       o.shipping_distance, o.shipping_method, o.origin_address, o.destination_address,
		       o.packaging_weight, o.packaging_type, o.created_at
		FROM orders o
		LEFT JOIN emission_records e ON e.order_id = o.id
		WHERE o.merchant_id = $1 AND e.id IS NULL
		ORDER BY o.created_at
		LIMIT $2
	`, merchantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		var o domain.Order
		var method, packaging string
		if err := rows.Scan(
			&o.ID, &o.MerchantID, &o.ExternalOrderID, &o.OrderNumber, &o.TotalPrice, &o.TotalWeight,
			&o.ShippingDistance, &method, &o.OriginAddress, &o.DestinationAddress,
			&o.PackagingWeight, &packaging, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		o.ShippingMethod = domain.ShippingMode(method)
		o.PackagingType = domain.PackagingType(packaging)
		out = append(out, o)
	}
	return out, rows.Err()
}

func (db *DB) AverageMetrics(ctx context.Context, merchantID string, from, to time.Time) (float64, float64, int, error) {
	var avgWeight, avgDistance float64
	var count int
	err := db.Pool.QueryRow(ctx, `
		SELECT COALESCE(AVG(total_weight), 0),
		       COALESCE(AVG(shipping_distance), 0),
		       COUNT(*)
		FROM orders
		WHERE merchant_id = $1 AND created_at >= $2 AND created_at < $3
	`, merchantID, from, to).Scan(&avgWeight, &avgDistance, &count)
	return avgWeight, avgDistance, count, err
}
