package postgres

import (
	"context"
	"time"

	"greenmile/internal/domain"
)

// StatsRepository

// CostSummary aggregates a merchant's shipping spend and emissions over the
// period. Averages come back zeroed when the merchant has no orders.
func (db *DB) CostSummary(ctx context.Context, merchantID string, from, to time.Time) (domain.CostSummary, error) {
	var s domain.CostSummary
	var totalWeight float64
	err := db.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(r.shipping_cost), 0),
		       COUNT(DISTINCT o.id),
		       COALESCE(SUM(o.total_weight), 0),
		       COALESCE(SUM(e.total_co2e), 0)
		FROM orders o
		LEFT JOIN order_shipping_records r ON r.order_id = o.id
		LEFT JOIN emission_records e ON e.order_id = o.id
		WHERE o.merchant_id = $1 AND o.created_at >= $2 AND o.created_at < $3
	`, merchantID, from, to).Scan(&s.TotalCost, &s.TotalOrders, &totalWeight, &s.TotalCO2e)
	if err != nil {
		return domain.CostSummary{}, err
	}

	if s.TotalOrders > 0 {
		s.AvgCostPerOrder = s.TotalCost / float64(s.TotalOrders)
		s.AvgCO2ePerOrder = s.TotalCO2e / float64(s.TotalOrders)
	}
	if totalWeight > 0 {
		s.AvgCostPerKg = s.TotalCost / totalWeight
	}
	if s.TotalCost > 0 {
		s.CarbonPerDollar = s.TotalCO2e / s.TotalCost
	}
	return s, nil
}

// ProviderBreakdown groups the period's orders by detected provider.
// Unmatched carriers appear under their detected name with a nil id.
func (db *DB) ProviderBreakdown(ctx context.Context, merchantID string, from, to time.Time) ([]domain.ProviderBreakdown, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT r.detected_provider_name,
		       r.matched_provider_id,
		       COUNT(*),
		       COALESCE(SUM(r.shipping_cost), 0),
		       COALESCE(SUM(e.total_co2e), 0)
		FROM order_shipping_records r
		LEFT JOIN emission_records e ON e.order_id = r.order_id
		WHERE r.merchant_id = $1 AND r.created_at >= $2 AND r.created_at < $3
		GROUP BY r.detected_provider_name, r.matched_provider_id
		ORDER BY COUNT(*) DESC, r.detected_provider_name
	`, merchantID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ProviderBreakdown
	total := 0
	for rows.Next() {
		var b domain.ProviderBreakdown
		if err := rows.Scan(&b.ProviderName, &b.ProviderID, &b.OrderCount, &b.TotalCost, &b.TotalCO2e); err != nil {
			return nil, err
		}
		if b.OrderCount > 0 {
			b.AvgCostPerOrder = b.TotalCost / float64(b.OrderCount)
		}
		total += b.OrderCount
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if total > 0 {
			out[i].PercentOfOrders = float64(out[i].OrderCount) / float64(total) * 100
		}
	}
	return out, nil
}
