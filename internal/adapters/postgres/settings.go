package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"greenmile/internal/domain"
)

// SettingsRepository

func (db *DB) GetSettings(ctx context.Context, merchantID string) (domain.OptimizationSettings, bool, error) {
	var s domain.OptimizationSettings
	err := db.Pool.QueryRow(ctx, `
		SELECT merchant_id, cost_weight, carbon_weight, preferred_provider_ids,
		       excluded_provider_ids, max_delivery_days, require_carbon_offset
		FROM optimization_settings
		WHERE merchant_id = $1
	`, merchantID).Scan(
		&s.MerchantID, &s.CostWeight, &s.CarbonWeight, &s.PreferredProviderIDs,
		&s.ExcludedProviderIDs, &s.MaxDeliveryDays, &s.RequireCarbonOffset,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.OptimizationSettings{}, false, nil
	}
	if err != nil {
		return domain.OptimizationSettings{}, false, err
	}
	return s, true, nil
}

func (db *DB) UpsertSettings(ctx context.Context, s domain.OptimizationSettings) error {
	if s.PreferredProviderIDs == nil {
		s.PreferredProviderIDs = []string{}
	}
	if s.ExcludedProviderIDs == nil {
		s.ExcludedProviderIDs = []string{}
	}
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO optimization_settings
		    (merchant_id, cost_weight, carbon_weight, preferred_provider_ids,
		     excluded_provider_ids, max_delivery_days, require_carbon_offset)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (merchant_id) DO UPDATE SET
		    cost_weight = EXCLUDED.cost_weight,
		    carbon_weight = EXCLUDED.carbon_weight,
		    preferred_provider_ids = EXCLUDED.preferred_provider_ids,
		    excluded_provider_ids = EXCLUDED.excluded_provider_ids,
		    max_delivery_days = EXCLUDED.max_delivery_days,
		    require_carbon_offset = EXCLUDED.require_carbon_offset
	`, s.MerchantID, s.CostWeight, s.CarbonWeight, s.PreferredProviderIDs,
		s.ExcludedProviderIDs, s.MaxDeliveryDays, s.RequireCarbonOffset)
	return err
}
