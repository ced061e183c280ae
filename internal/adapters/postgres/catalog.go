package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"greenmile/internal/domain"
)

// ProviderCatalog

func (db *DB) FindActiveByName(ctx context.Context, name string) (domain.ShippingProvider, bool, error) {
	var p domain.ShippingProvider
	err := db.Pool.QueryRow(ctx, `
		SELECT id, name, display_name, type,
		       standard_emission_factor, express_emission_factor, overnight_emission_factor,
		       base_price_per_kg, base_price_per_km, minimum_charge,
		       avg_delivery_days, sustainability_rating, carbon_offset_available, active
		FROM shipping_providers
		WHERE name = $1 AND active
	`, strings.ToLower(name)).Scan(
		&p.ID, &p.Name, &p.DisplayName, &p.Type,
		&p.StandardEmissionFactor, &p.ExpressEmissionFactor, &p.OvernightEmissionFactor,
		&p.BasePricePerKg, &p.BasePricePerKm, &p.MinimumCharge,
		&p.AvgDeliveryDays, &p.SustainabilityRating, &p.CarbonOffsetAvailable, &p.Active,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ShippingProvider{}, false, nil
	}
	if err != nil {
		return domain.ShippingProvider{}, false, err
	}

	levels, err := db.serviceLevelsFor(ctx, []string{p.ID})
	if err != nil {
		return domain.ShippingProvider{}, false, err
	}
	p.ServiceLevels = levels[p.ID]
	return p, true, nil
}

func (db *DB) ListActive(ctx context.Context, excludeIDs []string) ([]domain.ShippingProvider, error) {
	if excludeIDs == nil {
		excludeIDs = []string{}
	}
	rows, err := db.Pool.Query(ctx, `
		SELECT id, name, display_name, type,
		       standard_emission_factor, express_emission_factor, overnight_emission_factor,
		       base_price_per_kg, base_price_per_km, minimum_charge,
		       avg_delivery_days, sustainability_rating, carbon_offset_available, active
		FROM shipping_providers
		WHERE active AND NOT (id::text = ANY($1))
		ORDER BY name
	`, excludeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []domain.ShippingProvider
	var ids []string
	for rows.Next() {
		var p domain.ShippingProvider
		if err := rows.Scan(
			&p.ID, &p.Name, &p.DisplayName, &p.Type,
			&p.StandardEmissionFactor, &p.ExpressEmissionFactor, &p.OvernightEmissionFactor,
			&p.BasePricePerKg, &p.BasePricePerKm, &p.MinimumCharge,
			&p.AvgDeliveryDays, &p.SustainabilityRating, &p.CarbonOffsetAvailable, &p.Active,
		); err != nil {
			return nil, err
		}
		providers = append(providers, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(providers) == 0 {
		return providers, nil
	}

	levels, err := db.serviceLevelsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range providers {
		providers[i].ServiceLevels = levels[providers[i].ID]
	}
	return providers, nil
}

// serviceLevelsFor loads active service levels for a set of providers,
// keyed by provider id. Insertion order within a provider follows the
// seeded code ordering so comparison tie order stays stable.
func (db *DB) serviceLevelsFor(ctx context.Context, providerIDs []string) (map[string][]domain.ServiceLevel, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, provider_id, name, code, emission_factor, shipping_mode,
		       price_multiplier, min_delivery_days, max_delivery_days, active
		FROM shipping_service_levels
		WHERE active AND provider_id::text = ANY($1)
		ORDER BY provider_id, code
	`, providerIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.ServiceLevel, len(providerIDs))
	for rows.Next() {
		var l domain.ServiceLevel
		var mode string
		if err := rows.Scan(
			&l.ID, &l.ProviderID, &l.Name, &l.Code, &l.EmissionFactor, &mode,
			&l.PriceMultiplier, &l.MinDeliveryDays, &l.MaxDeliveryDays, &l.Active,
		); err != nil {
			return nil, err
		}
		l.ShippingMode = domain.ShippingMode(mode)
		out[l.ProviderID] = append(out[l.ProviderID], l)
	}
	return out, rows.Err()
}
