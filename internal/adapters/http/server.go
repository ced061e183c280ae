package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"greenmile/internal/domain"
	"greenmile/internal/ports"
	"greenmile/internal/services/compare"
	"greenmile/internal/services/recommend"
)

const (
	merchantHeader  = "X-Merchant-ID"
	maxAlternatives = 10
	lookbackDays    = 30
)

// Deps collects everything the API surface needs. All repositories are
// ports so tests can swap in fakes.
type Deps struct {
	Catalog       ports.ProviderCatalog
	Orders        ports.OrderRepository
	Records       ports.ShippingRecordRepository
	Emissions     ports.EmissionRepository
	Settings      ports.SettingsRepository
	Stats         ports.StatsRepository
	Jobs          ports.JobRepository
	Comparer      ports.Comparer
	Recommender   *recommend.Service
	Ingestor      ports.Ingestor
	WebhookSecret string
}

type Server struct {
	deps Deps
}

func New(deps Deps) http.Handler {
	s := &Server{deps: deps}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(middleware.Logger)
	r.Get("/healthz", s.handleHealth)
	r.Post("/api/shipping/compare", s.handleCompare)
	r.Get("/api/shipping/recommendations", s.handleRecommendations)
	r.Get("/api/shipping/settings", s.handleGetSettings)
	r.Put("/api/shipping/settings", s.handlePutSettings)
	r.Get("/api/shipping/providers", s.handleProviders)
	r.Get("/api/shipping/costs", s.handleCosts)
	r.Post("/api/shipping/sync", s.handleSync)
	r.Post("/webhooks/orders", s.handleOrderWebhook)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Compare

type CompareRequest struct {
	OrderID string `json:"order_id"`
}

type CompareBaseline struct {
	Cost     float64 `json:"cost"`
	CO2e     float64 `json:"co2e"`
	WeightKg float64 `json:"weight_kg"`
	Distance float64 `json:"distance_km"`
}

type CompareAlternativeJSON struct {
	ProviderID            string  `json:"provider_id"`
	ProviderName          string  `json:"provider_name"`
	ServiceLevel          string  `json:"service_level"`
	EstimatedCost         float64 `json:"estimated_cost"`
	EstimatedCO2e         float64 `json:"estimated_co2e"`
	DeliveryDays          int     `json:"delivery_days"`
	CostSavings           float64 `json:"cost_savings"`
	CostSavingsPercent    float64 `json:"cost_savings_percent"`
	CO2Savings            float64 `json:"co2_savings"`
	CO2SavingsPercent     float64 `json:"co2_savings_percent"`
	RecommendationScore   float64 `json:"recommendation_score"`
	SustainabilityRating  *int    `json:"sustainability_rating"`
	CarbonOffsetAvailable bool    `json:"carbon_offset_available"`
}

type CompareResponse struct {
	Current       CompareBaseline          `json:"current"`
	Alternatives  []CompareAlternativeJSON `json:"alternatives"`
	BestForCost   string                   `json:"best_for_cost"`
	BestForCarbon string                   `json:"best_for_carbon"`
	BestOverall   string                   `json:"best_overall"`
}

// handleCompare evaluates catalog alternatives against either a single
// order's actuals (order_id set) or the merchant's 30-day averages.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	merchantID := r.Header.Get(merchantHeader)
	if merchantID == "" {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "merchant id required")
		return
	}
	var req CompareRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorJSON(w, http.StatusBadRequest, "invalid_json", "invalid json")
			return
		}
	}

	ctx := r.Context()
	var baseline CompareBaseline

	if req.OrderID != "" {
		order, found, err := s.deps.Orders.GetOrder(ctx, merchantID, req.OrderID)
		if err != nil {
			writeErrorJSON(w, http.StatusInternalServerError, "db_error", "db error")
			return
		}
		if !found {
			writeErrorJSON(w, http.StatusNotFound, "resource_not_found", "order not found")
			return
		}
		baseline.WeightKg = order.TotalWeight
		baseline.Distance = order.ShippingDistance
		if rec, found, err := s.deps.Records.ShippingRecordByOrder(ctx, merchantID, order.ID); err == nil && found {
			baseline.Cost = rec.ShippingCost
		}
		if em, found, err := s.deps.Emissions.EmissionByOrder(ctx, merchantID, order.ID); err == nil && found {
			baseline.CO2e = em.TotalCO2e
		}
	} else {
		to := time.Now()
		from := to.Add(-lookbackDays * 24 * time.Hour)
		summary, err := s.deps.Stats.CostSummary(ctx, merchantID, from, to)
		if err != nil {
			writeErrorJSON(w, http.StatusInternalServerError, "db_error", "db error")
			return
		}
		avgWeight, avgDistance, _, err := s.deps.Orders.AverageMetrics(ctx, merchantID, from, to)
		if err != nil {
			writeErrorJSON(w, http.StatusInternalServerError, "db_error", "db error")
			return
		}
		baseline = CompareBaseline{
			Cost:     summary.AvgCostPerOrder,
			CO2e:     summary.AvgCO2ePerOrder,
			WeightKg: avgWeight,
			Distance: avgDistance,
		}
	}

	prefs := s.loadSettings(ctx, merchantID)
	alternatives, err := s.deps.Comparer.GenerateComparisons(ctx, baseline.Cost, baseline.CO2e, baseline.WeightKg, baseline.Distance, &prefs)
	if err != nil {
		writeErrorJSON(w, http.StatusInternalServerError, "compare_error", "comparison failed")
		return
	}

	picks := compare.BestAlternatives(alternatives)
	if len(alternatives) > maxAlternatives {
		alternatives = alternatives[:maxAlternatives]
	}

	res := CompareResponse{
		Current:       baseline,
		Alternatives:  make([]CompareAlternativeJSON, 0, len(alternatives)),
		BestForCost:   orNA(picks.BestForCost),
		BestForCarbon: orNA(picks.BestForCarbon),
		BestOverall:   orNA(picks.BestOverall),
	}
	for _, alt := range alternatives {
		res.Alternatives = append(res.Alternatives, CompareAlternativeJSON{
			ProviderID:            alt.ProviderID,
			ProviderName:          alt.ProviderName,
			ServiceLevel:          alt.ServiceLevel,
			EstimatedCost:         alt.EstimatedCost,
			EstimatedCO2e:         alt.EstimatedCO2e,
			DeliveryDays:          alt.DeliveryDays,
			CostSavings:           alt.CostSavings,
			CostSavingsPercent:    alt.CostSavingsPercent,
			CO2Savings:            alt.CO2Savings,
			CO2SavingsPercent:     alt.CO2SavingsPercent,
			RecommendationScore:   alt.RecommendationScore,
			SustainabilityRating:  alt.SustainabilityRating,
			CarbonOffsetAvailable: alt.CarbonOffsetAvailable,
		})
	}
	writeJSON(w, http.StatusOK, res)
}

func orNA(s *string) string {
	if s == nil {
		return "N/A"
	}
	return *s
}

// Recommendations

type RecommendationJSON struct {
	Type                  string  `json:"type"`
	Title                 string  `json:"title"`
	Description           string  `json:"description"`
	EstimatedCostSavings  float64 `json:"estimated_cost_savings"`
	EstimatedCO2Savings   float64 `json:"estimated_co2_savings"`
	Priority              string  `json:"priority"`
	AffectedOrdersPercent float64 `json:"affected_orders_percent"`
}

type TopRecommendationJSON struct {
	FromProvider string `json:"from_provider"`
	ToProvider   string `json:"to_provider"`
	Reason       string `json:"reason"`
	Impact       string `json:"impact"`
}

type RecommendationsResponse struct {
	Summary struct {
		PotentialCostSavings         float64 `json:"potential_cost_savings"`
		PotentialCO2Reduction        float64 `json:"potential_co2_reduction"`
		PotentialCostSavingsPercent  float64 `json:"potential_cost_savings_percent"`
		PotentialCO2ReductionPercent float64 `json:"potential_co2_reduction_percent"`
	} `json:"summary"`
	Recommendations   []RecommendationJSON   `json:"recommendations"`
	TopRecommendation *TopRecommendationJSON `json:"top_recommendation"`
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	merchantID := r.Header.Get(merchantHeader)
	if merchantID == "" {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "merchant id required")
		return
	}

	result, err := s.deps.Recommender.Recommendations(r.Context(), merchantID)
	if err != nil {
		writeErrorJSON(w, http.StatusInternalServerError, "db_error", "db error")
		return
	}

	var res RecommendationsResponse
	res.Summary.PotentialCostSavings = result.Summary.PotentialCostSavings
	res.Summary.PotentialCO2Reduction = result.Summary.PotentialCO2Reduction
	res.Summary.PotentialCostSavingsPercent = result.Summary.PotentialCostSavingsPercent
	res.Summary.PotentialCO2ReductionPercent = result.Summary.PotentialCO2ReductionPercent
	res.Recommendations = make([]RecommendationJSON, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		res.Recommendations = append(res.Recommendations, RecommendationJSON{
			Type:                  string(rec.Type),
			Title:                 rec.Title,
			Description:           rec.Description,
			EstimatedCostSavings:  rec.EstimatedCostSavings,
			EstimatedCO2Savings:   rec.EstimatedCO2Savings,
			Priority:              string(rec.Priority),
			AffectedOrdersPercent: rec.AffectedOrdersPercent,
		})
	}
	if top := result.TopRecommendation; top != nil {
		res.TopRecommendation = &TopRecommendationJSON{
			FromProvider: top.FromProvider,
			ToProvider:   top.ToProvider,
			Reason:       top.Reason,
			Impact:       top.Impact,
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// Settings

type SettingsJSON struct {
	CostWeight           int      `json:"cost_weight"`
	CarbonWeight         int      `json:"carbon_weight"`
	PreferredProviderIDs []string `json:"preferred_provider_ids"`
	ExcludedProviderIDs  []string `json:"excluded_provider_ids"`
	MaxDeliveryDays      *int     `json:"max_delivery_days"`
	RequireCarbonOffset  bool     `json:"require_carbon_offset"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	merchantID := r.Header.Get(merchantHeader)
	if merchantID == "" {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "merchant id required")
		return
	}
	prefs := s.loadSettings(r.Context(), merchantID)
	writeJSON(w, http.StatusOK, settingsJSON(prefs))
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	merchantID := r.Header.Get(merchantHeader)
	if merchantID == "" {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "merchant id required")
		return
	}
	var req SettingsJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if req.CostWeight < 0 || req.CostWeight > 100 || req.CarbonWeight < 0 || req.CarbonWeight > 100 {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "weights must be between 0 and 100")
		return
	}
	if req.MaxDeliveryDays != nil && *req.MaxDeliveryDays < 1 {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "max_delivery_days must be positive")
		return
	}

	prefs := domain.OptimizationSettings{
		MerchantID:           merchantID,
		CostWeight:           req.CostWeight,
		CarbonWeight:         req.CarbonWeight,
		PreferredProviderIDs: req.PreferredProviderIDs,
		ExcludedProviderIDs:  req.ExcludedProviderIDs,
		MaxDeliveryDays:      req.MaxDeliveryDays,
		RequireCarbonOffset:  req.RequireCarbonOffset,
	}
	if err := s.deps.Settings.UpsertSettings(r.Context(), prefs); err != nil {
		writeErrorJSON(w, http.StatusInternalServerError, "db_error", "db error")
		return
	}
	writeJSON(w, http.StatusOK, settingsJSON(prefs))
}

func settingsJSON(prefs domain.OptimizationSettings) SettingsJSON {
	out := SettingsJSON{
		CostWeight:           prefs.CostWeight,
		CarbonWeight:         prefs.CarbonWeight,
		PreferredProviderIDs: prefs.PreferredProviderIDs,
		ExcludedProviderIDs:  prefs.ExcludedProviderIDs,
		MaxDeliveryDays:      prefs.MaxDeliveryDays,
		RequireCarbonOffset:  prefs.RequireCarbonOffset,
	}
	if out.PreferredProviderIDs == nil {
		out.PreferredProviderIDs = []string{}
	}
	if out.ExcludedProviderIDs == nil {
		out.ExcludedProviderIDs = []string{}
	}
	return out
}

func (s *Server) loadSettings(ctx context.Context, merchantID string) domain.OptimizationSettings {
	prefs, found, err := s.deps.Settings.GetSettings(ctx, merchantID)
	if err != nil || !found {
		return domain.DefaultOptimizationSettings(merchantID)
	}
	return prefs
}

// Providers

type ServiceLevelJSON struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Code            string  `json:"code"`
	EmissionFactor  float64 `json:"emission_factor"`
	ShippingMode    string  `json:"shipping_mode"`
	PriceMultiplier float64 `json:"price_multiplier"`
	MinDeliveryDays *int    `json:"min_delivery_days"`
	MaxDeliveryDays *int    `json:"max_delivery_days"`
}

type ProviderJSON struct {
	ID                      string             `json:"id"`
	Name                    string             `json:"name"`
	DisplayName             string             `json:"display_name"`
	Type                    string             `json:"type"`
	StandardEmissionFactor  float64            `json:"standard_emission_factor"`
	ExpressEmissionFactor   float64            `json:"express_emission_factor"`
	OvernightEmissionFactor float64            `json:"overnight_emission_factor"`
	BasePricePerKg          *float64           `json:"base_price_per_kg"`
	BasePricePerKm          *float64           `json:"base_price_per_km"`
	MinimumCharge           *float64           `json:"minimum_charge"`
	AvgDeliveryDays         *int               `json:"avg_delivery_days"`
	SustainabilityRating    *int               `json:"sustainability_rating"`
	CarbonOffsetAvailable   bool               `json:"carbon_offset_available"`
	ServiceLevels           []ServiceLevelJSON `json:"service_levels"`
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := s.deps.Catalog.ListActive(r.Context(), nil)
	if err != nil {
		writeErrorJSON(w, http.StatusInternalServerError, "db_error", "db error")
		return
	}
	out := make([]ProviderJSON, 0, len(providers))
	for _, p := range providers {
		pj := ProviderJSON{
			ID:                      p.ID,
			Name:                    p.Name,
			DisplayName:             p.DisplayName,
			Type:                    p.Type,
			StandardEmissionFactor:  p.StandardEmissionFactor,
			ExpressEmissionFactor:   p.ExpressEmissionFactor,
			OvernightEmissionFactor: p.OvernightEmissionFactor,
			BasePricePerKg:          p.BasePricePerKg,
			BasePricePerKm:          p.BasePricePerKm,
			MinimumCharge:           p.MinimumCharge,
			AvgDeliveryDays:         p.AvgDeliveryDays,
			SustainabilityRating:    p.SustainabilityRating,
			CarbonOffsetAvailable:   p.CarbonOffsetAvailable,
			ServiceLevels:           make([]ServiceLevelJSON, 0, len(p.ServiceLevels)),
		}
		for _, l := range p.ServiceLevels {
			pj.ServiceLevels = append(pj.ServiceLevels, ServiceLevelJSON{
				ID:              l.ID,
				Name:            l.Name,
				Code:            l.Code,
				EmissionFactor:  l.EmissionFactor,
				ShippingMode:    string(l.ShippingMode),
				PriceMultiplier: l.PriceMultiplier,
				MinDeliveryDays: l.MinDeliveryDays,
				MaxDeliveryDays: l.MaxDeliveryDays,
			})
		}
		out = append(out, pj)
	}
	writeJSON(w, http.StatusOK, map[string]any{"providers": out})
}

// Costs

type CostSummaryJSON struct {
	TotalCost       float64 `json:"total_cost"`
	TotalOrders     int     `json:"total_orders"`
	AvgCostPerOrder float64 `json:"avg_cost_per_order"`
	AvgCostPerKg    float64 `json:"avg_cost_per_kg"`
	TotalCO2e       float64 `json:"total_co2e"`
	AvgCO2ePerOrder float64 `json:"avg_co2e_per_order"`
	CarbonPerDollar float64 `json:"carbon_per_dollar"`
}

type ProviderBreakdownJSON struct {
	ProviderName    string  `json:"provider_name"`
	ProviderID      *string `json:"provider_id"`
	OrderCount      int     `json:"order_count"`
	TotalCost       float64 `json:"total_cost"`
	TotalCO2e       float64 `json:"total_co2e"`
	AvgCostPerOrder float64 `json:"avg_cost_per_order"`
	PercentOfOrders float64 `json:"percent_of_orders"`
}

func (s *Server) handleCosts(w http.ResponseWriter, r *http.Request) {
	merchantID := r.Header.Get(merchantHeader)
	if merchantID == "" {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "merchant id required")
		return
	}
	days := lookbackDays
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	to := time.Now()
	from := to.Add(-time.Duration(days) * 24 * time.Hour)

	ctx := r.Context()
	summary, err := s.deps.Stats.CostSummary(ctx, merchantID, from, to)
	if err != nil {
		writeErrorJSON(w, http.StatusInternalServerError, "db_error", "db error")
		return
	}
	breakdown, err := s.deps.Stats.ProviderBreakdown(ctx, merchantID, from, to)
	if err != nil {
		writeErrorJSON(w, http.StatusInternalServerError, "db_error", "db error")
		return
	}

	bj := make([]ProviderBreakdownJSON, 0, len(breakdown))
	for _, b := range breakdown {
		bj = append(bj, ProviderBreakdownJSON{
			ProviderName:    b.ProviderName,
			ProviderID:      b.ProviderID,
			OrderCount:      b.OrderCount,
			TotalCost:       b.TotalCost,
			TotalCO2e:       b.TotalCO2e,
			AvgCostPerOrder: b.AvgCostPerOrder,
			PercentOfOrders: b.PercentOfOrders,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"summary": CostSummaryJSON{
			TotalCost:       summary.TotalCost,
			TotalOrders:     summary.TotalOrders,
			AvgCostPerOrder: summary.AvgCostPerOrder,
			AvgCostPerKg:    summary.AvgCostPerKg,
			TotalCO2e:       summary.TotalCO2e,
			AvgCO2ePerOrder: summary.AvgCO2ePerOrder,
			CarbonPerDollar: summary.CarbonPerDollar,
		},
		"by_provider": bj,
		"period_days": days,
	})
}

// Sync

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	merchantID := r.Header.Get(merchantHeader)
	if merchantID == "" {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "merchant id required")
		return
	}
	jobID, err := s.deps.Jobs.Enqueue(r.Context(), merchantID)
	if err != nil {
		writeErrorJSON(w, http.StatusInternalServerError, "db_error", "db error")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": jobID, "status": "queued"})
}

// Order webhook

type OrderWebhookPayload struct {
	ID          string  `json:"id"`
	OrderNumber string  `json:"order_number"`
	TotalPrice  float64 `json:"total_price"`
	Currency    string  `json:"currency"`
	CreatedAt   string  `json:"created_at"`
	LineItems   []struct {
		Grams    float64 `json:"grams"`
		Quantity int     `json:"quantity"`
	} `json:"line_items"`
	ShippingLines []struct {
		Title string  `json:"title"`
		Code  string  `json:"code"`
		Price float64 `json:"price"`
	} `json:"shipping_lines"`
	ShippingAddress struct {
		City    string `json:"city"`
		Country string `json:"country"`
	} `json:"shipping_address"`
}

// handleOrderWebhook verifies the HMAC signature on the raw body, then
// hands the order to the ingestor. Replays of an already-ingested order
// are accepted and repair missing records.
func (s *Server) handleOrderWebhook(w http.ResponseWriter, r *http.Request) {
	merchantID := r.Header.Get(merchantHeader)
	if merchantID == "" {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "merchant id required")
		return
	}
	if strings.TrimSpace(s.deps.WebhookSecret) == "" {
		writeErrorJSON(w, http.StatusUnauthorized, "secret_not_configured", "webhook secret not configured")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "read_error", "read error")
		return
	}
	sigHeader := strings.TrimSpace(r.Header.Get("X-Signature"))
	sigHeader = strings.TrimPrefix(sigHeader, "sha256=")
	if sigHeader == "" {
		writeErrorJSON(w, http.StatusUnauthorized, "missing_signature", "missing signature")
		return
	}
	mac := hmac.New(sha256.New, []byte(s.deps.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(sigHeader))) {
		writeErrorJSON(w, http.StatusUnauthorized, "signature_mismatch", "signature mismatch")
		return
	}

	var payload OrderWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if payload.ID == "" {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "order id required")
		return
	}

	in := ports.IncomingOrder{
		MerchantID:      merchantID,
		ExternalOrderID: payload.ID,
		OrderNumber:     payload.OrderNumber,
		TotalPrice:      payload.TotalPrice,
		Currency:        payload.Currency,
	}
	if t, err := time.Parse(time.RFC3339, payload.CreatedAt); err == nil {
		in.CreatedAt = t
	}
	for _, item := range payload.LineItems {
		in.LineItems = append(in.LineItems, ports.IncomingLineItem{Grams: item.Grams, Quantity: item.Quantity})
	}
	if len(payload.ShippingLines) > 0 {
		line := payload.ShippingLines[0]
		in.ShippingLineTitle = line.Title
		in.ShippingLineCode = line.Code
		in.ShippingCost = line.Price
	}
	dest := payload.ShippingAddress.City
	if payload.ShippingAddress.Country != "" {
		if dest != "" {
			dest += ", "
		}
		dest += payload.ShippingAddress.Country
	}
	in.DestinationAddress = dest

	orderID, err := s.deps.Ingestor.IngestOrder(r.Context(), in)
	if err != nil {
		log.Printf("webhook: ingest order %s: %v", payload.ID, err)
		writeErrorJSON(w, http.StatusInternalServerError, "ingest_error", "failed to ingest order")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"order_id": orderID})
}

// Helpers

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if rid == "" {
			rid = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorJSON(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
