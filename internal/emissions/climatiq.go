package emissions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultClimatiqBaseURL = "https://api.climatiq.io/data/v1"

// ClimatiqEstimator calls the Climatiq estimate endpoint for the shipping
// leg of an order. Failures and timeouts are treated identically by the
// Calculator: fall back immediately, no retry.
type ClimatiqEstimator struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClimatiqEstimator returns a remote estimator, or nil when no API key is
// configured so the caller wires the fallback-only path.
func NewClimatiqEstimator(apiKey, baseURL string, timeout time.Duration) *ClimatiqEstimator {
	if apiKey == "" {
		return nil
	}
	if baseURL == "" {
		baseURL = defaultClimatiqBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ClimatiqEstimator{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type climatiqRequest struct {
	EmissionFactor climatiqFactor `json:"emission_factor"`
	Parameters     climatiqParams `json:"parameters"`
}

type climatiqFactor struct {
	ActivityID string `json:"activity_id"`
	Source     string `json:"source"`
	Region     string `json:"region"`
	Year       string `json:"year"`
}

type climatiqParams struct {
	Distance     float64 `json:"distance"`
	Weight       float64 `json:"weight"`
	DistanceUnit string  `json:"distance_unit"`
	WeightUnit   string  `json:"weight_unit"`
}

type climatiqResponse struct {
	CO2e float64 `json:"co2e"`
}

func (e *ClimatiqEstimator) EstimateShippingCO2e(ctx context.Context, in Input) (float64, error) {
	payload := climatiqRequest{
		EmissionFactor: climatiqFactor{
			ActivityID: fmt.Sprintf("freight_vehicle-vehicle_type_%s-fuel_source_na-distance_na-weight_na", in.ShippingMethod),
			Source:     "GLEC",
			Region:     "GLOBAL",
			Year:       "2023",
		},
		Parameters: climatiqParams{
			Distance:     in.ShippingDistance,
			Weight:       in.TotalWeight,
			DistanceUnit: "km",
			WeightUnit:   "kg",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/estimate", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return 0, fmt.Errorf("climatiq estimate: unexpected status %d", resp.StatusCode)
	}

	var out climatiqResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("climatiq estimate: decode response: %w", err)
	}
	return out.CO2e, nil
}
