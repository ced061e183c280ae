package domain

import "time"

// Core domain models used internally. Wire/JSON shapes live in the HTTP
// adapter; keep these decoupled where helpful.

// ShippingMode categorizes the transport leg of a shipment.
type ShippingMode string

const (
	ModeAir  ShippingMode = "air"
	ModeSea  ShippingMode = "sea"
	ModeRoad ShippingMode = "road"
	ModeRail ShippingMode = "rail"
)

// PackagingType names a packaging material with a known emission factor.
type PackagingType string

const (
	PackagingCardboard     PackagingType = "cardboard"
	PackagingPlastic       PackagingType = "plastic"
	PackagingPaper         PackagingType = "paper"
	PackagingBiodegradable PackagingType = "biodegradable"
)

// ShippingProvider is a carrier from the catalog. Seeded out-of-band and
// read-only from the core's perspective.
type ShippingProvider struct {
	ID                      string
	Name                    string // lowercase key, unique
	DisplayName             string
	Type                    string
	StandardEmissionFactor  float64 // kg CO2e per ton-km
	ExpressEmissionFactor   float64
	OvernightEmissionFactor float64
	BasePricePerKg          *float64
	BasePricePerKm          *float64
	MinimumCharge           *float64
	AvgDeliveryDays         *int
	SustainabilityRating    *int // ordinal 1-5
	CarbonOffsetAvailable   bool
	Active                  bool
	ServiceLevels           []ServiceLevel
}

// ServiceLevel is a tier within a provider. (ProviderID, Code) is unique.
type ServiceLevel struct {
	ID              string
	ProviderID      string
	Name            string
	Code            string
	EmissionFactor  float64 // overrides the provider baseline
	ShippingMode    ShippingMode
	PriceMultiplier float64
	MinDeliveryDays *int
	MaxDeliveryDays *int
	Active          bool
}

// Order is the slice of a merchant order the core consumes.
type Order struct {
	ID                 string
	MerchantID         string
	ExternalOrderID    string
	OrderNumber        string
	TotalPrice         float64
	TotalWeight        float64 // kg
	ShippingDistance   float64 // km, possibly estimated
	ShippingMethod     ShippingMode
	OriginAddress      string
	DestinationAddress string
	PackagingWeight    float64 // kg
	PackagingType      PackagingType
	CreatedAt          time.Time
}

// DetectedShippingInfo is the transient result of carrier detection.
// ProviderID stays nil until the catalog matcher finds a confident match.
type DetectedShippingInfo struct {
	ProviderID     *string
	ProviderName   string
	ServiceLevel   string
	Confidence     int // 0-100, advisory only
	EmissionFactor float64
	ShippingMode   ShippingMode
}

// OrderShippingRecord is the persisted per-order shipping snapshot.
type OrderShippingRecord struct {
	ID                   string
	OrderID              string
	MerchantID           string
	DetectedProviderName string
	DetectedServiceLevel string
	MatchedProviderID    *string
	ShippingCost         float64
	ShippingCurrency     string
	CarrierCode          *string
	CarrierTitle         *string
	CostPerKg            *float64
	CostPerKm            *float64
	CreatedAt            time.Time
}

// EmissionRecord holds the per-order CO2e breakdown.
// TotalCO2e = ShippingCO2e + PackagingCO2e within floating-point tolerance.
type EmissionRecord struct {
	ID                string
	MerchantID        string
	OrderID           string
	TotalCO2e         float64
	ShippingCO2e      float64
	PackagingCO2e     float64
	CalculationMethod string // "climatiq" | "fallback"
	CreatedAt         time.Time
}

// OptimizationSettings is a merchant's cost-vs-carbon preference set.
// Weights need not sum to 100; they are normalized at use time.
type OptimizationSettings struct {
	MerchantID           string
	CostWeight           int // 0-100
	CarbonWeight         int // 0-100
	PreferredProviderIDs []string
	ExcludedProviderIDs  []string
	MaxDeliveryDays      *int
	RequireCarbonOffset  bool
}

// DefaultOptimizationSettings returns the defaults applied when a merchant
// has not saved preferences (or saved ones are invalid).
func DefaultOptimizationSettings(merchantID string) OptimizationSettings {
	return OptimizationSettings{
		MerchantID:   merchantID,
		CostWeight:   50,
		CarbonWeight: 50,
	}
}

// CompareAlternative is one evaluated (provider, service level) pair.
// Reconstructed per request, never persisted.
type CompareAlternative struct {
	ProviderID            string
	ProviderName          string
	ServiceLevel          string
	EstimatedCost         float64
	EstimatedCO2e         float64
	DeliveryDays          int
	CostSavings           float64 // positive = cheaper than baseline
	CostSavingsPercent    float64
	CO2Savings            float64 // positive = greener than baseline
	CO2SavingsPercent     float64
	RecommendationScore   float64
	SustainabilityRating  *int
	CarbonOffsetAvailable bool
}

// CostSummary aggregates a merchant's shipping spend and emissions.
type CostSummary struct {
	TotalCost       float64
	TotalOrders     int
	AvgCostPerOrder float64
	AvgCostPerKg    float64
	TotalCO2e       float64
	AvgCO2ePerOrder float64
	CarbonPerDollar float64
}

// ProviderBreakdown groups a merchant's orders by detected/matched provider.
type ProviderBreakdown struct {
	ProviderName    string
	ProviderID      *string
	OrderCount      int
	TotalCost       float64
	TotalCO2e       float64
	AvgCostPerOrder float64
	PercentOfOrders float64
}

// RecommendationType names a narrative recommendation category.
type RecommendationType string

const (
	RecProviderSwitch   RecommendationType = "provider_switch"
	RecServiceDowngrade RecommendationType = "service_downgrade"
	RecConsolidation    RecommendationType = "consolidation"
	RecOffset           RecommendationType = "offset"
)

// Priority orders recommendations for display; high sorts first.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation is a narrative optimization suggestion.
type Recommendation struct {
	Type                  RecommendationType
	Title                 string
	Description           string
	EstimatedCostSavings  float64
	EstimatedCO2Savings   float64
	Priority              Priority
	AffectedOrdersPercent float64
}
