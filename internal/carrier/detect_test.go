package carrier

import (
	"testing"

	"greenmile/internal/domain"
)

func TestDetectUPSGround(t *testing.T) {
	got := Detect("UPS Ground", "ups_ground")
	if got.ProviderName != "UPS" {
		t.Fatalf("expected UPS, got %q", got.ProviderName)
	}
	if got.ServiceLevel != "ground" {
		t.Fatalf("expected ground, got %q", got.ServiceLevel)
	}
	if got.ShippingMode != domain.ModeRoad {
		t.Fatalf("expected road, got %s", got.ShippingMode)
	}
	if got.EmissionFactor != 0.096 {
		t.Fatalf("expected factor 0.096, got %v", got.EmissionFactor)
	}
	// search text is 21 chars, keyword "ups" is 3: 50 + 3/21*100 = 64.28 -> 64
	if got.Confidence != 64 {
		t.Fatalf("expected confidence 64, got %d", got.Confidence)
	}
	if got.ProviderID != nil {
		t.Fatal("detection must not set provider id")
	}
}

func TestDetectFedExOvernight(t *testing.T) {
	got := Detect("FedEx Priority Overnight", "fedex_overnight")
	if got.ProviderName != "FEDEX" {
		t.Fatalf("expected FEDEX, got %q", got.ProviderName)
	}
	if got.ServiceLevel != "overnight" {
		t.Fatalf("expected overnight, got %q", got.ServiceLevel)
	}
	if got.ShippingMode != domain.ModeAir {
		t.Fatalf("expected air, got %s", got.ShippingMode)
	}
	if got.EmissionFactor != 1.13 {
		t.Fatalf("expected factor 1.13, got %v", got.EmissionFactor)
	}
	// search text is 40 chars, keyword "fedex" is 5: 50 + 12.5 = 62.5 -> 63
	if got.Confidence != 63 {
		t.Fatalf("expected confidence 63, got %d", got.Confidence)
	}
}

func TestDetectOvernightBeatsExpress(t *testing.T) {
	// "express saver" is an overnight keyword; the overnight category is
	// checked before express so it must win.
	got := Detect("FedEx Express Saver", "")
	if got.ServiceLevel != "overnight" {
		t.Fatalf("expected overnight, got %q", got.ServiceLevel)
	}
}

func TestDetectUnknownCarrier(t *testing.T) {
	got := Detect("Some Local Courier", "")
	if got.ProviderName != "Unknown" {
		t.Fatalf("expected Unknown, got %q", got.ProviderName)
	}
	if got.Confidence != 20 {
		t.Fatalf("expected confidence 20, got %d", got.Confidence)
	}
	if got.ServiceLevel != "ground" {
		t.Fatalf("expected default ground, got %q", got.ServiceLevel)
	}
}

func TestDetectUSPSPriority(t *testing.T) {
	got := Detect("Priority Mail", "usps_priority")
	if got.ProviderName != "USPS" {
		t.Fatalf("expected USPS, got %q", got.ProviderName)
	}
	// "priority" is an express keyword.
	if got.ServiceLevel != "express" {
		t.Fatalf("expected express, got %q", got.ServiceLevel)
	}
	if got.EmissionFactor != 0.15 {
		t.Fatalf("expected factor 0.15, got %v", got.EmissionFactor)
	}
}

func TestDetectIdempotent(t *testing.T) {
	first := Detect("DHL eCommerce", "dhl_ecommerce")
	for i := 0; i < 3; i++ {
		if got := Detect("DHL eCommerce", "dhl_ecommerce"); got != first {
			t.Fatalf("detection not deterministic: %+v vs %+v", got, first)
		}
	}
}
