package geo

import (
	"math"
	"strings"

	"greenmile/internal/domain"
)

// Static coordinate tables for address resolution. Country centroids come
// from Natural Earth / CIA World Factbook figures. Immutable after init;
// safe for concurrent use.

type coord struct {
	Lat, Lng float64
}

var countryCoordinates = map[string]coord{
	"US": {39.8283, -98.5795}, "USA": {39.8283, -98.5795}, "United States": {39.8283, -98.5795},
	"CA": {56.1304, -106.3468}, "Canada": {56.1304, -106.3468},
	"GB": {55.3781, -3.4360}, "UK": {55.3781, -3.4360}, "United Kingdom": {55.3781, -3.4360},
	"DE": {51.1657, 10.4515}, "Germany": {51.1657, 10.4515},
	"FR": {46.2276, 2.2137}, "France": {46.2276, 2.2137},
	"AU": {-25.2744, 133.7751}, "Australia": {-25.2744, 133.7751},
	"JP": {36.2048, 138.2529}, "Japan": {36.2048, 138.2529},
	"CN": {35.8617, 104.1954}, "China": {35.8617, 104.1954},
	"IN": {20.5937, 78.9629}, "India": {20.5937, 78.9629},
	"BR": {-14.235, -51.9253}, "Brazil": {-14.235, -51.9253},
	"MX": {23.6345, -102.5528}, "Mexico": {23.6345, -102.5528},
	"IT": {41.8719, 12.5674}, "Italy": {41.8719, 12.5674},
	"ES": {40.4637, -3.7492}, "Spain": {40.4637, -3.7492},
	"NL": {52.1326, 5.2913}, "Netherlands": {52.1326, 5.2913},
	"SE": {60.1282, 18.6435}, "Sweden": {60.1282, 18.6435},
	"NO": {60.472, 8.4689}, "Norway": {60.472, 8.4689},
	"KR": {35.9078, 127.7669}, "South Korea": {35.9078, 127.7669},
	"NZ": {-40.9006, 174.886}, "New Zealand": {-40.9006, 174.886},
	"SG": {1.3521, 103.8198}, "Singapore": {1.3521, 103.8198},
	"AE": {23.4241, 53.8478}, "United Arab Emirates": {23.4241, 53.8478},
	"ZA": {-30.5595, 22.9375}, "South Africa": {-30.5595, 22.9375},
	"PL": {51.9194, 19.1451}, "Poland": {51.9194, 19.1451},
	"AT": {47.5162, 14.5501}, "Austria": {47.5162, 14.5501},
	"CH": {46.8182, 8.2275}, "Switzerland": {46.8182, 8.2275},
	"BE": {50.5039, 4.4699}, "Belgium": {50.5039, 4.4699},
	"DK": {56.2639, 9.5018}, "Denmark": {56.2639, 9.5018},
	"FI": {61.9241, 25.7482}, "Finland": {61.9241, 25.7482},
	"IE": {53.1424, -7.6921}, "Ireland": {53.1424, -7.6921},
	"PT": {39.3999, -8.2245}, "Portugal": {39.3999, -8.2245},
	"IL": {31.0461, 34.8516}, "Israel": {31.0461, 34.8516},
	"TH": {15.87, 100.9925}, "Thailand": {15.87, 100.9925},
	"PH": {12.8797, 121.774}, "Philippines": {12.8797, 121.774},
	"MY": {4.2105, 101.9758}, "Malaysia": {4.2105, 101.9758},
	"ID": {-0.7893, 113.9213}, "Indonesia": {-0.7893, 113.9213},
	"CO": {4.5709, -74.2973}, "Colombia": {4.5709, -74.2973},
	"AR": {-38.4161, -63.6167}, "Argentina": {-38.4161, -63.6167},
	"CL": {-35.6751, -71.543}, "Chile": {-35.6751, -71.543},
	"NG": {9.082, 8.6753}, "Nigeria": {9.082, 8.6753},
	"EG": {26.8206, 30.8025}, "Egypt": {26.8206, 30.8025},
	"SA": {23.8859, 45.0792}, "Saudi Arabia": {23.8859, 45.0792},
	"TR": {38.9637, 35.2433}, "Turkey": {38.9637, 35.2433},
	"RU": {61.524, 105.3188}, "Russia": {61.524, 105.3188},
	"HK": {22.3193, 114.1694}, "Hong Kong": {22.3193, 114.1694},
	"TW": {23.6978, 120.9605}, "Taiwan": {23.6978, 120.9605},
}

// cityEntry pairs a lowercase city substring with its coordinates. Kept as
// an ordered slice so substring matching is deterministic.
type cityEntry struct {
	name string
	c    coord
}

var cityCoordinates = []cityEntry{
	{"new york", coord{40.7128, -74.006}}, {"los angeles", coord{34.0522, -118.2437}},
	{"chicago", coord{41.8781, -87.6298}}, {"houston", coord{29.7604, -95.3698}},
	{"phoenix", coord{33.4484, -112.074}}, {"philadelphia", coord{39.9526, -75.1652}},
	{"san antonio", coord{29.4241, -98.4936}}, {"san diego", coord{32.7157, -117.1611}},
	{"dallas", coord{32.7767, -96.797}}, {"san jose", coord{37.3382, -121.8863}},
	{"austin", coord{30.2672, -97.7431}}, {"seattle", coord{47.6062, -122.3321}},
	{"denver", coord{39.7392, -104.9903}}, {"boston", coord{42.3601, -71.0589}},
	{"miami", coord{25.7617, -80.1918}}, {"atlanta", coord{33.749, -84.388}},
	{"portland", coord{45.5152, -122.6784}}, {"las vegas", coord{36.1699, -115.1398}},
	{"london", coord{51.5074, -0.1278}}, {"paris", coord{48.8566, 2.3522}},
	{"berlin", coord{52.52, 13.405}}, {"tokyo", coord{35.6762, 139.6503}},
	{"sydney", coord{-33.8688, 151.2093}}, {"melbourne", coord{-37.8136, 144.9631}},
	{"toronto", coord{43.6532, -79.3832}}, {"vancouver", coord{49.2827, -123.1207}},
	{"montreal", coord{45.5017, -73.5673}}, {"mumbai", coord{19.076, 72.8777}},
	{"shanghai", coord{31.2304, 121.4737}}, {"beijing", coord{39.9042, 116.4074}},
	{"seoul", coord{37.5665, 126.978}}, {"singapore", coord{1.3521, 103.8198}},
	{"dubai", coord{25.2048, 55.2708}}, {"amsterdam", coord{52.3676, 4.9041}},
	{"madrid", coord{40.4168, -3.7038}}, {"rome", coord{41.9028, 12.4964}},
	{"stockholm", coord{59.3293, 18.0686}}, {"dublin", coord{53.3498, -6.2603}},
	{"zurich", coord{47.3769, 8.5417}}, {"mexico city", coord{19.4326, -99.1332}},
	{"sao paulo", coord{-23.5505, -46.6333}}, {"buenos aires", coord{-34.6037, -58.3816}},
}

const (
	earthRadiusKm = 6371
	routingFactor = 1.3 // roads/shipping run ~1.3x straight-line distance

	domesticFallbackKm      = 800
	internationalFallbackKm = 5000
)

// haversine returns the great-circle distance in km between two points.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// lookupCoordinates resolves a free-text location (city, country, or composite
// address string) to coordinates. City substrings are tried first for
// precision, then each comma/whitespace-delimited token against the country
// table. Returns ok=false for empty or "Unknown" input.
func lookupCoordinates(location string) (coord, bool) {
	if location == "" || location == "Unknown" {
		return coord{}, false
	}

	lower := strings.ToLower(strings.TrimSpace(location))
	for _, city := range cityCoordinates {
		if strings.Contains(lower, city.name) {
			return city.c, true
		}
	}

	parts := strings.FieldsFunc(location, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if c, ok := countryCoordinates[part]; ok {
			return c, true
		}
		for key, c := range countryCoordinates {
			if strings.EqualFold(key, part) {
				return c, true
			}
		}
	}

	return coord{}, false
}

// EstimateShippingDistance estimates the shipping distance in whole km
// between two free-text locations. When both resolve, the haversine distance
// is scaled by the routing factor; otherwise a coarse domestic/international
// heuristic applies. Deterministic, never fails.
func EstimateShippingDistance(origin, destination string) float64 {
	from, okFrom := lookupCoordinates(origin)
	to, okTo := lookupCoordinates(destination)

	if !okFrom || !okTo {
		// Can't place one side; guess domestic vs international from
		// country hints in the raw strings (US/Canada/UK only).
		o := strings.ToLower(origin)
		d := strings.ToLower(destination)
		sameCountry := (strings.Contains(o, "us") && strings.Contains(d, "us")) ||
			(strings.Contains(o, "canada") && strings.Contains(d, "canada")) ||
			(strings.Contains(o, "uk") && strings.Contains(d, "uk"))
		if sameCountry {
			return domesticFallbackKm
		}
		return internationalFallbackKm
	}

	straight := haversine(from.Lat, from.Lng, to.Lat, to.Lng)
	return math.Round(straight * routingFactor)
}

// DetermineShippingMethod classifies a free-text shipping line title into a
// transport mode. Defaults to road.
func DetermineShippingMethod(shippingTitle string) domain.ShippingMode {
	lower := strings.ToLower(shippingTitle)
	switch {
	case strings.Contains(lower, "air"), strings.Contains(lower, "express"), strings.Contains(lower, "overnight"):
		return domain.ModeAir
	case strings.Contains(lower, "sea"), strings.Contains(lower, "ocean"), strings.Contains(lower, "freight"):
		return domain.ModeSea
	case strings.Contains(lower, "rail"), strings.Contains(lower, "train"):
		return domain.ModeRail
	default:
		return domain.ModeRoad
	}
}
