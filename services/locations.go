package services

import "strings"

// cityCodes maps the city names this planner targets to IATA airport codes.
// Some hill stations map to their nearest serviced airport.
var cityCodes = map[string]string{
	"delhi":     "DEL",
	"mumbai":    "BOM",
	"bangalore": "BLR",
	"kolkata":   "CCU",
	"chennai":   "MAA",
	"hyderabad": "HYD",
	"pune":      "PNQ",
	"goa":       "GOI",
	"jaipur":    "JAI",
	"kerala":    "COK", // Cochin
	"manali":    "KUU", // Kullu-Manali
	"rishikesh": "DED", // Dehradun (nearest)
	"shimla":    "SLV",
	"udaipur":   "UDR",
}

// CityCode resolves a free-text city name to a 3-letter location code.
// Unknown names fall back to the first 3 characters of the upper-cased
// input; inputs shorter than 3 characters yield a shorter code.
func CityCode(city string) string {
	trimmed := strings.TrimSpace(city)
	if code, ok := cityCodes[strings.ToLower(trimmed)]; ok {
		return code
	}
	// Slice by runes, not bytes: multi-byte city names must not be cut
	// mid-character on their way into URLs and provider queries.
	upper := []rune(strings.ToUpper(trimmed))
	if len(upper) > 3 {
		return string(upper[:3])
	}
	return string(upper)
}
