package clean

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// titleCase converts "WEST JORDAN" / "west jordan" to "West Jordan".
func titleCase(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return titleCaser.String(strings.ToLower(s))
}

// usStates maps full US state names to their two-letter abbreviations.
// Used both for city suffix stripping and as country-indicative tokens.
var usStates = map[string]string{
	"alabama":              "AL",
	"alaska":               "AK",
	"arizona":              "AZ",
	"arkansas":             "AR",
	"california":           "CA",
	"colorado":             "CO",
	"connecticut":          "CT",
	"delaware":             "DE",
	"florida":              "FL",
	"georgia":              "GA",
	"hawaii":               "HI",
	"idaho":                "ID",
	"illinois":             "IL",
	"indiana":              "IN",
	"iowa":                 "IA",
	"kansas":               "KS",
	"kentucky":             "KY",
	"louisiana":            "LA",
	"maine":                "ME",
	"maryland":             "MD",
	"massachusetts":        "MA",
	"michigan":             "MI",
	"minnesota":            "MN",
	"mississippi":          "MS",
	"missouri":             "MO",
	"montana":              "MT",
	"nebraska":             "NE",
	"nevada":               "NV",
	"new hampshire":        "NH",
	"new jersey":           "NJ",
	"new mexico":           "NM",
	"new york":             "NY",
	"north carolina":       "NC",
	"north dakota":         "ND",
	"ohio":                 "OH",
	"oklahoma":             "OK",
	"oregon":               "OR",
	"pennsylvania":         "PA",
	"rhode island":         "RI",
	"south carolina":       "SC",
	"south dakota":         "SD",
	"tennessee":            "TN",
	"texas":                "TX",
	"utah":                 "UT",
	"vermont":              "VT",
	"virginia":             "VA",
	"washington":           "WA",
	"west virginia":        "WV",
	"wisconsin":            "WI",
	"wyoming":              "WY",
	"district of columbia": "DC",
}

// regionTokens holds comma-suffix tokens that identify a region or country
// rather than part of the city name ("San Francisco, CA, USA" -> drop
// "CA" and "USA"). Populated from usStates plus common country tokens.
var regionTokens = buildRegionTokens()

func buildRegionTokens() map[string]bool {
	tokens := map[string]bool{
		"usa":            true,
		"us":             true,
		"u.s.":           true,
		"u.s.a.":         true,
		"united states":  true,
		"canada":         true,
		"uk":             true,
		"united kingdom": true,
		"england":        true,
		"australia":      true,
		"au":             true,
		"nsw":            true,
		"victoria":       true,
		"queensland":     true,
		"sweden":         true,
		"germany":        true,
		"france":         true,
		"netherlands":    true,
		"india":          true,
		"ontario":        true,
		"quebec":         true,
		"british columbia": true,
		"alberta":        true,
	}
	for name, abbr := range usStates {
		tokens[name] = true
		tokens[strings.ToLower(abbr)] = true
	}
	return tokens
}

// NormalizeCity strips trailing region/country qualifiers, collapses
// whitespace, and title-cases word-by-word:
// "Cupertino, CA, USA" -> "Cupertino", "STOCKHOLM, Sweden" -> "Stockholm".
// Empty input yields empty output.
func NormalizeCity(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	parts := strings.Split(s, ",")
	for len(parts) > 1 {
		last := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
		if !regionTokens[last] {
			break
		}
		parts = parts[:len(parts)-1]
	}

	return titleCase(strings.Join(parts, ", "))
}
