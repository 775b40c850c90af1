package clean

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// countryAliases maps lowercase input variants (alpha-2, alpha-3, longform,
// special values) to canonical country names. "global"/"remote" style
// values canonicalize to "Global".
var countryAliases = map[string]string{
	"us":                       "United States",
	"usa":                      "United States",
	"u.s.":                     "United States",
	"u.s.a.":                   "United States",
	"america":                  "United States",
	"united states":            "United States",
	"united states of america": "United States",
	"uk":                       "United Kingdom",
	"gb":                       "United Kingdom",
	"gbr":                      "United Kingdom",
	"britain":                  "United Kingdom",
	"great britain":            "United Kingdom",
	"england":                  "United Kingdom",
	"united kingdom":           "United Kingdom",
	"ca":                       "Canada",
	"can":                      "Canada",
	"canada":                   "Canada",
	"au":                       "Australia",
	"aus":                      "Australia",
	"australia":                "Australia",
	"de":                       "Germany",
	"deu":                      "Germany",
	"deutschland":              "Germany",
	"germany":                  "Germany",
	"fr":                       "France",
	"fra":                      "France",
	"france":                   "France",
	"se":                       "Sweden",
	"swe":                      "Sweden",
	"sweden":                   "Sweden",
	"nl":                       "Netherlands",
	"nld":                      "Netherlands",
	"holland":                  "Netherlands",
	"netherlands":              "Netherlands",
	"the netherlands":          "Netherlands",
	"in":                       "India",
	"ind":                      "India",
	"india":                    "India",
	"ie":                       "Ireland",
	"irl":                      "Ireland",
	"ireland":                  "Ireland",
	"es":                       "Spain",
	"esp":                      "Spain",
	"spain":                    "Spain",
	"it":                       "Italy",
	"ita":                      "Italy",
	"italy":                    "Italy",
	"br":                       "Brazil",
	"bra":                      "Brazil",
	"brazil":                   "Brazil",
	"mx":                       "Mexico",
	"mex":                      "Mexico",
	"mexico":                   "Mexico",
	"jp":                       "Japan",
	"jpn":                      "Japan",
	"japan":                    "Japan",
	"cn":                       "China",
	"chn":                      "China",
	"china":                    "China",
	"sg":                       "Singapore",
	"sgp":                      "Singapore",
	"singapore":                "Singapore",
	"ch":                       "Switzerland",
	"che":                      "Switzerland",
	"switzerland":              "Switzerland",
	"nz":                       "New Zealand",
	"nzl":                      "New Zealand",
	"new zealand":              "New Zealand",
	"il":                       "Israel",
	"isr":                      "Israel",
	"israel":                   "Israel",
	"no":                       "Norway",
	"nor":                      "Norway",
	"norway":                   "Norway",
	"dk":                       "Denmark",
	"dnk":                      "Denmark",
	"denmark":                  "Denmark",
	"fi":                       "Finland",
	"fin":                      "Finland",
	"finland":                  "Finland",
	"pl":                       "Poland",
	"pol":                      "Poland",
	"poland":                   "Poland",
	"be":                       "Belgium",
	"bel":                      "Belgium",
	"belgium":                  "Belgium",
	"at":                       "Austria",
	"aut":                      "Austria",
	"austria":                  "Austria",
	"pt":                       "Portugal",
	"prt":                      "Portugal",
	"portugal":                 "Portugal",
	"ae":                       "United Arab Emirates",
	"are":                      "United Arab Emirates",
	"uae":                      "United Arab Emirates",
	"united arab emirates":     "United Arab Emirates",
	"kr":                       "South Korea",
	"kor":                      "South Korea",
	"korea":                    "South Korea",
	"south korea":              "South Korea",
	"republic of korea":        "South Korea",
	"global":                   "Global",
	"remote":                   "Global",
	"worldwide":                "Global",
	"international":            "Global",
	"distributed":              "Global",
}

// canadianProvinces are substring hints that imply Canada when the exact
// lookup misses.
var canadianProvinces = []string{
	"ontario", "quebec", "british columbia", "alberta",
	"manitoba", "saskatchewan", "nova scotia",
}

// NormalizeCountry maps a free-text country value to a canonical country
// name. Resolution order: exact alias lookup, country-indicative substring
// hints (a US state name in the value implies United States), then
// word-by-word title case of the original. Empty input yields empty output.
func NormalizeCountry(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	if canonical, ok := countryAliases[s]; ok {
		return canonical
	}

	// Values like "San Jose, CA" or "California, USA" appear in country
	// columns of shifted source files. A comma-delimited part that is
	// exactly a state name or abbreviation implies the United States;
	// matching whole parts keeps "ca" from firing inside "canada".
	for _, part := range strings.Split(s, ",") {
		p := strings.TrimSpace(part)
		if _, ok := usStates[p]; ok {
			return "United States"
		}
		if stateAbbrevs[p] {
			return "United States"
		}
	}
	for state := range usStates {
		if strings.Contains(s, state) {
			return "United States"
		}
	}
	for _, province := range canadianProvinces {
		if strings.Contains(s, province) {
			return "Canada"
		}
	}

	return titleCase(raw)
}

// stateAbbrevs is the lowercase set of US state abbreviations.
var stateAbbrevs = buildStateAbbrevs()

func buildStateAbbrevs() map[string]bool {
	set := make(map[string]bool, len(usStates))
	for _, abbr := range usStates {
		set[strings.ToLower(abbr)] = true
	}
	return set
}

// LoadCountryAliases merges additional alias -> canonical pairs from a
// YAML file into the lookup table. Intended to be called once at startup
// when `clean.country_alias_file` is configured.
func LoadCountryAliases(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "clean: read country aliases %s", path)
	}

	var aliases map[string]string
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return eris.Wrap(err, "clean: parse country aliases")
	}

	for alias, canonical := range aliases {
		countryAliases[strings.ToLower(strings.TrimSpace(alias))] = canonical
	}
	return nil
}
