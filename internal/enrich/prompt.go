package enrich

import (
	"fmt"
	"strings"

	"github.com/sells-group/company-intake/internal/model"
)

const systemPrompt = "You are a data cleaning expert. Always respond with valid JSON only. " +
	"PRESERVE valid domains like zoom.us, github.io - do not change them to .com. " +
	"Only clean malformed domains or generate new ones when missing."

const formatExamples = `STANDARD FORMAT EXAMPLES:

Country Normalization:
- "us" -> "United States"
- "USA" -> "United States"
- "united states of america" -> "United States"
- "canada" -> "Canada"
- "sweden" -> "Sweden"
- "australia" -> "Australia"
- "global" -> "Global"

Employee Size Bucketing:
- "100000+" -> "10 000+"
- "> 10000" -> "10 000+"
- "~67000" -> "10 000+"
- "12500" -> "1 001-5 000"
- "8000" -> "1 001-5 000"
- "11" -> "11-50"
- "6" -> "1-10"

Domain Cleaning (ONLY clean malformed domains, preserve valid ones):
- "apple. com" -> "apple.com" (remove spaces)
- "net flix.com" -> "netflix.com" (remove spaces)
- "stripecom" -> "stripe.com" (add missing dot)
- "doordash com" -> "doordash.com" (add missing dot)
- "airbnb" -> "airbnb.com" (add missing extension)

Domain Preservation (DO NOT change valid domains):
- "zoom.us" -> "zoom.us" (keep as-is, valid domain)
- "github.io" -> "github.io" (keep as-is, valid domain)
- "service.co.uk" -> "service.co.uk" (keep as-is, valid domain)

Domain Generation (ONLY when missing or completely invalid):
- "" -> "apple.com" (for Apple Inc.)
- "" -> "tesla.com" (for Tesla Inc.)
- "" -> "stripe.com" (for Stripe)

City Standardization:
- "Cupertino, CA, USA" -> "Cupertino"
- "Mountain View, California" -> "Mountain View"
- "Redmond, WA" -> "Redmond"
- "Stockholm, Sweden" -> "Stockholm"
- "Sydney, NSW, AU" -> "Sydney"`

// buildPrompt renders the fixed instructional prompt for one record,
// embedding the canonical examples and the record's raw field values.
func buildPrompt(rec model.Company) string {
	name, domain, city, country, size := promptValues(rec)

	var b strings.Builder
	b.WriteString("Clean and standardize the following company data according to the examples provided.\n\n")
	b.WriteString(formatExamples)
	b.WriteString("\n\nAVAILABLE EMPLOYEE SIZE BUCKETS: ")
	b.WriteString(strings.Join(model.EmployeeSizeBuckets, ", "))
	b.WriteString("\n\nRAW DATA:\n")
	fmt.Fprintf(&b, "Company Name: %q\n", name)
	fmt.Fprintf(&b, "Domain: %q\n", domain)
	fmt.Fprintf(&b, "City: %q\n", city)
	fmt.Fprintf(&b, "Country: %q\n", country)
	fmt.Fprintf(&b, "Employee Size: %q\n", size)
	b.WriteString(`
Return a JSON object with this structure:
{
  "company_name": "cleaned company name",
  "domain": "cleaned domain (lowercase, no spaces, valid format)",
  "city": "cleaned city name",
  "country": "standardized country name",
  "employee_size": "one of the available buckets",
  "confidence": 0.95,
  "reasoning": "brief explanation of changes made"
}

CRITICAL DOMAIN RULES:
1. PRESERVE VALID DOMAINS: if the domain is already valid, keep it exactly as-is
2. CLEAN MALFORMED DOMAINS: only fix obvious formatting issues (spaces, missing dots, missing extensions)
3. GENERATE ONLY WHEN MISSING: only generate new domains when the domain field is empty or completely invalid
4. If employee size cannot be determined, return empty string
5. If country cannot be determined, return empty string
6. Always return valid JSON; confidence between 0 and 1
7. Never return an empty domain - always provide one
`)
	return b.String()
}

// promptValues prefers the originating raw row so enrichment always sees
// the source text, falling back to the record's current field values.
func promptValues(rec model.Company) (name, domain, city, country, size string) {
	if rec.RawJSON != nil {
		return rec.RawJSON.Get(model.KeyCompanyName),
			rec.RawJSON.Get(model.KeyDomain),
			rec.RawJSON.Get(model.KeyCity),
			rec.RawJSON.Get(model.KeyCountry),
			rec.RawJSON.Get(model.KeyEmployeeSize)
	}
	return rec.CompanyName, rec.Domain, rec.City, rec.Country, rec.EmployeeSize
}
