// Package clean implements the deterministic cleaning pipeline: rule-based
// normalizers that map free-text company fields to a canonical schema
// without any external service.
package clean

import (
	"strings"

	"github.com/sells-group/company-intake/internal/model"
)

// CleanCompanyName trims the raw name and truncates at the first embedded
// tab, which signals column-shift corruption in the source file.
func CleanCompanyName(raw string) string {
	s := raw
	if i := strings.IndexByte(s, '\t'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// CleanRow applies all field normalizers to a single raw row. Missing or
// unparseable fields surface as empty strings, never as errors.
func CleanRow(row model.RawRow) model.Company {
	return model.Company{
		CompanyName:  CleanCompanyName(row[model.KeyCompanyName]),
		Domain:       CleanDomain(row.Get(model.KeyDomain)),
		City:         NormalizeCity(row.Get(model.KeyCity)),
		Country:      NormalizeCountry(row.Get(model.KeyCountry)),
		EmployeeSize: ClassifyEmployeeSize(row.Get(model.KeyEmployeeSize)),
		RawJSON:      row,
	}
}

// CleanRows runs the deterministic pipeline over a batch. Rows whose
// cleaned company name is empty are dropped; order is otherwise preserved.
func CleanRows(rows []model.RawRow) []model.Company {
	out := make([]model.Company, 0, len(rows))
	for _, row := range rows {
		c := CleanRow(row)
		if c.CompanyName == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// PassthroughRows maps raw rows to records without normalizing field
// values, for the mode where enrichment is authoritative. Empty-name rows
// are still dropped.
func PassthroughRows(rows []model.RawRow) []model.Company {
	out := make([]model.Company, 0, len(rows))
	for _, row := range rows {
		name := row.Get(model.KeyCompanyName)
		if name == "" {
			continue
		}
		out = append(out, model.Company{
			CompanyName:  name,
			Domain:       row.Get(model.KeyDomain),
			City:         row.Get(model.KeyCity),
			Country:      row.Get(model.KeyCountry),
			EmployeeSize: row.Get(model.KeyEmployeeSize),
			RawJSON:      row,
		})
	}
	return out
}
