package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Recognized RawRow keys. Anything else in an uploaded file is carried
// through untouched for audit purposes.
const (
	KeyCompanyName  = "company_name"
	KeyDomain       = "domain"
	KeyCity         = "city"
	KeyCountry      = "country"
	KeyEmployeeSize = "employee_size"
)

// RawRow is a single row as read from an uploaded file: field name to
// free-text value, with header names already normalized to snake_case.
// Rows are never mutated after parsing.
type RawRow map[string]string

// Get returns the trimmed value for key, or "" when absent.
func (r RawRow) Get(key string) string {
	return strings.TrimSpace(r[key])
}

// Company is a cleaned record ready for persistence. CompanyName is
// required; rows that end up without one are dropped by the pipeline.
// RawJSON retains the originating row for audit.
type Company struct {
	ID           string `json:"id,omitempty"`
	CompanyName  string `json:"company_name"`
	Domain       string `json:"domain"`
	City         string `json:"city"`
	Country      string `json:"country"`
	EmployeeSize string `json:"employee_size"`
	RawJSON      RawRow `json:"raw_json,omitempty"`

	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// RawJSONBytes marshals the originating row for storage. Returns "{}"
// when the row is nil so the column is always valid JSON.
func (c Company) RawJSONBytes() []byte {
	if c.RawJSON == nil {
		return []byte("{}")
	}
	b, err := json.Marshal(c.RawJSON)
	if err != nil {
		return []byte("{}")
	}
	return b
}

// EmployeeSizeBuckets are the canonical employee-count labels, ordered by
// lower bound. Classification is total over non-negative counts: every
// parseable count maps to exactly one bucket and the top bucket absorbs
// everything above 10,000.
var EmployeeSizeBuckets = []string{
	"1-10",
	"11-50",
	"51-200",
	"201-500",
	"501-1 000",
	"1 001-5 000",
	"5 001-10 000",
	"10 000+",
}

// IsEmployeeSizeBucket reports whether s is one of the canonical buckets.
func IsEmployeeSizeBucket(s string) bool {
	for _, b := range EmployeeSizeBuckets {
		if s == b {
			return true
		}
	}
	return false
}

// CleaningStats summarizes a processed batch: how many rows came in, how
// many survived cleaning, and per-field non-empty counts afterwards.
// Computed once per batch, never persisted.
type CleaningStats struct {
	TotalProcessed           int `json:"total_processed"`
	SuccessfulCleaned        int `json:"successful_cleaned"`
	FailedCleaning           int `json:"failed_cleaning"`
	CountriesNormalized      int `json:"countries_normalized"`
	DomainsCleaned           int `json:"domains_cleaned"`
	EmployeeSizesCategorized int `json:"employee_sizes_categorized"`
	CitiesCleaned            int `json:"cities_cleaned"`
}
