package store

import (
	"context"

	"github.com/sells-group/company-intake/internal/model"
)

// CompanyFilter specifies criteria for listing companies.
type CompanyFilter struct {
	Country      string `json:"country,omitempty"`       // case-insensitive substring
	Domain       string `json:"domain,omitempty"`        // case-insensitive substring
	EmployeeSize string `json:"employee_size,omitempty"` // exact bucket
	Limit        int    `json:"limit,omitempty"`
	Offset       int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for cleaned company records.
type Store interface {
	// UpsertCompanies inserts or updates records keyed on
	// (company_name, domain) and returns them with IDs and timestamps.
	UpsertCompanies(ctx context.Context, records []model.Company) ([]model.Company, error)
	ListCompanies(ctx context.Context, filter CompanyFilter) ([]model.Company, error)
	ListCountries(ctx context.Context) ([]string, error)
	ListEmployeeSizes(ctx context.Context) ([]string, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
}

// sortBuckets orders distinct employee sizes by canonical bucket rank,
// with anything unrecognized after the known buckets.
func sortBuckets(sizes []string) []string {
	rank := make(map[string]int, len(model.EmployeeSizeBuckets))
	for i, b := range model.EmployeeSizeBuckets {
		rank[b] = i
	}

	out := make([]string, 0, len(sizes))
	for _, b := range model.EmployeeSizeBuckets {
		for _, s := range sizes {
			if s == b {
				out = append(out, s)
			}
		}
	}
	for _, s := range sizes {
		if _, ok := rank[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}
