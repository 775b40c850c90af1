package clean

import "github.com/sells-group/company-intake/internal/model"

// ComputeStats summarizes a batch: raw row count, cleaned record count,
// the difference (rows dropped for lacking a company name), and non-empty
// counts per normalized field. Pure function; safe to call repeatedly.
func ComputeStats(raw []model.RawRow, cleaned []model.Company) model.CleaningStats {
	stats := model.CleaningStats{
		TotalProcessed:    len(raw),
		SuccessfulCleaned: len(cleaned),
		FailedCleaning:    len(raw) - len(cleaned),
	}
	for _, c := range cleaned {
		if c.Country != "" {
			stats.CountriesNormalized++
		}
		if c.Domain != "" {
			stats.DomainsCleaned++
		}
		if c.EmployeeSize != "" {
			stats.EmployeeSizesCategorized++
		}
		if c.City != "" {
			stats.CitiesCleaned++
		}
	}
	return stats
}
