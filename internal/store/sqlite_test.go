package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/company-intake/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "intake.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func company(name, domain string) model.Company {
	return model.Company{
		CompanyName:  name,
		Domain:       domain,
		City:         "Reno",
		Country:      "United States",
		EmployeeSize: "11-50",
		RawJSON:      model.RawRow{"company_name": name, "domain": domain},
	}
}

func TestSQLiteStore_UpsertAndList(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	out, err := s.UpsertCompanies(ctx, []model.Company{
		company("Acme Inc", "acme.com"),
		company("Globex", "globex.com"),
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.NotEmpty(t, out[0].ID)
	assert.False(t, out[0].CreatedAt.IsZero())

	// Newest first.
	companies, err := s.ListCompanies(ctx, CompanyFilter{})
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Globex", companies[0].CompanyName)
	assert.Equal(t, "Acme Inc", companies[1].RawJSON.Get(model.KeyCompanyName))
}

func TestSQLiteStore_UpsertConflictUpdates(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	first, err := s.UpsertCompanies(ctx, []model.Company{company("Acme Inc", "acme.com")})
	require.NoError(t, err)

	updated := company("Acme Inc", "acme.com")
	updated.EmployeeSize = "51-200"
	second, err := s.UpsertCompanies(ctx, []model.Company{updated})
	require.NoError(t, err)

	// Same identity: no new row, existing one updated in place.
	assert.Equal(t, first[0].ID, second[0].ID)

	companies, err := s.ListCompanies(ctx, CompanyFilter{})
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "51-200", companies[0].EmployeeSize)
}

func TestSQLiteStore_ListCompaniesFilters(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	ca := company("Maple Corp", "maple.ca")
	ca.Country = "Canada"
	ca.EmployeeSize = "201-500"
	_, err := s.UpsertCompanies(ctx, []model.Company{
		company("Acme Inc", "acme.com"),
		ca,
	})
	require.NoError(t, err)

	// Case-insensitive substring on country.
	companies, err := s.ListCompanies(ctx, CompanyFilter{Country: "canad"})
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Maple Corp", companies[0].CompanyName)

	// Substring on domain.
	companies, err = s.ListCompanies(ctx, CompanyFilter{Domain: "acme"})
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Acme Inc", companies[0].CompanyName)

	// Exact bucket match.
	companies, err = s.ListCompanies(ctx, CompanyFilter{EmployeeSize: "201-500"})
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Maple Corp", companies[0].CompanyName)

	// No match.
	companies, err = s.ListCompanies(ctx, CompanyFilter{EmployeeSize: "10 000+"})
	require.NoError(t, err)
	assert.Empty(t, companies)
}

func TestSQLiteStore_ListCompaniesLimit(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := s.UpsertCompanies(ctx, []model.Company{
		company("A Co", "a.com"),
		company("B Co", "b.com"),
		company("C Co", "c.com"),
	})
	require.NoError(t, err)

	companies, err := s.ListCompanies(ctx, CompanyFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, companies, 2)
}

func TestSQLiteStore_ListCountries(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	ca := company("Maple Corp", "maple.ca")
	ca.Country = "Canada"
	noCountry := company("Ghost Co", "ghost.com")
	noCountry.Country = ""
	_, err := s.UpsertCompanies(ctx, []model.Company{
		company("Acme Inc", "acme.com"),
		ca,
		noCountry,
	})
	require.NoError(t, err)

	countries, err := s.ListCountries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Canada", "United States"}, countries)
}

func TestSQLiteStore_ListEmployeeSizesBucketOrder(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	big := company("Mega Corp", "mega.com")
	big.EmployeeSize = "10 000+"
	small := company("Tiny Co", "tiny.com")
	small.EmployeeSize = "1-10"
	_, err := s.UpsertCompanies(ctx, []model.Company{
		company("Acme Inc", "acme.com"), // 11-50
		big,
		small,
	})
	require.NoError(t, err)

	sizes, err := s.ListEmployeeSizes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1-10", "11-50", "10 000+"}, sizes)
}

func TestSQLiteStore_Ping(t *testing.T) {
	s := newTestSQLiteStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
