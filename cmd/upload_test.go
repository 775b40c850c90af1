package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/company-intake/internal/config"
	"github.com/sells-group/company-intake/internal/intake"
	"github.com/sells-group/company-intake/internal/store"
)

func TestUploadCmd_DryRun(t *testing.T) {
	cfg = &config.Config{Enrich: config.EnrichConfig{Mode: "deterministic"}}

	dir := t.TempDir()
	path := filepath.Join(dir, "companies.csv")
	csv := "Company Name,Domain,Country,Employee Size\nAcme Inc,acme.com,us,11\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	uploadFile = path
	uploadMode = ""
	uploadDryRun = true
	t.Cleanup(func() { uploadFile, uploadDryRun = "", false })

	uploadCmd.SetContext(context.Background())
	err := uploadCmd.RunE(uploadCmd, nil)
	require.NoError(t, err)
}

func TestUploadCmd_BadPath(t *testing.T) {
	cfg = &config.Config{Enrich: config.EnrichConfig{Mode: "deterministic"}}

	uploadFile = filepath.Join(t.TempDir(), "missing.csv")
	uploadDryRun = true
	t.Cleanup(func() { uploadFile, uploadDryRun = "", false })

	uploadCmd.SetContext(context.Background())
	err := uploadCmd.RunE(uploadCmd, nil)
	require.Error(t, err)
}

func TestUploadCmd_AIModeRequiresKey(t *testing.T) {
	cfg = &config.Config{
		Enrich: config.EnrichConfig{Mode: "ai"},
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "companies.csv")
	require.NoError(t, os.WriteFile(path, []byte("company_name\nAcme\n"), 0o644))

	uploadFile = path
	uploadDryRun = true
	t.Cleanup(func() { uploadFile, uploadDryRun = "", false })

	uploadCmd.SetContext(context.Background())
	err := uploadCmd.RunE(uploadCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic key is required")
}

func TestNewProcessor_Deterministic(t *testing.T) {
	cfg = &config.Config{}

	proc, err := newProcessor(intake.ModeDeterministic)
	require.NoError(t, err)
	assert.NotNil(t, proc)
}

func TestInitStore_UnknownDriver(t *testing.T) {
	cfg = &config.Config{Store: config.StoreConfig{Driver: "oracle"}}

	_, err := initStore(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store driver")
}

func TestUploadCmd_SQLiteEndToEnd(t *testing.T) {
	dir := t.TempDir()
	cfg = &config.Config{
		Store:  config.StoreConfig{Driver: "sqlite", DatabaseURL: filepath.Join(dir, "intake.db")},
		Enrich: config.EnrichConfig{Mode: "deterministic"},
	}

	path := filepath.Join(dir, "companies.csv")
	csv := "Company Name,Domain,Country,Employee Size\nAcme Inc,acme .com,us,\"12,500\"\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	uploadFile = path
	uploadDryRun = false
	t.Cleanup(func() { uploadFile = "" })

	uploadCmd.SetContext(context.Background())
	require.NoError(t, uploadCmd.RunE(uploadCmd, nil))

	st, err := initStore(context.Background())
	require.NoError(t, err)
	defer st.Close()

	companies, err := st.ListCompanies(context.Background(), store.CompanyFilter{})
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "acme.com", companies[0].Domain)
	assert.Equal(t, "United States", companies[0].Country)
	assert.Equal(t, "10 000+", companies[0].EmployeeSize)
}
