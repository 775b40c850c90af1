package ingest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"Company Name":   "company_name",
		" company name ": "company_name",
		"EMPLOYEE  SIZE": "employee_size",
		"Domain":         "domain",
		"employee_size":  "employee_size",
		"":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeHeader(in), "header %q", in)
	}
}

func TestParseCSV(t *testing.T) {
	doc := strings.Join([]string{
		"Company Name,Domain,City,Country,Employee Size",
		`Acme Inc,acme.com,"San Francisco, CA",us,"12,500"`,
		"Globex,,London,uk,250",
	}, "\n")

	rows, err := ParseCSV(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Acme Inc", rows[0]["company_name"])
	assert.Equal(t, "San Francisco, CA", rows[0]["city"])
	assert.Equal(t, "12,500", rows[0]["employee_size"])
	assert.Equal(t, "", rows[1]["domain"])
	assert.Equal(t, "250", rows[1]["employee_size"])
}

func TestParseCSVRaggedRows(t *testing.T) {
	doc := "company_name,domain,city\nAcme,acme.com\nGlobex,globex.com,London,extra"

	rows, err := ParseCSV(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	_, ok := rows[0]["city"]
	assert.False(t, ok, "short row must not gain a city key")
	assert.Equal(t, "London", rows[1]["city"])
}

func TestParseCSVEmptyFile(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseXLSX(t *testing.T) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Companies")
	require.NoError(t, err)

	header := sheet.AddRow()
	for _, h := range []string{"Company Name", "Domain", "Employee Size"} {
		header.AddCell().SetString(h)
	}
	row := sheet.AddRow()
	row.AddCell().SetString("Acme Inc")
	row.AddCell().SetString("acme.com")
	row.AddCell().SetString("11")

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := ParseXLSX(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme Inc", rows[0]["company_name"])
	assert.Equal(t, "acme.com", rows[0]["domain"])
	assert.Equal(t, "11", rows[0]["employee_size"])
}

func TestParseFileDispatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "companies.csv")
	require.NoError(t, os.WriteFile(path, []byte("company_name\nAcme\n"), 0o644))

	rows, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0]["company_name"])

	_, err = ParseFile(filepath.Join(dir, "companies.pdf"))
	assert.Error(t, err)
}
