// Package ingest parses uploaded CSV and XLSX files into raw rows keyed
// by normalized header names.
package ingest

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/company-intake/internal/model"
)

// NormalizeHeader converts a raw column header to the canonical
// lowercase snake_case key used throughout the pipeline, so "Company
// Name", "company name", and "COMPANY_NAME" all map to "company_name".
func NormalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(h))), "_")
}

// ParseFile parses a CSV or XLSX file by extension.
func ParseFile(path string) ([]model.RawRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParseCSVFile(path)
	case ".xlsx":
		return ParseXLSXFile(path)
	default:
		return nil, eris.Errorf("ingest: unsupported file type %q, expected .csv or .xlsx", filepath.Ext(path))
	}
}

// rowsToRawRows zips a header row with data rows. Short rows leave their
// trailing keys absent; extra cells beyond the header are dropped.
func rowsToRawRows(header []string, rows [][]string) []model.RawRow {
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = NormalizeHeader(h)
	}

	out := make([]model.RawRow, 0, len(rows))
	for _, cells := range rows {
		row := make(model.RawRow, len(keys))
		for i, key := range keys {
			if key == "" || i >= len(cells) {
				continue
			}
			row[key] = strings.TrimSpace(cells[i])
		}
		out = append(out, row)
	}
	return out
}
