package ingest

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/company-intake/internal/model"
)

// ParseCSV reads an entire CSV document. The first row is the header;
// rows may have fewer or more fields than the header.
func ParseCSV(r io.Reader) ([]model.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("csv: empty file")
	}
	if err != nil {
		return nil, eris.Wrap(err, "csv: read header")
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}
		rows = append(rows, record)
	}

	return rowsToRawRows(header, rows), nil
}

// ParseCSVFile reads a CSV file from disk.
func ParseCSVFile(path string) ([]model.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "csv: open file")
	}
	defer f.Close()

	return ParseCSV(f)
}
