package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ledgercast-dev/ledgercast/internal/model"
)

// CSVParser reads delimited sales exports. The first row must be the
// header; surplus columns are ignored.
type CSVParser struct {
	Columns Columns
}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads all rows. A missing required column is a *SchemaError.
func (p *CSVParser) Parse(r io.Reader) ([]model.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // widths vary across exports

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, &SchemaError{Missing: []string{"amount", "date", "organization", "payment method"}}
	}

	idx, err := p.Columns.resolve(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]model.RawRecord, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		records = append(records, idx.record(i+2, cells))
	}
	return records, nil
}
