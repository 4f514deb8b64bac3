package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ledgercast-dev/ledgercast/internal/model"
)

// XLSXParser reads the first sheet of an Excel workbook. Cell values come
// out formatted, so dates may surface as serial numbers; the normalizer
// accepts those.
type XLSXParser struct {
	Columns Columns
}

// Format returns the parser name.
func (p *XLSXParser) Format() string { return "xlsx" }

// Parse reads all rows of the first sheet. A missing required column is a
// *SchemaError.
func (p *XLSXParser) Parse(r io.Reader) ([]model.RawRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
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
