package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestXLSXParse(t *testing.T) {
	buf := workbook(t, [][]any{
		{"ორგანიზაცია", "თანხა", "გააქტიურების თარ.", "დანიშნულება"},
		{"(412764389) Acme Corp", "200", "2021-03-15", "გადარიცხვა"},
		{"შპს ბეტა", "60", "2021-03-16", "ნაღდი"},
	})

	p := &XLSXParser{Columns: DefaultColumns()}
	records, err := p.Parse(buf)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 2, records[0].Row)
	assert.Equal(t, "(412764389) Acme Corp", records[0].Organization)
	assert.Equal(t, "200", records[0].Amount)
	assert.Equal(t, "2021-03-15", records[0].Date)
	assert.Equal(t, "ნაღდი", records[1].Note)
}

func TestXLSXParseMissingColumn(t *testing.T) {
	buf := workbook(t, [][]any{
		{"ორგანიზაცია", "თანხა"},
		{"Acme", "10"},
	})

	p := &XLSXParser{Columns: DefaultColumns()}
	_, err := p.Parse(buf)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"date", "payment method"}, schemaErr.Missing)
}

func TestXLSXParseNotAWorkbook(t *testing.T) {
	p := &XLSXParser{Columns: DefaultColumns()}
	_, err := p.Parse(bytes.NewReader([]byte("not a zip")))
	assert.Error(t, err)
}
