package beancount

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgercast-dev/ledgercast/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func testEmitter() *Emitter {
	e := NewEmitter("GEL", date(2021, 1, 1), "report.xlsx")
	e.now = func() time.Time { return date(2021, 6, 1) }
	return e
}

func saleTxn(day int, account, narration string) model.Transaction {
	return model.Transaction{
		Date:      date(2021, 3, day),
		Narration: narration,
		Postings: []model.Posting{
			{Account: account, Amount: dec("60.00")},
			{Account: "Income:Sales:Acme", Amount: dec("-50.85")},
			{Account: "Liabilities:VAT:Output:Acme", Amount: dec("-9.15")},
		},
	}
}

func TestWriteTo(t *testing.T) {
	e := testEmitter()
	e.Add(saleTxn(15, "Assets:Cash:Acme", "Cash sale to Acme"))

	var buf bytes.Buffer
	require.NoError(t, e.WriteTo(&buf))

	want := `;; Generated from report.xlsx
;; Generated on 2021-06-01 00:00:00

2021-01-01 open Assets:Cash:Acme GEL
2021-01-01 open Income:Sales:Acme GEL
2021-01-01 open Liabilities:VAT:Output:Acme GEL

2021-03-15 * "Cash sale to Acme"
    Assets:Cash:Acme  60.00 GEL
    Income:Sales:Acme  -50.85 GEL
    Liabilities:VAT:Output:Acme  -9.15 GEL

`
	assert.Equal(t, want, buf.String())
}

// Open declarations are deduplicated; transactions keep insertion order.
func TestWriteToDeduplicatesAndPreservesOrder(t *testing.T) {
	e := testEmitter()
	e.Add(saleTxn(20, "Assets:Cash:Acme", "second by date, first by row"))
	e.Add(saleTxn(10, "Assets:Cash:Acme", "first by date, second by row"))

	var buf bytes.Buffer
	require.NoError(t, e.WriteTo(&buf))
	out := buf.String()

	assert.Equal(t, 1, strings.Count(out, "open Assets:Cash:Acme"))
	assert.Less(t,
		strings.Index(out, "second by date, first by row"),
		strings.Index(out, "first by date, second by row"))
	assert.Equal(t, 2, e.Count())
}

func TestWriteToEscapesNarration(t *testing.T) {
	e := testEmitter()
	txn := saleTxn(15, "Assets:Cash:Acme", `Cash sale to "Acme"`)
	e.Add(txn)

	var buf bytes.Buffer
	require.NoError(t, e.WriteTo(&buf))
	assert.Contains(t, buf.String(), `* "Cash sale to \"Acme\""`)
}

func TestWriteToElidedPosting(t *testing.T) {
	e := testEmitter()
	e.Add(model.Transaction{
		Date:      date(2021, 3, 15),
		Narration: "rounding-free entry",
		Postings: []model.Posting{
			{Account: "Assets:Cash:Acme", Amount: dec("60.00")},
			{Account: "Income:Sales:Acme", Elided: true},
		},
	})

	var buf bytes.Buffer
	require.NoError(t, e.WriteTo(&buf))
	assert.Contains(t, buf.String(), "    Income:Sales:Acme\n")
	assert.NotContains(t, buf.String(), "Income:Sales:Acme  ")
}
