package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerKey is a sanitized account-name segment for one customer.
type CustomerKey string

// Posting is one line of a double-entry transaction. If Elided is true the
// amount is omitted and the downstream ledger tool infers the balancing
// remainder.
type Posting struct {
	Account string
	Amount  decimal.Decimal
	Elided  bool
}

// Transaction is one dated Beancount entry with its postings, kept in
// input-row order by the emitter.
type Transaction struct {
	Date      time.Time
	Narration string
	Postings  []Posting
}

// Imbalance returns the sum of all non-elided posting amounts. A balanced
// transaction returns zero; with one elided posting the remainder belongs
// to that posting.
func (t Transaction) Imbalance() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range t.Postings {
		if p.Elided {
			continue
		}
		sum = sum.Add(p.Amount)
	}
	return sum
}
