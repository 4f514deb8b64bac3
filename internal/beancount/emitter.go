// Package beancount serializes transactions into Beancount text. Pure
// formatting; no business logic lives here.
package beancount

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ledgercast-dev/ledgercast/internal/model"
)

const dateFormat = "2006-01-02"

// Emitter accumulates transactions in input order and owns the running
// set of discovered accounts, so each one gets a single open declaration.
type Emitter struct {
	currency string
	openDate time.Time
	source   string

	// now stamps the header comment; overridable in tests.
	now func() time.Time

	txns     []model.Transaction
	accounts map[string]struct{}
}

// NewEmitter creates an Emitter for one conversion run. source names the
// input file in the generated header.
func NewEmitter(currency string, openDate time.Time, source string) *Emitter {
	return &Emitter{
		currency: currency,
		openDate: openDate,
		source:   source,
		now:      time.Now,
		accounts: make(map[string]struct{}),
	}
}

// Add appends a transaction and records its accounts for declaration.
func (e *Emitter) Add(txn model.Transaction) {
	e.txns = append(e.txns, txn)
	for _, p := range txn.Postings {
		e.accounts[p.Account] = struct{}{}
	}
}

// Count returns the number of transactions added so far.
func (e *Emitter) Count() int {
	return len(e.txns)
}

// WriteTo serializes the header comment, the sorted open declarations and
// then every transaction, preserving the order they were added in.
func (e *Emitter) WriteTo(w io.Writer) error {
	fmt.Fprintf(w, ";; Generated from %s\n", e.source)
	fmt.Fprintf(w, ";; Generated on %s\n\n", e.now().Format("2006-01-02 15:04:05"))

	names := make([]string, 0, len(e.accounts))
	for name := range e.accounts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(w, "%s open %s %s\n", e.openDate.Format(dateFormat), name, e.currency)
	}
	if len(names) > 0 {
		fmt.Fprintln(w)
	}

	for _, txn := range e.txns {
		if err := writeTransaction(w, txn, e.currency); err != nil {
			return err
		}
	}
	return nil
}

func writeTransaction(w io.Writer, txn model.Transaction, currency string) error {
	if _, err := fmt.Fprintf(w, "%s * \"%s\"\n", txn.Date.Format(dateFormat), escape(txn.Narration)); err != nil {
		return err
	}
	for _, p := range txn.Postings {
		if p.Elided {
			fmt.Fprintf(w, "    %s\n", p.Account)
			continue
		}
		fmt.Fprintf(w, "    %s  %s %s\n", p.Account, p.Amount.StringFixed(2), currency)
	}
	_, err := fmt.Fprintln(w)
	return err
}

func escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
