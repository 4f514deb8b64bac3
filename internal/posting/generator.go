// Package posting builds balanced double-entry transactions out of
// normalized sales records.
package posting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgercast-dev/ledgercast/internal/accounts"
	"github.com/ledgercast-dev/ledgercast/internal/model"
	"github.com/ledgercast-dev/ledgercast/internal/taxid"
	"github.com/ledgercast-dev/ledgercast/internal/vat"
)

// tolerance is one minor unit; a worse residual after the VAT split means
// internal state is corrupt and the record must not be emitted.
var tolerance = decimal.New(1, -2)

// UnbalancedError reports a transaction whose postings failed the zero-sum
// invariant. It should be unreachable given the splitter's guarantee.
type UnbalancedError struct {
	Row      int
	Residual decimal.Decimal
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("row %d: postings do not balance, residual %s", e.Row, e.Residual)
}

// Generator turns one NormalizedTransaction into a three-posting entry:
// asset (+gross), sales income (-net), output VAT (-tax).
type Generator struct {
	registry *accounts.Registry
	rate     decimal.Decimal
}

// NewGenerator creates a Generator for a fixed VAT rate.
func NewGenerator(registry *accounts.Registry, rate decimal.Decimal) *Generator {
	return &Generator{registry: registry, rate: rate}
}

// Generate builds the balanced transaction for one record.
func (g *Generator) Generate(txn model.NormalizedTransaction) (model.Transaction, error) {
	net, tax, err := vat.Split(txn.GrossAmount, g.rate)
	if err != nil {
		return model.Transaction{}, err
	}

	key := g.registry.Resolve(txn.Organization)
	out := model.Transaction{
		Date:      txn.Date,
		Narration: narration(txn),
		Postings: []model.Posting{
			{Account: g.registry.Asset(txn.Payment, key), Amount: txn.GrossAmount},
			{Account: g.registry.Income(key), Amount: net.Neg()},
			{Account: g.registry.VATOutput(key), Amount: tax.Neg()},
		},
	}

	if residual := out.Imbalance(); residual.Abs().GreaterThan(tolerance) {
		return model.Transaction{}, &UnbalancedError{Row: txn.Row, Residual: residual}
	}
	return out, nil
}

// narration describes the sale from the cleaned display name plus the
// tax-ID fragment when one was embedded in the organization label.
func narration(txn model.NormalizedTransaction) string {
	id, display := taxid.Extract(txn.Organization)

	label := "Credit sale to "
	if txn.Payment == model.PaymentCash {
		label = "Cash sale to "
	}

	s := label + display
	if id != "" {
		s += " (Tax ID: " + id + ")"
	}
	return s
}
