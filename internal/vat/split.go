// Package vat decomposes tax-inclusive totals into net and tax portions.
package vat

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// minorUnits is the currency's minor-unit precision (tetri, cents).
const minorUnits = 2

var one = decimal.NewFromInt(1)

// InvalidRateError reports a rate outside [0, 1).
type InvalidRateError struct {
	Rate decimal.Decimal
}

func (e InvalidRateError) Error() string {
	return fmt.Sprintf("vat rate %s outside [0, 1)", e.Rate)
}

// Split decomposes a tax-inclusive gross into net and tax at the given
// inclusive rate: net = gross / (1 + rate), tax = gross - net.
//
// The net leg is rounded half-up to 2 decimal places and the tax leg is
// the exact remainder, so net + tax == gross holds to the tetri whenever
// gross itself carries at most 2 decimal places.
func Split(gross, rate decimal.Decimal) (net, tax decimal.Decimal, err error) {
	if rate.IsNegative() || rate.GreaterThanOrEqual(one) {
		return decimal.Zero, decimal.Zero, InvalidRateError{Rate: rate}
	}

	net = gross.Div(one.Add(rate)).Round(minorUnits)
	tax = gross.Sub(net)
	return net, tax, nil
}
