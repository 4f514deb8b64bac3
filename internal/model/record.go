package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord is one row lifted from the input table before any validation.
// All fields are kept as source text; Row is the 1-based row number in the
// input file (header included) for diagnostics.
type RawRecord struct {
	Row          int
	Organization string
	Amount       string
	Date         string
	Note         string
}

// PaymentKind says which asset account family a sale settled into.
type PaymentKind string

const (
	PaymentCash PaymentKind = "cash"
	PaymentBank PaymentKind = "bank"
)

// NormalizedTransaction is the validated, canonical form of a RawRecord.
// GrossAmount is VAT-inclusive and never negative.
type NormalizedTransaction struct {
	Row          int
	Date         time.Time
	Organization string // raw organization text, tax-ID fragment included
	GrossAmount  decimal.Decimal
	Currency     string
	Payment      PaymentKind
}
