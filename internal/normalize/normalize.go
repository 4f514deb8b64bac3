// Package normalize validates raw table rows into canonical transactions,
// producing a structured skip reason for anything it cannot coerce.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgercast-dev/ledgercast/internal/model"
	"github.com/ledgercast-dev/ledgercast/internal/payment"
)

// Reason identifies why a row was skipped.
type Reason string

const (
	ReasonInvalidDate         Reason = "invalid_date"
	ReasonInvalidAmount       Reason = "invalid_amount"
	ReasonNegativeAmount      Reason = "negative_amount"
	ReasonMissingOrganization Reason = "missing_organization"
)

// RejectionError is a per-row, non-fatal skip. The run continues; the
// conversion session collects these into its report.
type RejectionError struct {
	Row    int
	Reason Reason
	Detail string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("row %d rejected (%s): %s", e.Row, e.Reason, e.Detail)
}

// dateLayouts are tried in order; the ISO form comes first so it wins on
// inputs that both layouts could parse.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"02.01.2006",
	"2.1.2006",
}

// Excel stores dates as day counts from this epoch (the 1900 leap-year bug
// is folded in by using Dec 30).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Serial numbers below this are more likely stray integers than dates.
const minExcelSerial = 1000

// Normalizer coerces RawRecords for a fixed currency, classifying the
// payment note as it goes. It is stateless across rows.
type Normalizer struct {
	currency   string
	classifier *payment.Classifier
}

// New creates a Normalizer.
func New(currency string, classifier *payment.Classifier) *Normalizer {
	return &Normalizer{currency: currency, classifier: classifier}
}

// Normalize validates one row. The returned error, when non-nil, is always
// a *RejectionError.
func (n *Normalizer) Normalize(rec model.RawRecord) (model.NormalizedTransaction, error) {
	org := strings.TrimSpace(rec.Organization)
	if org == "" {
		return model.NormalizedTransaction{}, &RejectionError{
			Row:    rec.Row,
			Reason: ReasonMissingOrganization,
			Detail: "empty organization column",
		}
	}

	gross, err := ParseAmount(rec.Amount)
	if err != nil {
		return model.NormalizedTransaction{}, &RejectionError{
			Row:    rec.Row,
			Reason: ReasonInvalidAmount,
			Detail: fmt.Sprintf("amount %q: %v", rec.Amount, err),
		}
	}
	if gross.IsNegative() {
		// Sale totals are non-negative in this schema; refunds are not a
		// defined case and must not be silently coerced.
		return model.NormalizedTransaction{}, &RejectionError{
			Row:    rec.Row,
			Reason: ReasonNegativeAmount,
			Detail: fmt.Sprintf("negative amount %s", gross),
		}
	}

	date, err := ParseDate(rec.Date)
	if err != nil {
		return model.NormalizedTransaction{}, &RejectionError{
			Row:    rec.Row,
			Reason: ReasonInvalidDate,
			Detail: fmt.Sprintf("date %q: %v", rec.Date, err),
		}
	}

	return model.NormalizedTransaction{
		Row:          rec.Row,
		Date:         date,
		Organization: org,
		GrossAmount:  gross.Round(2),
		Currency:     n.currency,
		Payment:      n.classifier.Classify(rec.Note),
	}, nil
}

// ParseAmount parses a decimal amount, tolerating thousands separators
// (comma, apostrophe, plain and non-breaking spaces).
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', '\'', ' ', ' ':
			return -1
		}
		return r
	}, s)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number")
	}
	return d, nil
}

// ParseDate parses a calendar date from the source formats: ISO, the
// day-first locale variants, or an Excel serial number.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial >= minExcelSerial && serial < 200000 {
			return excelEpoch.AddDate(0, 0, int(serial)), nil
		}
		return time.Time{}, fmt.Errorf("numeric value out of date range")
	}

	return time.Time{}, fmt.Errorf("unrecognized date format")
}
