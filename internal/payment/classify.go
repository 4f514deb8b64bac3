// Package payment classifies the free-text payment hint of a sale into
// the asset account family it settled into.
package payment

import (
	"strings"

	"github.com/ledgercast-dev/ledgercast/internal/model"
)

// Classifier matches a note against keyword sets in a fixed priority:
// cash keywords first, then bank keywords, defaulting to bank. Matching is
// case-insensitive substring search, so Georgian abbreviations like
// "ნაღ" also hit their long forms.
type Classifier struct {
	cash []string
	bank []string
}

// DefaultCashKeywords are the cash indicators seen in Georgian sales
// exports plus the English form.
func DefaultCashKeywords() []string {
	return []string{"ნაღდი", "ნაღ", "კეში", "cash"}
}

// DefaultBankKeywords indicate settlement through a bank account.
func DefaultBankKeywords() []string {
	return []string{"გადარიცხვა", "ჩარიცხვა", "ბანკი", "bank", "transfer"}
}

// New builds a Classifier. Keywords are lowercased once up front; empty
// keywords are dropped so they cannot match everything.
func New(cash, bank []string) *Classifier {
	return &Classifier{cash: fold(cash), bank: fold(bank)}
}

// NewDefault builds a Classifier with the default keyword sets.
func NewDefault() *Classifier {
	return New(DefaultCashKeywords(), DefaultBankKeywords())
}

// Classify maps a payment note to a PaymentKind. It is total: an empty or
// unrecognized note means bank settlement, the common case for invoiced
// sales.
func (c *Classifier) Classify(note string) model.PaymentKind {
	s := strings.ToLower(strings.TrimSpace(note))
	if containsAny(s, c.cash) {
		return model.PaymentCash
	}
	if containsAny(s, c.bank) {
		return model.PaymentBank
	}
	return model.PaymentBank
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func fold(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
