package vat

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestSplit(t *testing.T) {
	tests := []struct {
		gross string
		rate  string
		net   string
		tax   string
	}{
		{"200", "0.18", "169.49", "30.51"},
		{"60", "0.18", "50.85", "9.15"},
		{"118", "0.18", "100", "18"},
		{"100", "0", "100", "0"},
		{"0", "0.18", "0", "0"},
		{"0.01", "0.18", "0.01", "0"},
		{"1.18", "0.18", "1", "0.18"},
		{"33.33", "0.18", "28.25", "5.08"},
	}

	for _, tt := range tests {
		net, tax, err := Split(dec(tt.gross), dec(tt.rate))
		require.NoError(t, err)
		assert.True(t, dec(tt.net).Equal(net), "gross %s: net %s want %s", tt.gross, net, tt.net)
		assert.True(t, dec(tt.tax).Equal(tax), "gross %s: tax %s want %s", tt.gross, tax, tt.tax)
	}
}

// net + tax must reconstruct gross exactly, whatever the rounding did.
func TestSplitExact(t *testing.T) {
	rates := []string{"0", "0.05", "0.18", "0.2", "0.99"}
	grosses := []string{"0.01", "0.02", "0.99", "1", "19.99", "33.33", "200", "99999.99"}

	for _, r := range rates {
		for _, g := range grosses {
			net, tax, err := Split(dec(g), dec(r))
			require.NoError(t, err)
			assert.True(t, net.Add(tax).Equal(dec(g)), "gross %s rate %s: %s + %s", g, r, net, tax)
			assert.True(t, net.Exponent() >= -2, "net %s has too many places", net)
		}
	}
}

func TestSplitInvalidRate(t *testing.T) {
	for _, r := range []string{"-0.01", "1", "1.5"} {
		_, _, err := Split(dec("100"), dec(r))
		var rateErr InvalidRateError
		require.ErrorAs(t, err, &rateErr, "rate %s", r)
		assert.True(t, rateErr.Rate.Equal(dec(r)))
	}
}
