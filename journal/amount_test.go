package journal_test

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/colindean/hledger/journal"
)

func amt(value string, style journal.Style) journal.Amount {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return journal.NewAmount(d, style)
}

func TestAmountString(t *testing.T) {
	usd := journal.Style{Symbol: "$", Side: journal.SideLeft, Precision: 2}
	eur := journal.Style{Symbol: "EUR", Side: journal.SideRight, Spaced: true, Precision: 2}

	tests := []struct {
		name     string
		amount   journal.Amount
		expected string
	}{
		{"left symbol", amt("1.5", usd), "$1.50"},
		{"left symbol negative", amt("-2", usd), "$-2.00"},
		{"left symbol spaced", amt("1.5", journal.Style{Symbol: "$", Side: journal.SideLeft, Spaced: true, Precision: 2}), "$ 1.50"},
		{"right symbol spaced", amt("1.5", eur), "1.50 EUR"},
		{"right symbol unspaced", amt("10", journal.Style{Symbol: "h", Side: journal.SideRight, Precision: 2}), "10.00h"},
		{"no symbol", amt("42", journal.Style{Precision: 0}), "42"},
		{"pad fraction", amt("3", journal.Style{Symbol: "$", Precision: 3}), "$3.000"},
		{"truncate fraction", amt("3.14159", journal.Style{Symbol: "$", Precision: 2}), "$3.14"},
		{"thousands", amt("4500", journal.Style{Symbol: "$", Precision: 2, Thousands: true}), "$4,500.00"},
		{"thousands seven digits", amt("1234567.8", journal.Style{Precision: 1, Thousands: true}), "1,234,567.8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.amount.String())
		})
	}
}

func TestAmountStringWithPrice(t *testing.T) {
	usd := journal.Style{Symbol: "$", Side: journal.SideLeft, Precision: 2}
	shares := journal.Style{Symbol: "AAPL", Side: journal.SideRight, Spaced: true}

	unit := amt("10", shares)
	price := amt("150.25", usd)
	unit.Price = &price
	assert.Equal(t, "10 AAPL @ $150.25", unit.String())

	total := amt("10", shares)
	totalPrice := amt("1502.50", usd)
	total.Price = &totalPrice
	total.PriceIsTotal = true
	assert.Equal(t, "10 AAPL @@ $1502.50", total.String())
}

func TestMixedCombinesCommodities(t *testing.T) {
	usd := journal.Style{Symbol: "$", Precision: 2}
	eur := journal.Style{Symbol: "EUR", Side: journal.SideRight, Spaced: true, Precision: 2}

	m := journal.Mixed(amt("10", usd), amt("5", eur), amt("2.50", usd))

	assert.Equal(t, []string{"$", "EUR"}, m.Commodities())
	assert.Equal(t, "$12.50, 5.00 EUR", m.String())
}

func TestMixedAddCancelsToZero(t *testing.T) {
	usd := journal.Style{Symbol: "$", Precision: 2}

	m := journal.Mixed(amt("10", usd)).Add(journal.Mixed(amt("-10", usd)))
	assert.True(t, m.IsZero())
	assert.Zero(t, m.NonZero())
}

func TestMixedAddLastStyleWins(t *testing.T) {
	coarse := journal.Style{Symbol: "$", Precision: 2}
	fine := journal.Style{Symbol: "$", Precision: 4}

	m := journal.Mixed(amt("1", coarse)).AddAmount(amt("2", fine))
	assert.Equal(t, "$3.0000", m.String())
}

func TestMissingAmountSentinel(t *testing.T) {
	m := journal.MissingAmount()
	assert.True(t, m.IsMissing())
	assert.Equal(t, "", m.String())

	assert.False(t, journal.MixedAmount{}.IsMissing())
	assert.False(t, journal.Mixed(amt("1", journal.Style{Symbol: "$"})).IsMissing())

	// No commodity name is reserved for the elided marker.
	auto := journal.Style{Symbol: "AUTO", Side: journal.SideRight, Spaced: true}
	assert.False(t, journal.Mixed(amt("5", auto)).IsMissing())
}

func TestMixedNegate(t *testing.T) {
	usd := journal.Style{Symbol: "$", Precision: 2}
	m := journal.Mixed(amt("10", usd), amt("-2.5", journal.Style{Precision: 1}))
	assert.Equal(t, "$-10.00, 2.5", m.Negate().String())
}
