package journal_test

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/colindean/hledger/journal"
)

func price(symbol, value string, year, month, day int) journal.HistoricalPrice {
	return journal.HistoricalPrice{
		Date:   journal.Date{Year: year, Month: month, Day: day},
		Symbol: symbol,
		Amount: amt(value, usdStyle),
	}
}

func TestBuildAppliesUpdatesInOrder(t *testing.T) {
	food := posting("expenses:food", "10", journal.RegularPosting)
	cash := posting("assets:cash", "-10", journal.RegularPosting)
	tr := txn(food, cash)

	j := journal.Build("main.journal", nil, time.Now(), []journal.Update{
		journal.SetDefaultStyle{Style: usdStyle},
		journal.AddTransaction{Transaction: tr},
		journal.AddIgnoredPriceSymbol{Symbol: "GBP"},
		journal.AddPrice{Price: price("AAPL", "150", 2009, 1, 1)},
	})

	assert.Equal(t, []string{"main.journal"}, j.Files)
	assert.Equal(t, 1, len(j.Transactions))
	assert.Equal(t, []string{"GBP"}, j.IgnoredPriceSymbols)
	assert.Equal(t, 1, len(j.Prices))
	assert.NotZero(t, j.DefaultStyle)
	assert.Equal(t, "$", j.DefaultStyle.Symbol)
}

func TestBuildSplicesIncludeBlocks(t *testing.T) {
	inner := txn(
		posting("expenses:food", "5", journal.RegularPosting),
		posting("assets:cash", "-5", journal.RegularPosting),
	)
	outer := txn(
		posting("expenses:rent", "700", journal.RegularPosting),
		posting("assets:checking", "-700", journal.RegularPosting),
	)

	j := journal.Build("main.journal", nil, time.Now(), []journal.Update{
		journal.IncludeBlock{
			Path:    "included.journal",
			Updates: []journal.Update{journal.AddTransaction{Transaction: inner}},
		},
		journal.AddTransaction{Transaction: outer},
	})

	assert.Equal(t, []string{"main.journal", "included.journal"}, j.Files)
	// Included entries land at the include directive's position in order.
	assert.Equal(t, []*journal.Transaction{inner, outer}, j.Transactions)
}

func TestPriceLookup(t *testing.T) {
	j := journal.Build("main.journal", nil, time.Now(), []journal.Update{
		journal.AddPrice{Price: price("AAPL", "140", 2009, 1, 1)},
		journal.AddPrice{Price: price("AAPL", "150", 2009, 2, 1)},
		journal.AddPrice{Price: price("GOOG", "300", 2009, 1, 15)},
	})

	got, ok := j.Price("AAPL", journal.Date{Year: 2009, Month: 1, Day: 20})
	assert.True(t, ok)
	assert.Equal(t, "$140.00", got.Amount.String())

	got, ok = j.Price("AAPL", journal.Date{Year: 2009, Month: 3, Day: 1})
	assert.True(t, ok)
	assert.Equal(t, "$150.00", got.Amount.String())

	_, ok = j.Price("AAPL", journal.Date{Year: 2008, Month: 12, Day: 31})
	assert.False(t, ok)
}

func TestPriceSameDayReplaces(t *testing.T) {
	j := journal.Build("main.journal", nil, time.Now(), []journal.Update{
		journal.AddPrice{Price: price("AAPL", "140", 2009, 1, 1)},
		journal.AddPrice{Price: price("AAPL", "145", 2009, 1, 1)},
	})

	assert.Equal(t, 1, len(j.Prices))
	assert.Equal(t, "$145.00", j.Prices[0].Amount.String())
}

func TestPostingsViewsWalkBackToTransaction(t *testing.T) {
	tr := txn(
		posting("expenses:food", "10", journal.RegularPosting),
		posting("assets:cash", "-10", journal.RegularPosting),
	)
	j := journal.Build("main.journal", nil, time.Now(), []journal.Update{
		journal.AddTransaction{Transaction: tr},
	})

	views := j.Postings()
	assert.Equal(t, 2, len(views))
	for _, v := range views {
		assert.Equal(t, tr, v.Transaction)
	}
}
