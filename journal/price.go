package journal

import "fmt"

// HistoricalPrice is a point-in-time exchange rate for a commodity, recorded
// by a P directive. Prices are order-independent; the journal keeps them as a
// set keyed by (commodity, date), last record winning.
type HistoricalPrice struct {
	Date   Date
	Symbol string
	Amount Amount
}

// String renders the price in directive form.
func (p HistoricalPrice) String() string {
	return fmt.Sprintf("P %s %s %s", p.Date, p.Symbol, p.Amount)
}

// Conversion is a C directive: a declared equivalence between two amounts of
// different commodities. Conversions are recorded but not applied to amount
// inference at this layer.
type Conversion struct {
	From Amount
	To   Amount
}

// String renders the conversion in directive form.
func (c Conversion) String() string {
	return fmt.Sprintf("C %s = %s", c.From, c.To)
}
