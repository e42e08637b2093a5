// Package journal defines the data model for plain-text accounting files:
// dates, commodity styles, exact-decimal amounts, postings, transactions,
// historical prices and time-log entries, plus the balancing step that
// validates or completes each transaction and the assembler that folds
// parsed items into an immutable Journal.
//
// All monetary quantities use decimal arithmetic; display styles (symbol
// placement, precision, separators) are carried separately from values and
// inferred per commodity with last-seen-wins semantics.
package journal

// Journal is the complete parsed accounting record: transactions, modifier
// and periodic templates, historical prices, time-log entries and the chain
// of file paths they came from. A Journal is assembled once by Build and is
// immutable afterwards; downstream consumers share it read-only, and edits
// are expressed as "parse a new Journal and replace".
type Journal struct {
	// Files lists the originating file followed by every included file,
	// in document order.
	Files []string

	Transactions []*Transaction
	ModifierTxns []*ModifierTransaction
	PeriodicTxns []*PeriodicTransaction
	TimeLog      []TimeLogEntry

	// Prices is keyed by (commodity, date); a later record for the same
	// key replaces the earlier one.
	Prices []HistoricalPrice

	// IgnoredPriceSymbols records N directives for downstream tooling.
	IgnoredPriceSymbols []string

	// Conversions records C directives; they are parsed but inert here.
	Conversions []Conversion

	// DefaultStyle records the latest D directive's amount style, if any.
	DefaultStyle *Style

	// Styles is the canonical per-commodity display style registry,
	// merged across the whole file in document order.
	Styles *Styles
}

// PostingView pairs a posting with its owning transaction. Transactions own
// their postings outright; views are how reporting code walks back from a
// posting to its parent without a cyclic object graph.
type PostingView struct {
	Transaction *Transaction
	Posting     *Posting
}

// Postings returns a view of every posting in the journal, in document order.
func (j *Journal) Postings() []PostingView {
	var out []PostingView
	for _, t := range j.Transactions {
		for _, p := range t.Postings {
			out = append(out, PostingView{Transaction: t, Posting: p})
		}
	}
	return out
}

// Price returns the most recent historical price for a symbol on or before
// the given date.
func (j *Journal) Price(symbol string, on Date) (HistoricalPrice, bool) {
	var best HistoricalPrice
	found := false
	for _, p := range j.Prices {
		if p.Symbol != symbol || p.Date.After(on) {
			continue
		}
		if !found || best.Date.Before(p.Date) {
			best = p
			found = true
		}
	}
	return best, found
}

// addPrice inserts a price record, replacing any record with the same
// (commodity, date) key.
func (j *Journal) addPrice(p HistoricalPrice) {
	for i := range j.Prices {
		if j.Prices[i].Symbol == p.Symbol && j.Prices[i].Date.Compare(p.Date) == 0 {
			j.Prices[i] = p
			return
		}
	}
	j.Prices = append(j.Prices, p)
}
