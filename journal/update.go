package journal

import "time"

// Update is one deferred journal mutation produced by parsing a single line
// (or, for includes, a whole nested file). Updates are tagged operations
// applied by Build in document order, so the composed effect of a file and
// all its includes lands on one initially empty Journal.
type Update interface {
	applyTo(j *Journal)
}

// AddTransaction appends a balanced transaction.
type AddTransaction struct {
	Transaction *Transaction
}

func (u AddTransaction) applyTo(j *Journal) {
	j.Transactions = append(j.Transactions, u.Transaction)
}

// AddModifier appends a modifier (=) transaction template.
type AddModifier struct {
	Transaction *ModifierTransaction
}

func (u AddModifier) applyTo(j *Journal) {
	j.ModifierTxns = append(j.ModifierTxns, u.Transaction)
}

// AddPeriodic appends a periodic (~) transaction template.
type AddPeriodic struct {
	Transaction *PeriodicTransaction
}

func (u AddPeriodic) applyTo(j *Journal) {
	j.PeriodicTxns = append(j.PeriodicTxns, u.Transaction)
}

// AddPrice records a historical price from a P directive.
type AddPrice struct {
	Price HistoricalPrice
}

func (u AddPrice) applyTo(j *Journal) {
	j.addPrice(u.Price)
}

// AddIgnoredPriceSymbol records an N directive.
type AddIgnoredPriceSymbol struct {
	Symbol string
}

func (u AddIgnoredPriceSymbol) applyTo(j *Journal) {
	j.IgnoredPriceSymbols = append(j.IgnoredPriceSymbols, u.Symbol)
}

// AddConversion records a C directive.
type AddConversion struct {
	Conversion Conversion
}

func (u AddConversion) applyTo(j *Journal) {
	j.Conversions = append(j.Conversions, u.Conversion)
}

// SetDefaultStyle records the amount style of a D directive.
type SetDefaultStyle struct {
	Style Style
}

func (u SetDefaultStyle) applyTo(j *Journal) {
	style := u.Style
	j.DefaultStyle = &style
}

// AddTimeLogEntry records one line of the time-log dialect.
type AddTimeLogEntry struct {
	Entry TimeLogEntry
}

func (u AddTimeLogEntry) applyTo(j *Journal) {
	j.TimeLog = append(j.TimeLog, u.Entry)
}

// IncludeBlock splices the updates of an included file in at the position of
// its !include directive, recording the included path.
type IncludeBlock struct {
	Path    string
	Updates []Update
}

func (u IncludeBlock) applyTo(j *Journal) {
	j.Files = append(j.Files, u.Path)
	for _, inner := range u.Updates {
		inner.applyTo(j)
	}
}

// Build folds parsed updates in document order into a new Journal. The
// reference time now closes any unfinished final clock-in session when
// converting time-log entries into synthetic transactions.
func Build(path string, styles *Styles, now time.Time, updates []Update) *Journal {
	if styles == nil {
		styles = NewStyles()
	}

	j := &Journal{
		Files:  []string{path},
		Styles: styles,
	}

	for _, u := range updates {
		u.applyTo(j)
	}

	if sessions := timeLogTransactions(j.TimeLog, now); len(sessions) > 0 {
		j.Transactions = append(j.Transactions, sessions...)
		// Synthetic session amounts introduce the hours commodity; style
		// consumers see it like any parsed commodity.
		j.Styles.Record(hoursStyle)
	}

	return j
}
