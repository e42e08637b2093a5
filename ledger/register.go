package ledger

import (
	"strings"

	"github.com/colindean/hledger/journal"
)

// RegisterRow is one posting in a register report together with the running
// total of all rows up to and including it.
type RegisterRow struct {
	Transaction *journal.Transaction
	Posting     *journal.Posting
	Total       journal.MixedAmount
}

// Register returns register rows in journal order for every posting whose
// account matches the filter. An empty filter matches everything; otherwise
// a posting matches when its account is the filter or sits beneath it.
func (l *Ledger) Register(filter string) []RegisterRow {
	var rows []RegisterRow
	var total journal.MixedAmount

	for _, view := range l.postings {
		if !accountMatches(view.Posting.Account, filter) {
			continue
		}
		total = total.Add(view.Posting.Amount)
		rows = append(rows, RegisterRow{
			Transaction: view.Transaction,
			Posting:     view.Posting,
			Total:       total,
		})
	}
	return rows
}

func accountMatches(account, filter string) bool {
	if filter == "" {
		return true
	}
	return account == filter || strings.HasPrefix(account, filter+":")
}
