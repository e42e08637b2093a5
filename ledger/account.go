package ledger

import "github.com/colindean/hledger/journal"

// Account is one node of the account tree. Balance sums only the postings
// written directly against this account; Total adds the balances of every
// account beneath it.
type Account struct {
	Name     string // full colon-separated name, "" for the root
	Leaf     string // last name segment
	Parent   *Account
	Children []*Account
	Postings []journal.PostingView
	Balance  journal.MixedAmount

	total journal.MixedAmount
}

// child returns the direct child with the given leaf segment, or nil.
func (a *Account) child(leaf string) *Account {
	for _, c := range a.Children {
		if c.Leaf == leaf {
			return c
		}
	}
	return nil
}

// Total returns the subtree total: this account's own balance plus the
// totals of all its descendants.
func (a *Account) Total() journal.MixedAmount {
	return a.total
}

// Depth returns the number of segments in the account name. The root has
// depth zero.
func (a *Account) Depth() int {
	if a.Parent == nil {
		return 0
	}
	return a.Parent.Depth() + 1
}

// rollUp computes subtree totals bottom-up.
func (a *Account) rollUp() journal.MixedAmount {
	a.total = a.Balance
	for _, c := range a.Children {
		a.total = a.total.Add(c.rollUp())
	}
	return a.total
}
