// Package ledger aggregates a parsed journal into an account tree. Each
// account carries the postings written against it, its own balance, and the
// rolled-up total of its subtree, so reports can walk either the flat sorted
// name list or the tree.
//
// Example usage:
//
//	j, err := loader.Load(ctx, "main.journal")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	l := ledger.New(j)
//	for _, name := range l.Accounts() {
//	    fmt.Println(name, l.Account(name).Total())
//	}
package ledger

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/colindean/hledger/journal"
)

// Ledger holds the account tree built from one journal.
type Ledger struct {
	root     *Account
	byName   map[string]*Account
	names    []string
	postings []journal.PostingView
}

// New builds the account tree from every posting in the journal, creating
// intermediate accounts for each colon-separated prefix. Posting order is
// preserved per account and for the ledger as a whole.
func New(j *journal.Journal) *Ledger {
	l := &Ledger{
		root:   &Account{},
		byName: make(map[string]*Account),
	}

	for _, view := range j.Postings() {
		account := l.ensure(view.Posting.Account)
		account.Postings = append(account.Postings, view)
		account.Balance = account.Balance.Add(view.Posting.Amount)
		l.postings = append(l.postings, view)
	}

	l.root.rollUp()

	l.names = make([]string, 0, len(l.byName))
	for name := range l.byName {
		l.names = append(l.names, name)
	}
	slices.Sort(l.names)

	return l
}

// ensure returns the account with the given full name, creating it and any
// missing ancestors.
func (l *Ledger) ensure(name string) *Account {
	if account, ok := l.byName[name]; ok {
		return account
	}

	node := l.root
	full := ""
	for _, part := range strings.Split(name, ":") {
		if full == "" {
			full = part
		} else {
			full += ":" + part
		}

		child := node.child(part)
		if child == nil {
			child = &Account{Name: full, Leaf: part, Parent: node}
			node.Children = append(node.Children, child)
			l.byName[full] = child
		}
		node = child
	}
	return node
}

// Root returns the synthetic top-level account whose children are the
// first-segment accounts. The root carries no postings of its own.
func (l *Ledger) Root() *Account {
	return l.root
}

// Account returns the account with the given full name, or nil.
func (l *Ledger) Account(name string) *Account {
	return l.byName[name]
}

// Accounts returns all full account names in sorted order, including
// intermediate accounts that only exist as prefixes of posted accounts.
func (l *Ledger) Accounts() []string {
	return l.names
}
