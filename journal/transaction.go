package journal

import "strings"

// Status is the cleared state of a transaction or posting.
type Status int

const (
	// StatusNone means no status marker was written.
	StatusNone Status = iota
	// StatusCleared is the * marker.
	StatusCleared
	// StatusPending is the ! marker.
	StatusPending
)

// String returns the status marker as written in a journal.
func (s Status) String() string {
	switch s {
	case StatusCleared:
		return "*"
	case StatusPending:
		return "!"
	default:
		return ""
	}
}

// PostingType distinguishes regular postings from virtual ones, determined by
// the bracket style written around the account name.
type PostingType int

const (
	// RegularPosting participates fully in balancing.
	RegularPosting PostingType = iota
	// VirtualPosting, written (account), is exempt from balancing.
	VirtualPosting
	// BalancedVirtualPosting, written [account], balances against the
	// other balanced-virtual postings of its transaction.
	BalancedVirtualPosting
)

// Posting is one account/amount line within a transaction. Postings are owned
// by their transaction; use Journal.Postings for posting-with-parent views.
type Posting struct {
	Status  Status
	Account string // Full colon-separated name, !account context applied
	Amount  MixedAmount
	Comment string
	Type    PostingType
}

// AccountAsWritten returns the account name with the bracket style that
// denoted the posting type restored.
func (p *Posting) AccountAsWritten() string {
	switch p.Type {
	case VirtualPosting:
		return "(" + p.Account + ")"
	case BalancedVirtualPosting:
		return "[" + p.Account + "]"
	default:
		return p.Account
	}
}

// Transaction is a dated journal entry with one or more postings.
// A transaction is only considered valid once Balance has accepted it.
type Transaction struct {
	Pos           Position
	Date          Date
	EffectiveDate *Date // Optional secondary date written after =
	Status        Status
	Code          string // Optional parenthesized code
	Description   string
	Comment       string
	Postings      []*Posting
}

// Accounts returns the distinct account names posted to, in posting order.
func (t *Transaction) Accounts() []string {
	seen := make(map[string]bool, len(t.Postings))
	var out []string
	for _, p := range t.Postings {
		if !seen[p.Account] {
			seen[p.Account] = true
			out = append(out, p.Account)
		}
	}
	return out
}

// String renders the transaction in normalized journal form.
func (t *Transaction) String() string {
	var b strings.Builder
	b.WriteString(t.Date.String())
	if t.EffectiveDate != nil {
		b.WriteByte('=')
		b.WriteString(t.EffectiveDate.String())
	}
	if marker := t.Status.String(); marker != "" {
		b.WriteByte(' ')
		b.WriteString(marker)
	}
	if t.Code != "" {
		b.WriteString(" (")
		b.WriteString(t.Code)
		b.WriteByte(')')
	}
	if t.Description != "" {
		b.WriteByte(' ')
		b.WriteString(t.Description)
	}
	if t.Comment != "" {
		b.WriteString("  ;")
		b.WriteString(t.Comment)
	}
	b.WriteByte('\n')

	for _, p := range t.Postings {
		b.WriteString("    ")
		if marker := p.Status.String(); marker != "" {
			b.WriteString(marker)
			b.WriteByte(' ')
		}
		account := p.AccountAsWritten()
		b.WriteString(account)
		if !p.Amount.IsMissing() {
			// Two or more spaces separate account from amount.
			pad := 38 - len(account) - 4
			if pad < 2 {
				pad = 2
			}
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(p.Amount.String())
		}
		if p.Comment != "" {
			b.WriteString("  ;")
			b.WriteString(p.Comment)
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// ModifierTransaction is an = entry: a value expression plus template
// postings, instantiated later against matching transactions. It is captured
// structurally and not balanced at parse time.
type ModifierTransaction struct {
	Pos       Position
	ValueExpr string
	Postings  []*Posting
}

// PeriodicTransaction is a ~ entry: a period expression plus template
// postings, instantiated later against a period schedule.
type PeriodicTransaction struct {
	Pos        Position
	PeriodExpr string
	Postings   []*Posting
}
