package journal

import (
	"fmt"
	"strings"
)

// UnbalancedTransactionError is returned when a transaction with no elided
// amount does not sum to zero. Residual carries the non-zero per-commodity
// quantities.
type UnbalancedTransactionError struct {
	Pos         Position
	Transaction *Transaction
	Residual    MixedAmount
}

func (e *UnbalancedTransactionError) Error() string {
	residual := e.Residual.NonZero()
	parts := make([]string, len(residual))
	for i, a := range residual {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s: transaction %q does not balance: off by %s",
		e.Pos, e.Transaction.Description, strings.Join(parts, ", "))
}

// GetPosition returns the position of the offending transaction.
func (e *UnbalancedTransactionError) GetPosition() Position {
	return e.Pos
}

// AmbiguousInferenceError is returned when a single elided amount cannot be
// inferred: either more than one posting elides its amount, or the concrete
// sum spans multiple commodities so no single amount can cancel it.
type AmbiguousInferenceError struct {
	Pos         Position
	Transaction *Transaction
	Commodities []string // Commodities of the residual, when that is the cause
	Reason      string
}

func (e *AmbiguousInferenceError) Error() string {
	msg := e.Reason
	if len(e.Commodities) > 0 {
		msg = fmt.Sprintf("%s (%s)", msg, strings.Join(e.Commodities, ", "))
	}
	return fmt.Sprintf("%s: transaction %q: %s", e.Pos, e.Transaction.Description, msg)
}

// GetPosition returns the position of the offending transaction.
func (e *AmbiguousInferenceError) GetPosition() Position {
	return e.Pos
}

// Balance validates a parsed transaction, inferring at most one elided
// amount. Regular postings form one balancing group and balanced-virtual
// postings a second; each group's mixed amounts must sum to zero. Virtual
// (parenthesized) postings are exempt. An elided amount is completed with
// the additive inverse of its group's concrete sum, which must be expressed
// in a single commodity.
//
// Balance runs eagerly as each transaction is parsed, never deferred, so a
// malformed file fails at the offending entry.
func Balance(t *Transaction) error {
	// At most one elided amount per transaction, counted across every
	// posting, not per balancing group.
	elided := 0
	for _, p := range t.Postings {
		if p.Amount.IsMissing() {
			elided++
		}
	}
	if elided > 1 {
		return &AmbiguousInferenceError{
			Pos:         t.Pos,
			Transaction: t,
			Reason:      "more than one posting with no amount",
		}
	}

	if err := balanceGroup(t, RegularPosting); err != nil {
		return err
	}
	return balanceGroup(t, BalancedVirtualPosting)
}

func balanceGroup(t *Transaction, typ PostingType) error {
	var sum MixedAmount
	var missing *Posting

	for _, p := range t.Postings {
		if p.Type != typ {
			continue
		}
		if p.Amount.IsMissing() {
			missing = p
			continue
		}
		sum = sum.Add(p.Amount)
	}

	if missing != nil {
		residual := sum.NonZero()
		if len(residual) > 1 {
			return &AmbiguousInferenceError{
				Pos:         t.Pos,
				Transaction: t,
				Commodities: Mixed(residual...).Commodities(),
				Reason:      "cannot infer an amount to balance multiple commodities",
			}
		}
		if len(residual) == 1 {
			missing.Amount = Mixed(residual[0].Negate())
		} else {
			// Nothing to cancel; the elided amount is zero.
			missing.Amount = MixedAmount{}
		}
		return nil
	}

	if !sum.IsZero() {
		return &UnbalancedTransactionError{
			Pos:         t.Pos,
			Transaction: t,
			Residual:    sum,
		}
	}

	return nil
}
