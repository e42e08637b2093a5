package journal

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TimeLogCode identifies the kind of a time-log line.
type TimeLogCode byte

const (
	// TimeLogBalance is the b code.
	TimeLogBalance TimeLogCode = 'b'
	// TimeLogSetRequiredHours is the h code.
	TimeLogSetRequiredHours TimeLogCode = 'h'
	// TimeLogIn clocks in to a session.
	TimeLogIn TimeLogCode = 'i'
	// TimeLogOut clocks out of the current session.
	TimeLogOut TimeLogCode = 'o'
	// TimeLogFinalOut clocks out of all open sessions.
	TimeLogFinalOut TimeLogCode = 'O'
)

// TimeLogEntry is one line of the time-log dialect: a clock code, a
// timestamp, and a free-text comment naming the account being clocked.
type TimeLogEntry struct {
	Pos     Position
	Code    TimeLogCode
	Time    time.Time
	Comment string
}

// String renders the entry in time-log form.
func (e TimeLogEntry) String() string {
	s := fmt.Sprintf("%c %s", byte(e.Code), e.Time.Format("2006/01/02 15:04:05"))
	if e.Comment != "" {
		s += " " + e.Comment
	}
	return s
}

// hoursStyle is the display style of synthetic time transactions.
var hoursStyle = Style{Symbol: "h", Side: SideRight, Spaced: false, Precision: 2}

// timeLogTransactions converts clock entries into synthetic transactions.
// Each in/out pair becomes a one-posting transaction charging the clocked
// hours to the account named by the clock-in comment. A final clock-in with
// no matching clock-out is closed at the reference time now. Codes other
// than i/o/O record state for downstream tooling and produce no transaction.
func timeLogTransactions(entries []TimeLogEntry, now time.Time) []*Transaction {
	var txns []*Transaction
	var open *TimeLogEntry

	clockOut := func(at time.Time) {
		if open == nil {
			return
		}
		txns = append(txns, sessionTransaction(*open, at))
		open = nil
	}

	for i := range entries {
		e := entries[i]
		switch e.Code {
		case TimeLogIn:
			// A new clock-in implicitly closes the open session.
			clockOut(e.Time)
			open = &entries[i]
		case TimeLogOut, TimeLogFinalOut:
			clockOut(e.Time)
		}
	}

	// An unfinished final session is closed using the reference time.
	clockOut(now)

	return txns
}

// sessionTransaction builds the synthetic transaction for one clocked session.
// The posting is virtual so the transaction is exempt from balancing.
func sessionTransaction(in TimeLogEntry, out time.Time) *Transaction {
	account := in.Comment
	if account == "" {
		account = "unknown"
	}

	hours := decimal.NewFromFloat(out.Sub(in.Time).Hours()).Round(2)

	return &Transaction{
		Pos:         in.Pos,
		Date:        DateFromTime(in.Time),
		Status:      StatusCleared,
		Description: account,
		Postings: []*Posting{{
			Account: account,
			Amount:  Mixed(NewAmount(hours, hoursStyle)),
			Type:    VirtualPosting,
		}},
	}
}
