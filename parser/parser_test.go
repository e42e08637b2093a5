package parser_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/colindean/hledger/journal"
	"github.com/colindean/hledger/parser"
)

func parse(t *testing.T, source string) *journal.Journal {
	t.Helper()
	j, err := parser.ParseString(context.Background(), source, "test.journal")
	assert.NoError(t, err)
	return j
}

func parseErr(t *testing.T, source string) error {
	t.Helper()
	_, err := parser.ParseString(context.Background(), source, "test.journal")
	assert.Error(t, err)
	return err
}

func TestParseTransaction(t *testing.T) {
	j := parse(t, `2009/10/29 * (1234) lunch at the corner deli  ; paid in cash
    expenses:food:dining            $10.00
    assets:cash
`)

	assert.Equal(t, 1, len(j.Transactions))
	tr := j.Transactions[0]
	assert.Equal(t, journal.Date{Year: 2009, Month: 10, Day: 29}, tr.Date)
	assert.Equal(t, journal.StatusCleared, tr.Status)
	assert.Equal(t, "1234", tr.Code)
	assert.Equal(t, "lunch at the corner deli", tr.Description)
	assert.Equal(t, "paid in cash", tr.Comment)

	assert.Equal(t, 2, len(tr.Postings))
	assert.Equal(t, "expenses:food:dining", tr.Postings[0].Account)
	assert.Equal(t, "$10.00", tr.Postings[0].Amount.String())
	assert.Equal(t, "$-10.00", tr.Postings[1].Amount.String())
}

func TestParseEffectiveDate(t *testing.T) {
	j := parse(t, `2009/10/29=11/1 payday
    assets:checking                 $1000
    income:salary
`)

	tr := j.Transactions[0]
	assert.NotZero(t, tr.EffectiveDate)
	// A partial effective date takes the transaction's own year.
	assert.Equal(t, journal.Date{Year: 2009, Month: 11, Day: 1}, *tr.EffectiveDate)
}

func TestParseAccountNamesWithInternalSpaces(t *testing.T) {
	j := parse(t, `2009/1/1 opening
    equity:opening balances         $-100
    assets:savings account
`)

	tr := j.Transactions[0]
	assert.Equal(t, "equity:opening balances", tr.Postings[0].Account)
	assert.Equal(t, "assets:savings account", tr.Postings[1].Account)
}

func TestParsePostingStatusAndComment(t *testing.T) {
	j := parse(t, `2009/1/1 groceries
    * expenses:food                 $42.00  ; weekly run
    assets:cash
`)

	p := j.Transactions[0].Postings[0]
	assert.Equal(t, journal.StatusCleared, p.Status)
	assert.Equal(t, "weekly run", p.Comment)
}

func TestParseVirtualPostings(t *testing.T) {
	j := parse(t, `2009/1/1 groceries
    expenses:food                   $10
    assets:cash                     $-10
    (budget:food)                   $99
    [budget:tracked]                $3
    [budget:offset]                 $-3
`)

	postings := j.Transactions[0].Postings
	assert.Equal(t, journal.VirtualPosting, postings[2].Type)
	assert.Equal(t, "budget:food", postings[2].Account)
	assert.Equal(t, journal.BalancedVirtualPosting, postings[3].Type)
	assert.Equal(t, "(budget:food)", postings[2].AccountAsWritten())
}

func TestParsePendingStatus(t *testing.T) {
	j := parse(t, `2009/10/29 ! phone bill
    * expenses:phone                $25.00
    ! liabilities:visa              $-25.00
`)

	tr := j.Transactions[0]
	assert.Equal(t, journal.StatusPending, tr.Status)
	assert.Equal(t, "phone bill", tr.Description)
	assert.Equal(t, journal.StatusCleared, tr.Postings[0].Status)
	assert.Equal(t, journal.StatusPending, tr.Postings[1].Status)
}

func TestParseAmountNotations(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected string
	}{
		{"left symbol", "$1.50", "$1.50"},
		{"left symbol spaced", "$ 1.50", "$ 1.50"},
		{"left symbol negative inside", "$-2.00", "$-2.00"},
		{"negative before symbol", "-$2.00", "$-2.00"},
		{"right symbol spaced", "1.50 EUR", "1.50 EUR"},
		{"right symbol unspaced", "1.50h", "1.50h"},
		{"no symbol", "42", "42"},
		{"thousands", "$4,500.00", "$4,500.00"},
		{"quoted symbol", `3 "DE 0002"`, `3 DE 0002`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := parse(t, "2009/1/1 x\n    a:b                             "+tt.amount+"\n    c:d\n")
			assert.Equal(t, tt.expected, j.Transactions[0].Postings[0].Amount.String())
		})
	}
}

func TestParseCommodityNamedAuto(t *testing.T) {
	// AUTO is an ordinary commodity name; a concrete amount in it must not
	// be confused with an elided amount.
	j := parse(t, `2020/01/01 broker
    assets:broker                   5 AUTO
    assets:cash                     -5 AUTO
`)

	tr := j.Transactions[0]
	assert.False(t, tr.Postings[0].Amount.IsMissing())
	assert.False(t, tr.Postings[1].Amount.IsMissing())
	assert.Equal(t, "5 AUTO", tr.Postings[0].Amount.String())
	assert.Equal(t, "-5 AUTO", tr.Postings[1].Amount.String())
}

func TestParseCommodityNamedAutoInference(t *testing.T) {
	j := parse(t, `2020/01/01 broker
    assets:broker                   5 AUTO
    assets:cash
`)

	inferred := j.Transactions[0].Postings[1].Amount
	assert.False(t, inferred.IsMissing())
	assert.Equal(t, "-5 AUTO", inferred.String())
}

func TestParseAmountWithPrice(t *testing.T) {
	j := parse(t, `2009/1/1 buy
    assets:brokerage                10 AAPL @ $150.25
    assets:brokerage:basis
`)

	p := j.Transactions[0].Postings[0]
	amount := p.Amount.Amounts[0]
	assert.NotZero(t, amount.Price)
	assert.False(t, amount.PriceIsTotal)
	assert.Equal(t, "10 AAPL @ $150.25", amount.String())

	// The price commodity does not join the balance; the elided posting
	// cancels the primary commodity, and the dropped price stays off the sum.
	inferred := j.Transactions[0].Postings[1].Amount
	assert.Equal(t, []string{"AAPL"}, inferred.Commodities())
	assert.Zero(t, inferred.Amounts[0].Price)
}

func TestParseTotalPrice(t *testing.T) {
	j := parse(t, `2009/1/1 buy
    assets:brokerage                10 AAPL @@ $1502.50
    assets:brokerage:basis
`)

	amount := j.Transactions[0].Postings[0].Amount.Amounts[0]
	assert.True(t, amount.PriceIsTotal)
	assert.Equal(t, "10 AAPL @@ $1502.50", amount.String())
}

func TestParseYearDirective(t *testing.T) {
	j := parse(t, `Y2009

1/15 partial date
    a:b                             $1
    c:d
`)

	assert.Equal(t, journal.Date{Year: 2009, Month: 1, Day: 15}, j.Transactions[0].Date)
}

func TestParsePartialDateWithoutYearFails(t *testing.T) {
	err := parseErr(t, "1/15 no year\n    a:b  $1\n    c:d\n")
	var noYear *parser.NoDefaultYearError
	assert.True(t, errors.As(err, &noYear))
}

func TestParseInvalidYearDirective(t *testing.T) {
	err := parseErr(t, "Y999\n")
	var invalid *parser.InvalidYearError
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, 999, invalid.Year)
}

func TestParseInvalidCalendarDate(t *testing.T) {
	err := parseErr(t, "2009/2/30 impossible\n    a:b  $1\n    c:d\n")
	var syntax *parser.SyntaxError
	assert.True(t, errors.As(err, &syntax))
	assert.Contains(t, err.Error(), "valid calendar date")
}

func TestParseNoPostings(t *testing.T) {
	err := parseErr(t, "2009/1/1\n")
	var noPostings *parser.NoPostingsError
	assert.True(t, errors.As(err, &noPostings))
}

func TestParseCommentOnlyPostingLinesFiltered(t *testing.T) {
	err := parseErr(t, `2009/1/1 only comments
    ; this is not a posting
`)
	var noPostings *parser.NoPostingsError
	assert.True(t, errors.As(err, &noPostings))
}

func TestParseUnbalancedTransaction(t *testing.T) {
	err := parseErr(t, `2009/1/1 off by one
    expenses:食費                   $10
    assets:cash                     $-9
`)
	var unbalanced *journal.UnbalancedTransactionError
	assert.True(t, errors.As(err, &unbalanced))
}

func TestParseIndentedStrayLine(t *testing.T) {
	err := parseErr(t, "    orphan posting  $1\n")
	var syntax *parser.SyntaxError
	assert.True(t, errors.As(err, &syntax))
	assert.Contains(t, err.Error(), "indented line")
}

func TestParseSingleSpaceJoinsAccountName(t *testing.T) {
	// A single space is part of the account name, so "$1" here is not an
	// amount at all.
	j := parse(t, "2009/1/1 x\n    a:b $1\n    c:d                             $0\n")

	p := j.Transactions[0].Postings[0]
	assert.Equal(t, "a:b $1", p.Account)
	assert.True(t, p.Amount.IsZero())
}

func TestParseSingleSpaceBeforeAmountFails(t *testing.T) {
	err := parseErr(t, "2009/1/1 x\n    (a:b) $1\n    c:d\n")
	var syntax *parser.SyntaxError
	assert.True(t, errors.As(err, &syntax))
	assert.Contains(t, err.Error(), "two or more spaces")
}

func TestParseTabSeparatesAmount(t *testing.T) {
	j := parse(t, "2009/1/1 x\n    a:b\t$1\n    c:d\n")
	assert.Equal(t, "$1", j.Transactions[0].Postings[0].Amount.String())
}

func TestParseIllFormedAccountName(t *testing.T) {
	err := parseErr(t, "2009/1/1 x\n    a::b  $1\n    c:d\n")
	var illFormed *parser.IllFormedAccountNameError
	assert.True(t, errors.As(err, &illFormed))
	assert.Equal(t, "a::b", illFormed.Name)
}

func TestParseAccountBlocks(t *testing.T) {
	j := parse(t, `!account home
2009/1/1 groceries
    expenses:food                   $10
    assets:cash
!end
2009/1/2 outside
    expenses:other                  $5
    assets:cash
`)

	assert.Equal(t, "home:expenses:food", j.Transactions[0].Postings[0].Account)
	assert.Equal(t, "home:assets:cash", j.Transactions[0].Postings[1].Account)
	assert.Equal(t, "expenses:other", j.Transactions[1].Postings[0].Account)
}

func TestParseNestedAccountBlocks(t *testing.T) {
	j := parse(t, `!account home
!account kitchen
2009/1/1 pots
    expenses:gear                   $10
    assets:cash
!end
!end
`)

	assert.Equal(t, "home:kitchen:expenses:gear", j.Transactions[0].Postings[0].Account)
}

func TestParseUnbalancedEndDirective(t *testing.T) {
	err := parseErr(t, "!end\n")
	var unbalanced *parser.UnbalancedAccountBlockError
	assert.True(t, errors.As(err, &unbalanced))
}

func TestParsePriceDirective(t *testing.T) {
	j := parse(t, "P 2009/1/1 AAPL $150.25\n")

	assert.Equal(t, 1, len(j.Prices))
	p := j.Prices[0]
	assert.Equal(t, "AAPL", p.Symbol)
	assert.Equal(t, journal.Date{Year: 2009, Month: 1, Day: 1}, p.Date)
	assert.Equal(t, "$150.25", p.Amount.String())
}

func TestParseIgnoredPriceDirective(t *testing.T) {
	j := parse(t, "N GBP\n")
	assert.Equal(t, []string{"GBP"}, j.IgnoredPriceSymbols)
}

func TestParseDefaultCommodityDirective(t *testing.T) {
	j := parse(t, "D $1,000.00\n")

	assert.NotZero(t, j.DefaultStyle)
	assert.Equal(t, "$", j.DefaultStyle.Symbol)
	assert.Equal(t, 2, j.DefaultStyle.Precision)
	assert.True(t, j.DefaultStyle.Thousands)
}

func TestParseConversionDirective(t *testing.T) {
	j := parse(t, "C 1.00 Kb = 1024 bytes\n")

	assert.Equal(t, 1, len(j.Conversions))
	assert.Equal(t, "C 1.00 Kb = 1024 bytes", j.Conversions[0].String())
}

func TestParseStyleLastSeenWins(t *testing.T) {
	j := parse(t, `D $1,000.00
2009/1/1 x
    a:b                             $5.5
    c:d
`)

	style, ok := j.Styles.Get("$")
	assert.True(t, ok)
	assert.Equal(t, 1, style.Precision)
	assert.False(t, style.Thousands)
}

func TestParseModifierAndPeriodicEntries(t *testing.T) {
	j := parse(t, `= /food/
    (budget:food)                   $-1

~ monthly
    expenses:rent                   $700
    assets:checking
`)

	assert.Equal(t, 1, len(j.ModifierTxns))
	assert.Equal(t, "/food/", j.ModifierTxns[0].ValueExpr)
	assert.Equal(t, 1, len(j.PeriodicTxns))
	assert.Equal(t, "monthly", j.PeriodicTxns[0].PeriodExpr)
	assert.Equal(t, 2, len(j.PeriodicTxns[0].Postings))
}

func TestParseIgnoresReservedWords(t *testing.T) {
	j := parse(t, `tag project
end tag
; just a comment
`)
	assert.Zero(t, j.Transactions)
}

func TestParseMalformedNumber(t *testing.T) {
	err := parseErr(t, "2009/1/1 x\n    a:b  $.\n    c:d\n")
	var malformed *parser.MalformedNumberError
	assert.True(t, errors.As(err, &malformed))
}

func TestParseErrorPositions(t *testing.T) {
	err := parseErr(t, "; fine\n2009/2/30 bad date\n    a:b  $1\n    c:d\n")

	var positioned parser.PositionedError
	assert.True(t, errors.As(err, &positioned))
	pos := positioned.GetPosition()
	assert.Equal(t, "test.journal", pos.Filename)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 1, pos.Column)
}

func TestParseCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := parser.ParseString(ctx, "2009/1/1 x\n    a:b  $1\n    c:d\n", "test.journal")
	assert.IsError(t, err, context.Canceled)
}
