package parser

import (
	"strings"

	"github.com/colindean/hledger/journal"
)

// parseTransaction parses a dated entry and its postings:
//
//	DATE[=EFFECTIVEDATE] [*] [(CODE)] [DESCRIPTION][; COMMENT]
//	    [*] ACCOUNT  [AMOUNT][; COMMENT]
//	    ...
//
// The transaction is balanced eagerly before it is accepted, so a malformed
// file fails at the offending entry.
func (p *Parser) parseTransaction() (journal.Update, error) {
	pos := p.position()

	date, err := p.parseSmartDate(p.ctx.Year)
	if err != nil {
		return nil, err
	}

	txn := &journal.Transaction{Pos: pos, Date: date}

	if p.peek() == '=' {
		p.advance()
		// A partial effective date takes the transaction's own year.
		effective, err := p.parseSmartDate(date.Year)
		if err != nil {
			return nil, err
		}
		txn.EffectiveDate = &effective
	}

	p.skipInlineSpace()
	switch p.peek() {
	case '*':
		p.advance()
		txn.Status = journal.StatusCleared
		p.skipInlineSpace()
	case '!':
		p.advance()
		txn.Status = journal.StatusPending
		p.skipInlineSpace()
	}

	if p.peek() == '(' {
		code, err := p.parseCode()
		if err != nil {
			return nil, err
		}
		txn.Code = code
		p.skipInlineSpace()
	}

	txn.Description, txn.Comment = splitComment(p.restOfLine())

	postings, err := p.parsePostings()
	if err != nil {
		return nil, err
	}
	if len(postings) == 0 {
		return nil, &NoPostingsError{Pos: pos, Description: txn.Description}
	}
	txn.Postings = postings

	if err := journal.Balance(txn); err != nil {
		return nil, err
	}

	return journal.AddTransaction{Transaction: txn}, nil
}

// parseCode parses a parenthesized transaction code.
func (p *Parser) parseCode() (string, error) {
	pos := p.position()
	p.advance() // '('
	start := p.pos
	for {
		ch := p.peek()
		if ch == ')' {
			break
		}
		if ch == 0 || ch == '\n' || ch == '\r' {
			return "", &SyntaxError{Pos: pos, Expected: "closing ')' after transaction code"}
		}
		p.advance()
	}
	code := string(p.source[start:p.pos])
	p.advance() // ')'
	return code, nil
}

// splitComment separates a line remainder into description text and the
// comment following the first ';'. The comment is never part of the
// description.
func splitComment(rest string) (description, comment string) {
	if i := strings.IndexByte(rest, ';'); i >= 0 {
		return strings.TrimSpace(rest[:i]), strings.TrimSpace(rest[i+1:])
	}
	return strings.TrimSpace(rest), ""
}

// parsePostings parses the indented posting block following a transaction
// header. Comment-only lines are filtered out; a whitespace-only line ends
// the block.
func (p *Parser) parsePostings() ([]*journal.Posting, error) {
	var postings []*journal.Posting

	for !p.atEOF() {
		ch := p.peek()
		if ch != ' ' && ch != '\t' {
			break
		}

		m := p.mark()
		p.skipInlineSpace()

		if p.atEndOfLine() {
			// Blank line; not part of this transaction.
			p.resetTo(m)
			break
		}
		if p.peek() == ';' {
			p.restOfLine()
			continue
		}

		posting, err := p.parsePosting()
		if err != nil {
			return nil, err
		}
		postings = append(postings, posting)
	}

	return postings, nil
}

// parsePosting parses a single posting line; the leading indentation has
// already been consumed.
func (p *Parser) parsePosting() (*journal.Posting, error) {
	posting := &journal.Posting{Amount: journal.MissingAmount()}

	switch p.peek() {
	case '*':
		p.advance()
		posting.Status = journal.StatusCleared
		p.skipInlineSpace()
	case '!':
		p.advance()
		posting.Status = journal.StatusPending
		p.skipInlineSpace()
	}

	var closer byte
	switch p.peek() {
	case '(':
		posting.Type = journal.VirtualPosting
		closer = ')'
		p.advance()
	case '[':
		posting.Type = journal.BalancedVirtualPosting
		closer = ']'
		p.advance()
	}

	name, err := p.parseAccountName(closer)
	if err != nil {
		return nil, err
	}
	if closer != 0 {
		if p.peek() != closer {
			return nil, &SyntaxError{Pos: p.position(), Expected: "closing '" + string(closer) + "' after virtual account", Found: string(p.peek())}
		}
		p.advance()
	}
	posting.Account = p.shared.interner.Intern(p.ctx.accountPrefix() + name)

	count, sawTab := p.skipInlineSpace()
	if !p.atEndOfLine() && p.peek() != ';' {
		if count < 2 && !sawTab {
			return nil, &SyntaxError{Pos: p.position(), Expected: "two or more spaces between account and amount"}
		}
		amount, err := p.parseAmount(true)
		if err != nil {
			return nil, err
		}
		posting.Amount = journal.Mixed(amount)
		p.skipInlineSpace()
	}

	if p.peek() == ';' {
		_, posting.Comment = splitComment(p.restOfLine())
		return posting, nil
	}
	if !p.atEndOfLine() {
		return nil, &SyntaxError{Pos: p.position(), Expected: "end of line", Found: string(p.peek())}
	}
	p.restOfLine()

	return posting, nil
}

// parseModifier parses an = entry: a value expression and template postings,
// captured structurally and not balanced.
func (p *Parser) parseModifier() (journal.Update, error) {
	pos := p.position()
	p.advance() // '='
	p.skipInlineSpace()

	expr, _ := splitComment(p.restOfLine())

	postings, err := p.parsePostings()
	if err != nil {
		return nil, err
	}

	return journal.AddModifier{Transaction: &journal.ModifierTransaction{
		Pos:       pos,
		ValueExpr: expr,
		Postings:  postings,
	}}, nil
}

// parsePeriodic parses a ~ entry: a period expression and template postings.
func (p *Parser) parsePeriodic() (journal.Update, error) {
	pos := p.position()
	p.advance() // '~'
	p.skipInlineSpace()

	expr, _ := splitComment(p.restOfLine())

	postings, err := p.parsePostings()
	if err != nil {
		return nil, err
	}

	return journal.AddPeriodic{Transaction: &journal.PeriodicTransaction{
		Pos:        pos,
		PeriodExpr: expr,
		Postings:   postings,
	}}, nil
}
