package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/colindean/hledger/journal"
)

// Low-level token parsers shared by the directive and transaction parsers.

const accountSeparator = ":"

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// ParseQuantity parses the text of a signed decimal quantity: an optional
// leading minus, digit groups optionally comma-separated before the decimal
// point, and digits after it. Either the integer or the fractional part may
// be empty, but not both. It returns the exact value, the number of digits
// right of the point, and whether a thousands separator was used.
func ParseQuantity(text string) (value decimal.Decimal, precision int, thousands bool, err error) {
	s := text
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var intPart strings.Builder
	i := 0
	for i < len(s) && (isDigit(s[i]) || s[i] == ',') {
		if s[i] == ',' {
			thousands = true
		} else {
			intPart.WriteByte(s[i])
		}
		i++
	}

	frac := ""
	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		frac = s[start:i]
	}

	if i != len(s) || (intPart.Len() == 0 && frac == "") {
		return decimal.Decimal{}, 0, false, fmt.Errorf("malformed number: %q", text)
	}

	num := intPart.String()
	if num == "" {
		num = "0"
	}
	if frac != "" {
		num += "." + frac
	}
	if neg {
		num = "-" + num
	}

	value, derr := decimal.NewFromString(num)
	if derr != nil {
		return decimal.Decimal{}, 0, false, fmt.Errorf("malformed number: %q", text)
	}

	return value, len(frac), thousands, nil
}

// parseQuantity scans a quantity at the current position.
func (p *Parser) parseQuantity() (decimal.Decimal, int, bool, error) {
	pos := p.position()
	text := p.scanQuantityText()
	value, precision, thousands, err := ParseQuantity(text)
	if err != nil {
		return decimal.Decimal{}, 0, false, &MalformedNumberError{Pos: pos, Text: text}
	}
	return value, precision, thousands, nil
}

// scanQuantityText collects the characters that may form a quantity.
// Thousands separators are only taken before the decimal point.
func (p *Parser) scanQuantityText() string {
	var b strings.Builder
	if p.peek() == '-' {
		b.WriteByte(p.advance())
	}
	seenPoint := false
	for {
		ch := p.peek()
		switch {
		case isDigit(ch):
			b.WriteByte(p.advance())
		case ch == ',' && !seenPoint:
			b.WriteByte(p.advance())
		case ch == '.' && !seenPoint:
			seenPoint = true
			b.WriteByte(p.advance())
		default:
			return b.String()
		}
	}
}

// parseSmartDate parses a full Y/M/D date or a partial M/D date completed
// with the default year in effect.
func (p *Parser) parseSmartDate(defaultYear int) (journal.Date, error) {
	pos := p.position()

	first, err := p.scanDigits("date")
	if err != nil {
		return journal.Date{}, err
	}
	if p.peek() != '/' {
		return journal.Date{}, &SyntaxError{Pos: p.position(), Expected: "'/' in date", Found: string(p.peek())}
	}
	p.advance()
	second, err := p.scanDigits("date")
	if err != nil {
		return journal.Date{}, err
	}

	var year, month, day int
	if p.peek() == '/' {
		p.advance()
		third, err := p.scanDigits("date")
		if err != nil {
			return journal.Date{}, err
		}
		year, month, day = first, second, third
	} else {
		if defaultYear == 0 {
			return journal.Date{}, &NoDefaultYearError{Pos: pos}
		}
		year, month, day = defaultYear, first, second
	}

	date, derr := journal.NewDate(year, month, day)
	if derr != nil {
		return journal.Date{}, &SyntaxError{
			Pos:      pos,
			Expected: "valid calendar date",
			Found:    fmt.Sprintf("%d/%d/%d", year, month, day),
		}
	}
	return date, nil
}

func (p *Parser) scanDigits(expected string) (int, error) {
	start := p.pos
	for isDigit(p.peek()) {
		p.advance()
	}
	if p.pos == start {
		return 0, &SyntaxError{Pos: p.position(), Expected: expected, Found: string(p.peek())}
	}
	n, err := strconv.Atoi(string(p.source[start:p.pos]))
	if err != nil {
		return 0, &SyntaxError{Pos: p.position(), Expected: expected, Found: string(p.source[start:p.pos])}
	}
	return n, nil
}

// parseAccountName parses a colon-separated account name. Components may
// contain single internal spaces; two or more consecutive spaces, a tab, a
// comment or end of line terminate the name. The parsed components must
// re-serialize to the original text, which rejects empty components such as
// "a::b" and leading or trailing separators. stop, when non-zero, is an
// additional terminator (the closing bracket of a virtual posting).
func (p *Parser) parseAccountName(stop byte) (string, error) {
	pos := p.position()
	text := p.scanAccountText(stop)
	if text == "" {
		return "", &SyntaxError{Pos: pos, Expected: "account name", Found: string(p.peek())}
	}

	components := strings.Split(text, accountSeparator)
	for _, component := range components {
		if component == "" {
			return "", &IllFormedAccountNameError{Pos: pos, Name: text}
		}
	}
	if strings.Join(components, accountSeparator) != text {
		return "", &IllFormedAccountNameError{Pos: pos, Name: text}
	}

	return p.shared.interner.Intern(text), nil
}

func (p *Parser) scanAccountText(stop byte) string {
	var b strings.Builder
	for !p.atEOF() {
		ch := p.peek()
		if ch == '\n' || ch == '\r' || ch == '\t' || ch == ';' {
			break
		}
		if stop != 0 && ch == stop {
			break
		}
		if ch == ' ' {
			// A single internal space belongs to the name; a second
			// space (or anything that ends the field) is a separator.
			next := p.peekAt(1)
			if next == ' ' || next == '\t' || next == '\n' || next == '\r' || next == ';' || next == 0 {
				break
			}
			if stop != 0 && next == stop {
				break
			}
		}
		b.WriteByte(p.advance())
	}
	return b.String()
}

// parseCommoditySymbol parses either a quoted symbol ("DE 0002 635 307") or
// an unquoted run of characters excluding digits, '-', '.', '@', ';',
// whitespace and newlines.
func (p *Parser) parseCommoditySymbol() (string, error) {
	pos := p.position()

	if p.peek() == '"' {
		p.advance()
		start := p.pos
		for {
			ch := p.peek()
			if ch == '"' {
				break
			}
			if ch == 0 || ch == '\n' || ch == '\r' {
				return "", &SyntaxError{Pos: pos, Expected: "closing '\"' in commodity symbol"}
			}
			p.advance()
		}
		symbol := string(p.source[start:p.pos])
		p.advance() // closing quote
		return p.shared.interner.Intern(symbol), nil
	}

	start := p.pos
	for isSymbolChar(p.peek()) {
		p.advance()
	}
	if p.pos == start {
		return "", &SyntaxError{Pos: pos, Expected: "commodity symbol", Found: string(p.peek())}
	}
	return p.shared.interner.Intern(string(p.source[start:p.pos])), nil
}

func isSymbolChar(ch byte) bool {
	switch {
	case ch == 0, isDigit(ch):
		return false
	case ch == '-', ch == '.', ch == '@', ch == ';', ch == '"':
		return false
	case ch == ' ', ch == '\t', ch == '\n', ch == '\r':
		return false
	default:
		return true
	}
}

func (p *Parser) atSymbolStart() bool {
	ch := p.peek()
	return ch == '"' || isSymbolChar(ch)
}

// parseAmount parses one amount in any of the three commodity notations:
// left symbol ($1.50, $ 1.50, -$2, $-2), right symbol (1.50 EUR) or no
// symbol (1.50). The observed style is recorded in the context's registry,
// last seen winning. allowPrice permits a trailing @ unit or @@ total price;
// a price amount never nests a further price.
func (p *Parser) parseAmount(allowPrice bool) (journal.Amount, error) {
	negate := false
	if p.peek() == '-' && !isDigit(p.peekAt(1)) && p.peekAt(1) != '.' {
		p.advance()
		p.skipInlineSpace()
		negate = true
	}

	var style journal.Style
	var quantity decimal.Decimal

	if isDigit(p.peek()) || p.peek() == '-' || p.peek() == '.' {
		value, precision, thousands, err := p.parseQuantity()
		if err != nil {
			return journal.Amount{}, err
		}
		quantity = value
		style = journal.Style{Precision: precision, Thousands: thousands}

		// Optional symbol to the right, possibly space-separated.
		m := p.mark()
		spaced := false
		if p.peek() == ' ' {
			p.advance()
			spaced = true
		}
		if p.atSymbolStart() {
			symbol, err := p.parseCommoditySymbol()
			if err != nil {
				return journal.Amount{}, err
			}
			style.Symbol = symbol
			style.Side = journal.SideRight
			style.Spaced = spaced
		} else {
			p.resetTo(m)
		}
	} else {
		symbol, err := p.parseCommoditySymbol()
		if err != nil {
			return journal.Amount{}, err
		}
		style = journal.Style{Symbol: symbol, Side: journal.SideLeft}
		if p.peek() == ' ' {
			p.advance()
			style.Spaced = true
		}
		if p.peek() == '-' && !negate {
			p.advance()
			negate = true
		}
		value, precision, thousands, err := p.parseQuantity()
		if err != nil {
			return journal.Amount{}, err
		}
		quantity = value
		style.Precision = precision
		style.Thousands = thousands
	}

	if negate {
		quantity = quantity.Neg()
	}

	p.ctx.Styles.Record(style)
	amount := journal.NewAmount(quantity, style)

	if allowPrice {
		m := p.mark()
		p.skipInlineSpace()
		if p.peek() == '@' {
			p.advance()
			total := false
			if p.peek() == '@' {
				p.advance()
				total = true
			}
			p.skipInlineSpace()
			price, err := p.parseAmount(false)
			if err != nil {
				return journal.Amount{}, err
			}
			amount.Price = &price
			amount.PriceIsTotal = total
		} else {
			p.resetTo(m)
		}
	}

	return amount, nil
}
