package parser

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/colindean/hledger/journal"
)

// Directive parsers. Each consumes one line (or, for !include, one line plus
// a whole nested file) and yields a deferred journal update; directives that
// only mutate parse context yield none.

// parseYearDirective parses: Y YEAR. The year becomes the default for
// partial dates until the next Y directive.
func (p *Parser) parseYearDirective() error {
	pos := p.position()
	p.advance() // 'Y'
	p.skipInlineSpace()

	year, err := p.scanDigits("year")
	if err != nil {
		return err
	}
	if year < 1000 {
		return &InvalidYearError{Pos: pos, Year: year}
	}
	if err := p.endDirectiveLine(); err != nil {
		return err
	}

	p.ctx.Year = year
	return nil
}

// parsePriceDirective parses: P DATE SYMBOL AMOUNT.
func (p *Parser) parsePriceDirective() (journal.Update, error) {
	p.advance() // 'P'
	p.skipInlineSpace()

	date, err := p.parseSmartDate(p.ctx.Year)
	if err != nil {
		return nil, err
	}
	p.skipInlineSpace()

	symbol, err := p.parseCommoditySymbol()
	if err != nil {
		return nil, err
	}
	p.skipInlineSpace()

	amount, err := p.parseAmount(false)
	if err != nil {
		return nil, err
	}
	if err := p.endDirectiveLine(); err != nil {
		return nil, err
	}

	return journal.AddPrice{Price: journal.HistoricalPrice{
		Date:   date,
		Symbol: symbol,
		Amount: amount,
	}}, nil
}

// parseIgnoredPriceDirective parses: N SYMBOL. The commodity is recorded so
// downstream tooling can skip price fetching for it.
func (p *Parser) parseIgnoredPriceDirective() (journal.Update, error) {
	p.advance() // 'N'
	p.skipInlineSpace()

	symbol, err := p.parseCommoditySymbol()
	if err != nil {
		return nil, err
	}
	if err := p.endDirectiveLine(); err != nil {
		return nil, err
	}

	return journal.AddIgnoredPriceSymbol{Symbol: symbol}, nil
}

// parseDefaultCommodityDirective parses: D AMOUNT. The amount's style is
// captured (and feeds the style registry like any literal); the default
// commodity itself is recorded but unused, mirroring the reference grammar.
func (p *Parser) parseDefaultCommodityDirective() (journal.Update, error) {
	p.advance() // 'D'
	p.skipInlineSpace()

	amount, err := p.parseAmount(false)
	if err != nil {
		return nil, err
	}
	if err := p.endDirectiveLine(); err != nil {
		return nil, err
	}

	p.ctx.DefaultCommoditySymbol = amount.Style.Symbol
	return journal.SetDefaultStyle{Style: amount.Style}, nil
}

// parseConversionDirective parses: C AMOUNT1 = AMOUNT2. Conversion rates are
// recorded but not applied to amount inference at this layer.
func (p *Parser) parseConversionDirective() (journal.Update, error) {
	p.advance() // 'C'
	p.skipInlineSpace()

	from, err := p.parseAmount(false)
	if err != nil {
		return nil, err
	}
	p.skipInlineSpace()
	if p.peek() != '=' {
		return nil, &SyntaxError{Pos: p.position(), Expected: "'=' in conversion", Found: string(p.peek())}
	}
	p.advance()
	p.skipInlineSpace()

	to, err := p.parseAmount(false)
	if err != nil {
		return nil, err
	}
	if err := p.endDirectiveLine(); err != nil {
		return nil, err
	}

	return journal.AddConversion{Conversion: journal.Conversion{From: from, To: to}}, nil
}

// parseBangDirective dispatches !include, !account and !end.
func (p *Parser) parseBangDirective(ctx context.Context) (journal.Update, error) {
	pos := p.position()
	p.advance() // '!'

	start := p.pos
	for {
		ch := p.peek()
		if ch < 'a' || ch > 'z' {
			break
		}
		p.advance()
	}
	word := string(p.source[start:p.pos])

	switch word {
	case "include":
		return p.parseInclude(ctx, pos)

	case "account":
		p.skipInlineSpace()
		name, err := p.parseAccountName(0)
		if err != nil {
			return nil, err
		}
		if err := p.endDirectiveLine(); err != nil {
			return nil, err
		}
		p.ctx.pushAccount(name)
		return nil, nil

	case "end":
		if err := p.endDirectiveLine(); err != nil {
			return nil, err
		}
		if !p.ctx.popAccount() {
			return nil, &UnbalancedAccountBlockError{Pos: pos}
		}
		return nil, nil

	default:
		return nil, &SyntaxError{Pos: pos, Expected: "!include, !account or !end", Found: "!" + word}
	}
}

// parseInclude reads and parses the named file inline, splicing its updates
// into the including file's sequence. The included file starts from a
// snapshot of the current context, so its context mutations do not leak
// back; the style registry is shared. Already-visited files are skipped,
// which makes include cycles safe.
func (p *Parser) parseInclude(ctx context.Context, pos journal.Position) (journal.Update, error) {
	p.skipInlineSpace()
	path := strings.TrimSpace(p.restOfLine())
	if path == "" {
		return nil, &SyntaxError{Pos: pos, Expected: "file path after !include"}
	}

	resolved, err := p.resolveIncludePath(path)
	if err != nil {
		return nil, &IncludeReadError{Pos: pos, Path: path, Err: err}
	}

	abs, err := filepath.Abs(resolved)
	if err != nil {
		abs = resolved
	}
	if p.shared.visited[abs] {
		// Already spliced in; including it again would double its entries.
		return nil, nil
	}
	p.shared.visited[abs] = true

	data, err := p.shared.cfg.reader.ReadFile(resolved)
	if err != nil {
		return nil, &IncludeReadError{Pos: pos, Path: path, Err: err}
	}

	nested := newParser(p.shared, data, resolved, p.ctx.snapshot())
	updates, err := nested.parseItems(ctx)
	if err != nil {
		return nil, &IncludeParseError{Pos: pos, Path: path, Err: err}
	}

	return journal.IncludeBlock{Path: resolved, Updates: updates}, nil
}

// resolveIncludePath expands ~/ against the injected home directory and
// resolves relative paths against the including file's directory.
func (p *Parser) resolveIncludePath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := p.shared.cfg.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	if !filepath.IsAbs(path) {
		return filepath.Join(filepath.Dir(p.filename), path), nil
	}
	return path, nil
}
