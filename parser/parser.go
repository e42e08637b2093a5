// Package parser reads the ledger journal dialect into journal values.
//
// The grammar is line-oriented and context-sensitive: the first character of
// a line dispatches to a transaction, directive, time-log entry or comment,
// and directives mutate parse-time context (default year, open !account
// blocks) that later lines depend on. Parsing is a single synchronous pass;
// !include directives trigger a nested parse inline, because later lines in
// the including file may depend on context the included file established.
//
// Every parsed line yields a deferred journal update rather than mutating
// anything immediately; the whole file and its includes assemble into one
// ordered sequence of updates applied once to an empty journal.
package parser

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/colindean/hledger/journal"
	"github.com/colindean/hledger/telemetry"
)

// FileReader reads included files. The parser performs no other I/O.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// FileReaderFunc adapts a function to the FileReader interface.
type FileReaderFunc func(path string) ([]byte, error)

// ReadFile implements FileReader.
func (f FileReaderFunc) ReadFile(path string) ([]byte, error) { return f(path) }

type config struct {
	reader  FileReader
	homeDir func() (string, error)
	now     time.Time
}

// Option configures a parse.
type Option func(*config)

// WithFileReader injects the reader used for !include files.
func WithFileReader(r FileReader) Option {
	return func(c *config) { c.reader = r }
}

// WithHomeDir injects the resolver for ~/ include paths.
func WithHomeDir(resolve func() (string, error)) Option {
	return func(c *config) { c.homeDir = resolve }
}

// WithReferenceTime sets the time used to close an unfinished final clock-in
// session in a time-log. The default is the wall clock.
func WithReferenceTime(now time.Time) Option {
	return func(c *config) { c.now = now }
}

// shared is parse state common to a file and all its includes.
type shared struct {
	cfg      config
	interner *Interner
	visited  map[string]bool // Absolute paths already parsed, for cycle safety
}

// Parser scans one source buffer. Included files get their own Parser over
// the same shared state and a snapshot of the including file's context.
type Parser struct {
	shared   *shared
	source   []byte
	filename string
	ctx      *Context

	pos    int // Current byte position
	line   int // Current line (1-indexed)
	column int // Current column (1-indexed)
}

// Parse parses journal source already read into memory. The returned Journal
// is complete and immutable; any error anywhere, including inside an
// included file, aborts the whole parse.
func Parse(ctx context.Context, source []byte, filename string, opts ...Option) (*journal.Journal, error) {
	cfg := config{
		reader:  FileReaderFunc(os.ReadFile),
		homeDir: os.UserHomeDir,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.now.IsZero() {
		cfg.now = time.Now()
	}

	sh := &shared{
		cfg:      cfg,
		interner: NewInterner(len(source)/40 + 64),
		visited:  make(map[string]bool),
	}
	if abs, err := filepath.Abs(filename); err == nil {
		sh.visited[abs] = true
	}

	pctx := newContext()
	p := newParser(sh, source, filename, pctx)

	timer := telemetry.StartTimer(ctx, "parse "+filepath.Base(filename))
	updates, err := p.parseItems(ctx)
	timer.End()
	if err != nil {
		return nil, err
	}

	buildTimer := telemetry.StartTimer(ctx, "assemble journal")
	defer buildTimer.End()
	return journal.Build(filename, pctx.Styles, cfg.now, updates), nil
}

// ParseString parses journal source from a string.
func ParseString(ctx context.Context, source, filename string, opts ...Option) (*journal.Journal, error) {
	return Parse(ctx, []byte(source), filename, opts...)
}

func newParser(sh *shared, source []byte, filename string, pctx *Context) *Parser {
	return &Parser{
		shared:   sh,
		source:   source,
		filename: filename,
		ctx:      pctx,
		line:     1,
		column:   1,
	}
}

// parseItems parses every top-level line of this source buffer.
func (p *Parser) parseItems(ctx context.Context) ([]journal.Update, error) {
	var updates []journal.Update

	for !p.atEOF() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		update, err := p.parseItem(ctx)
		if err != nil {
			return nil, err
		}
		if update != nil {
			updates = append(updates, update)
		}
	}

	return updates, nil
}

// parseItem parses one top-level item. Directives that only mutate context
// (Y, !account, !end) return a nil update.
func (p *Parser) parseItem(ctx context.Context) (journal.Update, error) {
	ch := p.peek()
	switch {
	case ch == '\n' || ch == '\r':
		p.restOfLine()
		return nil, nil

	case ch == ';':
		p.restOfLine()
		return nil, nil

	case ch == ' ' || ch == '\t':
		// Only blank and comment lines may be indented at top level;
		// an orphan posting has no transaction to belong to.
		pos := p.position()
		p.skipInlineSpace()
		if p.atEndOfLine() || p.peek() == ';' {
			p.restOfLine()
			return nil, nil
		}
		return nil, &SyntaxError{Pos: pos, Expected: "transaction, directive or comment", Found: "indented line"}

	case isDigit(ch):
		return p.parseTransaction()

	case ch == '=':
		return p.parseModifier()

	case ch == '~':
		return p.parsePeriodic()

	case ch == 'P' && p.peekAt(1) == ' ':
		return p.parsePriceDirective()

	case ch == 'N' && p.peekAt(1) == ' ':
		return p.parseIgnoredPriceDirective()

	case ch == 'D' && p.peekAt(1) == ' ':
		return p.parseDefaultCommodityDirective()

	case ch == 'C' && p.peekAt(1) == ' ':
		return p.parseConversionDirective()

	case ch == 'Y' && (p.peekAt(1) == ' ' || isDigit(p.peekAt(1))):
		return nil, p.parseYearDirective()

	case ch == '!':
		return p.parseBangDirective(ctx)

	case p.hasWord("tag") || p.hasWord("end"):
		// Reserved for forward compatibility; parsed and ignored.
		p.restOfLine()
		return nil, nil

	case isClockCode(ch) && p.peekAt(1) == ' ':
		return p.parseTimeLogEntry()

	default:
		return nil, &SyntaxError{Pos: p.position(), Expected: "transaction, directive or comment", Found: string(ch)}
	}
}

// hasWord reports whether the current line starts with the given word
// followed by a space or end of line.
func (p *Parser) hasWord(word string) bool {
	if !bytes.HasPrefix(p.source[p.pos:], []byte(word)) {
		return false
	}
	next := p.peekAt(len(word))
	return next == ' ' || next == '\t' || next == '\n' || next == '\r' || next == 0
}

func isClockCode(ch byte) bool {
	switch ch {
	case 'b', 'h', 'i', 'o', 'O':
		return true
	}
	return false
}

// Scanner helpers. The parser scans bytes directly, tracking line and column
// for error positions; nothing is tokenized up front because the grammar is
// whitespace-sensitive per line.

func (p *Parser) atEOF() bool {
	return p.pos >= len(p.source)
}

func (p *Parser) peek() byte {
	if p.atEOF() {
		return 0
	}
	return p.source[p.pos]
}

func (p *Parser) peekAt(n int) byte {
	if p.pos+n >= len(p.source) {
		return 0
	}
	return p.source[p.pos+n]
}

func (p *Parser) advance() byte {
	if p.atEOF() {
		return 0
	}
	ch := p.source[p.pos]
	p.pos++
	if ch == '\n' {
		p.line++
		p.column = 1
	} else {
		p.column++
	}
	return ch
}

func (p *Parser) position() journal.Position {
	return journal.Position{
		Filename: p.filename,
		Offset:   p.pos,
		Line:     p.line,
		Column:   p.column,
	}
}

// mark captures scanner state so a speculative scan can be undone.
type mark struct {
	pos    int
	line   int
	column int
}

func (p *Parser) mark() mark {
	return mark{pos: p.pos, line: p.line, column: p.column}
}

func (p *Parser) resetTo(m mark) {
	p.pos, p.line, p.column = m.pos, m.line, m.column
}

// skipInlineSpace consumes spaces and tabs on the current line, returning
// the count of characters skipped and whether any was a tab. A tab counts as
// a hard separator like two spaces.
func (p *Parser) skipInlineSpace() (count int, sawTab bool) {
	for {
		ch := p.peek()
		if ch == ' ' {
			p.advance()
			count++
		} else if ch == '\t' {
			p.advance()
			count++
			sawTab = true
		} else {
			return count, sawTab
		}
	}
}

func (p *Parser) atEndOfLine() bool {
	ch := p.peek()
	return ch == '\n' || ch == '\r' || p.atEOF()
}

// restOfLine consumes through the end of the current line, returning its
// remaining content without the line terminator.
func (p *Parser) restOfLine() string {
	start := p.pos
	for !p.atEOF() && p.peek() != '\n' {
		p.advance()
	}
	end := p.pos
	if end > start && p.source[end-1] == '\r' {
		end--
	}
	if !p.atEOF() {
		p.advance() // newline
	}
	return string(p.source[start:end])
}

// endDirectiveLine consumes trailing whitespace and an optional comment,
// failing if anything else follows a directive.
func (p *Parser) endDirectiveLine() error {
	p.skipInlineSpace()
	if p.atEndOfLine() || p.peek() == ';' {
		p.restOfLine()
		return nil
	}
	return &SyntaxError{Pos: p.position(), Expected: "end of line", Found: string(p.peek())}
}
