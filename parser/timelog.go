package parser

import (
	"strings"
	"time"

	"github.com/colindean/hledger/journal"
)

const timeLogLayout = "2006/01/02 15:04:05"

// parseTimeLogEntry parses a timeclock line: CODE YYYY/MM/DD HH:MM:SS [comment].
// Timestamps are interpreted in the local time zone.
func (p *Parser) parseTimeLogEntry() (journal.Update, error) {
	pos := p.position()
	code := journal.TimeLogCode(p.advance())
	p.advance() // the separating space

	rest := p.restOfLine()
	if len(rest) < len(timeLogLayout) {
		return nil, &SyntaxError{Pos: pos, Expected: "timestamp in YYYY/MM/DD HH:MM:SS form", Found: rest}
	}

	stamp, err := time.ParseInLocation(timeLogLayout, rest[:len(timeLogLayout)], time.Local)
	if err != nil {
		return nil, &SyntaxError{Pos: pos, Expected: "timestamp in YYYY/MM/DD HH:MM:SS form", Found: rest[:len(timeLogLayout)]}
	}

	return journal.AddTimeLogEntry{Entry: journal.TimeLogEntry{
		Pos:     pos,
		Code:    code,
		Time:    stamp,
		Comment: strings.TrimSpace(rest[len(timeLogLayout):]),
	}}, nil
}
