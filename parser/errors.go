package parser

import (
	"fmt"

	"github.com/colindean/hledger/journal"
)

// PositionedError is implemented by every parse error so callers can point
// the user at the offending line without unwrapping concrete types.
type PositionedError interface {
	error
	GetPosition() journal.Position
}

// SyntaxError reports input that does not match the grammar at a position.
// Expected describes the construct the parser was looking for.
type SyntaxError struct {
	Pos      journal.Position
	Expected string
	Found    string
}

func (e *SyntaxError) Error() string {
	if e.Found != "" {
		return fmt.Sprintf("%s: expected %s but found %q", e.Pos, e.Expected, e.Found)
	}
	return fmt.Sprintf("%s: expected %s", e.Pos, e.Expected)
}

// GetPosition returns the position of the error.
func (e *SyntaxError) GetPosition() journal.Position { return e.Pos }

// MalformedNumberError reports a quantity with neither integer nor
// fractional digits, or otherwise unparseable digits.
type MalformedNumberError struct {
	Pos  journal.Position
	Text string
}

func (e *MalformedNumberError) Error() string {
	return fmt.Sprintf("%s: malformed number %q", e.Pos, e.Text)
}

// GetPosition returns the position of the error.
func (e *MalformedNumberError) GetPosition() journal.Position { return e.Pos }

// IllFormedAccountNameError reports an account name whose components do not
// re-serialize to the original text, such as a::b or :a.
type IllFormedAccountNameError struct {
	Pos  journal.Position
	Name string
}

func (e *IllFormedAccountNameError) Error() string {
	return fmt.Sprintf("%s: ill-formed account name %q", e.Pos, e.Name)
}

// GetPosition returns the position of the error.
func (e *IllFormedAccountNameError) GetPosition() journal.Position { return e.Pos }

// InvalidYearError reports a Y directive whose year is below 1000.
type InvalidYearError struct {
	Pos  journal.Position
	Year int
}

func (e *InvalidYearError) Error() string {
	return fmt.Sprintf("%s: invalid year %d, expected a year >= 1000", e.Pos, e.Year)
}

// GetPosition returns the position of the error.
func (e *InvalidYearError) GetPosition() journal.Position { return e.Pos }

// NoDefaultYearError reports a partial M/D date used before any Y directive
// set a default year.
type NoDefaultYearError struct {
	Pos journal.Position
}

func (e *NoDefaultYearError) Error() string {
	return fmt.Sprintf("%s: partial date used with no default year in effect", e.Pos)
}

// GetPosition returns the position of the error.
func (e *NoDefaultYearError) GetPosition() journal.Position { return e.Pos }

// UnbalancedAccountBlockError reports a !end directive with no matching open
// !account block.
type UnbalancedAccountBlockError struct {
	Pos journal.Position
}

func (e *UnbalancedAccountBlockError) Error() string {
	return fmt.Sprintf("%s: !end with no open !account block", e.Pos)
}

// GetPosition returns the position of the error.
func (e *UnbalancedAccountBlockError) GetPosition() journal.Position { return e.Pos }

// NoPostingsError reports a transaction header with zero posting lines left
// after comment filtering.
type NoPostingsError struct {
	Pos         journal.Position
	Description string
}

func (e *NoPostingsError) Error() string {
	return fmt.Sprintf("%s: transaction %q has no postings", e.Pos, e.Description)
}

// GetPosition returns the position of the error.
func (e *NoPostingsError) GetPosition() journal.Position { return e.Pos }

// IncludeReadError reports an included file that could not be read, wrapping
// the underlying I/O failure with the include directive's position.
type IncludeReadError struct {
	Pos  journal.Position
	Path string
	Err  error
}

func (e *IncludeReadError) Error() string {
	return fmt.Sprintf("%s: cannot read included file %q: %v", e.Pos, e.Path, e.Err)
}

// GetPosition returns the position of the include directive.
func (e *IncludeReadError) GetPosition() journal.Position { return e.Pos }

func (e *IncludeReadError) Unwrap() error { return e.Err }

// IncludeParseError reports a parse failure inside an included file. The
// cause chain preserves every enclosing include position, so nested include
// errors render the full "included from" stack.
type IncludeParseError struct {
	Pos  journal.Position
	Path string
	Err  error
}

func (e *IncludeParseError) Error() string {
	return fmt.Sprintf("in included file %q, included from %s: %v", e.Path, e.Pos, e.Err)
}

// GetPosition returns the position of the include directive.
func (e *IncludeParseError) GetPosition() journal.Position { return e.Pos }

func (e *IncludeParseError) Unwrap() error { return e.Err }
