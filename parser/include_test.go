package parser_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/colindean/hledger/parser"
)

// mapReader serves included files from an in-memory map keyed by the
// resolved path.
func mapReader(files map[string]string) parser.FileReader {
	return parser.FileReaderFunc(func(path string) ([]byte, error) {
		content, ok := files[path]
		if !ok {
			return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
		}
		return []byte(content), nil
	})
}

func TestParseIncludeSplicesEntries(t *testing.T) {
	reader := mapReader(map[string]string{
		"included.journal": "2009/01/02 inner\n  expenses:food  $5.00\n  assets:cash\n",
	})

	source := strings.Join([]string{
		"2009/01/01 before",
		"  expenses:rent  $100.00",
		"  assets:cash",
		"",
		"!include included.journal",
		"",
		"2009/01/03 after",
		"  expenses:gas  $20.00",
		"  assets:cash",
		"",
	}, "\n")

	j, err := parser.ParseString(context.Background(), source, "main.journal", parser.WithFileReader(reader))
	assert.NoError(t, err)

	assert.Equal(t, []string{"main.journal", "included.journal"}, j.Files)

	descriptions := make([]string, 0, len(j.Transactions))
	for _, txn := range j.Transactions {
		descriptions = append(descriptions, txn.Description)
	}
	assert.Equal(t, []string{"before", "inner", "after"}, descriptions)
}

func TestParseIncludeMissingFile(t *testing.T) {
	reader := mapReader(nil)

	_, err := parser.ParseString(context.Background(), "!include missing.journal\n", "main.journal", parser.WithFileReader(reader))
	assert.Error(t, err)

	var readErr *parser.IncludeReadError
	assert.True(t, errors.As(err, &readErr))
	assert.Equal(t, "missing.journal", readErr.Path)
	assert.Equal(t, "main.journal", readErr.Pos.Filename)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "cannot read included file")
}

func TestParseIncludeNestedFailure(t *testing.T) {
	reader := mapReader(map[string]string{
		"broken.journal": "2009/01/05 no postings\n",
	})

	_, err := parser.ParseString(context.Background(), "!include broken.journal\n", "main.journal", parser.WithFileReader(reader))
	assert.Error(t, err)

	var parseErr *parser.IncludeParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "broken.journal", parseErr.Path)
	assert.Contains(t, err.Error(), `in included file "broken.journal", included from main.journal`)

	var noPostings *parser.NoPostingsError
	assert.True(t, errors.As(err, &noPostings))
	assert.Equal(t, "broken.journal", noPostings.GetPosition().Filename)
}

func TestParseIncludeYearDoesNotLeakBack(t *testing.T) {
	reader := mapReader(map[string]string{
		"years.journal": "Y 2020\n",
	})

	source := strings.Join([]string{
		"!include years.journal",
		"1/15 partial",
		"  expenses:misc  $1.00",
		"  assets:cash",
		"",
	}, "\n")

	_, err := parser.ParseString(context.Background(), source, "main.journal", parser.WithFileReader(reader))
	assert.Error(t, err)

	var yearErr *parser.NoDefaultYearError
	assert.True(t, errors.As(err, &yearErr))
}

func TestParseIncludeInheritsYear(t *testing.T) {
	reader := mapReader(map[string]string{
		"inner.journal": "3/4 inherited\n  expenses:misc  $1.00\n  assets:cash\n",
	})

	source := "Y 2009\n!include inner.journal\n"

	j, err := parser.ParseString(context.Background(), source, "main.journal", parser.WithFileReader(reader))
	assert.NoError(t, err)
	assert.Equal(t, 1, len(j.Transactions))
	assert.Equal(t, "2009/03/04", j.Transactions[0].Date.String())
}

func TestParseIncludeSharesStyles(t *testing.T) {
	reader := mapReader(map[string]string{
		"styled.journal": "2009/01/02 styled\n  expenses:misc  $1,000.000\n  assets:cash\n",
	})

	source := strings.Join([]string{
		"2009/01/01 plain",
		"  expenses:misc  $1.00",
		"  assets:cash",
		"",
		"!include styled.journal",
		"",
	}, "\n")

	j, err := parser.ParseString(context.Background(), source, "main.journal", parser.WithFileReader(reader))
	assert.NoError(t, err)

	style, ok := j.Styles.Get("$")
	assert.True(t, ok)
	assert.Equal(t, 3, style.Precision)
	assert.True(t, style.Thousands)
}

func TestParseIncludeDeduplicates(t *testing.T) {
	reader := mapReader(map[string]string{
		"shared.journal": "2009/01/02 shared\n  expenses:misc  $1.00\n  assets:cash\n",
	})

	source := "!include shared.journal\n!include shared.journal\n"

	j, err := parser.ParseString(context.Background(), source, "main.journal", parser.WithFileReader(reader))
	assert.NoError(t, err)
	assert.Equal(t, 1, len(j.Transactions))
	assert.Equal(t, []string{"main.journal", "shared.journal"}, j.Files)
}
