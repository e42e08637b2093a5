// Package loader reads journal files from disk (or stdin) and hands them to
// the parser. It owns the top-level I/O the parser deliberately avoids:
// resolving ~/ paths, the "-" stdin convention, and wrapping read failures.
//
// Example usage:
//
//	j, err := loader.Load(ctx, "~/finance/main.journal")
//	if err != nil {
//	    log.Fatal(err)
//	}
package loader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/colindean/hledger/journal"
	"github.com/colindean/hledger/parser"
)

// StdinPath is the path argument that makes Load read from standard input.
const StdinPath = "-"

type config struct {
	stdin      io.Reader
	reader     parser.FileReader
	parserOpts []parser.Option
}

// Option configures a load.
type Option func(*config)

// WithReferenceTime sets the time used to close an unfinished final
// clock-in session in a time-log.
func WithReferenceTime(now time.Time) Option {
	return func(c *config) {
		c.parserOpts = append(c.parserOpts, parser.WithReferenceTime(now))
	}
}

// WithFileReader injects the reader used for the journal file itself and
// any !include files.
func WithFileReader(r parser.FileReader) Option {
	return func(c *config) {
		c.reader = r
		c.parserOpts = append(c.parserOpts, parser.WithFileReader(r))
	}
}

// WithStdin substitutes the reader backing the "-" path.
func WithStdin(r io.Reader) Option {
	return func(c *config) { c.stdin = r }
}

// Load reads and parses the journal file at path, following its includes.
// A path of "-" reads from stdin, and a leading ~/ resolves against the
// user's home directory.
func Load(ctx context.Context, path string, opts ...Option) (*journal.Journal, error) {
	cfg := config{stdin: os.Stdin}
	for _, opt := range opts {
		opt(&cfg)
	}

	if path == StdinPath {
		data, err := io.ReadAll(cfg.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return parser.Parse(ctx, data, "(stdin)", cfg.parserOpts...)
	}

	resolved, err := expandHome(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	data, err := cfg.readFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return parser.Parse(ctx, data, resolved, cfg.parserOpts...)
}

// LoadBytes parses journal source already in memory. The filename is used
// for positions and for resolving relative includes.
func LoadBytes(ctx context.Context, data []byte, filename string, opts ...Option) (*journal.Journal, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return parser.Parse(ctx, data, filename, cfg.parserOpts...)
}

// readFile reads the root journal through the same reader the parser uses
// for includes, so an injected reader covers every file.
func (c *config) readFile(path string) ([]byte, error) {
	if c.reader != nil {
		return c.reader.ReadFile(path)
	}
	return os.ReadFile(path)
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
