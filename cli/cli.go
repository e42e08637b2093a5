// Package cli implements the hledger command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/colindean/hledger/journal"
	"github.com/colindean/hledger/loader"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	keywordStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FFAF00", Dark: "#FFAF00"})
)

// Styles adapts the CLI's lipgloss styles to the styling surface the
// telemetry report probes for.
type Styles struct{}

// Keyword renders s emphasized.
func (Styles) Keyword(s string) string { return keywordStyle.Render(s) }

// Dim renders s de-emphasized.
func (Styles) Dim(s string) string { return dimStyle.Render(s) }

// Warning renders s highlighted as slow or suspect.
func (Styles) Warning(s string) string { return warningStyle.Render(s) }

func printSuccess(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", successStyle.Render(successSymbol), message)
}

func printError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", errorStyle.Render(errorSymbol), errorStyle.Render(message))
}

func printInfof(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "%s %s\n", infoStyle.Render(infoSymbol), fmt.Sprintf(format, args...))
}

// promptYesNo asks a yes/no question. When stdin is not a terminal the
// answer defaults to no.
func promptYesNo(question string) (bool, error) {
	if !isTerminal() {
		return false, nil
	}

	var confirm bool
	form := huh.NewConfirm().
		Title(question).
		WithButtonAlignment(lipgloss.Left).
		Value(&confirm)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	return confirm, nil
}

func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// displayAmount renders a mixed amount for report output. Amounts written
// without a commodity symbol are labelled with the configured no-symbol
// commodity, when one is set.
func displayAmount(m journal.MixedAmount, cfg *Config) string {
	if cfg == nil || cfg.NoSymbolCommodity == "" {
		return m.String()
	}

	labelled := journal.MixedAmount{Amounts: make([]journal.Amount, len(m.Amounts))}
	for i, a := range m.Amounts {
		if a.Style.Symbol == "" {
			a.Style.Symbol = cfg.NoSymbolCommodity
			a.Style.Side = journal.SideRight
			a.Style.Spaced = true
		}
		labelled.Amounts[i] = a
	}
	return labelled.String()
}

// FileOrStdin accepts either a journal path or "-" for stdin.
// For stdin: Filename="(stdin)", Contents populated.
// For files: Filename set, Contents nil (read by the loader).
type FileOrStdin struct {
	Filename string
	Contents []byte
}

// Decode implements kong.MapperValue.
func (f *FileOrStdin) Decode(ctx *kong.DecodeContext) error {
	var filename string
	if err := ctx.Scan.PopValueInto("filename", &filename); err != nil {
		return err
	}

	if filename == loader.StdinPath || filename == "" {
		contents, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read from stdin: %w", err)
		}
		f.Filename = "(stdin)"
		f.Contents = contents
		return nil
	}

	if _, err := os.Stat(filename); err != nil {
		return err
	}
	f.Filename = filename

	return nil
}

// Resolve fills the filename from the config default, then from stdin, when
// no argument was given.
func (f *FileOrStdin) Resolve(cfg *Config) error {
	if f.Filename != "" {
		return nil
	}
	if cfg != nil && cfg.Journal != "" {
		f.Filename = cfg.Journal
		return nil
	}

	contents, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read from stdin: %w", err)
	}
	f.Filename = "(stdin)"
	f.Contents = contents
	return nil
}

// SourceContent returns the journal text for error context.
func (f *FileOrStdin) SourceContent() ([]byte, error) {
	if f.Contents != nil {
		return f.Contents, nil
	}
	return os.ReadFile(f.Filename)
}

// AbsoluteFilename returns the absolute path, or "(stdin)" for stdin.
func (f *FileOrStdin) AbsoluteFilename() string {
	if f.Contents != nil {
		return f.Filename
	}
	abs, err := filepath.Abs(f.Filename)
	if err != nil {
		return f.Filename
	}
	return abs
}

// LoadJournal parses the journal, following includes.
func (f *FileOrStdin) LoadJournal(ctx context.Context, now time.Time) (*journal.Journal, error) {
	opts := []loader.Option{}
	if !now.IsZero() {
		opts = append(opts, loader.WithReferenceTime(now))
	}

	if f.Contents != nil {
		return loader.LoadBytes(ctx, f.Contents, f.Filename, opts...)
	}
	return loader.Load(ctx, f.AbsoluteFilename(), opts...)
}
