package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/colindean/hledger/ledger"
)

type StatsCmd struct {
	File FileOrStdin `help:"Journal file (use '-' for stdin, or omit for the configured default)." arg:"" optional:""`
}

func (cmd *StatsCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := globals.LoadConfig()
	if err != nil {
		return err
	}
	if err := cmd.File.Resolve(cfg); err != nil {
		return err
	}

	j, err := cmd.File.LoadJournal(context.Background(), time.Now())
	if err != nil {
		source, _ := cmd.File.SourceContent()
		_, _ = fmt.Fprintln(ctx.Stderr, renderError(err, cmd.File.AbsoluteFilename(), source))
		return NewCommandError(1)
	}

	l := ledger.New(j)

	span := "none"
	if len(j.Transactions) > 0 {
		first, last := j.Transactions[0].Date, j.Transactions[0].Date
		for _, t := range j.Transactions[1:] {
			if t.Date.Before(first) {
				first = t.Date
			}
			if t.Date.After(last) {
				last = t.Date
			}
		}
		span = fmt.Sprintf("%s to %s", first, last)
	}

	commodities := make(map[string]bool)
	for _, view := range j.Postings() {
		for _, c := range view.Posting.Amount.Commodities() {
			commodities[c] = true
		}
	}

	stat := func(label, format string, args ...any) {
		_, _ = fmt.Fprintf(ctx.Stdout, "%s %s\n",
			keywordStyle.Render(padLabel(label+":", 16)),
			fmt.Sprintf(format, args...))
	}

	stat("Files", "%d (%s)", len(j.Files), strings.Join(j.Files, ", "))
	stat("Transactions", "%d", len(j.Transactions))
	stat("Time span", "%s", span)
	stat("Accounts", "%d", len(l.Accounts()))
	stat("Commodities", "%d", len(commodities))
	stat("Prices", "%d", len(j.Prices))
	stat("Time-log lines", "%d", len(j.TimeLog))

	return nil
}

func padLabel(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
