package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"

	"github.com/colindean/hledger/journal"
	"github.com/colindean/hledger/ledger"
)

type RegisterCmd struct {
	File    FileOrStdin `help:"Journal file (use '-' for stdin, or omit for the configured default)." arg:"" optional:""`
	Account string      `help:"Only show postings to this account and its subaccounts." arg:"" optional:""`
}

func (cmd *RegisterCmd) Run(ctx *kong.Context, globals *Globals) error {
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

	rows := ledger.New(j).Register(cmd.Account)

	accountWidth, amountWidth := 0, 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r.Posting.Account); w > accountWidth {
			accountWidth = w
		}
		if w := runewidth.StringWidth(displayAmount(r.Posting.Amount, cfg)); w > amountWidth {
			amountWidth = w
		}
	}

	var lastTxn *journal.Transaction
	for _, r := range rows {
		header := ""
		if r.Transaction != lastTxn {
			header = fmt.Sprintf("%s %s", r.Transaction.Date, r.Transaction.Description)
			lastTxn = r.Transaction
		}
		header = runewidth.Truncate(header, 32, "…")

		_, _ = fmt.Fprintf(ctx.Stdout, "%s  %s  %s  %s\n",
			runewidth.FillRight(header, 32),
			runewidth.FillRight(r.Posting.Account, accountWidth),
			runewidth.FillLeft(displayAmount(r.Posting.Amount, cfg), amountWidth),
			displayAmount(r.Total, cfg))
	}

	return nil
}
