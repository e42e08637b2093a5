package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/colindean/hledger/journal"
	"github.com/colindean/hledger/ledger"
)

type BalanceCmd struct {
	File    FileOrStdin `help:"Journal file (use '-' for stdin, or omit for the configured default)." arg:"" optional:""`
	Account string      `help:"Only show this account and its subaccounts." arg:"" optional:""`
	Flat    bool        `help:"Show full account names instead of the indented tree."`
}

func (cmd *BalanceCmd) Run(ctx *kong.Context, globals *Globals) error {
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

	var rows []balanceRow
	root := l.Root()
	if cmd.Account != "" {
		if root = l.Account(cmd.Account); root == nil {
			printError(ctx.Stderr, fmt.Sprintf("no account matches %q", cmd.Account))
			return NewCommandError(1)
		}
		rows = collectBalanceRows(root, 0, cmd.Flat, cfg)
	} else {
		for _, child := range root.Children {
			rows = append(rows, collectBalanceRows(child, 0, cmd.Flat, cfg)...)
		}
	}

	width := terminalWidth()
	amountWidth := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r.amount); w > amountWidth {
			amountWidth = w
		}
	}
	totalStr := amountOrZero(root.Total(), cfg)
	if w := runewidth.StringWidth(totalStr); w > amountWidth {
		amountWidth = w
	}

	for _, r := range rows {
		name := r.name
		if avail := width - amountWidth - 2; avail > 0 {
			name = runewidth.Truncate(name, avail, "…")
		}
		_, _ = fmt.Fprintf(ctx.Stdout, "%s  %s\n",
			runewidth.FillLeft(r.amount, amountWidth),
			dimStyle.Render(strings.Repeat("  ", r.depth))+name)
	}

	_, _ = fmt.Fprintf(ctx.Stdout, "%s\n", strings.Repeat("-", amountWidth))
	_, _ = fmt.Fprintf(ctx.Stdout, "%s\n", runewidth.FillLeft(totalStr, amountWidth))

	return nil
}

type balanceRow struct {
	name   string
	amount string
	depth  int
}

// collectBalanceRows flattens the subtree into display rows. In tree mode a
// chain of single children collapses into one row, hledger style.
func collectBalanceRows(a *ledger.Account, depth int, flat bool, cfg *Config) []balanceRow {
	name := a.Leaf
	if flat {
		name = a.Name
	}

	// Collapse pass-through accounts with no postings of their own.
	node := a
	for !flat && len(node.Children) == 1 && node.Balance.IsZero() && len(node.Postings) == 0 {
		node = node.Children[0]
		name += ":" + node.Leaf
	}

	rows := []balanceRow{{
		name:   name,
		amount: amountOrZero(node.Total(), cfg),
		depth:  depth,
	}}
	for _, child := range node.Children {
		if flat {
			rows = append(rows, collectBalanceRows(child, 0, flat, cfg)...)
		} else {
			rows = append(rows, collectBalanceRows(child, depth+1, flat, cfg)...)
		}
	}
	return rows
}

func amountOrZero(m journal.MixedAmount, cfg *Config) string {
	s := displayAmount(m, cfg)
	if s == "" {
		s = "0"
	}
	return s
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
