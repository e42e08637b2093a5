package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
)

type PrintCmd struct {
	File   FileOrStdin `help:"Journal file (use '-' for stdin, or omit for the configured default)." arg:"" optional:""`
	Output string      `help:"Write to a file instead of stdout." short:"o" type:"path"`
}

func (cmd *PrintCmd) Run(ctx *kong.Context, globals *Globals) error {
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

	var buf bytes.Buffer
	for i, t := range j.Transactions {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(t.String())
	}

	if cmd.Output == "" {
		_, _ = buf.WriteTo(ctx.Stdout)
		return nil
	}

	if _, err := os.Stat(cmd.Output); err == nil {
		overwrite, err := promptYesNo(fmt.Sprintf("Overwrite %s?", cmd.Output))
		if err != nil {
			return err
		}
		if !overwrite {
			printInfof(ctx.Stdout, "aborted, %s left untouched", cmd.Output)
			return nil
		}
	}

	if err := os.WriteFile(cmd.Output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", cmd.Output, err)
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("wrote %d transaction(s) to %s", len(j.Transactions), cmd.Output))
	return nil
}
