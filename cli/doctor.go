package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
)

// DoctorCmd provides doctor utilities for debugging journal files.
type DoctorCmd struct {
	Dump DumpCmd `cmd:"" help:"Dump the parsed journal structure."`
}

// DumpCmd prints the parsed journal as a Go value tree.
type DumpCmd struct {
	File FileOrStdin `help:"Journal file (use '-' for stdin, or omit for the configured default)." arg:"" optional:""`
}

// Run executes the dump command.
func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
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

	repr.New(ctx.Stdout, repr.Indent("  ")).Println(j)
	return nil
}
