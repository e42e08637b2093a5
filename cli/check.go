package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/colindean/hledger/journal"
	"github.com/colindean/hledger/telemetry"
)

type CheckCmd struct {
	File  FileOrStdin `help:"Journal file (use '-' for stdin, or omit for the configured default)." arg:"" optional:""`
	Watch bool        `help:"Re-run the check whenever the journal files change."`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := globals.LoadConfig()
	if err != nil {
		return err
	}
	if err := cmd.File.Resolve(cfg); err != nil {
		return err
	}

	j, err := cmd.runOnce(ctx, globals)
	if !cmd.Watch {
		return err
	}
	if cmd.File.Contents != nil {
		return fmt.Errorf("cannot watch stdin")
	}

	// A failed first run still enters watch mode, tracking just the main
	// file until a successful parse reveals its includes.
	files := []string{cmd.File.AbsoluteFilename()}
	if j != nil {
		files = j.Files
	}
	return cmd.watch(ctx, globals, files)
}

// runOnce parses and validates the journal, printing the outcome. Parse and
// balance failures are reported and returned as a CommandError so watch mode
// can keep going.
func (cmd *CheckCmd) runOnce(ctx *kong.Context, globals *Globals) (*journal.Journal, error) {
	runCtx := context.Background()

	var collector telemetry.Collector
	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		defer func() {
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr, Styles{})
		}()
	}

	j, err := cmd.File.LoadJournal(runCtx, time.Now())
	if err != nil {
		source, readErr := cmd.File.SourceContent()
		if readErr != nil {
			source = nil
		}
		_, _ = fmt.Fprintln(ctx.Stderr, renderError(err, cmd.File.AbsoluteFilename(), source))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, "check failed")
		return nil, NewCommandError(1)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Check passed (%d transactions in %d files)",
		len(j.Transactions), len(j.Files)))
	return j, nil
}

// watch re-runs the check whenever any file of the journal changes. The
// watched file set is refreshed after every successful run, so newly added
// includes get picked up.
func (cmd *CheckCmd) watch(ctx *kong.Context, globals *Globals, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	watchFiles := func(files []string) {
		for _, f := range files {
			// Watch the directory: editors replace files on save, which
			// drops plain file watches.
			_ = watcher.Add(filepath.Dir(f))
		}
	}
	watchFiles(files)

	known := make(map[string]bool)
	for _, f := range files {
		known[f] = true
	}

	printInfof(ctx.Stdout, "watching %d file(s), press ^C to stop", len(files))

	// Editors fire bursts of events per save; debounce them.
	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !known[event.Name] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(100 * time.Millisecond)

		case <-pending:
			pending = nil
			next, err := cmd.runOnce(ctx, globals)
			if err == nil {
				watchFiles(next.Files)
				for _, f := range next.Files {
					known[f] = true
				}
			}

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(ctx.Stderr, fmt.Sprintf("watch error: %v", watchErr))
		}
	}
}
