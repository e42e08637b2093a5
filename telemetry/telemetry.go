// Package telemetry collects hierarchical timing data for journal
// operations. Collectors travel through context so call sites stay
// uninstrumented when no collector is installed.
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := telemetry.StartTimer(ctx, "read journal")
//	defer timer.End()
//
//	collector.Report(os.Stderr, styles)
package telemetry

import (
	"context"
	"io"
)

type contextKey struct{}

var collectorKey = contextKey{}

// Collector receives timing events and renders a report of them.
type Collector interface {
	// Start begins timing a named operation. End the returned Timer when
	// the operation completes.
	Start(name string) Timer

	// Report writes the collected timings. The styles parameter may be nil
	// for unstyled output; see Styler.
	Report(w io.Writer, styles any)
}

// Timer tracks one operation. Nested operations hang off Child.
type Timer interface {
	End()
	Child(name string) Timer
}

// Styler is the styling surface Report probes its styles argument for.
// It is satisfied by the CLI style set without this package importing it.
type Styler interface {
	Keyword(s string) string
	Dim(s string) string
	Warning(s string) string
}

// WithCollector installs a collector on the context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext returns the context's collector, or a no-op collector when
// none is installed.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

// StartTimer begins timing a named operation against the context's
// collector. It is shorthand for FromContext(ctx).Start(name).
func StartTimer(ctx context.Context, name string) Timer {
	return FromContext(ctx).Start(name)
}
