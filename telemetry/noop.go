package telemetry

import "io"

// noOpCollector discards all timing events. It backs FromContext when no
// collector is installed so instrumented call sites pay nothing.
type noOpCollector struct{}

func (noOpCollector) Start(name string) Timer   { return noOpTimer{} }
func (noOpCollector) Report(w io.Writer, _ any) {}

type noOpTimer struct{}

func (noOpTimer) End()                    {}
func (noOpTimer) Child(name string) Timer { return noOpTimer{} }
