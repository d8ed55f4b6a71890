// Package testdoubles provides test doubles (spies) for the observability ports.
//
// This package contains spy implementations of the ports used by the lending service and the journal engines:
//   - LogHandlerSpy: captures slog records, to be used through slog.New(spy)
//   - ContextualLoggerSpy: captures context-aware log calls
//   - MetricsCollectorSpy: captures metrics recording calls for verification
//   - TracingCollectorSpy: captures tracing spans with their start and end attributes
//
// The matchers are fluent and finish with Assert(), which returns whether all conditions were met.
package testdoubles
