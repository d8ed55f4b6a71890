// Package oteladapters implements the observability ports of the lending service and the journal engines
// on top of OpenTelemetry.
//
//   - MetricsCollector maps durations and values to histograms and call counts to counters
//   - TracingCollector starts one span per lending operation
//   - SlogBridgeLogger and OTelLogger are ContextualLoggers correlating log records with the active span
//
// Wire them with lending.WithMetrics, lending.WithTracing and lending.WithContextualLogger.
package oteladapters
