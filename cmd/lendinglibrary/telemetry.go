package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"sync"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/AntonStoeckl/lending-library-go/lending"
	"github.com/AntonStoeckl/lending-library-go/oteladapters"
)

const instrumentationName = "github.com/AntonStoeckl/lending-library-go/cmd/lendinglibrary"

// telemetry keeps metrics and span counts in process, there is no exporter.
type telemetry struct {
	reader         *sdkmetric.ManualReader
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	spans          *spanCounter
}

func newTelemetry() *telemetry {
	reader := sdkmetric.NewManualReader()
	spans := &spanCounter{ended: make(map[string]int)}

	return &telemetry{
		reader:         reader,
		meterProvider:  sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
		tracerProvider: sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans)),
		spans:          spans,
	}
}

func (t *telemetry) serviceOptions(handler slog.Handler) []lending.Option {
	return []lending.Option{
		lending.WithMetrics(oteladapters.NewMetricsCollector(t.meterProvider.Meter(instrumentationName))),
		lending.WithTracing(oteladapters.NewTracingCollector(t.tracerProvider.Tracer(instrumentationName))),
		lending.WithContextualLogger(oteladapters.NewSlogBridgeLoggerWithHandler(handler)),
	}
}

// writeSummary prints counter totals, histogram counts and sums, and ended spans per name.
func (t *telemetry) writeSummary(ctx context.Context, w io.Writer) error {
	var rm metricdata.ResourceMetrics
	if err := t.reader.Collect(ctx, &rm); err != nil {
		return err
	}

	fmt.Fprintln(w, "\n== Telemetry")

	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				var total int64
				for _, point := range data.DataPoints {
					total += point.Value
				}
				fmt.Fprintf(w, "metric %s: %d\n", m.Name, total)

			case metricdata.Histogram[float64]:
				var count uint64
				var sum float64
				for _, point := range data.DataPoints {
					count += point.Count
					sum += point.Sum
				}
				fmt.Fprintf(w, "metric %s: count=%d sum=%.2f\n", m.Name, count, sum)
			}
		}
	}

	for name, count := range t.spans.snapshot() {
		fmt.Fprintf(w, "spans %s: %d\n", name, count)
	}

	return nil
}

func (t *telemetry) shutdown(ctx context.Context) error {
	return errors.Join(t.tracerProvider.Shutdown(ctx), t.meterProvider.Shutdown(ctx))
}

// spanCounter is a SpanProcessor counting ended spans per name.
type spanCounter struct {
	mu    sync.Mutex
	ended map[string]int
}

func (c *spanCounter) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (c *spanCounter) OnEnd(span sdktrace.ReadOnlySpan) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ended[span.Name()]++
}

func (c *spanCounter) Shutdown(context.Context) error { return nil }

func (c *spanCounter) ForceFlush(context.Context) error { return nil }

// snapshot returns the counts in span name order.
func (c *spanCounter) snapshot() iter.Seq2[string, int] {
	c.mu.Lock()
	counts := maps.Clone(c.ended)
	c.mu.Unlock()

	return func(yield func(string, int) bool) {
		for _, name := range slices.Sorted(maps.Keys(counts)) {
			if !yield(name, counts[name]) {
				return
			}
		}
	}
}
