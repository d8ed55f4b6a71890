package oteladapters

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/AntonStoeckl/lending-library-go/lending"
)

// metricDescriptions documents the instruments of the lending service, other names get a generic description.
var metricDescriptions = map[string]string{
	lending.MetricOperationDuration: "Duration of lending operations",
	lending.MetricOperationCalls:    "Lending operations by outcome",
	lending.MetricLateFees:          "Late fees charged on returns",
	lending.MetricNotifications:     "Notifications appended to borrower logs",
	lending.MetricJournalingErrors:  "Events that could not be journaled",
}

// MetricsCollector implements lending.ContextualMetricsCollector with OpenTelemetry instruments:
//   - RecordDuration -> Float64Histogram in seconds
//   - IncrementCounter -> Int64Counter
//   - RecordValue -> Float64Histogram, so sums and distributions of amounts like late fees are both available
//
// Instruments are created on first use and cached by name. It is safe for concurrent use.
type MetricsCollector struct {
	meter metric.Meter

	mu         sync.Mutex
	durations  map[string]metric.Float64Histogram
	counters   map[string]metric.Int64Counter
	valueHists map[string]metric.Float64Histogram
}

// NewMetricsCollector creates a MetricsCollector using meter, typically taken from a MeterProvider.
func NewMetricsCollector(meter metric.Meter) *MetricsCollector {
	return &MetricsCollector{
		meter:      meter,
		durations:  make(map[string]metric.Float64Histogram),
		counters:   make(map[string]metric.Int64Counter),
		valueHists: make(map[string]metric.Float64Histogram),
	}
}

// RecordDuration records duration in seconds.
func (m *MetricsCollector) RecordDuration(metricName string, duration time.Duration, labels map[string]string) {
	m.RecordDurationContext(context.Background(), metricName, duration, labels)
}

// RecordDurationContext records duration in seconds, exemplars link to the span in ctx.
func (m *MetricsCollector) RecordDurationContext(
	ctx context.Context,
	metricName string,
	duration time.Duration,
	labels map[string]string,
) {

	histogram := m.durationHistogram(metricName)
	if histogram == nil {
		return
	}

	histogram.Record(ctx, duration.Seconds(), metric.WithAttributes(attributesFrom(labels)...))
}

// IncrementCounter adds one to the counter.
func (m *MetricsCollector) IncrementCounter(metricName string, labels map[string]string) {
	m.IncrementCounterContext(context.Background(), metricName, labels)
}

// IncrementCounterContext adds one to the counter.
func (m *MetricsCollector) IncrementCounterContext(ctx context.Context, metricName string, labels map[string]string) {
	counter := m.counter(metricName)
	if counter == nil {
		return
	}

	counter.Add(ctx, 1, metric.WithAttributes(attributesFrom(labels)...))
}

// RecordValue records value.
func (m *MetricsCollector) RecordValue(metricName string, value float64, labels map[string]string) {
	m.RecordValueContext(context.Background(), metricName, value, labels)
}

// RecordValueContext records value.
func (m *MetricsCollector) RecordValueContext(
	ctx context.Context,
	metricName string,
	value float64,
	labels map[string]string,
) {

	histogram := m.valueHistogram(metricName)
	if histogram == nil {
		return
	}

	histogram.Record(ctx, value, metric.WithAttributes(attributesFrom(labels)...))
}

func (m *MetricsCollector) durationHistogram(name string) metric.Float64Histogram {
	m.mu.Lock()
	defer m.mu.Unlock()

	if histogram, exists := m.durations[name]; exists {
		return histogram
	}

	histogram, err := m.meter.Float64Histogram(name, metric.WithDescription(describe(name)), metric.WithUnit("s"))
	if err != nil {
		return nil
	}

	m.durations[name] = histogram

	return histogram
}

func (m *MetricsCollector) counter(name string) metric.Int64Counter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if counter, exists := m.counters[name]; exists {
		return counter
	}

	counter, err := m.meter.Int64Counter(name, metric.WithDescription(describe(name)))
	if err != nil {
		return nil
	}

	m.counters[name] = counter

	return counter
}

func (m *MetricsCollector) valueHistogram(name string) metric.Float64Histogram {
	m.mu.Lock()
	defer m.mu.Unlock()

	if histogram, exists := m.valueHists[name]; exists {
		return histogram
	}

	histogram, err := m.meter.Float64Histogram(name, metric.WithDescription(describe(name)))
	if err != nil {
		return nil
	}

	m.valueHists[name] = histogram

	return histogram
}

func describe(name string) string {
	if description, ok := metricDescriptions[name]; ok {
		return description
	}

	return "Lending library metric"
}

func attributesFrom(labels map[string]string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(labels))
	for key, value := range labels {
		attrs = append(attrs, attribute.String(key, value))
	}

	return attrs
}

var _ lending.ContextualMetricsCollector = (*MetricsCollector)(nil)
