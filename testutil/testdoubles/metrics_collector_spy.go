package testdoubles

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/AntonStoeckl/lending-library-go/lending"
)

// MetricsCollectorSpy is a MetricsCollector implementation that captures metrics calls for testing.
// It also implements the contextual variants, which record the same way.
type MetricsCollectorSpy struct {
	durationRecords []SpyDurationRecord
	counterRecords  []SpyCounterRecord
	valueRecords    []SpyValueRecord
	mu              sync.Mutex
	recordCalls     bool
}

// SpyDurationRecord represents a recorded duration metric call.
type SpyDurationRecord struct {
	Metric   string
	Duration time.Duration
	Labels   map[string]string
}

// SpyCounterRecord represents a recorded counter increment call.
type SpyCounterRecord struct {
	Metric string
	Labels map[string]string
}

// SpyValueRecord represents a recorded value metric call.
type SpyValueRecord struct {
	Metric string
	Value  float64
	Labels map[string]string
}

// NewMetricsCollectorSpy creates a new MetricsCollectorSpy.
// Set recordCalls to true to capture all metrics calls for inspection in tests.
func NewMetricsCollectorSpy(recordCalls bool) *MetricsCollectorSpy {
	return &MetricsCollectorSpy{
		durationRecords: make([]SpyDurationRecord, 0),
		counterRecords:  make([]SpyCounterRecord, 0),
		valueRecords:    make([]SpyValueRecord, 0),
		recordCalls:     recordCalls,
	}
}

// RecordDuration implements the MetricsCollector interface.
func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.durationRecords = append(s.durationRecords, SpyDurationRecord{
		Metric:   metric,
		Duration: duration,
		Labels:   maps.Clone(labels),
	})
}

// IncrementCounter implements the MetricsCollector interface.
func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.counterRecords = append(s.counterRecords, SpyCounterRecord{
		Metric: metric,
		Labels: maps.Clone(labels),
	})
}

// RecordValue implements the MetricsCollector interface.
func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.valueRecords = append(s.valueRecords, SpyValueRecord{
		Metric: metric,
		Value:  value,
		Labels: maps.Clone(labels),
	})
}

// RecordDurationContext implements the ContextualMetricsCollector interface.
func (s *MetricsCollectorSpy) RecordDurationContext(
	_ context.Context,
	metric string,
	duration time.Duration,
	labels map[string]string,
) {
	s.RecordDuration(metric, duration, labels)
}

// IncrementCounterContext implements the ContextualMetricsCollector interface.
func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.IncrementCounter(metric, labels)
}

// RecordValueContext implements the ContextualMetricsCollector interface.
func (s *MetricsCollectorSpy) RecordValueContext(
	_ context.Context,
	metric string,
	value float64,
	labels map[string]string,
) {
	s.RecordValue(metric, value, labels)
}

// GetValueRecords returns a copy of all captured value records.
func (s *MetricsCollectorSpy) GetValueRecords() []SpyValueRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]SpyValueRecord, len(s.valueRecords))
	copy(records, s.valueRecords)

	return records
}

// Reset clears all captured metric records.
func (s *MetricsCollectorSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.durationRecords = s.durationRecords[:0]
	s.counterRecords = s.counterRecords[:0]
	s.valueRecords = s.valueRecords[:0]
}

// MetricRecordMatcher provides a fluent interface for checking metric records.
type MetricRecordMatcher struct {
	candidates []map[string]string
}

// HasDurationRecordForMetric starts a fluent chain to check a duration record.
func (s *MetricsCollectorSpy) HasDurationRecordForMetric(metric string) *MetricRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	matcher := &MetricRecordMatcher{}
	for _, record := range s.durationRecords {
		if record.Metric == metric {
			matcher.candidates = append(matcher.candidates, record.Labels)
		}
	}

	return matcher
}

// HasCounterRecordForMetric starts a fluent chain to check a counter record.
func (s *MetricsCollectorSpy) HasCounterRecordForMetric(metric string) *MetricRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	matcher := &MetricRecordMatcher{}
	for _, record := range s.counterRecords {
		if record.Metric == metric {
			matcher.candidates = append(matcher.candidates, record.Labels)
		}
	}

	return matcher
}

// HasValueRecordForMetric starts a fluent chain to check a value record.
func (s *MetricsCollectorSpy) HasValueRecordForMetric(metric string) *MetricRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	matcher := &MetricRecordMatcher{}
	for _, record := range s.valueRecords {
		if record.Metric == metric {
			matcher.candidates = append(matcher.candidates, record.Labels)
		}
	}

	return matcher
}

// WithOperation checks if the record has the specified operation label.
func (m *MetricRecordMatcher) WithOperation(operation string) *MetricRecordMatcher {
	return m.WithLabel("operation", operation)
}

// WithStatus checks if the record has the specified status label.
func (m *MetricRecordMatcher) WithStatus(status string) *MetricRecordMatcher {
	return m.WithLabel("status", status)
}

// WithLabel checks if the record has the specified label with the given value.
func (m *MetricRecordMatcher) WithLabel(key, value string) *MetricRecordMatcher {
	kept := m.candidates[:0:0]
	for _, labels := range m.candidates {
		if labelValue, exists := labels[key]; exists && labelValue == value {
			kept = append(kept, labels)
		}
	}

	m.candidates = kept

	return m
}

// Assert returns true if all conditions in the fluent chain were met.
func (m *MetricRecordMatcher) Assert() bool {
	return len(m.candidates) > 0
}

// CountDurationRecordsForMetric counts how many duration records exist for a specific metric.
func (s *MetricsCollectorSpy) CountDurationRecordsForMetric(metric string) int {
	return len(s.HasDurationRecordForMetric(metric).candidates)
}

// CountCounterRecordsForMetric counts how many counter records exist for a specific metric.
func (s *MetricsCollectorSpy) CountCounterRecordsForMetric(metric string) int {
	return len(s.HasCounterRecordForMetric(metric).candidates)
}

// SumValueRecordsForMetric sums the values of all value records of a specific metric.
func (s *MetricsCollectorSpy) SumValueRecordsForMetric(metric string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum float64
	for _, record := range s.valueRecords {
		if record.Metric == metric {
			sum += record.Value
		}
	}

	return sum
}

// Compile-time check to ensure MetricsCollectorSpy implements the ContextualMetricsCollector port.
var _ lending.ContextualMetricsCollector = (*MetricsCollectorSpy)(nil)
