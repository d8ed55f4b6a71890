package testdoubles

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/lending-library-go/lending"
)

// SpySpanContext implements the lending.SpanContext interface for testing tracing functionality.
type SpySpanContext struct {
	status     string
	attributes map[string]string
	mu         sync.Mutex
}

// SetStatus implements the SpanContext interface for testing.
func (c *SpySpanContext) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
}

// AddAttribute implements the SpanContext interface for testing.
func (c *SpySpanContext) AddAttribute(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.attributes == nil {
		c.attributes = make(map[string]string)
	}
	c.attributes[key] = value
}

// GetStatus returns the current status of the span for testing.
func (c *SpySpanContext) GetStatus() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// GetAttributes returns a copy of all attributes for testing.
func (c *SpySpanContext) GetAttributes() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return maps.Clone(c.attributes)
}

// TracingCollectorSpy is a TracingCollector implementation that captures tracing calls for testing.
type TracingCollectorSpy struct {
	spanRecords []SpySpanRecord
	mu          sync.Mutex
	recordCalls bool
}

// SpySpanRecord represents a recorded span operation for testing.
type SpySpanRecord struct {
	Name            string
	StartAttributes map[string]string
	Status          string
	EndAttributes   map[string]string
	SpanContext     *SpySpanContext
}

// NewTracingCollectorSpy creates a new TracingCollectorSpy.
// Set recordCalls to true to capture all tracing calls for inspection in tests.
func NewTracingCollectorSpy(recordCalls bool) *TracingCollectorSpy {
	return &TracingCollectorSpy{
		spanRecords: make([]SpySpanRecord, 0),
		recordCalls: recordCalls,
	}
}

// StartSpan implements the TracingCollector interface for testing.
func (s *TracingCollectorSpy) StartSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, lending.SpanContext) {

	if !s.recordCalls {
		return ctx, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	spanCtx := &SpySpanContext{
		attributes: make(map[string]string),
	}

	s.spanRecords = append(s.spanRecords, SpySpanRecord{
		Name:            name,
		StartAttributes: maps.Clone(attrs),
		SpanContext:     spanCtx,
	})

	return ctx, spanCtx
}

// FinishSpan implements the TracingCollector interface for testing.
func (s *TracingCollectorSpy) FinishSpan(spanCtx lending.SpanContext, status string, attrs map[string]string) {
	if !s.recordCalls || spanCtx == nil {
		return
	}

	testSpanCtx, ok := spanCtx.(*SpySpanContext)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.spanRecords {
		if s.spanRecords[i].SpanContext == testSpanCtx {
			s.spanRecords[i].Status = status
			s.spanRecords[i].EndAttributes = maps.Clone(attrs)
			break
		}
	}
}

// GetSpanRecordCount returns the number of captured span records.
func (s *TracingCollectorSpy) GetSpanRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.spanRecords)
}

// Reset clears all captured span records.
func (s *TracingCollectorSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spanRecords = s.spanRecords[:0]
}

// SpanRecordMatcher provides a fluent interface for checking span records.
type SpanRecordMatcher struct {
	candidates []SpySpanRecord
}

// HasSpanRecordForName starts a fluent chain to check a span record.
func (s *TracingCollectorSpy) HasSpanRecordForName(name string) *SpanRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	matcher := &SpanRecordMatcher{}
	for _, record := range s.spanRecords {
		if record.Name == name {
			matcher.candidates = append(matcher.candidates, record)
		}
	}

	return matcher
}

// WithStatus checks if the span record has the specified status.
func (m *SpanRecordMatcher) WithStatus(status string) *SpanRecordMatcher {
	return m.keep(func(record SpySpanRecord) bool {
		return record.Status == status
	})
}

// WithStartAttribute checks if the span record has the specified start attribute.
func (m *SpanRecordMatcher) WithStartAttribute(key, value string) *SpanRecordMatcher {
	return m.keep(func(record SpySpanRecord) bool {
		attrValue, exists := record.StartAttributes[key]
		return exists && attrValue == value
	})
}

// WithEndAttribute checks if the span record has the specified end attribute.
func (m *SpanRecordMatcher) WithEndAttribute(key, value string) *SpanRecordMatcher {
	return m.keep(func(record SpySpanRecord) bool {
		attrValue, exists := record.EndAttributes[key]
		return exists && attrValue == value
	})
}

// WithSpanAttribute checks if the span context has the specified attribute.
func (m *SpanRecordMatcher) WithSpanAttribute(key, value string) *SpanRecordMatcher {
	return m.keep(func(record SpySpanRecord) bool {
		if record.SpanContext == nil {
			return false
		}

		attrValue, exists := record.SpanContext.GetAttributes()[key]
		return exists && attrValue == value
	})
}

func (m *SpanRecordMatcher) keep(accept func(record SpySpanRecord) bool) *SpanRecordMatcher {
	kept := m.candidates[:0:0]
	for _, record := range m.candidates {
		if accept(record) {
			kept = append(kept, record)
		}
	}

	m.candidates = kept

	return m
}

// Assert returns true if all conditions in the fluent chain were met.
func (m *SpanRecordMatcher) Assert() bool {
	return len(m.candidates) > 0
}

// CountSpanRecordsForName counts how many span records exist for a specific name.
func (s *TracingCollectorSpy) CountSpanRecordsForName(name string) int {
	return len(s.HasSpanRecordForName(name).candidates)
}

// Compile-time check to ensure TracingCollectorSpy implements the TracingCollector port.
var _ lending.TracingCollector = (*TracingCollectorSpy)(nil)
