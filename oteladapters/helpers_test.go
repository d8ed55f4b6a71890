package oteladapters_test

import (
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func findHistogramMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Histogram[float64] {
	t.Helper()

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if h, ok := m.Data.(metricdata.Histogram[float64]); ok && m.Name == name {
				return h
			}
		}
	}

	t.Fatalf("histogram metric %s not found", name)

	return metricdata.Histogram[float64]{}
}

func findCounterMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Sum[int64] {
	t.Helper()

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if c, ok := m.Data.(metricdata.Sum[int64]); ok && m.Name == name {
				return c
			}
		}
	}

	t.Fatalf("counter metric %s not found", name)

	return metricdata.Sum[int64]{}
}

func spanAttribute(span tracetest.SpanStub, key string) (string, bool) {
	for _, attr := range span.Attributes {
		if attr.Key == attribute.Key(key) {
			return attr.Value.Emit(), true
		}
	}

	return "", false
}
