// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package otlp

import (
	metricspb "go.opentelemetry.io/proto/otlp/metrics/v1"

	"github.com/emit-go/emit"
)

var metricSkip = map[string]bool{
	emit.KeyTimestamp: true, emit.KeyTemplate: true, emit.KeyMessage: true,
	emit.KeyLevel: true, emit.KeyModule: true, emit.KeyEventKind: true,
	emit.KeyMetricName: true, emit.KeyMetricAgg: true, emit.KeyMetricValue: true,
}

// EncodeMetric renders a metric-kind event as an OTLP Metric: a Sum for
// count/sum aggregations (monotonic for count), a Gauge for min/max/last.
func EncodeMetric(e emit.Event) *metricspb.Metric {
	ts, _ := e.Extent.End()
	name, _ := emit.Pull[string](e.Props, emit.KeyMetricName)
	aggStr, _ := emit.Pull[string](e.Props, emit.KeyMetricAgg)
	value, _ := emit.Pull[float64](e.Props, emit.KeyMetricValue)
	agg := emit.MetricAgg(aggStr)

	point := &metricspb.NumberDataPoint{
		TimeUnixNano: uint64(ts.UnixNano()),
		Value:        &metricspb.NumberDataPoint_AsDouble{AsDouble: value},
		Attributes:   attrsFrom(e, metricSkip),
	}

	m := &metricspb.Metric{Name: name}
	switch agg {
	case emit.MetricAggCount, emit.MetricAggSum:
		m.Data = &metricspb.Metric_Sum{Sum: &metricspb.Sum{
			DataPoints:             []*metricspb.NumberDataPoint{point},
			AggregationTemporality: metricspb.AggregationTemporality_AGGREGATION_TEMPORALITY_CUMULATIVE,
			IsMonotonic:            agg == emit.MetricAggCount,
		}}
	default:
		m.Data = &metricspb.Metric_Gauge{Gauge: &metricspb.Gauge{
			DataPoints: []*metricspb.NumberDataPoint{point},
		}}
	}
	return m
}

// EncodeResourceMetrics groups a batch of metric-kind events by module into
// OTLP ResourceMetrics/ScopeMetrics envelopes under the shared resource.
func EncodeResourceMetrics(resource Resource, events []emit.Event) *metricspb.ResourceMetrics {
	out := &metricspb.ResourceMetrics{Resource: resource.Encode()}
	for module, group := range scopeGroups(events) {
		scopeMetrics := &metricspb.ScopeMetrics{Scope: scopeOf(module)}
		for _, e := range group {
			scopeMetrics.Metrics = append(scopeMetrics.Metrics, EncodeMetric(e))
		}
		out.ScopeMetrics = append(out.ScopeMetrics, scopeMetrics)
	}
	return out
}
