// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package emit

// Well-known property keys, reserved across the pipeline.
const (
	KeyTimestamp      = "ts"
	KeyTimestampStart = "ts_start"
	KeyTemplate       = "tpl"
	KeyMessage        = "msg"
	KeyLevel          = "lvl"
	KeyModule         = "mdl"
	KeyTraceID        = "trace_id"
	KeySpanID         = "span_id"
	KeySpanParent     = "span_parent"
	KeySpanName       = "span_name"
	KeyError          = "err"
	KeyEventKind      = "evt_kind"
	KeyMetricName     = "metric_name"
	KeyMetricAgg      = "metric_agg"
	KeyMetricValue    = "metric_value"
)

// EventKind classifies an event for OTLP signal routing.
type EventKind string

const (
	// EventKindLog is the default: an event with neither evt_kind=span nor
	// evt_kind=metric is a log record.
	EventKindLog    EventKind = ""
	EventKindSpan   EventKind = "span"
	EventKindMetric EventKind = "metric"
)

// MetricAgg is the aggregation kind of a metric event.
type MetricAgg string

const (
	MetricAggCount MetricAgg = "count"
	MetricAggSum   MetricAgg = "sum"
	MetricAggMin   MetricAgg = "min"
	MetricAggMax   MetricAgg = "max"
	MetricAggLast  MetricAgg = "last"
)

// Event is an immutable bundle of {extent, template, properties, module
// path}. Once built it is handed to the emitter pipeline by value. Event has
// no deep-copy method: an emitter that queues events (the otlp Emitter's
// batching channel) keeps the Event as given, Props included.
type Event struct {
	Module   string
	Extent   Extent
	Template Template
	Props    Props
}

// NewEvent builds an Event. props may be nil, in which case EmptyProps is
// used.
func NewEvent(module string, extent Extent, tpl Template, props Props) Event {
	if props == nil {
		props = EmptyProps
	}
	return Event{Module: module, Extent: extent, Template: tpl, Props: props}
}

// Msg renders the event's template against its own properties — the msg
// well-known value.
func (e Event) Msg() string { return e.Template.Render(e.Props) }

// Chain returns a new Event whose property view is e's properties chained
// with other (e's properties win lookups), without touching Extent/Template.
func (e Event) Chain(other Props) Event {
	return Event{Module: e.Module, Extent: e.Extent, Template: e.Template, Props: Chain(e.Props, other)}
}

// ForEach visits every property of the event, including the well-known
// derived ones (ts, ts_start, tpl, msg, mdl) ahead of the event's own
// properties.
func (e Event) ForEach(visit Visitor) {
	if end, ok := e.Extent.End(); ok {
		if start, ok := e.Extent.Start(); ok && e.Extent.IsInterval() {
			if !visit(NewKey(KeyTimestampStart), Capture(start)) {
				return
			}
		}
		if !visit(NewKey(KeyTimestamp), Capture(end)) {
			return
		}
	}
	if !visit(NewKey(KeyTemplate), Capture(e.Template.String())) {
		return
	}
	if !visit(NewKey(KeyMessage), Capture(e.Msg())) {
		return
	}
	if e.Module != "" {
		if !visit(NewKey(KeyModule), Capture(e.Module)) {
			return
		}
	}
	e.Props.ForEach(visit)
}

// Kind classifies the event: a span iff it has an interval extent and
// evt_kind=span; a metric iff evt_kind=metric; a log otherwise.
func (e Event) Kind() EventKind {
	kindVal, ok := Get(e.Props, KeyEventKind)
	if !ok {
		return EventKindLog
	}
	s, _ := kindVal.ToString()
	switch EventKind(s) {
	case EventKindSpan:
		if e.Extent.IsInterval() {
			return EventKindSpan
		}
		return EventKindLog
	case EventKindMetric:
		return EventKindMetric
	default:
		return EventKindLog
	}
}

// Level returns the event's lvl well-known property, defaulting to Info.
func (e Event) Level() Level {
	v, ok := Get(e.Props, KeyLevel)
	if !ok {
		return LevelInfo
	}
	l, _ := ToLevel(v)
	return l
}

// TraceID returns the event's trace_id well-known property, or the absent id.
func (e Event) TraceID() TraceID {
	v, ok := Get(e.Props, KeyTraceID)
	if !ok {
		return TraceID{}
	}
	s, _ := v.ToString()
	id, _ := ParseTraceID(s)
	return id
}

// SpanID returns the event's span_id well-known property, or the absent id.
func (e Event) SpanID() SpanID {
	v, ok := Get(e.Props, KeySpanID)
	if !ok {
		return SpanID{}
	}
	s, _ := v.ToString()
	id, _ := ParseSpanID(s)
	return id
}
