// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package otlp

import (
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"

	"github.com/emit-go/emit"
)

var spanSkip = map[string]bool{
	emit.KeyTimestamp: true, emit.KeyTimestampStart: true, emit.KeyTemplate: true,
	emit.KeyMessage: true, emit.KeyLevel: true, emit.KeyModule: true,
	emit.KeyTraceID: true, emit.KeySpanID: true, emit.KeySpanParent: true,
	emit.KeySpanName: true, emit.KeyEventKind: true,
}

// EncodeSpan renders a span-kind event (interval extent, evt_kind=span) as an
// OTLP Span. Events with an empty extent are not spans and are dropped by
// the caller before reaching here.
func EncodeSpan(e emit.Event) *tracepb.Span {
	start, _ := e.Extent.Start()
	end, _ := e.Extent.End()

	name, _ := emit.Pull[string](e.Props, emit.KeySpanName)
	if name == "" {
		name = e.Module
	}

	span := &tracepb.Span{
		Name:              name,
		StartTimeUnixNano: uint64(start.UnixNano()),
		EndTimeUnixNano:   uint64(end.UnixNano()),
		Attributes:        attrsFrom(e, spanSkip),
	}
	if tid := e.TraceID(); !tid.IsAbsent() {
		span.TraceId = tid[:]
	}
	if sid := e.SpanID(); !sid.IsAbsent() {
		span.SpanId = sid[:]
	}
	if parent, ok := emit.Pull[string](e.Props, emit.KeySpanParent); ok {
		if pid, err := emit.ParseSpanID(parent); err == nil && !pid.IsAbsent() {
			span.ParentSpanId = pid[:]
		}
	}
	return span
}

// EncodeResourceSpans groups a batch of span-kind events by module into OTLP
// ResourceSpans/ScopeSpans envelopes under the shared resource.
func EncodeResourceSpans(resource Resource, events []emit.Event) *tracepb.ResourceSpans {
	out := &tracepb.ResourceSpans{Resource: resource.Encode()}
	for module, group := range scopeGroups(events) {
		scopeSpans := &tracepb.ScopeSpans{Scope: scopeOf(module)}
		for _, e := range group {
			scopeSpans.Spans = append(scopeSpans.Spans, EncodeSpan(e))
		}
		out.ScopeSpans = append(out.ScopeSpans, scopeSpans)
	}
	return out
}
