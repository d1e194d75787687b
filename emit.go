// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package emit

import (
	"context"
	"time"
)

// Debug emits a log event at LevelDebug against the ambient runtime.
func Debug(ctx context.Context, tpl string, props Props) { log(ctx, LevelDebug, tpl, props) }

// Info emits a log event at LevelInfo against the ambient runtime.
func Info(ctx context.Context, tpl string, props Props) { log(ctx, LevelInfo, tpl, props) }

// Warn emits a log event at LevelWarn against the ambient runtime.
func Warn(ctx context.Context, tpl string, props Props) { log(ctx, LevelWarn, tpl, props) }

// Error emits a log event at LevelError against the ambient runtime.
func Error(ctx context.Context, tpl string, props Props) { log(ctx, LevelError, tpl, props) }

// log builds and dispatches a point-extent log Event. Template string parsing
// happens here rather than at a macro-expansion layer, since the compile-time
// expansion of a template literal into a property tuple is not part of this
// package's scope; callers pass already-separated template and properties.
func log(ctx context.Context, lvl Level, tpl string, props Props) {
	rt := Ambient()
	if rt == nil {
		return
	}
	if props == nil {
		props = EmptyProps
	}
	withLevel := Chain(SliceProps{{Key: KeyLevel, Value: lvl.ToValue()}}, props)
	e := NewEvent("", PointExtent(rt.Clock.Now()), Parse(tpl), withLevel)
	rt.Emit(ctx, e)
}

// Span opens a push frame named name, runs body with that frame current, and
// on return emits a span event whose interval extent covers body's execution
// and whose properties include props plus whatever the frame accumulated.
// The span event's evt_kind is "span" and its span_name is name.
func Span(ctx context.Context, name string, props Props, body func(context.Context)) {
	rt := Ambient()
	if rt == nil {
		body(ctx)
		return
	}
	if props == nil {
		props = EmptyProps
	}

	spanProps := Chain(SliceProps{{Key: KeySpanName, Value: Capture(name)}}, props)
	spanCtx, frame := rt.Ctxt.OpenPush(ctx, spanProps)

	start := rt.Clock.Now()
	inner := spanCtx
	guard := frame.Enter(&inner)
	func() {
		defer guard.Exit()
		defer frame.Close()
		body(inner)
	}()
	end := rt.Clock.Now()

	withKind := SliceProps{
		{Key: KeyEventKind, Value: Capture(string(EventKindSpan))},
		{Key: KeySpanName, Value: Capture(name)},
	}
	e := NewEvent(name, IntervalExtent(start, end), Parse(name), Chain(withKind, props))
	// Emit against spanCtx, not ctx: spanCtx still carries this span's own
	// frame (trace_id/span_id/span_parent), while ctx only carries whatever
	// frame was current before this span opened (the parent, or none for a
	// root span) — emitting against ctx would merge the wrong frame's ids.
	rt.Emit(spanCtx, e)
}

// Metric emits a metric event carrying name, agg, and value against the
// ambient runtime.
func Metric(ctx context.Context, name string, agg MetricAgg, value float64, props Props) {
	rt := Ambient()
	if rt == nil {
		return
	}
	if props == nil {
		props = EmptyProps
	}
	withKind := SliceProps{
		{Key: KeyEventKind, Value: Capture(string(EventKindMetric))},
		{Key: KeyMetricName, Value: Capture(name)},
		{Key: KeyMetricAgg, Value: Capture(string(agg))},
		{Key: KeyMetricValue, Value: Capture(value)},
	}
	e := NewEvent(name, PointExtent(rt.Clock.Now()), Parse(name), Chain(withKind, props))
	rt.Emit(ctx, e)
}

// Flush blocks up to timeout waiting for the ambient runtime's emitter to
// hand off pending events, returning false (and the ambient runtime being
// nil counts as already flushed) if the deadline elapses first.
func Flush(timeout time.Duration) bool {
	rt := Ambient()
	if rt == nil {
		return true
	}
	return rt.BlockingFlush(timeout)
}
