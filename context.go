// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package emit

import (
	"context"
	"sync"
)

// FrameState is a Frame's lifecycle position: Created → Entered ⇄ Exited →
// Closed.
type FrameState uint8

const (
	FrameCreated FrameState = iota
	FrameEntered
	FrameExited
	FrameClosed
)

// Frame is a named, propertied scope contributing to the ambient context for
// the duration of its entry. Go has no observable, portable per-goroutine
// storage and no goroutine-exit hook a library can hang cleanup on, so the
// scope stack is expressed here as an explicit context.Context chain:
// OpenPush/OpenRoot allocate a Frame and hand back a context.Context that
// carries it, and a Frame crossing a goroutine boundary does so by the
// caller passing that context.Context into the new goroutine — the normal
// idiomatic Go mechanism for scoped, async-safe value propagation.
type Frame struct {
	mu    sync.Mutex
	state FrameState

	traceID      TraceID
	spanID       SpanID
	parentSpanID SpanID
	props        SliceProps
}

type frameKey struct{}

// CurrentFrame returns the Frame carried by ctx, or nil if none.
func CurrentFrame(ctx context.Context) *Frame {
	f, _ := ctx.Value(frameKey{}).(*Frame)
	return f
}

// TraceID returns the frame's trace id.
func (f *Frame) TraceID() TraceID { return f.traceID }

// SpanID returns the frame's span id.
func (f *Frame) SpanID() SpanID { return f.spanID }

// ParentSpanID returns the span id of the frame this one was pushed from, or
// the absent id for a root frame.
func (f *Frame) ParentSpanID() SpanID { return f.parentSpanID }

// State returns the frame's current lifecycle state.
func (f *Frame) State() FrameState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// ForEach implements Props: a frame contributes trace_id, span_id,
// span_parent, and its own merged properties — the set merged into every
// event emitted while the frame is current.
func (f *Frame) ForEach(visit Visitor) {
	if f == nil {
		return
	}
	if !f.traceID.IsAbsent() {
		if !visit(NewKey(KeyTraceID), f.traceID.ToValue()) {
			return
		}
	}
	if !f.spanID.IsAbsent() {
		if !visit(NewKey(KeySpanID), f.spanID.ToValue()) {
			return
		}
	}
	if !f.parentSpanID.IsAbsent() {
		if !visit(NewKey(KeySpanParent), f.parentSpanID.ToValue()) {
			return
		}
	}
	f.props.ForEach(visit)
}

// collectProps materializes an arbitrary Props into an ordered SliceProps, so
// a frame can retain it past the scope that produced it.
func collectProps(p Props) SliceProps {
	if p == nil {
		return nil
	}
	var out SliceProps
	p.ForEach(func(k Key, v Value) bool {
		out = append(out, Pair{Key: k.String(), Value: v.ToOwned().AsValue()})
		return true
	})
	return out
}

// mergeProps combines base with overlay, overlay's keys winning on conflict
// while preserving base's relative order for keys overlay doesn't touch.
func mergeProps(base SliceProps, overlay Props) SliceProps {
	overlaySlice := collectProps(overlay)
	seen := make(map[string]int, len(base)+len(overlaySlice))
	out := make(SliceProps, 0, len(base)+len(overlaySlice))
	for _, p := range base {
		if idx, ok := seen[p.Key]; ok {
			out[idx] = p
			continue
		}
		seen[p.Key] = len(out)
		out = append(out, p)
	}
	for _, p := range overlaySlice {
		if idx, ok := seen[p.Key]; ok {
			out[idx] = p
			continue
		}
		seen[p.Key] = len(out)
		out = append(out, p)
	}
	return out
}

// OpenPush allocates a new frame derived from the frame current on ctx: it
// inherits trace_id, sets parent_span_id to the current frame's span_id,
// re-rolls its own span_id (unless props supplies one explicitly), and
// merges current properties with props. If ctx carries no current frame
// this behaves like OpenRoot.
func OpenPush(ctx context.Context, props Props) (context.Context, *Frame) {
	if props == nil {
		props = EmptyProps
	}
	cur := CurrentFrame(ctx)

	nf := &Frame{}
	if cur == nil {
		nf.traceID = GenerateTraceID()
		nf.props = collectProps(props)
	} else {
		nf.traceID = cur.traceID
		nf.parentSpanID = cur.spanID
		nf.props = mergeProps(cur.props, props)
	}

	nf.spanID = SpanID{}
	if sid, ok := Pull[string](props, KeySpanID); ok {
		if id, err := ParseSpanID(sid); err == nil {
			nf.spanID = id
		}
	}
	if nf.spanID.IsAbsent() {
		nf.spanID = GenerateSpanID()
	}

	return context.WithValue(ctx, frameKey{}, nf), nf
}

// OpenRoot allocates a frame starting empty: a fresh trace_id and span_id,
// ignoring any frame current on ctx.
func OpenRoot(ctx context.Context, props Props) (context.Context, *Frame) {
	if props == nil {
		props = EmptyProps
	}
	nf := &Frame{
		traceID: GenerateTraceID(),
		spanID:  GenerateSpanID(),
		props:   collectProps(props),
	}
	return context.WithValue(ctx, frameKey{}, nf), nf
}

// Guard is returned by Frame.Enter and restores the previous *ctxPtr value
// when Exit is called.
type Guard struct {
	ctxPtr *context.Context
	prev   context.Context
	frame  *Frame
	exited bool
}

// Enter swaps *ctxPtr for a context carrying f, remembering the displaced
// value so Exit can restore it. Enter/Exit calls on the same *ctxPtr must
// nest in stack order; violating that order is a caller bug this type does
// not attempt to detect across goroutines.
func (f *Frame) Enter(ctxPtr *context.Context) *Guard {
	f.mu.Lock()
	f.state = FrameEntered
	f.mu.Unlock()

	g := &Guard{ctxPtr: ctxPtr, prev: *ctxPtr, frame: f}
	*ctxPtr = context.WithValue(*ctxPtr, frameKey{}, f)
	return g
}

// Exit restores the context displaced by Enter. Safe to call via defer
// immediately after Enter; calling Exit twice is a no-op.
func (g *Guard) Exit() {
	if g.exited {
		return
	}
	g.exited = true
	*g.ctxPtr = g.prev
	g.frame.mu.Lock()
	g.frame.state = FrameExited
	g.frame.mu.Unlock()
}

// Close transitions the frame to Closed. Call once the frame will never be
// entered again; further Enter calls on a closed frame are a caller bug.
func (f *Frame) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = FrameClosed
}

// Call runs scope with f entered on ctx for its duration, exiting
// unconditionally afterward — the common case wrapping Enter/defer Exit.
func (f *Frame) Call(ctx context.Context, scope func(context.Context)) {
	inner := ctx
	g := f.Enter(&inner)
	defer g.Exit()
	defer f.Close()
	scope(inner)
}
