// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package emit

import (
	"context"
	"time"
)

// Clock abstracts "now", the runtime's clock slot. The default is the system
// wall clock; tests substitute a fixed or stepped clock.
type Clock interface {
	Now() time.Time
}

// systemClock is the default Clock, backed by time.Now.
type systemClock struct{}

// Now implements Clock.
func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the default wall-clock Clock.
var SystemClock Clock = systemClock{}

// RNG abstracts trace/span id generation, the runtime's rng slot. The
// default is seeded at first use via the package-level generators in
// ids_gen.go.
type RNG interface {
	TraceID() TraceID
	SpanID() SpanID
}

// defaultRNG is the default RNG, backed by GenerateTraceID/GenerateSpanID.
type defaultRNG struct{}

// TraceID implements RNG.
func (defaultRNG) TraceID() TraceID { return GenerateTraceID() }

// SpanID implements RNG.
func (defaultRNG) SpanID() SpanID { return GenerateSpanID() }

// DefaultRNG is the default thread-safe RNG.
var DefaultRNG RNG = defaultRNG{}

// Ctxt is the runtime's context slot: OpenPush/OpenRoot allocate frames,
// WithCurrent reads the frame current on ctx.
type Ctxt interface {
	OpenPush(ctx context.Context, props Props) (context.Context, *Frame)
	OpenRoot(ctx context.Context, props Props) (context.Context, *Frame)
	WithCurrent(ctx context.Context, f func(*Frame))
}

// contextCtxt is the default Ctxt, backed by the context.Context-carried
// Frame chain in context.go.
type contextCtxt struct{}

// OpenPush implements Ctxt.
func (contextCtxt) OpenPush(ctx context.Context, props Props) (context.Context, *Frame) {
	return OpenPush(ctx, props)
}

// OpenRoot implements Ctxt.
func (contextCtxt) OpenRoot(ctx context.Context, props Props) (context.Context, *Frame) {
	return OpenRoot(ctx, props)
}

// WithCurrent implements Ctxt.
func (contextCtxt) WithCurrent(ctx context.Context, do func(*Frame)) {
	do(CurrentFrame(ctx))
}

// DefaultCtxt is the default context.Context-backed Ctxt.
var DefaultCtxt Ctxt = contextCtxt{}

// Runtime is the single ambient bundle of (clock, rng, ctxt, filter, emitter)
// composed by Setup and published at most once per process.
type Runtime struct {
	Clock   Clock
	RNG     RNG
	Ctxt    Ctxt
	Filter  Filter
	Emitter Emitter
}

// Emit runs the hot emission path: filter check, context merge, emitter
// dispatch. A nil/unset event-kind module path is left as given by the
// caller.
func (rt *Runtime) Emit(ctx context.Context, e Event) {
	if !rt.Filter.Matches(e) {
		return
	}
	rt.Ctxt.WithCurrent(ctx, func(f *Frame) {
		rt.Emitter.Emit(e.Chain(Props(f)))
	})
}

// BlockingFlush flushes the runtime's emitter, dividing the timeout budget
// across composed emitters per the emitter's own BlockingFlush (see
// emitter.go's andEmitter for the monotonic-clock-measured split).
func (rt *Runtime) BlockingFlush(timeout time.Duration) bool {
	return rt.Emitter.BlockingFlush(timeout)
}
