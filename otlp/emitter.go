// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package otlp

import (
	"time"

	"github.com/emit-go/emit"
	"github.com/emit-go/emit/internal/batcher"
	"github.com/emit-go/emit/internal/telemetry"
)

// Emitter is the channel-backed emit.Emitter that plugs a Transport into
// Setup.EmitTo: Emit only enqueues onto the batching channel, never blocking
// on network I/O, and the dedicated drain goroutine owns every call into the
// configured Transport.
type Emitter struct {
	transport *Transport
	channel   *batcher.Channel[emit.Event]
}

// NewEmitter builds an Emitter for cfg, overlaying any EnvEndpoint/EnvTimeout/
// EnvInsecure values found in the process environment before constructing the
// Transport, and starts its dedicated drain goroutine with opts.
func NewEmitter(cfg Config, opts batcher.Options) *Emitter {
	t := NewTransport(ApplyEnv(cfg))
	return &Emitter{
		transport: t,
		channel:   batcher.New(opts, t.OnBatch),
	}
}

// Emit implements emit.Emitter by enqueueing onto the batching channel.
func (e *Emitter) Emit(evt emit.Event) { e.channel.Send(evt) }

// BlockingFlush implements emit.Emitter: waits for every event enqueued
// before this call to clear the batching channel (not necessarily
// acknowledged by the collector — a retried batch keeps draining after the
// deadline).
func (e *Emitter) BlockingFlush(timeout time.Duration) bool {
	return e.channel.BlockingFlush(timeout)
}

// Close drains the batching channel up to its configured flush deadline and
// stops its drain goroutine.
func (e *Emitter) Close() { e.channel.Close() }

// Metrics returns a composite source yielding both the Transport's
// (event_discarded, batch_failed) and the batching channel's
// (queue_overflow, batch_processed, batch_failed, batch_panicked,
// batch_retry) counters.
func (e *Emitter) Metrics() telemetry.Source {
	return telemetry.NewTree().Add(e.transport.Metrics()).Add(e.channel.Metrics())
}
