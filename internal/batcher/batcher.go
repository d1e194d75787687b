// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

// Package batcher is the bounded MPSC channel sitting between synchronous
// item submission on application goroutines and asynchronous delivery of
// batches to a collector. It never blocks a sender: a full channel drops the
// newest item and counts the drop rather than applying backpressure.
package batcher

import (
	"bytes"
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/DataDog/gostackparse"
	"golang.org/x/sync/errgroup"

	"github.com/emit-go/emit/internal/log"
	"github.com/emit-go/emit/internal/telemetry"
)

// Retry is returned by an OnBatch callback to re-enqueue Remainder for the
// next drain pass, rather than treating the batch as permanently failed.
// Remainder must be a trailing suffix of the batch OnBatch was called with,
// preserving original enqueue order across the retry.
type Retry[T any] struct {
	Remainder []T
}

func (*Retry[T]) Error() string { return "emit: batch retry requested" }

// OnBatch consumes one drained batch. A nil error means the whole batch
// succeeded. A *Retry error re-enqueues its Remainder; any other error drops
// the batch and counts it as a permanent failure.
type OnBatch[T any] func(batch []T) error

// Options configures a Channel.
type Options struct {
	Capacity      int
	RetryLimit    int
	EmptyQuantum  time.Duration
	FlushDeadline time.Duration
}

// DefaultOptions mirrors the defaults named in the channel's failure-handling
// contract: a bounded retry count of 10 and a 1ms empty-queue poll quantum.
func DefaultOptions() Options {
	return Options{
		Capacity:      1024,
		RetryLimit:    10,
		EmptyQuantum:  time.Millisecond,
		FlushDeadline: 5 * time.Second,
	}
}

type pendingItem[T any] struct {
	item    T
	retries int
}

// Channel is the bounded MPSC batching channel for item type T.
type Channel[T any] struct {
	opts    Options
	onBatch OnBatch[T]

	mu      sync.Mutex
	queue   []pendingItem[T]
	closed  bool
	writeN  uint64
	readN   uint64
	waiters []flushWaiter

	trigger *trigger

	metrics struct {
		queueOverflow *telemetry.Counter
		batchProcessed *telemetry.Counter
		batchFailed    *telemetry.Counter
		batchPanicked  *telemetry.Counter
		batchRetry     *telemetry.Counter
	}

	group    *errgroup.Group
	groupCtx context.Context
	cancel   context.CancelFunc
}

type flushWaiter struct {
	atWrite uint64
	done    chan struct{}
}

// New starts a Channel with a dedicated drain goroutine calling onBatch.
func New[T any](opts Options, onBatch OnBatch[T]) *Channel[T] {
	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)

	c := &Channel[T]{
		opts:     opts,
		onBatch:  onBatch,
		trigger:  newTrigger(),
		group:    g,
		groupCtx: gctx,
		cancel:   cancel,
	}
	c.metrics.queueOverflow = telemetry.NewCounter("queue_overflow", telemetry.AggCount)
	c.metrics.batchProcessed = telemetry.NewCounter("batch_processed", telemetry.AggCount)
	c.metrics.batchFailed = telemetry.NewCounter("batch_failed", telemetry.AggCount)
	c.metrics.batchPanicked = telemetry.NewCounter("batch_panicked", telemetry.AggCount)
	c.metrics.batchRetry = telemetry.NewCounter("batch_retry", telemetry.AggCount)

	g.Go(func() error {
		c.drainLoop(gctx)
		return nil
	})
	return c
}

// Metrics returns a composite source yielding this channel's counters.
func (c *Channel[T]) Metrics() telemetry.Source {
	return telemetry.NewTree().
		Add(c.metrics.queueOverflow).
		Add(c.metrics.batchProcessed).
		Add(c.metrics.batchFailed).
		Add(c.metrics.batchPanicked).
		Add(c.metrics.batchRetry)
}

// Send enqueues item without blocking. If the channel is at capacity, item is
// dropped and queue_overflow increments.
func (c *Channel[T]) Send(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if len(c.queue) >= c.opts.Capacity {
		c.metrics.queueOverflow.Inc()
		return
	}
	c.queue = append(c.queue, pendingItem[T]{item: item})
	c.writeN++
}

// OnNextFlush registers f to run once every item enqueued before this call
// has been through on_batch (ack, retry-exhaustion drop, or panic drop).
func (c *Channel[T]) OnNextFlush(f func()) {
	c.mu.Lock()
	atWrite := c.writeN
	if c.readN >= atWrite {
		c.mu.Unlock()
		f()
		return
	}
	done := make(chan struct{})
	c.waiters = append(c.waiters, flushWaiter{atWrite: atWrite, done: done})
	c.mu.Unlock()
	go func() {
		<-done
		f()
	}()
}

// BlockingFlush waits up to timeout for every item enqueued before this call
// to clear the channel, returning whether it did so before the deadline.
func (c *Channel[T]) BlockingFlush(timeout time.Duration) bool {
	c.mu.Lock()
	target := c.writeN
	c.mu.Unlock()
	return c.trigger.waitUntil(timeout, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.readN >= target
	})
}

// Close stops the drain goroutine, draining the channel up to the configured
// flush deadline; items still queued when the deadline elapses are dropped
// and counted as failed.
func (c *Channel[T]) Close() {
	c.BlockingFlush(c.opts.FlushDeadline)
	c.mu.Lock()
	c.closed = true
	dropped := len(c.queue)
	c.queue = nil
	c.mu.Unlock()
	if dropped > 0 {
		c.metrics.batchFailed.Add(uint64(dropped))
	}
	c.cancel()
	c.group.Wait()
}

func (c *Channel[T]) drainLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		batch := c.takeAll()
		if len(batch) == 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.opts.EmptyQuantum):
			}
			continue
		}

		remainder := c.runBatch(batch)
		c.requeueOrDrop(remainder)
		c.notifyProgress()
	}
}

func (c *Channel[T]) takeAll() []pendingItem[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return nil
	}
	batch := c.queue
	c.queue = nil
	return batch
}

// runBatch calls onBatch, recovering a panic into the batch_panicked counter
// and dropping the entire batch rather than propagating the panic into the
// drain goroutine. A retried remainder inherits each original item's retry
// count (matched by trailing position, since Remainder is a suffix of the
// batch), so the bounded retry limit is enforced per item, not per batch.
func (c *Channel[T]) runBatch(batch []pendingItem[T]) []pendingItem[T] {
	items := make([]T, len(batch))
	for i, p := range batch {
		items[i] = p.item
	}

	var remainderLen int
	var retryable, failed bool
	func() {
		defer func() {
			if r := recover(); r != nil {
				c.metrics.batchPanicked.Inc()
				logPanic(r)
			}
		}()
		err := c.onBatch(items)
		if err == nil {
			c.metrics.batchProcessed.Inc()
			return
		}
		if rt, ok := err.(*Retry[T]); ok {
			retryable = true
			remainderLen = len(rt.Remainder)
			return
		}
		failed = true
	}()

	if failed {
		c.metrics.batchFailed.Inc()
		return nil
	}
	if !retryable || remainderLen == 0 {
		return nil
	}
	c.metrics.batchRetry.Inc()

	kept := batch[len(batch)-remainderLen:]
	out := make([]pendingItem[T], len(kept))
	for i, p := range kept {
		out[i] = pendingItem[T]{item: p.item, retries: p.retries + 1}
	}
	return out
}

func (c *Channel[T]) requeueOrDrop(remainder []pendingItem[T]) {
	if len(remainder) == 0 {
		return
	}

	keep := make([]pendingItem[T], 0, len(remainder))
	dropped := 0
	for _, p := range remainder {
		if p.retries > c.opts.RetryLimit {
			dropped++
			continue
		}
		keep = append(keep, p)
	}
	if dropped > 0 {
		c.metrics.batchFailed.Add(uint64(dropped))
	}

	c.mu.Lock()
	c.queue = append(keep, c.queue...)
	c.mu.Unlock()
}

func (c *Channel[T]) notifyProgress() {
	c.mu.Lock()
	c.readN = c.writeN - uint64(len(c.queue))
	ready := c.waiters[:0]
	var fire []flushWaiter
	for _, w := range c.waiters {
		if c.readN >= w.atWrite {
			fire = append(fire, w)
			continue
		}
		ready = append(ready, w)
	}
	c.waiters = ready
	c.mu.Unlock()

	for _, w := range fire {
		close(w.done)
	}
	c.trigger.broadcast()
}

// logPanic reports a recovered on_batch panic with a symbol-parsed goroutine
// stack rather than a raw byte blob, so the internal logger's output stays
// readable.
func logPanic(r any) {
	buf := make([]byte, 16<<10)
	n := runtime.Stack(buf, false)
	goroutines, _ := gostackparse.Parse(bytes.NewReader(buf[:n]))

	if len(goroutines) == 0 || len(goroutines[0].Stack) == 0 {
		log.Error("batching channel recovered a panic in on_batch: %v", r)
		return
	}
	top := goroutines[0].Stack[0]
	log.Error("batching channel recovered a panic in on_batch: %v (at %s:%d)", r, top.File, top.Line)
}
