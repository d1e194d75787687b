// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package batcher

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/emit-go/emit/internal/telemetry"
)

func fastOptions() Options {
	return Options{
		Capacity:      16,
		RetryLimit:    2,
		EmptyQuantum:  time.Millisecond,
		FlushDeadline: time.Second,
	}
}

func sampleFor(samples []telemetry.Sample, name string) uint64 {
	for _, s := range samples {
		if s.Name == name {
			return s.Value
		}
	}
	return 0
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestChannelDeliversAllItems(t *testing.T) {
	var mu sync.Mutex
	var got []int

	c := New(fastOptions(), func(batch []int) error {
		mu.Lock()
		got = append(got, batch...)
		mu.Unlock()
		return nil
	})
	defer c.Close()

	for i := 0; i < 10; i++ {
		c.Send(i)
	}
	assert.True(t, c.BlockingFlush(time.Second))

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestChannelOverflowCountsExactly(t *testing.T) {
	block := make(chan struct{})
	c := New(Options{Capacity: 2, RetryLimit: 1, EmptyQuantum: time.Millisecond, FlushDeadline: time.Second},
		func(batch []int) error {
			<-block
			return nil
		})
	defer func() {
		close(block)
		c.Close()
	}()

	// Let the drain loop settle into its empty-queue poll cycle so the sends
	// below land together, before any of them is taken off the queue.
	time.Sleep(30 * time.Millisecond)

	for i := 0; i < 5; i++ {
		c.Send(i)
	}
	time.Sleep(50 * time.Millisecond)

	samples := c.Metrics().Sample()
	assert.Equal(t, uint64(3), sampleFor(samples, "queue_overflow"))
}

func TestChannelRetryEventuallySucceeds(t *testing.T) {
	var mu sync.Mutex
	attempts := 0

	c := New(fastOptions(), func(batch []int) error {
		mu.Lock()
		attempts++
		n := attempts
		mu.Unlock()
		if n < 2 {
			return &Retry[int]{Remainder: batch}
		}
		return nil
	})
	defer c.Close()

	c.Send(1)
	assert.True(t, c.BlockingFlush(time.Second))

	samples := c.Metrics().Sample()
	assert.GreaterOrEqual(t, sampleFor(samples, "batch_retry"), uint64(1))
	assert.Equal(t, uint64(0), sampleFor(samples, "batch_failed"))
}

func TestChannelRetryExhaustionDrops(t *testing.T) {
	c := New(Options{Capacity: 16, RetryLimit: 1, EmptyQuantum: time.Millisecond, FlushDeadline: time.Second},
		func(batch []int) error {
			return &Retry[int]{Remainder: batch}
		})
	defer c.Close()

	c.Send(1)
	assert.True(t, c.BlockingFlush(time.Second))

	samples := c.Metrics().Sample()
	assert.GreaterOrEqual(t, sampleFor(samples, "batch_failed"), uint64(1))
}

func TestChannelPanicIsRecovered(t *testing.T) {
	calls := 0
	c := New(fastOptions(), func(batch []int) error {
		calls++
		if calls == 1 {
			panic("boom")
		}
		return nil
	})
	defer c.Close()

	c.Send(1)
	assert.True(t, c.BlockingFlush(time.Second))

	samples := c.Metrics().Sample()
	assert.Equal(t, uint64(1), sampleFor(samples, "batch_panicked"))
}

func TestChannelBlockingFlushGuaranteesPriorItemsDrained(t *testing.T) {
	var mu sync.Mutex
	var processed int

	c := New(fastOptions(), func(batch []int) error {
		mu.Lock()
		processed += len(batch)
		mu.Unlock()
		return nil
	})
	defer c.Close()

	for i := 0; i < 50; i++ {
		c.Send(i)
	}
	ok := c.BlockingFlush(time.Second)
	require.True(t, ok)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 50, processed)
}

func TestChannelBlockingFlushTimesOutWhenStuck(t *testing.T) {
	block := make(chan struct{})
	c := New(fastOptions(), func(batch []int) error {
		<-block
		return nil
	})
	defer func() {
		close(block)
		c.Close()
	}()

	c.Send(1)
	ok := c.BlockingFlush(20 * time.Millisecond)
	assert.False(t, ok)
}

func TestChannelOnNextFlushFiresAfterPriorSends(t *testing.T) {
	c := New(fastOptions(), func(batch []int) error { return nil })
	defer c.Close()

	c.Send(1)
	c.Send(2)

	done := make(chan struct{})
	c.OnNextFlush(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("OnNextFlush callback did not fire")
	}
}

func TestChannelSendAfterCloseIsNoop(t *testing.T) {
	c := New(fastOptions(), func(batch []int) error { return nil })
	c.Close()
	c.Send(1) // must not panic or deadlock
}

func TestChannelCloseDropsRemainderPastDeadline(t *testing.T) {
	c := New(Options{Capacity: 16, RetryLimit: 1, EmptyQuantum: time.Millisecond, FlushDeadline: 20 * time.Millisecond},
		func(batch []int) error {
			time.Sleep(150 * time.Millisecond)
			return nil
		})

	c.Send(1)
	time.Sleep(5 * time.Millisecond) // let the drain loop pick item 1 up and block inside onBatch
	c.Send(2)                        // stays queued; the drain loop is busy with item 1

	c.Close()

	samples := c.Metrics().Sample()
	assert.GreaterOrEqual(t, sampleFor(samples, "batch_failed"), uint64(1))
}
