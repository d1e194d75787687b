// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package batcher

import (
	"sync"
	"time"
)

// trigger is a condition variable wrapped for a poll-and-wait pattern: a
// waiter supplies a predicate and is woken on every broadcast to re-check it,
// re-measuring the remaining timeout budget on each wakeup rather than
// sleeping for the full duration and checking only once.
type trigger struct {
	mu   sync.Mutex
	cond *sync.Cond
}

func newTrigger() *trigger {
	t := &trigger{}
	t.cond = sync.NewCond(&t.mu)
	return t
}

// broadcast wakes every waiter to re-check its predicate.
func (t *trigger) broadcast() { t.cond.Broadcast() }

// waitUntil blocks until done() reports true or timeout elapses, returning
// which happened first. A zero or negative timeout checks done() once.
func (t *trigger) waitUntil(timeout time.Duration, done func() bool) bool {
	if done() {
		return true
	}
	if timeout <= 0 {
		return false
	}

	deadline := time.Now().Add(timeout)

	t.mu.Lock()
	defer t.mu.Unlock()
	for !done() {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false
		}
		timer := time.AfterFunc(remaining, t.cond.Broadcast)
		t.cond.Wait()
		timer.Stop()
	}
	return true
}
