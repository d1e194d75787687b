// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

// Package term is a minimal terminal emitter: it renders each event's
// message to a writer, one line per event. Concrete terminal/file sinks
// beyond this contract (coloring, multi-line property dumps, log rotation)
// are external collaborators this package does not attempt to be.
package term

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/emit-go/emit"
)

// Emitter renders events to an underlying writer synchronously, so Emit's
// caller observes the write before returning — this emitter is terminal, not
// channel-backed, so BlockingFlush always completes immediately.
type Emitter struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// New wraps w.
func New(w io.Writer) *Emitter {
	return &Emitter{w: bufio.NewWriter(w)}
}

// Stdout is the literal end-to-end scenario's term_stdout emitter.
func Stdout() *Emitter { return New(os.Stdout) }

// Emit implements emit.Emitter.
func (e *Emitter) Emit(evt emit.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fmt.Fprintln(e.w, evt.Msg())
	e.w.Flush()
}

// BlockingFlush implements emit.Emitter: a synchronous writer has nothing
// outstanding once Emit returns.
func (e *Emitter) BlockingFlush(time.Duration) bool { return true }

var _ emit.Emitter = (*Emitter)(nil)
