// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package emit

import (
	"sync/atomic"
)

// Setup is the builder that assembles a Runtime's five slots, using plain
// functional composition rather than an options DSL since every slot here is
// a single required field rather than an open set of optional tuning knobs.
type Setup struct {
	clock   Clock
	rng     RNG
	ctxt    Ctxt
	filter  Filter
	emitter Emitter
}

// NewSetup returns a Setup pre-populated with defaults: system wall clock,
// thread-safe RNG, context.Context-backed Ctxt, always-true filter,
// discarding emitter.
func NewSetup() *Setup {
	return &Setup{
		clock:   SystemClock,
		rng:     DefaultRNG,
		ctxt:    DefaultCtxt,
		filter:  AlwaysFilter,
		emitter: DiscardingEmitter,
	}
}

// WithClock overrides the clock slot.
func (s *Setup) WithClock(c Clock) *Setup { s.clock = c; return s }

// WithRNG overrides the rng slot.
func (s *Setup) WithRNG(r RNG) *Setup { s.rng = r; return s }

// WithCtxt overrides the context slot.
func (s *Setup) WithCtxt(c Ctxt) *Setup { s.ctxt = c; return s }

// WithFilter overrides the filter slot.
func (s *Setup) WithFilter(f Filter) *Setup { s.filter = f; return s }

// EmitTo overrides the emitter slot. Named to read naturally at call sites:
// NewSetup().EmitTo(term).Init().
func (s *Setup) EmitTo(e Emitter) *Setup { s.emitter = e; return s }

// build assembles the Runtime from the builder's current fields.
func (s *Setup) build() *Runtime {
	return &Runtime{Clock: s.clock, RNG: s.rng, Ctxt: s.ctxt, Filter: s.filter, Emitter: s.emitter}
}

var ambientRuntime atomic.Pointer[Runtime]

// Init atomically publishes the assembled Runtime into process-wide storage.
// A second call, from this Setup or a fresh one, fails with
// ErrAlreadyInitialized and leaves the first runtime in effect.
func (s *Setup) Init() (*Runtime, error) {
	rt := s.build()
	if !ambientRuntime.CompareAndSwap(nil, rt) {
		return ambientRuntime.Load(), ErrAlreadyInitialized
	}
	return rt, nil
}

// Ambient returns the process-wide Runtime published by Init, or nil if no
// Setup has been initialized yet.
func Ambient() *Runtime { return ambientRuntime.Load() }

// resetAmbientForTest clears the published runtime. Tests that need
// isolation should prefer constructing a Runtime locally rather than
// touching the ambient slot — this exists only for this package's own tests
// of the single-assignment barrier itself.
func resetAmbientForTest() { ambientRuntime.Store(nil) }

var internalRuntime atomic.Pointer[Runtime]

// InitInternal initializes the separate internal-runtime slot used for the
// framework's own self-diagnostics, avoiding recursion through the ambient
// runtime.
func (s *Setup) InitInternal() (*Runtime, error) {
	rt := s.build()
	if !internalRuntime.CompareAndSwap(nil, rt) {
		return internalRuntime.Load(), ErrAlreadyInitialized
	}
	return rt, nil
}

// InternalAmbient returns the process-wide internal Runtime, or nil.
func InternalAmbient() *Runtime { return internalRuntime.Load() }
