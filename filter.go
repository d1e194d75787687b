// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package emit

// Filter is a predicate over events, checked on the hot emission path before
// any context merge or emitter dispatch happens. Go interfaces are already
// dynamically dispatched, so composing filters needs no separate erased
// wrapper type.
type Filter interface {
	Matches(Event) bool
}

// FilterFunc adapts a plain function to a Filter.
type FilterFunc func(Event) bool

// Matches implements Filter.
func (f FilterFunc) Matches(e Event) bool { return f(e) }

// emptyFilter always matches, the Setup builder's default.
type emptyFilter struct{}

// Matches implements Filter.
func (emptyFilter) Matches(Event) bool { return true }

// AlwaysFilter is the always-true Filter.
var AlwaysFilter Filter = emptyFilter{}

// andFilter matches iff both sides match.
type andFilter struct{ lhs, rhs Filter }

// And composes two filters so Matches requires both to match.
func And(lhs, rhs Filter) Filter { return andFilter{lhs: lhs, rhs: rhs} }

// Matches implements Filter.
func (f andFilter) Matches(e Event) bool { return f.lhs.Matches(e) && f.rhs.Matches(e) }

// orFilter matches iff either side matches.
type orFilter struct{ lhs, rhs Filter }

// Or composes two filters so Matches requires either to match.
func Or(lhs, rhs Filter) Filter { return orFilter{lhs: lhs, rhs: rhs} }

// Matches implements Filter.
func (f orFilter) Matches(e Event) bool { return f.lhs.Matches(e) || f.rhs.Matches(e) }

// minLevelFilter is a level-threshold convenience.
type minLevelFilter struct{ min Level }

// MinLevel returns a Filter matching events at or above min.
func MinLevel(min Level) Filter { return minLevelFilter{min: min} }

// Matches implements Filter.
func (f minLevelFilter) Matches(e Event) bool { return e.Level() >= f.min }
