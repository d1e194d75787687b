// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package emit

// Visitor is called once per (key, value) pair during a Props walk. Returning
// false stops the walk early.
type Visitor func(k Key, v Value) bool

// Props is an ordered, possibly-duplicate-producing sequence of (key, value)
// pairs, iterated by a Visitor callback. ForEach drives iteration; Get is a
// short-circuiting lookup defined in terms of ForEach so any Props
// implementation only has to provide the one method.
type Props interface {
	ForEach(Visitor)
}

// Get returns the first value bound to key, or false if none is found.
// First-match semantics hold even across a Chain:
// Chain(A, B).Get(k) == A.Get(k).Or(B.Get(k)).
func Get(p Props, key string) (Value, bool) {
	var (
		found Value
		ok    bool
	)
	p.ForEach(func(k Key, v Value) bool {
		if k.String() == key {
			found, ok = v, true
			return false
		}
		return true
	})
	return found, ok
}

// Pull looks up key and coerces it to T via Parse (exact downcast first,
// best-effort string coercion for common scalar kinds otherwise).
func Pull[T any](p Props, key string) (T, bool) {
	var zero T
	v, ok := Get(p, key)
	if !ok {
		return zero, false
	}
	return Parse[T](v)
}

// MapProps is a Props backed by a plain map, for call sites that already have
// their properties collected (e.g. decoded from the wire, or hand-built in a
// test). Iteration order over a map is unspecified by Go; SliceProps is the
// ordered alternative for callers that need determinism.
type MapProps map[string]Value

// ForEach implements Props.
func (m MapProps) ForEach(visit Visitor) {
	for k, v := range m {
		if !visit(NewKey(k), v) {
			return
		}
	}
}

// Pair is one (key, value) entry of a SliceProps.
type Pair struct {
	Key   string
	Value Value
}

// SliceProps is an ordered Props backed by a slice of Pairs; iteration visits
// pairs in slice order, so callers that need deterministic rendering
// (template hole lookups, chiefly) should prefer it over MapProps.
type SliceProps []Pair

// ForEach implements Props.
func (s SliceProps) ForEach(visit Visitor) {
	for _, p := range s {
		if !visit(NewKey(p.Key), p.Value) {
			return
		}
	}
}

// emptyProps is the zero-value Props: an empty set. It backs the default
// wherever a Props is required but none was given.
type emptyProps struct{}

// ForEach implements Props.
func (emptyProps) ForEach(Visitor) {}

// EmptyProps is the canonical empty Props.
var EmptyProps Props = emptyProps{}

// chainProps visits A then B; Get returns the first, A-side, match.
type chainProps struct {
	a, b Props
}

// Chain composes a and b so ForEach visits a's pairs then b's, preserving
// first-match Get semantics (a wins ties).
func Chain(a, b Props) Props { return chainProps{a: a, b: b} }

// ForEach implements Props.
func (c chainProps) ForEach(visit Visitor) {
	stopped := false
	c.a.ForEach(func(k Key, v Value) bool {
		if !visit(k, v) {
			stopped = true
			return false
		}
		return true
	})
	if stopped {
		return
	}
	c.b.ForEach(visit)
}

// byRefProps shares an existing Props without taking ownership of it, so
// composing a bag for a single render doesn't need to copy or box the
// original.
type byRefProps struct {
	inner Props
}

// ByRef wraps p so it can be composed into a Chain without transferring
// ownership.
func ByRef(p Props) Props { return byRefProps{inner: p} }

// ForEach implements Props.
func (b byRefProps) ForEach(visit Visitor) { b.inner.ForEach(visit) }
