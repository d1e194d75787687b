// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

// Package telemetry holds the framework's own internal metrics: monotonic
// counters describing the health of the batching channel and the OTLP
// transport, composed into a tree so sampling the root yields every
// sub-source's counters too.
package telemetry

import "sync/atomic"

// Agg is a counter's aggregation kind.
type Agg string

const (
	AggCount Agg = "count"
	AggSum   Agg = "sum"
)

// Sample is one (name, aggregation, value) triple yielded by a Source.
type Sample struct {
	Name  string
	Agg   Agg
	Value uint64
}

// Source yields its own counters, and by convention a composite Source also
// yields its children's. A func value is its own Source.
type Source interface {
	Sample() []Sample
}

// SourceFunc adapts a plain function to a Source.
type SourceFunc func() []Sample

// Sample implements Source.
func (f SourceFunc) Sample() []Sample { return f() }

// Counter is a single monotonic counter.
type Counter struct {
	name string
	agg  Agg
	v    atomic.Uint64
}

// NewCounter returns a zero-valued named counter.
func NewCounter(name string, agg Agg) *Counter { return &Counter{name: name, agg: agg} }

// Add increments the counter by delta.
func (c *Counter) Add(delta uint64) { c.v.Add(delta) }

// Inc increments the counter by one.
func (c *Counter) Inc() { c.v.Add(1) }

// Value returns the counter's current value.
func (c *Counter) Value() uint64 { return c.v.Load() }

// Sample implements Source: a single counter is its own one-element source.
func (c *Counter) Sample() []Sample {
	return []Sample{{Name: c.name, Agg: c.agg, Value: c.v.Load()}}
}

// Tree composes a set of named child sources under a single root Source.
type Tree struct {
	children []Source
}

// NewTree returns an empty composite source.
func NewTree() *Tree { return &Tree{} }

// Add registers a child source, returning the tree for chaining.
func (t *Tree) Add(src Source) *Tree {
	t.children = append(t.children, src)
	return t
}

// Sample implements Source: the union of every child's samples.
func (t *Tree) Sample() []Sample {
	var out []Sample
	for _, c := range t.children {
		out = append(out, c.Sample()...)
	}
	return out
}
