// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package emit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventMsgRendersTemplate(t *testing.T) {
	evt := NewEvent("m", EmptyExtent(), Parse("hello {name}"), SliceProps{{Key: "name", Value: Capture("world")}})
	assert.Equal(t, "hello world", evt.Msg())
}

func TestEventChainPrefersOwnProps(t *testing.T) {
	evt := NewEvent("m", EmptyExtent(), Parse("x"), SliceProps{{Key: "k", Value: Capture("own")}})
	chained := evt.Chain(SliceProps{{Key: "k", Value: Capture("other")}})

	v, ok := Get(chained.Props, "k")
	assert.True(t, ok)
	s, _ := v.ToString()
	assert.Equal(t, "own", s)
}

func TestEventLevelDefaultsToInfo(t *testing.T) {
	evt := NewEvent("m", EmptyExtent(), Parse("x"), nil)
	assert.Equal(t, LevelInfo, evt.Level())
}

func TestEventLevelFromProps(t *testing.T) {
	evt := NewEvent("m", EmptyExtent(), Parse("x"), SliceProps{{Key: KeyLevel, Value: LevelError.ToValue()}})
	assert.Equal(t, LevelError, evt.Level())
}

func TestEventKindDefaultsToLog(t *testing.T) {
	evt := NewEvent("m", EmptyExtent(), Parse("x"), nil)
	assert.Equal(t, EventKindLog, evt.Kind())
}

func TestEventKindSpanRequiresIntervalExtent(t *testing.T) {
	now := time.Now()
	withInterval := NewEvent("m", IntervalExtent(now, now.Add(time.Second)), Parse("x"),
		SliceProps{{Key: KeyEventKind, Value: Capture(string(EventKindSpan))}})
	assert.Equal(t, EventKindSpan, withInterval.Kind())

	withoutInterval := NewEvent("m", PointExtent(now), Parse("x"),
		SliceProps{{Key: KeyEventKind, Value: Capture(string(EventKindSpan))}})
	assert.Equal(t, EventKindLog, withoutInterval.Kind())
}

func TestEventKindMetric(t *testing.T) {
	evt := NewEvent("m", EmptyExtent(), Parse("x"), SliceProps{{Key: KeyEventKind, Value: Capture(string(EventKindMetric))}})
	assert.Equal(t, EventKindMetric, evt.Kind())
}

func TestEventTraceAndSpanIDRoundTrip(t *testing.T) {
	tid := GenerateTraceID()
	sid := GenerateSpanID()
	evt := NewEvent("m", EmptyExtent(), Parse("x"), SliceProps{
		{Key: KeyTraceID, Value: tid.ToValue()},
		{Key: KeySpanID, Value: sid.ToValue()},
	})
	assert.Equal(t, tid, evt.TraceID())
	assert.Equal(t, sid, evt.SpanID())
}

func TestEventForEachIncludesWellKnownKeys(t *testing.T) {
	now := time.Now()
	evt := NewEvent("pkg", PointExtent(now), Parse("hello {n}"), SliceProps{{Key: "n", Value: Capture(1)}})

	var keys []string
	evt.ForEach(func(k Key, v Value) bool {
		keys = append(keys, k.String())
		return true
	})
	assert.Contains(t, keys, KeyTimestamp)
	assert.Contains(t, keys, KeyTemplate)
	assert.Contains(t, keys, KeyMessage)
	assert.Contains(t, keys, KeyModule)
	assert.Contains(t, keys, "n")
}
